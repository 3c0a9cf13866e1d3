package feature

// 特征顺序是全系统最关键的不变量：必须与模型参数拟合时的列序完全一致，
// 任何重排都会静默污染下游的标准化、打分与解释计算。
// 分组：核心财务 7 + 交易行为 8 + 画像原始信号 9 + 画像 one-hot 4 + 交叉特征 7 = 35。
var Order = []string{
	// 核心财务
	"f_monthly_income",
	"f_income_variance",
	"f_savings_balance",
	"f_months_active",
	"f_income_stability",
	"f_savings_ratio",
	"f_liquidity_buffer",
	// 交易行为
	"f_total_credits",
	"f_total_debits",
	"f_total_transactions",
	"f_avg_credit_amount",
	"f_avg_debit_amount",
	"f_recurring_ratio",
	"f_net_cashflow",
	"f_credit_debit_ratio",
	// 画像原始信号
	"f_gpa",
	"f_attendance_rate",
	"f_platform_rating",
	"f_avg_weekly_hours",
	"f_business_years",
	"f_avg_daily_revenue",
	"f_land_size_acres",
	"f_subsidy_amount",
	"f_seasonality_index",
	// 画像 one-hot（salaried 为基准类，全 0）
	"f_is_student",
	"f_is_gig",
	"f_is_shopkeeper",
	"f_is_rural",
	// 工程化交叉特征
	"stability_adjusted_income",
	"income_risk_index",
	"missed_payment_proxy",
	"net_cashflow_ratio",
	"profile_income_signal",
	"profile_rating_signal",
	"transaction_density",
}

// Count 固定特征维数。
var Count = len(Order)

// Vector 定长有序特征向量，下标与 Order 对齐。
type Vector []float64

// Index 返回特征名对应的下标，不存在时返回 -1。
func Index(name string) int {
	for i, n := range Order {
		if n == name {
			return i
		}
	}
	return -1
}
