package decision

// featureLabels 技术特征名 → 人类可读标签的固定映射表，
// 与训练侧报表保持一致，解释输出只暴露标签。
var featureLabels = map[string]string{
	"f_monthly_income":          "Monthly income",
	"f_income_variance":         "Income variance",
	"f_savings_balance":         "Savings balance",
	"f_months_active":           "Months of economic activity",
	"f_income_stability":        "Income stability",
	"f_savings_ratio":           "Savings-to-income ratio",
	"f_liquidity_buffer":        "Liquidity buffer",
	"f_total_credits":           "Total credits",
	"f_total_debits":            "Total debits",
	"f_total_transactions":      "Transaction volume",
	"f_avg_credit_amount":       "Avg credit size",
	"f_avg_debit_amount":        "Avg debit size",
	"f_recurring_ratio":         "Recurring payment rate",
	"f_net_cashflow":            "Net cashflow",
	"f_credit_debit_ratio":      "Credit-to-debit ratio",
	"f_gpa":                     "GPA",
	"f_attendance_rate":         "Attendance rate",
	"f_platform_rating":         "Platform rating",
	"f_avg_weekly_hours":        "Avg weekly hours worked",
	"f_business_years":          "Years in business",
	"f_avg_daily_revenue":       "Avg daily revenue",
	"f_land_size_acres":         "Land size (acres)",
	"f_subsidy_amount":          "Subsidy amount",
	"f_seasonality_index":       "Seasonality index",
	"f_is_student":              "Student profile",
	"f_is_gig":                  "Gig worker profile",
	"f_is_shopkeeper":           "Shopkeeper profile",
	"f_is_rural":                "Rural/agri profile",
	"stability_adjusted_income": "Stability-adjusted income",
	"income_risk_index":         "Income risk index",
	"missed_payment_proxy":      "Missed payment signal",
	"net_cashflow_ratio":        "Net cashflow ratio",
	"profile_income_signal":     "Profile income signal",
	"profile_rating_signal":     "Profile quality signal",
	"transaction_density":       "Transaction density",
}

// Label 返回特征的人类可读标签，缺失时回退技术名。
func Label(name string) string {
	if l, ok := featureLabels[name]; ok {
		return l
	}
	return name
}
