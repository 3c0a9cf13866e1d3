package feature

import "altscore/internal/types"

// Columns 展开后的原始特征列（与训练视图的 f_* 列一一对应）。
// 标签化输入会先被展开成 Columns，再统一派生交叉特征；
// 遗留的 /predict 接口则直接提交 Columns。
type Columns struct {
	MonthlyIncome     float64 `json:"f_monthly_income"`
	IncomeVariance    float64 `json:"f_income_variance"`
	SavingsBalance    float64 `json:"f_savings_balance"`
	MonthsActive      float64 `json:"f_months_active"`
	TotalCredits      float64 `json:"f_total_credits"`
	TotalDebits       float64 `json:"f_total_debits"`
	TotalTransactions float64 `json:"f_total_transactions"`
	AvgCreditAmount   float64 `json:"f_avg_credit_amount"`
	AvgDebitAmount    float64 `json:"f_avg_debit_amount"`
	RecurringRatio    float64 `json:"f_recurring_ratio"`
	GPA               float64 `json:"f_gpa"`
	AttendanceRate    float64 `json:"f_attendance_rate"`
	PlatformRating    float64 `json:"f_platform_rating"`
	AvgWeeklyHours    float64 `json:"f_avg_weekly_hours"`
	BusinessYears     float64 `json:"f_business_years"`
	AvgDailyRevenue   float64 `json:"f_avg_daily_revenue"`
	LandSizeAcres     float64 `json:"f_land_size_acres"`
	SubsidyAmount     float64 `json:"f_subsidy_amount"`
	SeasonalityIndex  float64 `json:"f_seasonality_index"`
	IsStudent         float64 `json:"f_is_student"`
	IsGig             float64 `json:"f_is_gig"`
	IsShopkeeper      float64 `json:"f_is_shopkeeper"`
	IsRural           float64 `json:"f_is_rural"`
}

// Expand 将标签化输入展开为原始列：当前画像拥有的信号取借款人提交值，
// 其余画像的信号一律为 0；one-hot 仅在非 salaried 时置 1。
func Expand(in *types.BorrowerInput) Columns {
	c := Columns{
		MonthlyIncome:     in.MonthlyIncome,
		IncomeVariance:    in.IncomeVariance,
		SavingsBalance:    in.SavingsBalance,
		MonthsActive:      in.MonthsActive,
		TotalCredits:      in.TotalCredits,
		TotalDebits:       in.TotalDebits,
		TotalTransactions: in.TotalTransactions,
		AvgCreditAmount:   in.AvgCreditAmount,
		AvgDebitAmount:    in.AvgDebitAmount,
		RecurringRatio:    in.RecurringRatio,
	}
	switch in.Profile {
	case types.ProfileStudent:
		c.IsStudent = 1
		c.GPA = in.Student.GPA
		c.AttendanceRate = in.Student.AttendanceRate
	case types.ProfileGig:
		c.IsGig = 1
		c.PlatformRating = in.Gig.PlatformRating
		c.AvgWeeklyHours = in.Gig.AvgWeeklyHours
	case types.ProfileShopkeeper:
		c.IsShopkeeper = 1
		c.BusinessYears = in.Shopkeeper.BusinessYears
		c.AvgDailyRevenue = in.Shopkeeper.AvgDailyRevenue
	case types.ProfileRural:
		c.IsRural = 1
		c.LandSizeAcres = in.Rural.LandSizeAcres
		c.SubsidyAmount = in.Rural.SubsidyAmount
		c.SeasonalityIndex = in.Rural.SeasonalityIndex
	}
	return c
}

// Build 由标签化输入构建特征向量。纯函数，对格式良好的输入没有失败路径；
// 越界数值按原样进入向量，范围校验属于入参校验层的职责。
func Build(in *types.BorrowerInput) Vector {
	cols := Expand(in)
	sig := selectSignals(in)
	return buildVector(cols, sig)
}

// BuildColumns 由预展开的原始列构建特征向量（遗留 /predict 路径）。
// 画像信号按 one-hot 加权和推导，与 Expand 后的 Build 结果一致。
func BuildColumns(c Columns) Vector {
	sig := profileSignals{
		Income: c.AvgDailyRevenue*c.IsShopkeeper +
			c.SubsidyAmount*c.IsRural +
			c.GPA*c.IsStudent +
			c.PlatformRating*c.IsGig,
		Rating: c.PlatformRating*c.IsGig +
			c.GPA*c.IsStudent +
			c.AttendanceRate*c.IsStudent +
			c.AvgWeeklyHours*c.IsGig,
	}
	return buildVector(c, sig)
}

// buildVector 派生视图列与交叉特征并按 Order 排列。
// 所有分母保护统一采用 max(d, 1)：这是固定的 epsilon 策略，
// 必须与训练侧逐位一致，不是数值巧合。
func buildVector(c Columns, sig profileSignals) Vector {
	incomeStability := 1.0 / (1.0 + c.IncomeVariance)
	savingsRatio := c.SavingsBalance / maxOne(c.MonthlyIncome)
	// liquidity_buffer 与 savings_ratio 数值相同，是与外部报表视图
	// 命名对齐而保留的有意重复，两列都必须存在。
	liquidityBuffer := savingsRatio

	netCashflow := c.TotalCredits - c.TotalDebits
	creditDebitRatio := c.TotalCredits / maxOne(c.TotalDebits)

	stabilityAdjustedIncome := c.MonthlyIncome * incomeStability
	incomeRiskIndex := c.MonthlyIncome * (1.0 - incomeStability)
	missedPaymentProxy := max(c.AvgDebitAmount-c.AvgCreditAmount, 0.0)
	netCashflowRatio := netCashflow / maxOne(c.TotalCredits)
	transactionDensity := c.TotalTransactions / maxOne(c.MonthsActive)

	return Vector{
		c.MonthlyIncome,
		c.IncomeVariance,
		c.SavingsBalance,
		c.MonthsActive,
		incomeStability,
		savingsRatio,
		liquidityBuffer,
		c.TotalCredits,
		c.TotalDebits,
		c.TotalTransactions,
		c.AvgCreditAmount,
		c.AvgDebitAmount,
		c.RecurringRatio,
		netCashflow,
		creditDebitRatio,
		c.GPA,
		c.AttendanceRate,
		c.PlatformRating,
		c.AvgWeeklyHours,
		c.BusinessYears,
		c.AvgDailyRevenue,
		c.LandSizeAcres,
		c.SubsidyAmount,
		c.SeasonalityIndex,
		c.IsStudent,
		c.IsGig,
		c.IsShopkeeper,
		c.IsRural,
		stabilityAdjustedIncome,
		incomeRiskIndex,
		missedPaymentProxy,
		netCashflowRatio,
		sig.Income,
		sig.Rating,
		transactionDensity,
	}
}

func maxOne(d float64) float64 {
	if d > 1.0 {
		return d
	}
	return 1.0
}
