package scorehttp

import (
	"altscore/internal/feature"
	"altscore/internal/types"
)

// ScoreRequest 主打分接口的请求体：原始表单字段，不带 f_ 前缀。
// 画像专属字段按需提交，缺省一律按 0 处理（与显式置 0 等价）。
type ScoreRequest struct {
	ProfileType string `json:"profile_type"`

	MonthlyIncome     float64 `json:"monthly_income"`
	IncomeVariance    float64 `json:"income_variance"`
	SavingsBalance    float64 `json:"savings_balance"`
	MonthsActive      float64 `json:"months_active"`
	TotalCredits      float64 `json:"total_credits"`
	TotalDebits       float64 `json:"total_debits"`
	TotalTransactions float64 `json:"total_transactions"`
	AvgCreditAmount   float64 `json:"avg_credit_amount"`
	AvgDebitAmount    float64 `json:"avg_debit_amount"`
	RecurringRatio    float64 `json:"recurring_ratio"`

	GPA              float64 `json:"gpa"`
	AttendanceRate   float64 `json:"attendance_rate"`
	PlatformRating   float64 `json:"platform_rating"`
	AvgWeeklyHours   float64 `json:"avg_weekly_hours"`
	BusinessYears    float64 `json:"business_years"`
	AvgDailyRevenue  float64 `json:"avg_daily_revenue"`
	LandSizeAcres    float64 `json:"land_size_acres"`
	SubsidyAmount    float64 `json:"subsidy_amount"`
	SeasonalityIndex float64 `json:"seasonality_index"`
}

// ToBorrower 解析画像并装配标签化输入；专属字段只保留当前画像的。
func (r *ScoreRequest) ToBorrower() (*types.BorrowerInput, error) {
	prof, err := types.ParseProfile(r.ProfileType)
	if err != nil {
		return nil, err
	}
	in := &types.BorrowerInput{
		Profile: prof,
		SharedFields: types.SharedFields{
			MonthlyIncome:     r.MonthlyIncome,
			IncomeVariance:    r.IncomeVariance,
			SavingsBalance:    r.SavingsBalance,
			MonthsActive:      r.MonthsActive,
			TotalCredits:      r.TotalCredits,
			TotalDebits:       r.TotalDebits,
			TotalTransactions: r.TotalTransactions,
			AvgCreditAmount:   r.AvgCreditAmount,
			AvgDebitAmount:    r.AvgDebitAmount,
			RecurringRatio:    r.RecurringRatio,
		},
	}
	switch prof {
	case types.ProfileStudent:
		in.Student = types.StudentFields{GPA: r.GPA, AttendanceRate: r.AttendanceRate}
	case types.ProfileGig:
		in.Gig = types.GigFields{PlatformRating: r.PlatformRating, AvgWeeklyHours: r.AvgWeeklyHours}
	case types.ProfileShopkeeper:
		in.Shopkeeper = types.ShopkeeperFields{BusinessYears: r.BusinessYears, AvgDailyRevenue: r.AvgDailyRevenue}
	case types.ProfileRural:
		in.Rural = types.RuralFields{
			LandSizeAcres:    r.LandSizeAcres,
			SubsidyAmount:    r.SubsidyAmount,
			SeasonalityIndex: r.SeasonalityIndex,
		}
	}
	return in, nil
}

// BatchScoreRequest 批量打分，上限由 transport 层执行（核心不限长）。
type BatchScoreRequest struct {
	Borrowers []ScoreRequest `json:"borrowers"`
}

// BatchScoreResponse 保序返回。
type BatchScoreResponse struct {
	Results []*types.ScoreResult `json:"results"`
	Count   int                  `json:"count"`
}

// PredictRequest 遗留接口：直接提交预展开的 f_* 特征列。
type PredictRequest = feature.Columns
