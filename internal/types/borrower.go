package types

import (
	"fmt"
	"strings"
)

// Profile 借款人画像标签，决定哪些原始信号生效。
type Profile string

const (
	ProfileSalaried   Profile = "salaried"
	ProfileStudent    Profile = "student"
	ProfileGig        Profile = "gig"
	ProfileShopkeeper Profile = "shopkeeper"
	ProfileRural      Profile = "rural"
)

// Profiles 按固定顺序列出全部画像（salaried 为 one-hot 的基准类）。
var Profiles = []Profile{
	ProfileSalaried,
	ProfileStudent,
	ProfileGig,
	ProfileShopkeeper,
	ProfileRural,
}

// ParseProfile 归一化并解析画像标签。
func ParseProfile(raw string) (Profile, error) {
	p := Profile(strings.ToLower(strings.TrimSpace(raw)))
	switch p {
	case ProfileSalaried, ProfileStudent, ProfileGig, ProfileShopkeeper, ProfileRural:
		return p, nil
	}
	return "", &ValidationError{
		Field:  "profile_type",
		Reason: fmt.Sprintf("unknown profile %q (want one of salaried/student/gig/shopkeeper/rural)", raw),
	}
}

func (p Profile) Valid() bool {
	_, err := ParseProfile(string(p))
	return err == nil
}

// SharedFields 是所有画像共有的 10 个数值字段。
// 数值语义：除比例字段（0~1）外均为非负；范围校验由入参校验层负责，
// 本层按原样接收。
type SharedFields struct {
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
}

// StudentFields 学生画像专属信号。
type StudentFields struct {
	GPA            float64 `json:"gpa"`             // 0~4
	AttendanceRate float64 `json:"attendance_rate"` // 0~1
}

// GigFields 零工画像专属信号。
type GigFields struct {
	PlatformRating float64 `json:"platform_rating"` // 0~5
	AvgWeeklyHours float64 `json:"avg_weekly_hours"`
}

// ShopkeeperFields 个体商户画像专属信号。
type ShopkeeperFields struct {
	BusinessYears   float64 `json:"business_years"`
	AvgDailyRevenue float64 `json:"avg_daily_revenue"`
}

// RuralFields 农业/农村画像专属信号。
type RuralFields struct {
	LandSizeAcres    float64 `json:"land_size_acres"`
	SubsidyAmount    float64 `json:"subsidy_amount"`
	SeasonalityIndex float64 `json:"seasonality_index"` // 0~1
}

// BorrowerInput 是打分入口的标签化输入：共有字段 + 当前画像对应的
// 专属字段。非当前画像的专属字段在特征构建时一律视为 0，显式置零
// 与缺省零值等价。
type BorrowerInput struct {
	Profile Profile `json:"profile_type"`
	SharedFields

	Student    StudentFields    `json:"student,omitempty"`
	Gig        GigFields        `json:"gig,omitempty"`
	Shopkeeper ShopkeeperFields `json:"shopkeeper,omitempty"`
	Rural      RuralFields      `json:"rural,omitempty"`
}
