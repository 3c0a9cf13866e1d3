package types

// RiskBand 三档风险分级，由分数划定，而非直接由概率划定。
type RiskBand string

const (
	BandLow    RiskBand = "Low"
	BandMedium RiskBand = "Medium"
	BandHigh   RiskBand = "High"
)

// TopFactor 单个解释因子：人类可读标签 + 方向 + 归一化幅度。
// Direction 为 "positive" 表示该因子推动还款（降低违约风险）。
type TopFactor struct {
	Label     string  `json:"label"`
	Direction string  `json:"direction"`
	Impact    float64 `json:"impact"`
}

// ScoreResult 一次打分的完整输出，按请求新建，无持久身份。
type ScoreResult struct {
	RepaymentProbability float64     `json:"repayment_probability"`
	DefaultProbability   float64     `json:"default_probability"`
	Score                int         `json:"alternative_credit_score"`
	PredictedDefault     bool        `json:"predicted_default"`
	RiskBand             RiskBand    `json:"risk_band"`
	TopFactors           []TopFactor `json:"top_factors"`
}
