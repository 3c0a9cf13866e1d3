package model

import (
	"gorm.io/datatypes"
)

// ScoreRecordModel 一条打分历史：请求摘要 + 完整决策输出。
// 打分核心本身不落库；持久化由外围服务在出分后异步完成。
type ScoreRecordModel struct {
	ID               int64          `gorm:"column:id;primaryKey"`
	TraceID          string         `gorm:"column:trace_id;uniqueIndex"`
	Profile          string         `gorm:"column:profile"`
	RepayProb        float64        `gorm:"column:repayment_probability"`
	DefaultProb      float64        `gorm:"column:default_probability"`
	Score            int            `gorm:"column:score"`
	PredictedDefault bool           `gorm:"column:predicted_default"`
	RiskBand         string         `gorm:"column:risk_band"`
	Threshold        float64        `gorm:"column:threshold"`
	TopFactors       datatypes.JSON `gorm:"column:top_factors"`
	Input            datatypes.JSON `gorm:"column:input"`
	ModelID          string         `gorm:"column:model_id"`
	CreatedAtUnix    int64          `gorm:"column:created_at"`
}

func (ScoreRecordModel) TableName() string {
	return "score_records"
}
