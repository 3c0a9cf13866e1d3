package decision

import (
	"math"

	"altscore/internal/model"
	"altscore/internal/types"
)

// 分数区间与分级边界。分级永远由分数推导，不直接由概率推导：
// 300/540/720 三条边界是对外契约，对应的概率割点（约 55%/30%）只是近似。
const (
	ScoreMin = 300
	ScoreMax = 900

	bandLowMin    = 720
	bandMediumMin = 540
)

// Decision 概率经决策策略落地后的结果。
type Decision struct {
	Score            int
	Band             types.RiskBand
	PredictedDefault bool
	Threshold        float64
}

// Map 把校准后的违约概率映射为分数、分级与违约预测。
// 映射为 score = round(300 + p_repay*600) 并夹紧；概率越低分数越高。
func Map(params *model.Parameters, prof types.Profile, pDefault float64) Decision {
	threshold := params.Threshold(prof)
	score := ProbabilityToScore(1.0 - pDefault)
	return Decision{
		Score:            score,
		Band:             BandFromScore(score),
		PredictedDefault: pDefault >= threshold,
		Threshold:        threshold,
	}
}

// ProbabilityToScore 还款概率的线性映射：0→300，1→900，四舍五入后夹紧。
func ProbabilityToScore(pRepay float64) int {
	score := 300.0 + pRepay*600.0
	rounded := int(math.Round(score))
	if rounded < ScoreMin {
		return ScoreMin
	}
	if rounded > ScoreMax {
		return ScoreMax
	}
	return rounded
}

// BandFromScore 由分数划定三档风险分级。
func BandFromScore(score int) types.RiskBand {
	switch {
	case score >= bandLowMin:
		return types.BandLow
	case score >= bandMediumMin:
		return types.BandMedium
	default:
		return types.BandHigh
	}
}
