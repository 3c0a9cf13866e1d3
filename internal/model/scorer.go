package model

import (
	"fmt"
	"math"

	"altscore/internal/feature"
)

// PredictDefault 计算校准后的违约概率：
// 逐特征标准化 z=(x-mean)/scale → 线性 logit → sigmoid → 校准插值。
// 纯函数；向量长度与系数不符是配置错误而非请求错误。
func PredictDefault(params *Parameters, vec feature.Vector) (float64, error) {
	if params == nil {
		return 0, &ConfigError{Reason: "parameters not loaded"}
	}
	if len(vec) != len(params.Coefficients) {
		return 0, &ConfigError{
			Reason: fmt.Sprintf("feature vector length %d does not match coefficients length %d",
				len(vec), len(params.Coefficients)),
		}
	}
	raw := RawProbability(params, vec)
	return params.Calibration.Apply(raw), nil
}

// RawProbability 返回未校准的 sigmoid 输出。解释引擎与校准报告会用到。
func RawProbability(params *Parameters, vec feature.Vector) float64 {
	z := params.Intercept
	for i, x := range vec {
		z += params.Coefficients[i] * (x - params.Means[i]) / params.Scales[i]
	}
	return sigmoid(z)
}

// Standardize 返回单个特征的标准化值。
func Standardize(params *Parameters, i int, x float64) float64 {
	return (x - params.Means[i]) / params.Scales[i]
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
