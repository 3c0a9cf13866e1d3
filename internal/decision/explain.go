package decision

import (
	"math"
	"sort"

	"altscore/internal/feature"
	"altscore/internal/model"
	"altscore/internal/types"
)

// TopFactorCount 解释输出的因子数上限。
const TopFactorCount = 5

// Explain 计算驱动本次决策的 top-K 因子。
// 每个特征的带符号贡献为 标准化值 × 系数（logit 空间），按绝对值
// 降序取前 K；幅度报告归一化后的绝对贡献，保证不同量纲的特征可比。
// 同幅并列按原始特征顺序稳定排序，结果可复现。
func Explain(params *model.Parameters, vec feature.Vector) []types.TopFactor {
	contribs := make([]float64, len(vec))
	for i, x := range vec {
		contribs[i] = params.Coefficients[i] * model.Standardize(params, i, x)
	}

	idx := make([]int, len(contribs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return math.Abs(contribs[idx[a]]) > math.Abs(contribs[idx[b]])
	})

	factors := make([]types.TopFactor, 0, TopFactorCount)
	for _, i := range idx {
		if len(factors) == TopFactorCount {
			break
		}
		c := contribs[i]
		if c == 0 {
			// 零贡献特征不解释任何东西；不足 5 个时允许少于 5 个因子。
			break
		}
		direction := "positive"
		if c > 0 {
			// 正贡献推高违约 logit，对借款人不利。
			direction = "negative"
		}
		factors = append(factors, types.TopFactor{
			Label:     Label(feature.Order[i]),
			Direction: direction,
			Impact:    math.Abs(c),
		})
	}
	return factors
}
