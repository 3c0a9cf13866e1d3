package decision

import (
	"testing"

	"altscore/internal/feature"
	"altscore/internal/model"
	"altscore/internal/types"

	"github.com/stretchr/testify/assert"
)

func testParams() *model.Parameters {
	n := feature.Count
	p := &model.Parameters{
		Means:        make([]float64, n),
		Scales:       make([]float64, n),
		Coefficients: make([]float64, n),
		Calibration: model.Curve{Knots: []model.Knot{
			{Raw: 0, Cal: 0.05}, {Raw: 1, Cal: 0.90},
		}},
		Thresholds: map[types.Profile]float64{
			types.ProfileSalaried:   0.40,
			types.ProfileStudent:    0.35,
			types.ProfileGig:        0.40,
			types.ProfileShopkeeper: 0.40,
			types.ProfileRural:      0.35,
		},
	}
	for i := range p.Scales {
		p.Scales[i] = 1
	}
	return p
}

func TestProbabilityToScore(t *testing.T) {
	t.Run("线性映射端点", func(t *testing.T) {
		assert.Equal(t, 300, ProbabilityToScore(0))
		assert.Equal(t, 900, ProbabilityToScore(1))
		assert.Equal(t, 600, ProbabilityToScore(0.5))
	})

	t.Run("四舍五入", func(t *testing.T) {
		// 300 + 0.3333*600 = 499.98 → 500
		assert.Equal(t, 500, ProbabilityToScore(0.3333))
	})

	t.Run("越界输入夹紧", func(t *testing.T) {
		assert.Equal(t, 300, ProbabilityToScore(-0.5))
		assert.Equal(t, 900, ProbabilityToScore(1.5))
	})

	t.Run("概率越高分数越高", func(t *testing.T) {
		prev := ProbabilityToScore(0)
		for p := 0.05; p <= 1.0; p += 0.05 {
			cur := ProbabilityToScore(p)
			assert.GreaterOrEqual(t, cur, prev)
			prev = cur
		}
	})
}

func TestBandFromScore(t *testing.T) {
	cases := []struct {
		score int
		band  types.RiskBand
	}{
		{900, types.BandLow},
		{720, types.BandLow},
		{719, types.BandMedium},
		{540, types.BandMedium},
		{539, types.BandHigh},
		{300, types.BandHigh},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.band, BandFromScore(tc.score), "score=%d", tc.score)
	}
}

func TestMap(t *testing.T) {
	params := testParams()

	t.Run("阈值按画像选取", func(t *testing.T) {
		// p=0.37 跨在 student(0.35) 与 salaried(0.40) 之间
		student := Map(params, types.ProfileStudent, 0.37)
		salaried := Map(params, types.ProfileSalaried, 0.37)
		assert.True(t, student.PredictedDefault)
		assert.False(t, salaried.PredictedDefault)
		assert.Equal(t, 0.35, student.Threshold)
		assert.Equal(t, 0.40, salaried.Threshold)
	})

	t.Run("恰好等于阈值判违约", func(t *testing.T) {
		d := Map(params, types.ProfileGig, 0.40)
		assert.True(t, d.PredictedDefault)
	})

	t.Run("分级由分数而非概率推导", func(t *testing.T) {
		d := Map(params, types.ProfileSalaried, 0.30)
		// p_repay=0.70 → score=720 → Low，哪怕 p_default 已超 student 阈值
		assert.Equal(t, 720, d.Score)
		assert.Equal(t, types.BandLow, d.Band)
		assert.Equal(t, BandFromScore(d.Score), d.Band)
	})
}
