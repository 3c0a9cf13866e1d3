package model

import (
	"testing"

	"altscore/internal/feature"
	"altscore/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatParams(t *testing.T) *Parameters {
	t.Helper()
	n := feature.Count
	p := &Parameters{
		ModelID:      "test",
		Means:        make([]float64, n),
		Scales:       make([]float64, n),
		Coefficients: make([]float64, n),
		Calibration:  testCurve(),
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
	require.NoError(t, p.Validate())
	return p
}

func TestPredictDefault(t *testing.T) {
	t.Run("零系数时输出为校准后的 sigmoid(截距)", func(t *testing.T) {
		p := flatParams(t)
		vec := make(feature.Vector, feature.Count)
		got, err := PredictDefault(p, vec)
		require.NoError(t, err)
		// intercept=0 → sigmoid=0.5 → 曲线上 0.5 点的校准值
		assert.InDelta(t, p.Calibration.Apply(0.5), got, 1e-12)
	})

	t.Run("参数未载入", func(t *testing.T) {
		_, err := PredictDefault(nil, make(feature.Vector, feature.Count))
		assert.IsType(t, &ConfigError{}, err)
	})

	t.Run("向量长度与系数不符", func(t *testing.T) {
		p := flatParams(t)
		_, err := PredictDefault(p, make(feature.Vector, feature.Count-1))
		require.Error(t, err)
		assert.IsType(t, &ConfigError{}, err)
	})

	t.Run("系数越大违约概率单调上升", func(t *testing.T) {
		p := flatParams(t)
		p.Coefficients[0] = 1.0
		vec := make(feature.Vector, feature.Count)

		vec[0] = -2
		lo, err := PredictDefault(p, vec)
		require.NoError(t, err)
		vec[0] = 2
		hi, err := PredictDefault(p, vec)
		require.NoError(t, err)
		assert.Greater(t, hi, lo)
	})
}

func TestStandardize(t *testing.T) {
	p := flatParams(t)
	p.Means[2] = 10
	p.Scales[2] = 4
	assert.InDelta(t, 2.5, Standardize(p, 2, 20), 1e-12)
	assert.InDelta(t, -2.5, Standardize(p, 2, 0), 1e-12)
}

func TestParameters_Threshold(t *testing.T) {
	p := flatParams(t)
	assert.Equal(t, 0.35, p.Threshold(types.ProfileStudent))
	assert.Equal(t, 0.40, p.Threshold(types.Profile("unknown")))
}
