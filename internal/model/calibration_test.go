package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testCurve() Curve {
	return Curve{Knots: []Knot{
		{Raw: 0.0, Cal: 0.05},
		{Raw: 0.5, Cal: 0.40},
		{Raw: 1.0, Cal: 0.90},
	}}
}

func TestCurve_Validate(t *testing.T) {
	t.Run("合法曲线", func(t *testing.T) {
		assert.NoError(t, testCurve().validate())
	})

	t.Run("节点不足", func(t *testing.T) {
		c := Curve{Knots: []Knot{{Raw: 0, Cal: 0.1}}}
		err := c.validate()
		assert.Error(t, err)
		assert.IsType(t, &ConfigError{}, err)
	})

	t.Run("raw 未严格递增", func(t *testing.T) {
		c := Curve{Knots: []Knot{{Raw: 0.5, Cal: 0.1}, {Raw: 0.5, Cal: 0.2}}}
		assert.Error(t, c.validate())
	})

	t.Run("cal 回落破坏单调", func(t *testing.T) {
		c := Curve{Knots: []Knot{{Raw: 0, Cal: 0.5}, {Raw: 0.5, Cal: 0.4}, {Raw: 1, Cal: 0.6}}}
		assert.Error(t, c.validate())
	})
}

func TestCurve_Apply(t *testing.T) {
	c := testCurve()

	t.Run("节点处取节点值", func(t *testing.T) {
		assert.InDelta(t, 0.05, c.Apply(0.0), 1e-12)
		assert.InDelta(t, 0.40, c.Apply(0.5), 1e-12)
		assert.InDelta(t, 0.90, c.Apply(1.0), 1e-12)
	})

	t.Run("节点间线性插值", func(t *testing.T) {
		assert.InDelta(t, 0.225, c.Apply(0.25), 1e-12)
		assert.InDelta(t, 0.65, c.Apply(0.75), 1e-12)
	})

	t.Run("两端夹紧", func(t *testing.T) {
		assert.InDelta(t, 0.05, c.Apply(-1.0), 1e-12)
		assert.InDelta(t, 0.90, c.Apply(2.0), 1e-12)
	})

	t.Run("输出保持单调", func(t *testing.T) {
		prev := c.Apply(0.0)
		for raw := 0.01; raw <= 1.0; raw += 0.01 {
			cur := c.Apply(raw)
			assert.GreaterOrEqual(t, cur, prev)
			prev = cur
		}
	})
}
