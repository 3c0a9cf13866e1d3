package model

// Knot 校准曲线上的一个节点：raw 为 sigmoid 原始输出，Cal 为校准后概率。
type Knot struct {
	Raw float64
	Cal float64
}

// Curve 单调分段线性校准映射。节点由训练侧 5 折 Platt 校准拟合后
// 在网格上采样得到；推理侧只做插值，不做任何拟合。
// 校准的意义：类不均衡数据上原始 sigmoid 输出系统性偏置，
// 校准修正概率而不改变判别排序。
type Curve struct {
	Knots []Knot
}

func (c Curve) validate() error {
	if len(c.Knots) < 2 {
		return &ConfigError{Reason: "calibration curve needs at least 2 knots"}
	}
	prev := c.Knots[0]
	for _, k := range c.Knots[1:] {
		if k.Raw <= prev.Raw {
			return &ConfigError{Reason: "calibration knots not strictly increasing in raw probability"}
		}
		if k.Cal < prev.Cal {
			return &ConfigError{Reason: "calibration curve not monotonic"}
		}
		prev = k
	}
	return nil
}

// Apply 对原始概率做分段线性插值，两端夹紧到首尾节点。
func (c Curve) Apply(raw float64) float64 {
	knots := c.Knots
	if raw <= knots[0].Raw {
		return knots[0].Cal
	}
	last := knots[len(knots)-1]
	if raw >= last.Raw {
		return last.Cal
	}
	for i := 1; i < len(knots); i++ {
		k0, k1 := knots[i-1], knots[i]
		if raw <= k1.Raw {
			return k0.Cal + (k1.Cal-k0.Cal)*(raw-k0.Raw)/(k1.Raw-k0.Raw)
		}
	}
	return last.Cal
}
