package model

import (
	"fmt"

	"altscore/internal/feature"
	"altscore/internal/types"
)

// ConfigError 表示模型制品缺失或与特征表不兼容。
// 属于启动期致命错误：在纠正之前所有打分请求都应硬失败，
// 不允许降级出分。
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model configuration: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("model configuration: %s", e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Parameters 为一次性载入、进程级共享的不可变模型制品：
// 标准化统计量、线性系数与截距、校准曲线、画像阈值。
// 载入完成后只读，可被任意数量的并发打分操作共享。
type Parameters struct {
	ModelID   string
	TrainedAt string

	Means        []float64
	Scales       []float64
	Coefficients []float64
	Intercept    float64

	Calibration Curve
	Thresholds  map[types.Profile]float64
}

// Validate 校验制品与特征表的兼容性。长度不匹配意味着制品是用
// 另一套特征列拟合的，视为配置错误而非请求级错误。
func (p *Parameters) Validate() error {
	if p == nil {
		return &ConfigError{Reason: "parameters not loaded"}
	}
	n := feature.Count
	if len(p.Means) != n {
		return &ConfigError{Reason: fmt.Sprintf("means length %d, feature schema expects %d", len(p.Means), n)}
	}
	if len(p.Scales) != n {
		return &ConfigError{Reason: fmt.Sprintf("scales length %d, feature schema expects %d", len(p.Scales), n)}
	}
	if len(p.Coefficients) != n {
		return &ConfigError{Reason: fmt.Sprintf("coefficients length %d, feature schema expects %d", len(p.Coefficients), n)}
	}
	for i, s := range p.Scales {
		if s == 0 {
			return &ConfigError{Reason: fmt.Sprintf("scale for %s is zero", feature.Order[i])}
		}
	}
	if err := p.Calibration.validate(); err != nil {
		return err
	}
	if len(p.Thresholds) == 0 {
		return &ConfigError{Reason: "per-profile thresholds missing"}
	}
	for _, prof := range types.Profiles {
		t, ok := p.Thresholds[prof]
		if !ok {
			return &ConfigError{Reason: fmt.Sprintf("threshold for profile %s missing", prof)}
		}
		if t <= 0 || t >= 1 {
			return &ConfigError{Reason: fmt.Sprintf("threshold for profile %s out of (0,1): %v", prof, t)}
		}
	}
	return nil
}

// Threshold 返回画像对应的违约判定阈值。
func (p *Parameters) Threshold(prof types.Profile) float64 {
	if t, ok := p.Thresholds[prof]; ok {
		return t
	}
	// 未配置画像回落到通用阈值（正常情况下 Validate 已保证全覆盖）。
	return 0.40
}
