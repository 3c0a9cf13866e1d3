package model

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"altscore/internal/feature"
	"altscore/internal/logger"
	"altscore/internal/types"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"
)

//go:embed schema.json
var artifactSchema string

var compiledSchema = jsonschema.MustCompileString("model/schema.json", artifactSchema)

// artifactFile 磁盘制品的 JSON 映射。
type artifactFile struct {
	SchemaVersion int                `json:"schema_version"`
	ModelID       string             `json:"model_id"`
	TrainedAt     string             `json:"trained_at"`
	FeatureNames  []string           `json:"feature_names"`
	Means         []float64          `json:"means"`
	Scales        []float64          `json:"scales"`
	Coefficients  []float64          `json:"coefficients"`
	Intercept     float64            `json:"intercept"`
	Calibration   artifactCurve      `json:"calibration"`
	Thresholds    map[string]float64 `json:"thresholds"`
}

type artifactCurve struct {
	Method string       `json:"method"`
	Knots  [][2]float64 `json:"knots"`
}

// LoadArtifact 从磁盘载入拟合好的模型制品。进程启动时调用一次，
// 之后参数只读共享；任何失败都是 ConfigError。
func LoadArtifact(path string) (*Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Reason: fmt.Sprintf("reading artifact %s", path), Err: err}
	}
	return ParseArtifact(data)
}

// ParseArtifact 解析并校验制品字节流。先用 gjson 做轻量探测
// （合法性 + schema_version），再整体过 JSON Schema，最后解码并
// 与特征表做兼容性校验。
func ParseArtifact(data []byte) (*Parameters, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ConfigError{Reason: "artifact is not valid JSON"}
	}
	if v := gjson.GetBytes(data, "schema_version"); !v.Exists() || v.Int() != 1 {
		return nil, &ConfigError{Reason: fmt.Sprintf("unsupported artifact schema_version %q", v.Raw)}
	}

	var raw interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, &ConfigError{Reason: "decoding artifact", Err: err}
	}
	if err := compiledSchema.Validate(raw); err != nil {
		return nil, &ConfigError{Reason: "artifact failed schema validation", Err: err}
	}

	var af artifactFile
	if err := json.Unmarshal(data, &af); err != nil {
		return nil, &ConfigError{Reason: "decoding artifact", Err: err}
	}

	// 制品自带列名回显，用来对齐特征表：名字或顺序对不上就拒载。
	if len(af.FeatureNames) != feature.Count {
		return nil, &ConfigError{Reason: fmt.Sprintf("artifact carries %d feature names, schema expects %d",
			len(af.FeatureNames), feature.Count)}
	}
	for i, name := range af.FeatureNames {
		if name != feature.Order[i] {
			return nil, &ConfigError{Reason: fmt.Sprintf("feature order mismatch at %d: artifact %q, schema %q",
				i, name, feature.Order[i])}
		}
	}

	knots := make([]Knot, len(af.Calibration.Knots))
	for i, kv := range af.Calibration.Knots {
		knots[i] = Knot{Raw: kv[0], Cal: kv[1]}
	}
	thresholds := make(map[types.Profile]float64, len(af.Thresholds))
	for k, v := range af.Thresholds {
		prof, err := types.ParseProfile(k)
		if err != nil {
			return nil, &ConfigError{Reason: fmt.Sprintf("thresholds contain unknown profile %q", k)}
		}
		thresholds[prof] = v
	}

	params := &Parameters{
		ModelID:      af.ModelID,
		TrainedAt:    af.TrainedAt,
		Means:        af.Means,
		Scales:       af.Scales,
		Coefficients: af.Coefficients,
		Intercept:    af.Intercept,
		Calibration:  Curve{Knots: knots},
		Thresholds:   thresholds,
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	logger.Infof("model artifact loaded: id=%s trained_at=%s features=%d knots=%d",
		params.ModelID, params.TrainedAt, len(params.Coefficients), len(knots))
	return params, nil
}
