package config

import "strings"

// Config 是 altscore 的主配置载体。
type Config struct {
	App    AppConfig    `toml:"app"`
	Model  ModelConfig  `toml:"model"`
	Store  StoreConfig  `toml:"store"`
	Report ReportConfig `toml:"report"`
}

type AppConfig struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`
	HTTPAddr string `toml:"http_addr"`
	LogPath  string `toml:"log_path"`
}

// ModelConfig 指向拟合好的模型制品。制品在启动时载入一次，
// 进程生命周期内不可变。
type ModelConfig struct {
	ArtifactPath string `toml:"artifact_path"`
	WatchChanges bool   `toml:"watch_changes"` // 仅告警，不热替换
}

// StoreConfig 打分历史持久化。
type StoreConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// ReportConfig 校准报告输出。
type ReportConfig struct {
	OutputDir string `toml:"output_dir"`
}

// keySet 用于追踪配置文件中显式设置的字段路径。
type keySet map[string]struct{}

func (k keySet) mark(path string) {
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		return
	}
	k[path] = struct{}{}
}

func (k keySet) isSet(path string) bool {
	if len(k) == 0 {
		return false
	}
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		return false
	}
	_, ok := k[path]
	return ok
}

// fieldDefault 描述单个字段的默认值设置规则。
type fieldDefault struct {
	key   string
	need  func() bool
	apply func()
}
