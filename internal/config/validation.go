package config

import (
	"fmt"
	"strings"
)

// validate 对配置进行基础校验。
func validate(c *Config) error {
	if err := c.App.validate(); err != nil {
		return err
	}
	if err := c.Model.validate(); err != nil {
		return err
	}
	if err := c.Store.validate(); err != nil {
		return err
	}
	return nil
}

func (a *AppConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(a.LogLevel)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("app.log_level must be one of debug/info/warn/error, got %q", a.LogLevel)
	}
	if strings.TrimSpace(a.HTTPAddr) == "" {
		return fmt.Errorf("app.http_addr cannot be empty")
	}
	return nil
}

func (m *ModelConfig) validate() error {
	if strings.TrimSpace(m.ArtifactPath) == "" {
		return fmt.Errorf("model.artifact_path cannot be empty")
	}
	return nil
}

func (s *StoreConfig) validate() error {
	if s.Enabled && strings.TrimSpace(s.Path) == "" {
		return fmt.Errorf("store.path cannot be empty when store.enabled is true")
	}
	return nil
}
