package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/livp123/mongolog/internal/runtime"
	"github.com/livp123/mongolog/internal/utils/fileutil"
	"github.com/livp123/mongolog/internal/utils/logger"
	"github.com/livp123/mongolog/pkg/appender"
	apperrors "github.com/livp123/mongolog/pkg/errors"
	"github.com/livp123/mongolog/pkg/storage"
)

// Config is the full mongolog configuration file.
// Config 是完整的 mongolog 配置文件。
type Config struct {
	Mongo    storage.Options      `yaml:"mongo"`
	Appender AppenderConfig       `yaml:"appender"`
	Logging  logger.LoggingConfig `yaml:"logging"`
	Metrics  MetricsConfig        `yaml:"metrics"`
	Ship     ShipConfig           `yaml:"ship"`
}

// AppenderConfig holds the delivery policy settings.
// AppenderConfig 保存投递策略设置。
type AppenderConfig struct {
	ErrorDelaySeconds float64 `yaml:"error_delay_seconds"` // Cool-down window after a failed insert / 插入失败后的冷却窗口
	MachineName       string  `yaml:"machine_name"`        // Empty means hostname / 为空表示主机名
	Threshold         string  `yaml:"threshold"`           // Minimum level appended / 追加的最低级别
	Filter            string  `yaml:"filter"`              // expr-lang boolean expression / expr-lang 布尔表达式
}

// MetricsConfig controls the Prometheus endpoint.
// MetricsConfig 控制 Prometheus 端点。
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// ShipConfig lists log files forwarded by `mongolog ship`.
// ShipConfig 列出由 `mongolog ship` 转发的日志文件。
type ShipConfig struct {
	Files []ShipFile `yaml:"files"`
}

// ShipFile describes one tailed file.
// ShipFile 描述一个被跟踪的文件。
type ShipFile struct {
	Path      string `yaml:"path"`
	Logger    string `yaml:"logger"`     // Defaults to the file base name / 默认为文件名
	Level     string `yaml:"level"`      // Level assigned to every line / 分配给每行的级别
	FromStart bool   `yaml:"from_start"` // Read existing content first / 先读取已有内容
}

// Default returns the configuration used when no file is present.
// Default 返回没有配置文件时使用的配置。
func Default() *Config {
	return &Config{
		Mongo: storage.DefaultOptions(),
		Appender: AppenderConfig{
			ErrorDelaySeconds: appender.DefaultErrorDelay.Seconds(),
			Threshold:         "debug",
		},
		Logging: logger.LoggingConfig{
			Enabled:    false,
			Level:      "info",
			Path:       "/var/log/mongolog/mongolog.log",
			MaxSize:    10, // 10MB
			MaxBackups: 3,
			MaxAge:     30, // 30 days
			Compress:   true,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    DefaultMetricsAddr,
		},
	}
}

// GetConfigPath returns the configuration file path.
// If runtime.ConfigPath is set (e.g., via CLI flag or test), it takes precedence.
// GetConfigPath 返回配置文件路径。
// 如果 runtime.ConfigPath 已设置（例如通过 CLI 标志或测试），则优先使用它。
func GetConfigPath() string {
	if runtime.ConfigPath != "" {
		return runtime.ConfigPath
	}
	return DefaultConfigPath
}

// Load reads path over the defaults, applies environment overrides and validates.
// Load 在默认值之上读取 path，应用环境变量覆盖并进行验证。
func Load(path string) (*Config, error) {
	safePath := filepath.Clean(path)   // Sanitize path to prevent directory traversal
	data, err := os.ReadFile(safePath) // #nosec G304 // path is sanitized with filepath.Clean
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrConfigNotFound, safePath)
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrConfigInvalid, safePath, err)
	}
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads path, falling back to defaults (plus environment
// overrides) only when the file does not exist.
// LoadOrDefault 加载 path，仅在文件不存在时回退到默认值（加环境变量覆盖）。
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, apperrors.ErrConfigNotFound) {
		cfg = Default()
		cfg.ApplyEnv()
		return cfg, nil
	}
	return cfg, err
}

// Save writes cfg as YAML. The file may hold a password, so it is created 0600.
// Save 将 cfg 写为 YAML。文件可能包含密码，因此以 0600 权限创建。
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, data, 0600)
}

// ApplyEnv applies environment overrides.
// ApplyEnv 应用环境变量覆盖。
func (c *Config) ApplyEnv() {
	if v := os.Getenv(PasswordEnv); v != "" {
		c.Mongo.Password = v
	}
}

// Validate checks every section and returns all problems joined.
// Validate 检查每个部分并返回所有问题。
func (c *Config) Validate() error {
	var errs []error

	if c.Mongo.Host == "" {
		errs = append(errs, apperrors.NewConfigError("mongo.host", c.Mongo.Host))
	}
	if c.Mongo.Port < 1 || c.Mongo.Port > 65535 {
		errs = append(errs, apperrors.NewConfigError("mongo.port", c.Mongo.Port))
	}
	if c.Mongo.Database == "" {
		errs = append(errs, apperrors.NewConfigError("mongo.database", c.Mongo.Database))
	}
	if c.Mongo.Collection == "" {
		errs = append(errs, apperrors.NewConfigError("mongo.collection", c.Mongo.Collection))
	}
	if c.Mongo.Timeout < 0 {
		errs = append(errs, apperrors.NewConfigError("mongo.timeout", c.Mongo.Timeout))
	}

	delay := c.Appender.ErrorDelaySeconds
	if delay < 0 || math.IsNaN(delay) || math.IsInf(delay, 0) {
		errs = append(errs, apperrors.NewConfigError("appender.error_delay_seconds", delay))
	}
	if _, err := zapcore.ParseLevel(c.Appender.Threshold); err != nil {
		errs = append(errs, apperrors.NewConfigError("appender.threshold", c.Appender.Threshold))
	}
	if c.Appender.Filter != "" {
		if _, err := appender.NewFilter(zapcore.DebugLevel, c.Appender.Filter); err != nil {
			errs = append(errs, err)
		}
	}

	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		errs = append(errs, apperrors.NewConfigError("metrics.addr", c.Metrics.Addr))
	}

	for i, f := range c.Ship.Files {
		if f.Path == "" {
			errs = append(errs, apperrors.NewConfigError(fmt.Sprintf("ship.files[%d].path", i), f.Path))
		}
		if _, err := zapcore.ParseLevel(f.Level); err != nil {
			errs = append(errs, apperrors.NewConfigError(fmt.Sprintf("ship.files[%d].level", i), f.Level))
		}
	}

	return errors.Join(errs...)
}

// ErrorDelay returns the cool-down window as a duration.
// ErrorDelay 以时长形式返回冷却窗口。
func (c *Config) ErrorDelay() time.Duration {
	return time.Duration(c.Appender.ErrorDelaySeconds * float64(time.Second))
}

// ToAppender converts the file settings into an appender.Config.
// ToAppender 将文件设置转换为 appender.Config。
func (c *Config) ToAppender() appender.Config {
	return appender.Config{
		Storage:     c.Mongo,
		ErrorDelay:  c.ErrorDelay(),
		MachineName: c.Appender.MachineName,
		Threshold:   logger.ParseLevel(c.Appender.Threshold),
		Filter:      c.Appender.Filter,
	}
}
