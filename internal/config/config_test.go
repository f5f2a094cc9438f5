package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/livp123/mongolog/internal/runtime"
	apperrors "github.com/livp123/mongolog/pkg/errors"
)

// TestDefault tests the stock settings
// TestDefault 测试默认设置
func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "localhost", cfg.Mongo.Host)
	assert.Equal(t, 27017, cfg.Mongo.Port)
	assert.Equal(t, "log4net_mongodb", cfg.Mongo.Database)
	assert.Equal(t, "logs", cfg.Mongo.Collection)
	assert.Equal(t, 30.0, cfg.Appender.ErrorDelaySeconds)
	assert.Equal(t, 30*time.Second, cfg.ErrorDelay())
	assert.NoError(t, cfg.Validate())
}

// TestLoad_NonExistent tests loading from a non-existent file
// TestLoad_NonExistent 测试从不存在的文件加载
func TestLoad_NonExistent(t *testing.T) {
	_, err := Load("/non/existent/path/config.yaml")
	assert.ErrorIs(t, err, apperrors.ErrConfigNotFound)
}

// TestLoad_Valid tests loading a valid config file over defaults
// TestLoad_Valid 测试在默认值之上加载有效配置文件
func TestLoad_Valid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	configContent := `
mongo:
  host: mongo.internal
  port: 27018
  username: app
  password: secret
  timeout: 2s
appender:
  error_delay_seconds: 2.5
  threshold: warn
  filter: 'Logger != "noisy"'
ship:
  files:
    - path: /var/log/app.log
      level: error
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "mongo.internal", cfg.Mongo.Host)
	assert.Equal(t, 27018, cfg.Mongo.Port)
	assert.Equal(t, "log4net_mongodb", cfg.Mongo.Database)
	assert.Equal(t, 2*time.Second, cfg.Mongo.Timeout)
	assert.Equal(t, 2500*time.Millisecond, cfg.ErrorDelay())
	require.Len(t, cfg.Ship.Files, 1)
	assert.Equal(t, "error", cfg.Ship.Files[0].Level)

	ac := cfg.ToAppender()
	assert.Equal(t, zapcore.WarnLevel, ac.Threshold)
	assert.Equal(t, `Logger != "noisy"`, ac.Filter)
	assert.Equal(t, "secret", ac.Storage.Password)
	assert.Equal(t, 2500*time.Millisecond, ac.ErrorDelay)
}

// TestLoad_Empty tests an empty file yields defaults
// TestLoad_Empty 测试空文件产生默认值
func TestLoad_Empty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(""), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, Default().Mongo, cfg.Mongo)
}

// TestLoad_Malformed tests YAML syntax errors
// TestLoad_Malformed 测试 YAML 语法错误
func TestLoad_Malformed(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("mongo: [unclosed"), 0644))

	_, err := Load(configPath)
	assert.ErrorIs(t, err, apperrors.ErrConfigInvalid)
}

// TestLoad_PasswordEnv tests the environment overrides the file password
// TestLoad_PasswordEnv 测试环境变量覆盖文件中的密码
func TestLoad_PasswordEnv(t *testing.T) {
	t.Setenv(PasswordEnv, "from-env")

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("mongo:\n  password: from-file\n"), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Mongo.Password)

	cfg, err = LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Mongo.Password)
}

// TestValidate tests invalid values are all reported
// TestValidate 测试所有无效值都会被报告
func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty host", func(c *Config) { c.Mongo.Host = "" }, "mongo.host"},
		{"port zero", func(c *Config) { c.Mongo.Port = 0 }, "mongo.port"},
		{"port too large", func(c *Config) { c.Mongo.Port = 70000 }, "mongo.port"},
		{"empty database", func(c *Config) { c.Mongo.Database = "" }, "mongo.database"},
		{"empty collection", func(c *Config) { c.Mongo.Collection = "" }, "mongo.collection"},
		{"negative timeout", func(c *Config) { c.Mongo.Timeout = -time.Second }, "mongo.timeout"},
		{"negative delay", func(c *Config) { c.Appender.ErrorDelaySeconds = -1 }, "appender.error_delay_seconds"},
		{"bad threshold", func(c *Config) { c.Appender.Threshold = "loud" }, "appender.threshold"},
		{"bad filter", func(c *Config) { c.Appender.Filter = "Level ==" }, "invalid filter expression"},
		{"metrics without addr", func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Addr = "" }, "metrics.addr"},
		{"ship without path", func(c *Config) { c.Ship.Files = []ShipFile{{Level: "info"}} }, "ship.files[0].path"},
		{"ship bad level", func(c *Config) { c.Ship.Files = []ShipFile{{Path: "/x", Level: "nope"}} }, "ship.files[0].level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

// TestSave tests saving and reloading
// TestSave 测试保存与重新加载
func TestSave(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Mongo.Collection = "audit"
	cfg.Ship.Files = []ShipFile{{Path: "/var/log/app.log", Level: "info"}}
	require.NoError(t, Save(configPath, cfg))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "audit", loaded.Mongo.Collection)
	assert.Equal(t, cfg.Mongo.Timeout, loaded.Mongo.Timeout)
	assert.Equal(t, cfg.Ship.Files, loaded.Ship.Files)
}

// TestGetConfigPath tests the CLI flag takes precedence
// TestGetConfigPath 测试 CLI 标志优先
func TestGetConfigPath(t *testing.T) {
	original := runtime.ConfigPath
	defer func() { runtime.ConfigPath = original }()

	runtime.ConfigPath = ""
	assert.Equal(t, DefaultConfigPath, GetConfigPath())

	runtime.ConfigPath = "/tmp/custom.yaml"
	assert.Equal(t, "/tmp/custom.yaml", GetConfigPath())
}
