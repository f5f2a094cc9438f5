package logger

// LoggingConfig defines the process logger configuration. This logger carries
// the tool's own diagnostics and the appender's error reports.
// LoggingConfig 定义进程日志配置。该日志记录工具自身诊断信息和 appender 的错误报告。
type LoggingConfig struct {
	Enabled bool `yaml:"enabled"`
	// Enabled: 是否启用文件日志
	Level string `yaml:"level"`
	// Level: 日志级别（debug, info, warn, error）
	Path string `yaml:"path"`
	// Path: 日志文件路径
	MaxSize int `yaml:"max_size"`
	// MaxSize: 轮转前的最大大小（MB）
	MaxBackups int `yaml:"max_backups"`
	// MaxBackups: 保留的旧文件最大数量
	MaxAge int `yaml:"max_age"`
	// MaxAge: 保留旧文件的最大天数
	Compress bool `yaml:"compress"`
	// Compress: 是否压缩旧文件
}
