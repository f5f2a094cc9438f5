package runtime

// ConfigPath stores the path to the configuration file provided via CLI flags.
// ConfigPath 存储通过 CLI 标志提供的配置文件路径。
var ConfigPath string

// FileTarget, when set, redirects delivery to JSON-lines files in this
// directory instead of MongoDB.
// FileTarget 设置后，投递目标改为该目录下的 JSON 行文件，而不是 MongoDB。
var FileTarget string
