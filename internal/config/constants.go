package config

const (
	// DefaultConfigPath is the standard location for the mongolog configuration file.
	// DefaultConfigPath 是 mongolog 配置文件的标准位置。
	DefaultConfigPath = "/etc/mongolog/config.yaml"

	// PasswordEnv overrides mongo.password so the secret can stay out of the file.
	// PasswordEnv 覆盖 mongo.password，使密码不必写入配置文件。
	PasswordEnv = "MONGOLOG_PASSWORD"

	// DefaultMetricsAddr is where `mongolog ship` serves /metrics.
	// DefaultMetricsAddr 是 `mongolog ship` 提供 /metrics 的地址。
	DefaultMetricsAddr = ":9100"
)
