package config

import (
	"sync"
)

// ConfigManager handles loading, caching and saving the configuration
// ConfigManager 负责加载、缓存和保存配置
type ConfigManager struct {
	configPath string
	mutex      sync.RWMutex
	config     *Config
}

// NewConfigManager creates a new configuration manager instance
// NewConfigManager 创建新的配置管理器实例
func NewConfigManager(configPath string) *ConfigManager {
	return &ConfigManager{
		configPath: configPath,
	}
}

// LoadConfig loads the configuration from the specified path, falling back
// to defaults when the file does not exist
// LoadConfig 从指定路径加载配置，文件不存在时回退到默认值
func (cm *ConfigManager) LoadConfig() error {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	cfg, err := LoadOrDefault(cm.configPath)
	if err != nil {
		return err
	}

	cm.config = cfg
	return nil
}

// SaveConfig saves the current configuration to the specified path
// SaveConfig 将当前配置保存到指定路径
func (cm *ConfigManager) SaveConfig() error {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	if cm.config == nil {
		return nil
	}

	return Save(cm.configPath, cm.config)
}

// GetConfig returns a copy of the current configuration
// GetConfig 返回当前配置的副本
func (cm *ConfigManager) GetConfig() *Config {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	if cm.config == nil {
		return nil
	}

	// Return a copy to prevent external modifications
	cfgCopy := *cm.config
	cfgCopy.Ship.Files = append([]ShipFile(nil), cm.config.Ship.Files...)
	return &cfgCopy
}

// UpdateConfig updates the current configuration
// UpdateConfig 更新当前配置
func (cm *ConfigManager) UpdateConfig(newConfig *Config) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	cm.config = newConfig
}

// GetConfigPath returns the path this manager reads and writes
// GetConfigPath 返回此管理器读写的路径
func (cm *ConfigManager) GetConfigPath() string {
	return cm.configPath
}
