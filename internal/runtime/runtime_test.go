package runtime

import (
	"testing"
)

// TestConfigPath tests the ConfigPath variable
// TestConfigPath 测试 ConfigPath 变量
func TestConfigPath(t *testing.T) {
	originalPath := ConfigPath
	defer func() {
		ConfigPath = originalPath
	}()

	testPath := "/tmp/test_config.yaml"
	ConfigPath = testPath
	if ConfigPath != testPath {
		t.Errorf("ConfigPath should be %s, got %s", testPath, ConfigPath)
	}
}

// TestFileTarget tests the FileTarget variable defaults to empty
// TestFileTarget 测试 FileTarget 变量默认为空
func TestFileTarget(t *testing.T) {
	if FileTarget != "" {
		t.Errorf("FileTarget should default to empty, got %s", FileTarget)
	}
}
