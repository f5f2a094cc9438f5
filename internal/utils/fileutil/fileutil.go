package fileutil

import (
	"os"
	"path/filepath"
)

// WriteFileAtomic creates the parent directory, writes data to a temporary
// file beside path and renames it over path, so readers never see a partial file.
// WriteFileAtomic 创建父目录，将数据写入 path 旁的临时文件并重命名覆盖 path，
// 读取方不会看到写了一半的文件。
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	safePath := filepath.Clean(path)
	dir := filepath.Dir(safePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, ".mongolog-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmpFile.Name()) // No-op after a successful rename

	if err := tmpFile.Chmod(perm); err != nil {
		tmpFile.Close()
		return err
	}
	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	return os.Rename(tmpFile.Name(), safePath) // #nosec G703 // path is cleaned above
}
