package fileurl

import (
	"os"
	"path/filepath"
)

// IsExist checks whether a file or directory exists
// IsExist 检测文件或目录是否存在
func IsExist(dst string) bool {
	_, err := os.Stat(dst)
	return err == nil || os.IsExist(err)
}

// CreatePath creates the parent directory for the given file path
// CreatePath 为所给文件路径创建父目录
func CreatePath(dst string, perm os.FileMode) error {
	return os.MkdirAll(filepath.Dir(dst), perm)
}
