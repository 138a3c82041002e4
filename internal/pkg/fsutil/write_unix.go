//go:build !windows

package fsutil

import (
	"os"

	"github.com/google/renameio/v2"
)

// WriteFile 原子寫入文件
func WriteFile(path string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(path, data, perm)
}

// ReplaceExecutable 原子替換可執行文件，運行中的進程不受影響
func ReplaceExecutable(path string, data []byte) error {
	return renameio.WriteFile(path, data, 0o755)
}
