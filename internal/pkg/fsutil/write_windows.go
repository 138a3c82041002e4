//go:build windows

package fsutil

import "os"

// WriteFile 臨時文件加 rename，Windows 上盡力保證原子性
func WriteFile(path string, data []byte, perm os.FileMode) error {
	return writeViaTemp(path, data, perm)
}

// ReplaceExecutable 移開運行中的 exe 後寫入新文件，舊文件在下次啟動時由 RemoveOldExecutable 清理
func ReplaceExecutable(path string, data []byte) error {
	return replaceAside(path, data, 0o755)
}
