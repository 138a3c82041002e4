// Package fsutil 原子寫文件與可執行文件替換。
//
// 非 Windows 平台使用 renameio（fsync 後 rename）。Windows 上使用同目錄臨時文件加 rename；
// 運行中的 exe 不能被覆蓋，只能重命名，所以替換前先把它移到 OldExecutablePath。
package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// OldSuffix 被移開的舊可執行文件後綴
const OldSuffix = ".old"

// OldExecutablePath 返回替換時舊文件的暫存路徑
func OldExecutablePath(path string) string {
	return path + OldSuffix
}

// RemoveOldExecutable 清理上次替換留下的舊文件，不存在時返回 nil
func RemoveOldExecutable(path string) error {
	err := os.Remove(OldExecutablePath(path))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// writeViaTemp 寫入同目錄臨時文件後 rename 到目標
func writeViaTemp(path string, data []byte, perm os.FileMode) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+"-*.tmp")
	if err != nil {
		return fmt.Errorf("創建臨時文件失敗: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("寫入臨時文件失敗: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("同步臨時文件失敗: %w", err)
	}
	// Windows 上 rename 前必須關閉
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("關閉臨時文件失敗: %w", err)
	}
	tmp = nil

	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("設置權限失敗: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("重命名到目標失敗: %w", err)
	}
	return nil
}

// replaceAside 先把現有目標移到 OldExecutablePath，再寫入新內容；寫入失敗時移回
func replaceAside(path string, data []byte, perm os.FileMode) error {
	old := OldExecutablePath(path)
	// 上次留下的舊文件仍被佔用時放棄替換
	if err := RemoveOldExecutable(path); err != nil {
		return fmt.Errorf("清理舊文件失敗: %w", err)
	}

	moved := false
	if _, err := os.Stat(path); err == nil {
		if err := os.Rename(path, old); err != nil {
			return fmt.Errorf("移開舊可執行文件失敗: %w", err)
		}
		moved = true
	}

	if err := writeViaTemp(path, data, perm); err != nil {
		if moved {
			_ = os.Rename(old, path)
		}
		return err
	}
	return nil
}
