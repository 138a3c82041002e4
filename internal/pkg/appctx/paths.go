package appctx

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName 用於目錄名與日誌文件名
const AppName = "wuwa-helper"

// Paths 定義應用程序所有的關鍵路徑
type Paths struct {
	BaseDir   string
	ConfigDir string
	DataDir   string
	LogDir    string
	BackupDir string

	ConfigFile string
	LogFile    string

	// Executable 當前運行的可執行文件，更新時原地替換
	Executable string
}

// NewPaths 解析並創建目錄；baseDir 為空時使用用戶配置目錄
func NewPaths(baseDir string) (*Paths, error) {
	if baseDir == "" {
		if env := os.Getenv("WUWA_HELPER_HOME"); env != "" {
			baseDir = env
		} else {
			cfgDir, err := os.UserConfigDir()
			if err != nil {
				return nil, fmt.Errorf("無法獲取用戶配置目錄: %w", err)
			}
			baseDir = filepath.Join(cfgDir, AppName)
		}
	}

	absPath, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("無法解析絕對路徑: %w", err)
	}

	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("無法定位可執行文件: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	logDir := filepath.Join(absPath, "logs")
	paths := &Paths{
		BaseDir:    absPath,
		ConfigDir:  absPath,
		DataDir:    filepath.Join(absPath, "data"),
		LogDir:     logDir,
		BackupDir:  filepath.Join(absPath, "backups"),
		ConfigFile: filepath.Join(absPath, "config.yaml"),
		LogFile:    filepath.Join(logDir, AppName+".log"),
		Executable: exe,
	}

	for _, dir := range []string{paths.ConfigDir, paths.DataDir, paths.LogDir, paths.BackupDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("無法創建目錄 %s: %w", dir, err)
		}
	}

	return paths, nil
}
