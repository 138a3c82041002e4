// Package backup 在替換可執行文件前保留舊版本，用於回滾。
package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wuwamoe/wuwa-helper/internal/pkg/fsutil"
)

const (
	BackupFileMode os.FileMode = 0o700
	BackupDirMode  os.FileMode = 0o700
	ChecksumSuffix             = ".sha256"

	backupExt = ".bak"
	lastHash  = ".last-hash"
)

type Manager struct {
	backupDir string
	retention RetentionPolicy
	log       *zap.Logger
	now       func() time.Time
}

type RetentionPolicy struct {
	MaxFiles int
	MaxAge   time.Duration
}

type BackupFile struct {
	Name     string
	Path     string
	ModTime  time.Time
	Size     int64
	Verified bool
}

func NewManager(backupDir string, retention RetentionPolicy, log *zap.Logger) (*Manager, error) {
	if err := os.MkdirAll(backupDir, BackupDirMode); err != nil {
		return nil, fmt.Errorf("創建備份目錄失敗: %w", err)
	}
	return &Manager{
		backupDir: backupDir,
		retention: retention,
		log:       log,
		now:       time.Now,
	}, nil
}

// Backup 複製 srcPath 到備份目錄；內容與上一次相同時跳過
func (m *Manager) Backup(srcPath string, tag string) error {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("讀取源文件失敗: %w", err)
	}

	hashStr := checksum(data)
	if m.isDuplicateContent(hashStr) {
		m.log.Debug("內容未變化，跳過備份", zap.String("src", srcPath))
		return nil
	}

	base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	// 納秒後綴保證同一秒內的多次備份不衝突且可排序
	backupName := fmt.Sprintf("%s-%s", base, m.now().Format("20060102-150405.000000000"))
	if tag != "" {
		backupName += "-" + sanitizeTag(tag)
	}
	dstPath := filepath.Join(m.backupDir, backupName+backupExt)

	if err := fsutil.WriteFile(dstPath, data, BackupFileMode); err != nil {
		return fmt.Errorf("寫入備份失敗: %w", err)
	}
	if err := fsutil.WriteFile(dstPath+ChecksumSuffix, []byte(hashStr), 0o600); err != nil {
		os.Remove(dstPath)
		return fmt.Errorf("生成校驗文件失敗: %w", err)
	}

	m.saveLastHash(hashStr)
	m.enforcePolicy()

	m.log.Info("已備份", zap.String("src", srcPath), zap.String("backup", dstPath))
	return nil
}

// Restore 校驗後原子替換 targetPath
func (m *Manager) Restore(backupName string, targetPath string) error {
	if backupName != filepath.Base(backupName) {
		return fmt.Errorf("非法的備份名: %q", backupName)
	}
	srcPath := filepath.Join(m.backupDir, backupName)
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("讀取備份文件失敗: %w", err)
	}
	if !m.verifyChecksum(srcPath, data) {
		return fmt.Errorf("備份完整性校驗失敗")
	}

	if err := fsutil.ReplaceExecutable(targetPath, data); err != nil {
		return fmt.Errorf("替換目標文件失敗: %w", err)
	}
	m.log.Info("已從備份恢復", zap.String("backup", backupName), zap.String("target", targetPath))
	return nil
}

// Latest 最新的備份
func (m *Manager) Latest() (BackupFile, error) {
	backups, err := m.List()
	if err != nil {
		return BackupFile{}, err
	}
	if len(backups) == 0 {
		return BackupFile{}, os.ErrNotExist
	}
	return backups[0], nil
}

// List 按時間倒序列出
func (m *Manager) List() ([]BackupFile, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupFile{}, nil
		}
		return nil, fmt.Errorf("讀取備份目錄失敗: %w", err)
	}

	var backups []BackupFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), backupExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		path := filepath.Join(m.backupDir, entry.Name())
		var verified bool
		if data, err := os.ReadFile(path); err == nil {
			verified = m.verifyChecksum(path, data)
		}

		backups = append(backups, BackupFile{
			Name:     entry.Name(),
			Path:     path,
			ModTime:  info.ModTime(),
			Size:     info.Size(),
			Verified: verified,
		})
	}

	// 文件名包含時間戳，按名稱倒序即時間倒序
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Name > backups[j].Name
	})
	return backups, nil
}

func (m *Manager) enforcePolicy() {
	backups, err := m.List()
	if err != nil {
		return
	}

	now := m.now()
	for i, b := range backups {
		expired := m.retention.MaxAge > 0 && now.Sub(b.ModTime) > m.retention.MaxAge
		if (m.retention.MaxFiles > 0 && i >= m.retention.MaxFiles) || expired {
			os.Remove(b.Path)
			os.Remove(b.Path + ChecksumSuffix)
		}
	}
}

func (m *Manager) verifyChecksum(filePath string, data []byte) bool {
	expected, err := os.ReadFile(filePath + ChecksumSuffix)
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(expected)) == checksum(data)
}

func (m *Manager) isDuplicateContent(hash string) bool {
	last, err := os.ReadFile(filepath.Join(m.backupDir, lastHash))
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(last)) == hash
}

func (m *Manager) saveLastHash(hash string) {
	_ = fsutil.WriteFile(filepath.Join(m.backupDir, lastHash), []byte(hash), 0o600)
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func sanitizeTag(tag string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_':
			return r
		default:
			return '-'
		}
	}, tag)
}
