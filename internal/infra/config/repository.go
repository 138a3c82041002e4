package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	domainConfig "github.com/wuwamoe/wuwa-helper/internal/domain/config"
	"github.com/wuwamoe/wuwa-helper/internal/pkg/errors"
	"github.com/wuwamoe/wuwa-helper/internal/pkg/fsutil"
)

// FileRepository 基於 YAML 文件的配置倉庫
type FileRepository struct {
	filePath     string
	mu           sync.RWMutex
	fileMu       sync.Mutex
	logger       *zap.Logger
	cachedConfig *domainConfig.Config
	lastModTime  time.Time
}

var _ domainConfig.Repository = (*FileRepository)(nil)

func NewFileRepository(path string, logger *zap.Logger) *FileRepository {
	return &FileRepository{
		filePath: path,
		logger:   logger,
	}
}

// Path 返回配置文件路徑
func (r *FileRepository) Path() string { return r.filePath }

// Load 加載配置；文件未變更時返回緩存副本
func (r *FileRepository) Load(ctx context.Context) (*domainConfig.Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	stat, err := os.Stat(r.filePath)
	if os.IsNotExist(err) {
		r.mu.RUnlock()
		r.logger.Info("配置文件不存在，使用默認配置", zap.String("path", r.filePath))
		return domainConfig.DefaultConfig(), nil
	}
	if err != nil {
		r.mu.RUnlock()
		return nil, errors.Wrap(err, errors.CodeConfig, "檢查配置文件狀態失敗")
	}
	if r.cachedConfig != nil && !stat.ModTime().After(r.lastModTime) {
		// 必須返回副本，避免調用方污染緩存
		cfg := r.cachedConfig.DeepCopy()
		r.mu.RUnlock()
		return cfg, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// 雙重檢查
	stat, err = os.Stat(r.filePath)
	if os.IsNotExist(err) {
		return domainConfig.DefaultConfig(), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConfig, "檢查配置文件狀態失敗")
	}
	if r.cachedConfig != nil && !stat.ModTime().After(r.lastModTime) {
		return r.cachedConfig.DeepCopy(), nil
	}

	r.fileMu.Lock()
	content, err := os.ReadFile(r.filePath)
	r.fileMu.Unlock()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConfig, "讀取配置文件失敗")
	}

	cfg := &domainConfig.Config{}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeConfig, "解析配置文件格式失敗")
	}
	cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(fmt.Errorf("%w: %v", errors.ErrConfigInvalid, err), errors.CodeConfig, "配置校驗失敗")
	}

	r.cachedConfig = cfg.DeepCopy()
	r.lastModTime = stat.ModTime()

	r.logger.Info("配置文件已從磁盤加載",
		zap.String("path", r.filePath),
		zap.Time("mod_time", r.lastModTime),
	)
	return cfg, nil
}

// Save 原子寫入配置文件
func (r *FileRepository) Save(ctx context.Context, cfg *domainConfig.Config) error {
	if cfg == nil {
		return errors.New(errors.CodeConfig, "配置對象為空")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(fmt.Errorf("%w: %v", errors.ErrConfigInvalid, err), errors.CodeConfig, "配置校驗失敗")
	}

	r.fileMu.Lock()
	defer r.fileMu.Unlock()

	data, err := yaml.Marshal(cfg.DeepCopy())
	if err != nil {
		return errors.Wrap(err, errors.CodeConfig, "序列化配置失敗")
	}

	if err := os.MkdirAll(filepath.Dir(r.filePath), 0o755); err != nil {
		return errors.Wrap(err, errors.CodeConfig, "創建配置目錄失敗")
	}
	if err := fsutil.WriteFile(r.filePath, data, 0o600); err != nil {
		return errors.Wrap(err, errors.CodeConfig, "寫入配置文件失敗")
	}

	r.mu.Lock()
	r.cachedConfig = cfg.DeepCopy()
	if stat, err := os.Stat(r.filePath); err == nil {
		r.lastModTime = stat.ModTime()
	}
	r.mu.Unlock()

	r.logger.Debug("配置已保存", zap.String("path", r.filePath))
	return nil
}
