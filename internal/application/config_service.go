package application

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/wuwamoe/wuwa-helper/internal/domain/config"
)

// ConfigService 配置服務
type ConfigService struct {
	repo   config.Repository
	logger *zap.Logger
	mu     sync.Mutex
}

// NewConfigService 創建配置服務
func NewConfigService(repo config.Repository, logger *zap.Logger) *ConfigService {
	return &ConfigService{
		repo:   repo,
		logger: logger,
	}
}

// GetConfig 獲取當前配置
func (s *ConfigService) GetConfig(ctx context.Context) (*config.Config, error) {
	return s.repo.Load(ctx)
}

// UpdateConfig 原子更新配置
// Lock -> Load -> DeepCopy -> Modify -> Validate -> Save
func (s *ConfigService) UpdateConfig(ctx context.Context, modifier func(*config.Config) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("加載配置失敗: %w", err)
	}

	next := current.DeepCopy()
	if err := modifier(next); err != nil {
		return fmt.Errorf("應用配置修改失敗: %w", err)
	}
	if err := next.Validate(); err != nil {
		return fmt.Errorf("新配置驗證失敗: %w", err)
	}
	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("保存配置失敗: %w", err)
	}

	s.logger.Info("配置已更新並保存")
	return nil
}

// EnsureSaved 首次運行時把默認配置寫入磁盤
func (s *ConfigService) EnsureSaved(ctx context.Context, exists bool) (*config.Config, error) {
	cfg, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return cfg, nil
	}
	if err := s.repo.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("寫入默認配置失敗: %w", err)
	}
	s.logger.Info("已生成默認配置文件")
	return cfg, nil
}
