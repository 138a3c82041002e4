package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wuwamoe/wuwa-helper/internal/domain/config"
)

// MockRepo 模擬倉庫，用於測試 Service 邏輯
type MockRepo struct {
	cfg   *config.Config
	saves int
	mu    sync.RWMutex
}

func (m *MockRepo) Load(ctx context.Context) (*config.Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.cfg == nil {
		return config.DefaultConfig(), nil
	}
	return m.cfg.DeepCopy(), nil
}

func (m *MockRepo) Save(ctx context.Context, c *config.Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cfg = c.DeepCopy()
	m.saves++
	return nil
}

func TestConfigService_UpdateConfig(t *testing.T) {
	repo := &MockRepo{}
	svc := NewConfigService(repo, zap.NewNop())
	ctx := context.Background()

	t.Run("成功修改並保存", func(t *testing.T) {
		err := svc.UpdateConfig(ctx, func(c *config.Config) error {
			c.Updater.RelaunchDelayMS = 3000
			return nil
		})
		require.NoError(t, err)

		cfg, err := svc.GetConfig(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3000, cfg.Updater.RelaunchDelayMS)
	})

	t.Run("修改函數報錯時不保存", func(t *testing.T) {
		before := repo.saves
		err := svc.UpdateConfig(ctx, func(c *config.Config) error {
			return errors.New("boom")
		})
		assert.Error(t, err)
		assert.Equal(t, before, repo.saves)
	})

	t.Run("校驗失敗時不保存", func(t *testing.T) {
		before := repo.saves
		err := svc.UpdateConfig(ctx, func(c *config.Config) error {
			c.Server.Port = -1
			return nil
		})
		assert.Error(t, err)
		assert.Equal(t, before, repo.saves)
	})
}

func TestConfigService_ConcurrentUpdate(t *testing.T) {
	repo := &MockRepo{}
	svc := NewConfigService(repo, zap.NewNop())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = svc.UpdateConfig(ctx, func(c *config.Config) error {
				c.Updater.TimeoutSeconds++
				return nil
			})
		}()
	}
	wg.Wait()

	cfg, err := svc.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Updater.TimeoutSeconds+20, cfg.Updater.TimeoutSeconds)
}

func TestConfigService_EnsureSaved(t *testing.T) {
	repo := &MockRepo{}
	svc := NewConfigService(repo, zap.NewNop())

	_, err := svc.EnsureSaved(context.Background(), true)
	require.NoError(t, err)
	assert.Zero(t, repo.saves)

	_, err = svc.EnsureSaved(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.saves)
}
