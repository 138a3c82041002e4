package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setup(t *testing.T, policy RetentionPolicy) (*Manager, string) {
	t.Helper()
	tempDir := t.TempDir()
	mgr, err := NewManager(filepath.Join(tempDir, "backups"), policy, zap.NewNop())
	require.NoError(t, err)

	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mgr.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	bin := filepath.Join(tempDir, "wuwa-helper")
	require.NoError(t, os.WriteFile(bin, []byte("v1"), 0o755))
	return mgr, bin
}

func TestManager_BackupAndRestore(t *testing.T) {
	mgr, bin := setup(t, RetentionPolicy{MaxFiles: 3})

	require.NoError(t, mgr.Backup(bin, "v1.0.0"))

	latest, err := mgr.Latest()
	require.NoError(t, err)
	assert.True(t, latest.Verified)
	assert.Contains(t, latest.Name, "v1.0.0")

	// 模擬更新後回滾
	require.NoError(t, os.WriteFile(bin, []byte("v2"), 0o755))
	require.NoError(t, mgr.Restore(latest.Name, bin))

	got, err := os.ReadFile(bin)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))

	info, err := os.Stat(bin)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestManager_SkipDuplicate(t *testing.T) {
	mgr, bin := setup(t, RetentionPolicy{})

	require.NoError(t, mgr.Backup(bin, ""))
	require.NoError(t, mgr.Backup(bin, ""))

	list, err := mgr.List()
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestManager_Retention(t *testing.T) {
	mgr, bin := setup(t, RetentionPolicy{MaxFiles: 2})

	for _, content := range []string{"a", "b", "c", "d"} {
		require.NoError(t, os.WriteFile(bin, []byte(content), 0o755))
		require.NoError(t, mgr.Backup(bin, content))
	}

	list, err := mgr.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Contains(t, list[0].Name, "-d.bak")
	assert.Contains(t, list[1].Name, "-c.bak")
}

func TestManager_RestoreRejects(t *testing.T) {
	mgr, bin := setup(t, RetentionPolicy{})
	require.NoError(t, mgr.Backup(bin, "x"))
	latest, err := mgr.Latest()
	require.NoError(t, err)

	t.Run("路徑穿越", func(t *testing.T) {
		assert.Error(t, mgr.Restore("../wuwa-helper", bin))
	})

	t.Run("校驗失敗", func(t *testing.T) {
		require.NoError(t, os.WriteFile(latest.Path, []byte("tampered"), 0o700))
		assert.Error(t, mgr.Restore(latest.Name, bin))
	})
}

func TestManager_LatestEmpty(t *testing.T) {
	mgr, _ := setup(t, RetentionPolicy{})
	_, err := mgr.Latest()
	assert.ErrorIs(t, err, os.ErrNotExist)
}
