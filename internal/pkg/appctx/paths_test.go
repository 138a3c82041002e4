package appctx

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaths(t *testing.T) {
	tmpDir := t.TempDir()

	paths, err := NewPaths(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, tmpDir, paths.BaseDir)
	assert.Equal(t, filepath.Join(tmpDir, "config.yaml"), paths.ConfigFile)
	assert.Equal(t, filepath.Join(tmpDir, "logs", "wuwa-helper.log"), paths.LogFile)
	assert.NotEmpty(t, paths.Executable)
}

func TestPaths_Directories(t *testing.T) {
	paths, err := NewPaths(t.TempDir())
	require.NoError(t, err)

	// 验证目录已创建
	assert.DirExists(t, paths.ConfigDir)
	assert.DirExists(t, paths.DataDir)
	assert.DirExists(t, paths.LogDir)
	assert.DirExists(t, paths.BackupDir)
}

func TestNewPaths_EnvOverride(t *testing.T) {
	home := t.TempDir()
	t.Setenv("WUWA_HELPER_HOME", home)

	paths, err := NewPaths("")
	require.NoError(t, err)
	assert.Equal(t, home, paths.BaseDir)
}
