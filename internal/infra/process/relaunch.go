// Package process 負責更新後的重啟與等待舊進程退出。
package process

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"
	"go.uber.org/zap"

	"github.com/wuwamoe/wuwa-helper/internal/domain/update"
	"github.com/wuwamoe/wuwa-helper/internal/pkg/errors"
)

// RelaunchPIDFlag 新進程通過該參數得知需要等待的舊進程
const RelaunchPIDFlag = "relaunch-pid"

// Config 重啟配置
type Config struct {
	Executable string
	Args       []string
	// Exit 啟動新進程後調用，默認 os.Exit
	Exit func(code int)
	// Start 可替換的啟動函數，默認 exec.Cmd.Start
	Start func(cmd *exec.Cmd) error
}

// Relauncher 啟動新版本並退出當前進程
type Relauncher struct {
	cfg Config
	log *zap.Logger
}

var _ update.Relauncher = (*Relauncher)(nil)

func NewRelauncher(cfg Config, log *zap.Logger) *Relauncher {
	if cfg.Exit == nil {
		cfg.Exit = os.Exit
	}
	if cfg.Start == nil {
		cfg.Start = func(cmd *exec.Cmd) error { return cmd.Start() }
	}
	return &Relauncher{cfg: cfg, log: log}
}

// Relaunch 啟動失敗時返回錯誤，成功則調用 Exit(0)
func (r *Relauncher) Relaunch(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	args := RelaunchArgs(r.cfg.Args, os.Getpid())
	cmd := exec.Command(r.cfg.Executable, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	r.log.Info("正在重啟",
		zap.String("executable", r.cfg.Executable),
		zap.Strings("args", args),
	)
	if err := r.cfg.Start(cmd); err != nil {
		return errors.Wrap(fmt.Errorf("%w: %v", errors.ErrRelaunchFailed, err), errors.CodeRelaunch, "啟動新進程失敗")
	}

	r.cfg.Exit(0)
	return nil
}

// RelaunchArgs 去掉舊的 --relaunch-pid 後追加當前 PID
func RelaunchArgs(args []string, pid int) []string {
	out := make([]string, 0, len(args)+1)
	skipNext := false
	for _, a := range args {
		if skipNext {
			skipNext = false
			continue
		}
		if a == "--"+RelaunchPIDFlag {
			skipNext = true
			continue
		}
		if strings.HasPrefix(a, "--"+RelaunchPIDFlag+"=") {
			continue
		}
		out = append(out, a)
	}
	return append(out, "--"+RelaunchPIDFlag+"="+strconv.Itoa(pid))
}

// WaitForProcessToExit 輪詢直到進程消失或 ctx 結束
func WaitForProcessToExit(ctx context.Context, pid int, interval time.Duration, log *zap.Logger) error {
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}
	log.Info("等待舊進程退出", zap.Int("pid", pid))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		proc, err := ps.FindProcess(pid)
		switch {
		case err != nil:
			log.Warn("查找進程失敗，稍後重試", zap.Int("pid", pid), zap.Error(err))
		case proc == nil:
			log.Info("舊進程已退出", zap.Int("pid", pid))
			return nil
		default:
			log.Debug("舊進程仍在運行", zap.Int("pid", pid), zap.String("executable", proc.Executable()))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
