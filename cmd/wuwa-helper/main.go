package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wuwamoe/wuwa-helper/internal/infra/notify"
	"github.com/wuwamoe/wuwa-helper/internal/infra/process"
	"github.com/wuwamoe/wuwa-helper/internal/pkg/version"
	"github.com/wuwamoe/wuwa-helper/internal/tui/model"
	"github.com/wuwamoe/wuwa-helper/internal/tui/toast"
)

type rootFlags struct {
	workDir     string
	configPath  string
	debug       bool
	relaunchPID int
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}

	root := &cobra.Command{
		Use:           "wuwa-helper",
		Short:         "鳴潮輔助工具：狀態面板與自動更新",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), f)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.workDir, "dir", "", "工作目錄 (默認: 用戶配置目錄下的 wuwa-helper)")
	pf.StringVar(&f.configPath, "config", "", "配置文件路徑 (默認: <dir>/config.yaml)")
	pf.BoolVar(&f.debug, "debug", false, "開啟調試日誌")
	pf.IntVar(&f.relaunchPID, process.RelaunchPIDFlag, 0, "重啟前等待退出的舊進程 PID")
	_ = pf.MarkHidden(process.RelaunchPIDFlag)

	root.AddCommand(newUpdateCmd(f), newRollbackCmd(f), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "顯示版本信息",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Info())
		},
	}
}

func newUpdateCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "檢查並安裝更新（無界面）",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			deps, err := initializeDependencies(ctx, f, options{console: true})
			if err != nil {
				return err
			}
			defer deps.Log.Sync()

			waitForPreviousInstance(ctx, f, deps.Log)
			removeReplacedExecutable(deps.Paths, deps.Log)

			notifier := notify.NewLogNotifier(cmd.OutOrStdout(), deps.Log)
			outcome := deps.NewUpdateService(notifier, os.Exit).CheckUpdates(ctx)
			deps.Log.Info("更新流程結束", zap.Stringer("outcome", outcome))
			if outcome.Failed() {
				return fmt.Errorf("更新失敗: %s", outcome)
			}
			return nil
		},
	}
}

func newRollbackCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rollback",
		Short: "恢復更新前的版本",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := initializeDependencies(cmd.Context(), f, options{console: true})
			if err != nil {
				return err
			}
			defer deps.Log.Sync()

			latest, err := deps.Backups.Latest()
			if err != nil {
				return fmt.Errorf("沒有可用的備份: %w", err)
			}
			if err := deps.Backups.Restore(latest.Name, deps.Paths.Executable); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已恢復: %s\n", latest.Name)
			return nil
		},
	}
}

func runTUI(ctx context.Context, f *rootFlags) error {
	deps, err := initializeDependencies(ctx, f, options{console: false})
	if err != nil {
		return err
	}
	defer deps.Log.Sync()

	waitForPreviousInstance(ctx, f, deps.Log)
	removeReplacedExecutable(deps.Paths, deps.Log)

	toaster := toast.NewToaster(nil)
	var p *tea.Program

	// 重啟前先退出界面並恢復終端
	exit := func(code int) {
		if p != nil {
			p.Quit()
			p.Wait()
		}
		os.Exit(code)
	}

	m := model.NewModel(model.Config{
		Ctx:            ctx,
		Store:          deps.Store,
		Updater:        deps.NewUpdateService(toaster, exit),
		Session:        deps.Session,
		Version:        version.Short(),
		CheckOnStartup: deps.Config.Updater.CheckOnStartup,
		Log:            deps.Log,
	})
	defer m.Close()

	p = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	toaster.Attach(p)

	defer func() {
		if r := recover(); r != nil {
			_ = p.ReleaseTerminal()
			fmt.Fprintf(os.Stderr, "\n程序崩潰: %v\n", r)
			deps.Log.Error("Panic", zap.Any("error", r), zap.String("stack", string(debug.Stack())))
			os.Exit(1)
		}
	}()

	if _, err := p.Run(); err != nil {
		deps.Log.Error("界面運行錯誤", zap.Error(err))
		return fmt.Errorf("程序運行錯誤: %w", err)
	}
	return nil
}
