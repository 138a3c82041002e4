package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/wuwamoe/wuwa-helper/internal/application"
	domainConfig "github.com/wuwamoe/wuwa-helper/internal/domain/config"
	domainNotify "github.com/wuwamoe/wuwa-helper/internal/domain/notify"
	"github.com/wuwamoe/wuwa-helper/internal/domain/roomcode"
	"github.com/wuwamoe/wuwa-helper/internal/domain/state"
	"github.com/wuwamoe/wuwa-helper/internal/infra/backup"
	infraConfig "github.com/wuwamoe/wuwa-helper/internal/infra/config"
	"github.com/wuwamoe/wuwa-helper/internal/infra/process"
	"github.com/wuwamoe/wuwa-helper/internal/infra/updater"
	"github.com/wuwamoe/wuwa-helper/internal/pkg/appctx"
	"github.com/wuwamoe/wuwa-helper/internal/pkg/fsutil"
	"github.com/wuwamoe/wuwa-helper/internal/pkg/logger"
	"github.com/wuwamoe/wuwa-helper/internal/pkg/version"
)

// relaunchWaitTimeout 新進程等待舊進程退出的上限
const relaunchWaitTimeout = 30 * time.Second

type options struct {
	// console 是否同時輸出日誌到終端；TUI 模式下關閉
	console bool
}

type AppDependencies struct {
	Log       *zap.Logger
	Paths     *appctx.Paths
	Config    *domainConfig.Config
	ConfigSvc *application.ConfigService
	Store     *state.Store
	Session   *application.SessionService
	Checker   *updater.GitHubChecker
	Backups   *backup.Manager
}

func initializeDependencies(ctx context.Context, f *rootFlags, opts options) (*AppDependencies, error) {
	paths, err := appctx.NewPaths(f.workDir)
	if err != nil {
		return nil, fmt.Errorf("無法初始化路徑: %w", err)
	}
	configPath := paths.ConfigFile
	if f.configPath != "" {
		configPath = f.configPath
	}
	_, statErr := os.Stat(configPath)
	configExists := statErr == nil

	// 日誌配置來自配置文件，先用靜默日誌讀取一次
	cfg, err := infraConfig.NewFileRepository(configPath, zap.NewNop()).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("加載配置失敗: %w", err)
	}

	log, err := newLogger(cfg.Log, paths, f.debug, opts.console)
	if err != nil {
		return nil, fmt.Errorf("日誌初始化失敗: %w", err)
	}

	log.Info("wuwa-helper 正在啟動",
		zap.String("version", version.Version),
		zap.String("commit", version.GitCommit),
		zap.String("config", configPath),
	)

	configRepo := infraConfig.NewFileRepository(configPath, log.Named("config"))
	configSvc := application.NewConfigService(configRepo, log)
	if cfg, err = configSvc.EnsureSaved(ctx, configExists); err != nil {
		log.Warn("初始化保存配置失敗", zap.Error(err))
		cfg = domainConfig.DefaultConfig()
	}

	store := state.NewStore(state.Initial(), log.Named("state"))
	session := application.NewSessionService(store, roomcode.Generator{}, log)

	backups, err := backup.NewManager(paths.BackupDir, backup.RetentionPolicy{MaxFiles: 3}, log.Named("backup"))
	if err != nil {
		return nil, fmt.Errorf("備份管理器初始化失敗: %w", err)
	}

	checker := updater.NewGitHubChecker(updater.Config{
		APIBaseURL:     cfg.Updater.APIBaseURL,
		Repo:           cfg.Updater.Repo,
		Name:           appctx.AppName,
		CurrentVersion: version.Version,
		AssetPattern:   cfg.Updater.AssetPattern,
		ChecksumAsset:  cfg.Updater.ChecksumAsset,
		TargetPath:     paths.Executable,
		Backup:         backups,
		Timeout:        cfg.Updater.Timeout(),
	}, log.Named("updater"))

	return &AppDependencies{
		Log:       log,
		Paths:     paths,
		Config:    cfg,
		ConfigSvc: configSvc,
		Store:     store,
		Session:   session,
		Checker:   checker,
		Backups:   backups,
	}, nil
}

func newLogger(cfg logger.Config, paths *appctx.Paths, debug, console bool) (*zap.Logger, error) {
	if cfg.OutputPath == "" {
		cfg.OutputPath = paths.LogFile
	}
	cfg.Console = console
	if debug {
		cfg.Level = "debug"
	}
	return logger.New(cfg)
}

// NewUpdateService 組裝更新流程；exit 在新進程啟動後調用
func (d *AppDependencies) NewUpdateService(n domainNotify.Notifier, exit func(int)) *application.UpdateService {
	relauncher := process.NewRelauncher(process.Config{
		Executable: d.Paths.Executable,
		Args:       os.Args[1:],
		Exit:       exit,
	}, d.Log.Named("process"))

	return application.NewUpdateService(d.Checker, relauncher, n, d.Config.Updater.RelaunchDelay(), d.Log.Named("update"))
}

// waitForPreviousInstance 由更新重啟時，等待舊進程釋放終端與可執行文件
func waitForPreviousInstance(ctx context.Context, f *rootFlags, log *zap.Logger) {
	if f.relaunchPID <= 0 || f.relaunchPID == os.Getpid() {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, relaunchWaitTimeout)
	defer cancel()

	if err := process.WaitForProcessToExit(ctx, f.relaunchPID, 200*time.Millisecond, log); err != nil {
		log.Warn("等待舊進程退出超時，繼續啟動", zap.Int("pid", f.relaunchPID), zap.Error(err))
	}
}

// removeReplacedExecutable 清理更新時移開的舊可執行文件
func removeReplacedExecutable(paths *appctx.Paths, log *zap.Logger) {
	if err := fsutil.RemoveOldExecutable(paths.Executable); err != nil {
		log.Warn("清理舊可執行文件失敗", zap.Error(err))
	}
}
