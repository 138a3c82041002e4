package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wuwamoe/wuwa-helper/internal/domain/notify"
	"github.com/wuwamoe/wuwa-helper/internal/domain/update"
	"github.com/wuwamoe/wuwa-helper/internal/pkg/delay"
	"github.com/wuwamoe/wuwa-helper/internal/pkg/sanitizer"
)

// Outcome 一次檢查更新的最終結果
type Outcome int

const (
	OutcomeUpToDate Outcome = iota
	OutcomeCheckFailed
	OutcomeInstallFailed
	OutcomeRelaunched
	OutcomeCanceled
	OutcomeRelaunchFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUpToDate:
		return "up-to-date"
	case OutcomeCheckFailed:
		return "check-failed"
	case OutcomeInstallFailed:
		return "install-failed"
	case OutcomeRelaunched:
		return "relaunched"
	case OutcomeCanceled:
		return "canceled"
	case OutcomeRelaunchFailed:
		return "relaunch-failed"
	default:
		return fmt.Sprintf("unknown(%d)", int(o))
	}
}

// Failed 是否屬於失敗結果
func (o Outcome) Failed() bool {
	switch o {
	case OutcomeCheckFailed, OutcomeInstallFailed, OutcomeRelaunchFailed:
		return true
	}
	return false
}

// Messages 更新流程中展示給用戶的文案
type Messages struct {
	UpToDate    string
	CheckFailed string
	// Downloading 包含一個 %s，填入新版本號
	Downloading    string
	InstallSuccess string
	InstallFailed  string
}

// DefaultMessages 默認文案；成功提示中的秒數取自重啟延遲
func DefaultMessages(relaunchDelay time.Duration) Messages {
	secs := int(relaunchDelay.Round(time.Second) / time.Second)
	return Messages{
		UpToDate:       "최신 버전입니다!",
		CheckFailed:    "업데이트 확인 실패",
		Downloading:    "업데이트 %s 다운로드 중...",
		InstallSuccess: fmt.Sprintf("업데이트 성공! %d초 후에 재시작됩니다.", secs),
		InstallFailed:  "업데이트 실패. 다시 시도해주세요.",
	}
}

// UpdateService 檢查更新、安裝並重啟
type UpdateService struct {
	checker       update.Checker
	relauncher    update.Relauncher
	notifier      notify.Notifier
	relaunchDelay time.Duration
	messages      Messages
	logger        *zap.Logger
}

// UpdateOption 可選配置
type UpdateOption func(*UpdateService)

// WithMessages 替換默認文案
func WithMessages(m Messages) UpdateOption {
	return func(s *UpdateService) { s.messages = m }
}

// NewUpdateService 創建更新服務
func NewUpdateService(
	checker update.Checker,
	relauncher update.Relauncher,
	notifier notify.Notifier,
	relaunchDelay time.Duration,
	logger *zap.Logger,
	opts ...UpdateOption,
) *UpdateService {
	if relaunchDelay < 0 {
		relaunchDelay = 0
	}
	s := &UpdateService{
		checker:       checker,
		relauncher:    relauncher,
		notifier:      notifier,
		relaunchDelay: relaunchDelay,
		messages:      DefaultMessages(relaunchDelay),
		logger:        logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckUpdates 執行完整的更新流程，所有錯誤都轉換為提示與日誌
func (s *UpdateService) CheckUpdates(ctx context.Context) Outcome {
	s.logger.Info("開始檢查更新")

	upd, err := s.checker.Check(ctx)
	if err != nil {
		// GitHub 錯誤信息可能帶有令牌
		s.logger.Error("檢查更新失敗", zap.String("error", sanitizer.Text(err.Error())))
		notify.Error(s.notifier, s.messages.CheckFailed)
		return OutcomeCheckFailed
	}

	if upd == nil {
		s.logger.Info("已是最新版本")
		notify.Success(s.notifier, s.messages.UpToDate)
		return OutcomeUpToDate
	}

	version := upd.Version()
	s.logger.Info("發現新版本", zap.String("version", version))

	msgs := notify.PromiseMessages{
		Loading: fmt.Sprintf(s.messages.Downloading, version),
		Success: s.messages.InstallSuccess,
		Error:   s.messages.InstallFailed,
	}
	if err := notify.Promise(ctx, s.notifier, msgs, upd.DownloadAndInstall); err != nil {
		s.logger.Error("安裝更新失敗", zap.String("version", version), zap.Error(err))
		return OutcomeInstallFailed
	}

	s.logger.Info("更新已安裝，等待重啟",
		zap.String("version", version),
		zap.Duration("delay", s.relaunchDelay),
	)

	if err := delay.Delay(ctx, s.relaunchDelay); err != nil {
		s.logger.Warn("重啟已取消", zap.Error(err))
		return OutcomeCanceled
	}

	if err := s.relauncher.Relaunch(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			s.logger.Warn("重啟已取消", zap.Error(err))
			return OutcomeCanceled
		}
		s.logger.Error("重啟失敗", zap.Error(err))
		notify.Error(s.notifier, s.messages.CheckFailed)
		return OutcomeRelaunchFailed
	}

	s.logger.Info("已觸發重啟")
	return OutcomeRelaunched
}
