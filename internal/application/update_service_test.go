package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/wuwamoe/wuwa-helper/internal/domain/notify"
	"github.com/wuwamoe/wuwa-helper/internal/domain/update"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeUpdate struct {
	version    string
	installErr error
	installs   int
}

func (u *fakeUpdate) Version() string { return u.version }

func (u *fakeUpdate) DownloadAndInstall(ctx context.Context) error {
	u.installs++
	return u.installErr
}

type fakeChecker struct {
	update update.Update
	err    error
}

func (c *fakeChecker) Check(ctx context.Context) (update.Update, error) {
	return c.update, c.err
}

type fakeRelauncher struct {
	calls int
	err   error
}

func (r *fakeRelauncher) Relaunch(ctx context.Context) error {
	r.calls++
	return r.err
}

type recorder struct {
	mu     sync.Mutex
	toasts []notify.Toast
}

func (r *recorder) Notify(t notify.Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
}

func (r *recorder) all() []notify.Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Toast(nil), r.toasts...)
}

func newService(c update.Checker, r update.Relauncher, n notify.Notifier, d time.Duration) *UpdateService {
	return NewUpdateService(c, r, n, d, zap.NewNop())
}

func TestDefaultMessages(t *testing.T) {
	m := DefaultMessages(5000 * time.Millisecond)
	assert.Equal(t, "최신 버전입니다!", m.UpToDate)
	assert.Equal(t, "업데이트 확인 실패", m.CheckFailed)
	assert.Equal(t, "업데이트 성공! 5초 후에 재시작됩니다.", m.InstallSuccess)
	assert.Equal(t, "업데이트 실패. 다시 시도해주세요.", m.InstallFailed)

	assert.Equal(t, "업데이트 성공! 2초 후에 재시작됩니다.", DefaultMessages(2*time.Second).InstallSuccess)
}

func TestCheckUpdates_UpToDate(t *testing.T) {
	rec := &recorder{}
	rl := &fakeRelauncher{}
	svc := newService(&fakeChecker{}, rl, rec, time.Millisecond)

	out := svc.CheckUpdates(context.Background())

	assert.Equal(t, OutcomeUpToDate, out)
	toasts := rec.all()
	require.Len(t, toasts, 1)
	assert.Equal(t, notify.LevelSuccess, toasts[0].Level)
	assert.Equal(t, "최신 버전입니다!", toasts[0].Message)
	assert.Zero(t, rl.calls)
}

func TestCheckUpdates_CheckFailed(t *testing.T) {
	rec := &recorder{}
	rl := &fakeRelauncher{}
	svc := newService(&fakeChecker{err: errors.New("network down")}, rl, rec, time.Millisecond)

	out := svc.CheckUpdates(context.Background())

	assert.Equal(t, OutcomeCheckFailed, out)
	assert.True(t, out.Failed())
	toasts := rec.all()
	require.Len(t, toasts, 1)
	assert.Equal(t, notify.LevelError, toasts[0].Level)
	assert.Equal(t, "업데이트 확인 실패", toasts[0].Message)
	assert.Zero(t, rl.calls)
}

func TestCheckUpdates_InstallAndRelaunch(t *testing.T) {
	rec := &recorder{}
	rl := &fakeRelauncher{}
	upd := &fakeUpdate{version: "1.2.0"}
	svc := newService(&fakeChecker{update: upd}, rl, rec, 20*time.Millisecond)

	start := time.Now()
	out := svc.CheckUpdates(context.Background())

	assert.Equal(t, OutcomeRelaunched, out)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond, "重啟前應等待延遲")
	assert.Equal(t, 1, upd.installs)
	assert.Equal(t, 1, rl.calls)

	toasts := rec.all()
	require.Len(t, toasts, 2)
	assert.Equal(t, notify.LevelLoading, toasts[0].Level)
	assert.Equal(t, "업데이트 1.2.0 다운로드 중...", toasts[0].Message)
	assert.Equal(t, notify.LevelSuccess, toasts[1].Level)
	assert.Equal(t, toasts[0].ID, toasts[1].ID, "結果提示應替換 loading 提示")
}

func TestCheckUpdates_InstallFailed(t *testing.T) {
	rec := &recorder{}
	rl := &fakeRelauncher{}
	upd := &fakeUpdate{version: "1.2.0", installErr: errors.New("disk full")}
	svc := newService(&fakeChecker{update: upd}, rl, rec, time.Millisecond)

	out := svc.CheckUpdates(context.Background())

	assert.Equal(t, OutcomeInstallFailed, out)
	assert.Zero(t, rl.calls)

	toasts := rec.all()
	require.Len(t, toasts, 2)
	assert.Equal(t, notify.LevelError, toasts[1].Level)
	assert.Equal(t, "업데이트 실패. 다시 시도해주세요.", toasts[1].Message)
}

func TestCheckUpdates_CanceledDuringDelay(t *testing.T) {
	rec := &recorder{}
	rl := &fakeRelauncher{}
	upd := &fakeUpdate{version: "1.2.0"}
	svc := newService(&fakeChecker{update: upd}, rl, rec, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	out := svc.CheckUpdates(ctx)

	assert.Equal(t, OutcomeCanceled, out)
	assert.False(t, out.Failed())
	assert.Zero(t, rl.calls)
}

func TestCheckUpdates_RelaunchFailed(t *testing.T) {
	rec := &recorder{}
	rl := &fakeRelauncher{err: errors.New("exec format error")}
	svc := newService(&fakeChecker{update: &fakeUpdate{version: "1.2.0"}}, rl, rec, 0)

	out := svc.CheckUpdates(context.Background())

	assert.Equal(t, OutcomeRelaunchFailed, out)
	toasts := rec.all()
	require.Len(t, toasts, 3)
	assert.Equal(t, notify.LevelError, toasts[2].Level)
	assert.Equal(t, "업데이트 확인 실패", toasts[2].Message)
}

func TestCheckUpdates_CustomMessages(t *testing.T) {
	rec := &recorder{}
	svc := NewUpdateService(&fakeChecker{}, &fakeRelauncher{}, rec, 0, zap.NewNop(),
		WithMessages(Messages{UpToDate: "already latest"}))

	svc.CheckUpdates(context.Background())

	toasts := rec.all()
	require.Len(t, toasts, 1)
	assert.Equal(t, "already latest", toasts[0].Message)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "up-to-date", OutcomeUpToDate.String())
	assert.Equal(t, "relaunch-failed", OutcomeRelaunchFailed.String())
	assert.Equal(t, "unknown(42)", Outcome(42).String())
}
