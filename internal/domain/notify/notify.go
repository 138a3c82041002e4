// Package notify 定義提示消息 (toast) 與通知接口。
//
// 調用方通過注入 Notifier 發送提示，TUI 與無頭模式各自實現渲染方式。
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Level 提示級別
type Level int

const (
	LevelLoading Level = iota
	LevelSuccess
	LevelError
	LevelInfo
)

func (l Level) String() string {
	switch l {
	case LevelLoading:
		return "loading"
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Duration 各級別的默認顯示時長，0 表示直到被替換
func (l Level) Duration() time.Duration {
	switch l {
	case LevelLoading:
		return 0
	case LevelSuccess:
		return 2 * time.Second
	case LevelError:
		return 4 * time.Second
	default:
		return 3 * time.Second
	}
}

// Toast 一條提示消息；ID 相同的提示會替換舊的
type Toast struct {
	ID        string
	Level     Level
	Message   string
	CreatedAt time.Time
}

// ExpiresAt 返回過期時間，loading 返回零值
func (t Toast) ExpiresAt() time.Time {
	d := t.Level.Duration()
	if d == 0 {
		return time.Time{}
	}
	return t.CreatedAt.Add(d)
}

// Notifier 提示通道
type Notifier interface {
	Notify(t Toast)
}

// PromiseMessages 綁定到異步操作生命週期的三段提示
type PromiseMessages struct {
	Loading string
	Success string
	Error   string
}

func newToast(id string, level Level, msg string) Toast {
	if id == "" {
		id = uuid.NewString()
	}
	return Toast{ID: id, Level: level, Message: msg, CreatedAt: time.Now()}
}

func Success(n Notifier, msg string) { n.Notify(newToast("", LevelSuccess, msg)) }
func Error(n Notifier, msg string)   { n.Notify(newToast("", LevelError, msg)) }
func Info(n Notifier, msg string)    { n.Notify(newToast("", LevelInfo, msg)) }

// Promise 先顯示 loading，執行 fn 後以同一 ID 替換為成功或失敗提示
//
// 返回 fn 的錯誤，不做任何包裝。
func Promise(ctx context.Context, n Notifier, msgs PromiseMessages, fn func(ctx context.Context) error) error {
	id := uuid.NewString()
	n.Notify(newToast(id, LevelLoading, msgs.Loading))

	if err := fn(ctx); err != nil {
		n.Notify(newToast(id, LevelError, msgs.Error))
		return err
	}

	n.Notify(newToast(id, LevelSuccess, msgs.Success))
	return nil
}

// NotifierFunc 函數適配器
type NotifierFunc func(t Toast)

func (f NotifierFunc) Notify(t Toast) { f(t) }
