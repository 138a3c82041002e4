package toast

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wuwamoe/wuwa-helper/internal/domain/notify"
)

// Msg 投遞到 bubbletea 更新循環的提示
type Msg struct {
	Toast notify.Toast
}

// Sender 通常是 *tea.Program
type Sender interface {
	Send(msg tea.Msg)
}

// Toaster 把提示轉換為 tea 消息，可在任意 goroutine 調用
type Toaster struct {
	mu     sync.RWMutex
	sender Sender
}

var _ notify.Notifier = (*Toaster)(nil)

// NewToaster sender 可稍後通過 Attach 設置
func NewToaster(sender Sender) *Toaster {
	return &Toaster{sender: sender}
}

// Attach 在程序創建後綁定
func (t *Toaster) Attach(sender Sender) {
	t.mu.Lock()
	t.sender = sender
	t.mu.Unlock()
}

// Notify 未綁定時丟棄
func (t *Toaster) Notify(x notify.Toast) {
	t.mu.RLock()
	s := t.sender
	t.mu.RUnlock()
	if s == nil {
		return
	}
	s.Send(Msg{Toast: x})
}
