package notify

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"

	domainNotify "github.com/wuwamoe/wuwa-helper/internal/domain/notify"
)

// LogNotifier 無頭模式下的提示輸出：寫日誌並打印一行文本
type LogNotifier struct {
	mu  sync.Mutex
	out io.Writer
	log *zap.Logger
}

var _ domainNotify.Notifier = (*LogNotifier)(nil)

// NewLogNotifier out 為 nil 時寫入 stdout
func NewLogNotifier(out io.Writer, log *zap.Logger) *LogNotifier {
	if out == nil {
		out = os.Stdout
	}
	return &LogNotifier{out: out, log: log}
}

func (n *LogNotifier) Notify(t domainNotify.Toast) {
	fields := []zap.Field{
		zap.String("toast_id", t.ID),
		zap.Stringer("level", t.Level),
	}
	switch t.Level {
	case domainNotify.LevelError:
		n.log.Error(t.Message, fields...)
	case domainNotify.LevelLoading:
		n.log.Debug(t.Message, fields...)
	default:
		n.log.Info(t.Message, fields...)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.out, "%s %s\n", prefix(t.Level), t.Message)
}

func prefix(l domainNotify.Level) string {
	switch l {
	case domainNotify.LevelLoading:
		return "[…]"
	case domainNotify.LevelSuccess:
		return "[✓]"
	case domainNotify.LevelError:
		return "[✗]"
	default:
		return "[i]"
	}
}
