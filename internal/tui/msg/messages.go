package msg

import (
	"time"

	"github.com/wuwamoe/wuwa-helper/internal/application"
	"github.com/wuwamoe/wuwa-helper/internal/domain/state"
)

// StateChangedMsg 全局狀態變化
type StateChangedMsg struct {
	State state.GlobalState
}

// UpdateFinishedMsg 更新流程結束
type UpdateFinishedMsg struct {
	Outcome application.Outcome
}

// CodeRegeneratedMsg 外部連接碼已重新生成
type CodeRegeneratedMsg struct {
	Code string
}

// TickMsg 定時清理過期提示
type TickMsg time.Time
