package application

import (
	"go.uber.org/zap"

	"github.com/wuwamoe/wuwa-helper/internal/domain/roomcode"
	"github.com/wuwamoe/wuwa-helper/internal/domain/state"
	"github.com/wuwamoe/wuwa-helper/internal/pkg/sanitizer"
)

// SessionService 管理外部連接碼等會話狀態
type SessionService struct {
	store  *state.Store
	codes  roomcode.Generator
	logger *zap.Logger
}

func NewSessionService(store *state.Store, codes roomcode.Generator, logger *zap.Logger) *SessionService {
	return &SessionService{store: store, codes: codes, logger: logger}
}

// RegenerateCode 生成新的外部連接碼並寫入狀態
func (s *SessionService) RegenerateCode() string {
	code := s.codes.Generate()
	s.store.Mutate(func(g state.GlobalState) state.GlobalState {
		return g.WithExternalCode(code)
	})
	s.logger.Info("已生成外部連接碼", zap.String("code", sanitizer.Code(code)))
	return code
}

// ClearCode 移除外部連接碼
func (s *SessionService) ClearCode() {
	if s.store.Mutate(state.GlobalState.WithoutExternalCode) {
		s.logger.Info("已清除外部連接碼")
	}
}

// SetPeerCount 更新已連接的對端數量
func (s *SessionService) SetPeerCount(n int) {
	if n < 0 {
		n = 0
	}
	s.store.Mutate(func(g state.GlobalState) state.GlobalState {
		return g.WithPeerCount(n)
	})
}
