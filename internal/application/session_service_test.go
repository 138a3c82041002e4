package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/wuwamoe/wuwa-helper/internal/domain/roomcode"
	"github.com/wuwamoe/wuwa-helper/internal/domain/state"
)

func TestSessionService(t *testing.T) {
	store := state.NewStore(state.Initial(), zap.NewNop())
	gen := roomcode.Generator{
		Now:  func() time.Time { return time.UnixMilli(0) },
		Rand: func(n int64) int64 { return 35 },
	}
	svc := NewSessionService(store, gen, zap.NewNop())

	t.Run("生成連接碼", func(t *testing.T) {
		code := svc.RegenerateCode()
		assert.Equal(t, "0000000Z", code)
		got, ok := store.Get().ExternalConnectionCode.Get()
		assert.True(t, ok)
		assert.Equal(t, code, got)
	})

	t.Run("清除連接碼", func(t *testing.T) {
		svc.ClearCode()
		assert.True(t, store.Get().ExternalConnectionCode.IsNone())
		// 重複清除不報錯
		svc.ClearCode()
	})

	t.Run("對端數量不為負", func(t *testing.T) {
		svc.SetPeerCount(-3)
		n, _ := store.Get().PeerCount.Get()
		assert.Equal(t, 0, n)

		svc.SetPeerCount(2)
		n, _ = store.Get().PeerCount.Get()
		assert.Equal(t, 2, n)
	})
}
