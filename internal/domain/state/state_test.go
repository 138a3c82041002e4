package state

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuwamoe/wuwa-helper/internal/pkg/option"
)

func TestInitial(t *testing.T) {
	s := Initial()
	assert.Equal(t, ProcDetached, s.ProcState)
	assert.Equal(t, ServerStopped, s.ServerState)
	assert.True(t, s.ConnectionURL.IsNone())
	assert.True(t, s.ExternalConnectionCode.IsNone())
	assert.True(t, s.PeerCount.IsNone())
}

func TestGlobalState_Mutators(t *testing.T) {
	t.Run("服務啟動記錄地址", func(t *testing.T) {
		s := Initial().WithServerRunning("127.0.0.1:46821")
		assert.Equal(t, ServerRunning, s.ServerState)
		assert.Equal(t, option.Some("127.0.0.1:46821"), s.ConnectionURL)
	})

	t.Run("服務停止清除地址", func(t *testing.T) {
		s := Initial().WithServerRunning("127.0.0.1:46821").WithServerStopped()
		assert.Equal(t, ServerStopped, s.ServerState)
		assert.True(t, s.ConnectionURL.IsNone())
	})

	t.Run("修改不影響原值", func(t *testing.T) {
		base := Initial()
		_ = base.WithProcState(ProcAttached).WithPeerCount(3).WithExternalCode("ABCDEFGH")
		if diff := cmp.Diff(Initial(), base, cmp.Comparer(func(a, b GlobalState) bool { return a == b })); diff != "" {
			t.Errorf("原值被修改 (-want +got):\n%s", diff)
		}
	})

	t.Run("外部連接碼可清除", func(t *testing.T) {
		s := Initial().WithExternalCode("ABCDEFGH").WithoutExternalCode()
		assert.True(t, s.ExternalConnectionCode.IsNone())
	})
}

func TestStateCodes_String(t *testing.T) {
	assert.Equal(t, "attached", ProcAttached.String())
	assert.Equal(t, "detached", ProcDetached.String())
	assert.Equal(t, "running", ServerRunning.String())
	assert.Equal(t, "unknown(7)", ServerState(7).String())
	assert.Equal(t, "unknown(-1)", ProcState(-1).String())
}

func TestGlobalState_JSON(t *testing.T) {
	s := Initial().WithServerRunning("127.0.0.1:46821").WithPeerCount(2)
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"procState": 0,
		"serverState": 1,
		"connectionUrl": "127.0.0.1:46821",
		"peerCount": 2
	}`, string(data))
	assert.NotContains(t, string(data), "externalConnectionCode", "未設置的字段應省略")
}

func TestGlobalState_JSONRoundTrip(t *testing.T) {
	t.Run("初始狀態只有必填字段", func(t *testing.T) {
		data, err := json.Marshal(Initial())
		require.NoError(t, err)
		assert.JSONEq(t, `{"procState": 0, "serverState": 0}`, string(data))
	})

	t.Run("缺失與 null 都解析為 None", func(t *testing.T) {
		var got GlobalState
		require.NoError(t, json.Unmarshal([]byte(`{"procState":1,"serverState":1,"peerCount":null}`), &got))
		assert.Equal(t, GlobalState{ProcState: ProcAttached, ServerState: ServerRunning}, got)
		assert.True(t, got.ConnectionURL.IsNone())
		assert.True(t, got.PeerCount.IsNone())
	})

	t.Run("零值 peerCount 保留", func(t *testing.T) {
		data, err := json.Marshal(Initial().WithPeerCount(0))
		require.NoError(t, err)
		assert.Contains(t, string(data), `"peerCount":0`)
	})
}
