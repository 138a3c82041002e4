package state

import (
	"encoding/json"
	"fmt"

	"github.com/wuwamoe/wuwa-helper/internal/pkg/option"
)

// ProcState 遊戲進程附加狀態
type ProcState int

const (
	ProcDetached ProcState = 0
	ProcAttached ProcState = 1
)

func (p ProcState) String() string {
	switch p {
	case ProcDetached:
		return "detached"
	case ProcAttached:
		return "attached"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

// ServerState 本地通信服務狀態
type ServerState int

const (
	ServerStopped ServerState = 0
	ServerRunning ServerState = 1
)

func (s ServerState) String() string {
	switch s {
	case ServerStopped:
		return "stopped"
	case ServerRunning:
		return "running"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// GlobalState 應用狀態快照，值類型，可直接用 == 比較
type GlobalState struct {
	ProcState              ProcState             `json:"procState"`
	ServerState            ServerState           `json:"serverState"`
	ConnectionURL          option.Option[string] `json:"connectionUrl"`
	ExternalConnectionCode option.Option[string] `json:"externalConnectionCode"`
	PeerCount              option.Option[int]    `json:"peerCount"`
}

// MarshalJSON 省略未設置的可選字段
func (s GlobalState) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ProcState              ProcState   `json:"procState"`
		ServerState            ServerState `json:"serverState"`
		ConnectionURL          *string     `json:"connectionUrl,omitempty"`
		ExternalConnectionCode *string     `json:"externalConnectionCode,omitempty"`
		PeerCount              *int        `json:"peerCount,omitempty"`
	}{
		ProcState:              s.ProcState,
		ServerState:            s.ServerState,
		ConnectionURL:          s.ConnectionURL.Ptr(),
		ExternalConnectionCode: s.ExternalConnectionCode.Ptr(),
		PeerCount:              s.PeerCount.Ptr(),
	})
}

// Initial 啟動時的默認狀態
func Initial() GlobalState {
	return GlobalState{
		ProcState:   ProcDetached,
		ServerState: ServerStopped,
	}
}

// WithProcState 返回更新了進程狀態的副本
func (s GlobalState) WithProcState(p ProcState) GlobalState {
	s.ProcState = p
	return s
}

// WithServerRunning 服務啟動並記錄監聽地址
func (s GlobalState) WithServerRunning(url string) GlobalState {
	s.ServerState = ServerRunning
	s.ConnectionURL = option.Some(url)
	return s
}

// WithServerStopped 服務停止，同時清除連接地址
func (s GlobalState) WithServerStopped() GlobalState {
	s.ServerState = ServerStopped
	s.ConnectionURL = option.None[string]()
	return s
}

func (s GlobalState) WithExternalCode(code string) GlobalState {
	s.ExternalConnectionCode = option.Some(code)
	return s
}

func (s GlobalState) WithoutExternalCode() GlobalState {
	s.ExternalConnectionCode = option.None[string]()
	return s
}

func (s GlobalState) WithPeerCount(n int) GlobalState {
	s.PeerCount = option.Some(n)
	return s
}
