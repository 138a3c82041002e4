package state

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wuwamoe/wuwa-helper/internal/pkg/sanitizer"
)

// subscriberBuffer 每個訂閱者的緩衝大小，滿時丟棄最舊的值
const subscriberBuffer = 8

// Store 全局狀態容器，僅在值發生變化時通知訂閱者
type Store struct {
	log *zap.Logger

	mu     sync.Mutex
	value  GlobalState
	subs   map[int]chan GlobalState
	nextID int
}

// NewStore 創建狀態容器
func NewStore(initial GlobalState, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		log:   log,
		value: initial,
		subs:  make(map[int]chan GlobalState),
	}
}

// Get 返回當前狀態的副本
func (s *Store) Get() GlobalState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set 替換狀態，返回是否發生變化
func (s *Store) Set(v GlobalState) bool {
	return s.Mutate(func(GlobalState) GlobalState { return v })
}

// Mutate 在鎖內基於舊值計算新值，返回是否發生變化
func (s *Store) Mutate(fn func(GlobalState) GlobalState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := fn(s.value)
	if next == s.value {
		return false
	}
	s.value = next

	s.log.Debug("全局狀態已變更",
		zap.Stringer("proc_state", next.ProcState),
		zap.Stringer("server_state", next.ServerState),
		zap.String("connection_url", sanitizer.URL(next.ConnectionURL.OrElse(""))),
		zap.String("external_code", sanitizer.Code(next.ExternalConnectionCode.OrElse(""))),
		zap.Stringer("peer_count", next.PeerCount),
	)

	for _, ch := range s.subs {
		publish(ch, next)
	}
	return true
}

// Subscribe 訂閱狀態變更，返回的取消函數可重複調用
func (s *Store) Subscribe() (<-chan GlobalState, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan GlobalState, subscriberBuffer)
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// publish 非阻塞投遞；通道已滿時丟棄最舊的值
// 只在持有 Store 鎖時調用，因此不存在並發寫入
func publish(ch chan GlobalState, v GlobalState) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
