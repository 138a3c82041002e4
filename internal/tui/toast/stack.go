// Package toast 在 TUI 中顯示提示消息。
package toast

import (
	"time"

	"github.com/wuwamoe/wuwa-helper/internal/domain/notify"
)

// MaxVisible 同時顯示的提示上限
const MaxVisible = 5

// Stack 按到達順序排列的提示；同 ID 原位替換
type Stack struct {
	items []notify.Toast
	max   int
}

func NewStack(max int) *Stack {
	if max <= 0 {
		max = MaxVisible
	}
	return &Stack{max: max}
}

// Upsert 插入或替換提示，超出上限時丟棄最舊的
func (s *Stack) Upsert(t notify.Toast) {
	for i := range s.items {
		if s.items[i].ID == t.ID {
			s.items[i] = t
			return
		}
	}
	s.items = append(s.items, t)
	if over := len(s.items) - s.max; over > 0 {
		s.items = append(s.items[:0], s.items[over:]...)
	}
}

// Expire 移除已過期的提示，返回是否有變化
func (s *Stack) Expire(now time.Time) bool {
	kept := s.items[:0]
	for _, t := range s.items {
		exp := t.ExpiresAt()
		if !exp.IsZero() && !now.Before(exp) {
			continue
		}
		kept = append(kept, t)
	}
	changed := len(kept) != len(s.items)
	s.items = kept
	return changed
}

// Items 返回副本
func (s *Stack) Items() []notify.Toast {
	return append([]notify.Toast(nil), s.items...)
}

func (s *Stack) Len() int { return len(s.items) }

// HasLoading 是否有進行中的提示，用於驅動 spinner
func (s *Stack) HasLoading() bool {
	for _, t := range s.items {
		if t.Level == notify.LevelLoading {
			return true
		}
	}
	return false
}
