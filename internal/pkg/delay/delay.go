package delay

import (
	"context"
	"time"
)

// Milliseconds 把毫秒數轉為 time.Duration
func Milliseconds(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// Delay 阻塞直到 d 過去，ctx 取消時提前返回 ctx.Err()
//
// d <= 0 時仍經過一次計時器調度，不會同步返回。
func Delay(ctx context.Context, d time.Duration) error {
	if d < 0 {
		d = 0
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
