package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	toasts []Toast
}

func (r *recorder) Notify(t Toast) { r.toasts = append(r.toasts, t) }

var msgs = PromiseMessages{Loading: "loading", Success: "ok", Error: "fail"}

func TestPromise_Success(t *testing.T) {
	rec := &recorder{}
	called := false

	err := Promise(context.Background(), rec, msgs, func(ctx context.Context) error {
		called = true
		require.Len(t, rec.toasts, 1, "執行期間應已顯示 loading")
		assert.Equal(t, LevelLoading, rec.toasts[0].Level)
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, called)
	require.Len(t, rec.toasts, 2)
	assert.Equal(t, LevelSuccess, rec.toasts[1].Level)
	assert.Equal(t, "ok", rec.toasts[1].Message)
	assert.Equal(t, rec.toasts[0].ID, rec.toasts[1].ID, "應替換同一條提示")
}

func TestPromise_Failure(t *testing.T) {
	rec := &recorder{}
	boom := errors.New("boom")

	err := Promise(context.Background(), rec, msgs, func(context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
	require.Len(t, rec.toasts, 2)
	assert.Equal(t, LevelError, rec.toasts[1].Level)
	assert.Equal(t, "fail", rec.toasts[1].Message)
	assert.Equal(t, rec.toasts[0].ID, rec.toasts[1].ID)
}

func TestHelpers(t *testing.T) {
	rec := &recorder{}
	Success(rec, "a")
	Error(rec, "b")
	Info(rec, "c")

	require.Len(t, rec.toasts, 3)
	assert.Equal(t, []Level{LevelSuccess, LevelError, LevelInfo},
		[]Level{rec.toasts[0].Level, rec.toasts[1].Level, rec.toasts[2].Level})
	assert.NotEqual(t, rec.toasts[0].ID, rec.toasts[1].ID)
	for _, ts := range rec.toasts {
		assert.NotEmpty(t, ts.ID)
		assert.False(t, ts.CreatedAt.IsZero())
	}
}

func TestToast_ExpiresAt(t *testing.T) {
	now := time.Now()
	assert.True(t, Toast{Level: LevelLoading, CreatedAt: now}.ExpiresAt().IsZero())
	assert.Equal(t, now.Add(2*time.Second), Toast{Level: LevelSuccess, CreatedAt: now}.ExpiresAt())
	assert.Equal(t, now.Add(4*time.Second), Toast{Level: LevelError, CreatedAt: now}.ExpiresAt())
}

func TestNotifierFunc(t *testing.T) {
	var got Toast
	n := NotifierFunc(func(t Toast) { got = t })
	Info(n, "hello")
	assert.Equal(t, "hello", got.Message)
	assert.Equal(t, "info", got.Level.String())
}
