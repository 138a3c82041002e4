package roomcode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerate_Deterministic(t *testing.T) {
	g := Generator{
		Now:  func() time.Time { return time.UnixMilli(0) },
		Rand: func(int64) int64 { return 0 },
	}
	assert.Equal(t, "00000000", g.Generate())

	g.Rand = func(int64) int64 { return 35 }
	assert.Equal(t, "0000000Z", g.Generate())

	// 10ms 為一個時間單位
	g.Now = func() time.Time { return time.UnixMilli(10) }
	g.Rand = func(int64) int64 { return 0 }
	assert.Equal(t, "00001000", g.Generate())
}

func TestGenerate_TimestampWraps(t *testing.T) {
	// 36^5 個時間單位後回繞
	wrap := int64(36*36*36*36*36) * 10
	a := Generator{Now: func() time.Time { return time.UnixMilli(wrap + 10) }, Rand: func(int64) int64 { return 1 }}
	b := Generator{Now: func() time.Time { return time.UnixMilli(10) }, Rand: func(int64) int64 { return 1 }}
	assert.Equal(t, b.Generate(), a.Generate())
}

func TestGenerate_RandomBound(t *testing.T) {
	var bound int64
	g := Generator{
		Now:  func() time.Time { return time.UnixMilli(0) },
		Rand: func(n int64) int64 { bound = n; return n - 1 },
	}
	assert.Equal(t, "00000ZZZ", g.Generate())
	assert.Equal(t, int64(36*36*36), bound)
}

func TestNew_Valid(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := New()
		assert.Len(t, code, Length)
		assert.True(t, Valid(code), code)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("0A1B2C3D"))
	assert.False(t, Valid("0a1b2c3d"), "小寫不合法")
	assert.False(t, Valid("ABC"))
	assert.False(t, Valid("ABCDEFG-"))
}
