// Package roomcode 生成外部連接使用的 8 位 Base36 房間碼。
//
// 前 5 位來自 10ms 精度的時間戳，後 3 位為隨機數。
package roomcode

import (
	"math/rand/v2"
	"strings"
	"time"
)

const (
	Length = 8

	timestampChars = 5
	randomChars    = 3

	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

var (
	timestampModulo = pow36(timestampChars)
	randomModulo    = pow36(randomChars)
)

// Generator 可注入時鐘與隨機源
type Generator struct {
	Now  func() time.Time
	Rand func(n int64) int64
}

// New 使用系統時鐘與全局隨機源生成房間碼
func New() string {
	return Generator{}.Generate()
}

// Generate 生成房間碼
func (g Generator) Generate() string {
	now := g.Now
	if now == nil {
		now = time.Now
	}
	rnd := g.Rand
	if rnd == nil {
		rnd = rand.Int64N
	}

	interval := uint64(now().UnixMilli()) / 10
	timePart := interval % timestampModulo
	randomPart := uint64(rnd(int64(randomModulo))) % randomModulo

	return encode(timePart*randomModulo+randomPart, Length)
}

// Valid 檢查長度與字符集
func Valid(code string) bool {
	if len(code) != Length {
		return false
	}
	for _, c := range code {
		if !strings.ContainsRune(alphabet, c) {
			return false
		}
	}
	return true
}

func encode(value uint64, length int) string {
	buf := make([]byte, length)
	for i := length - 1; i >= 0; i-- {
		buf[i] = alphabet[value%36]
		value /= 36
	}
	return string(buf)
}

func pow36(n int) uint64 {
	v := uint64(1)
	for i := 0; i < n; i++ {
		v *= 36
	}
	return v
}
