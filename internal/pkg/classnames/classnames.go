// Package classnames 組合 Tailwind 類名：先按條件拼接，再消解衝突的工具類。
package classnames

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	twmerge "github.com/Oudwins/tailwind-merge-go"
)

// Cond 條件類名，When 為 true 時才輸出
type Cond struct {
	Class string
	When  bool
}

// If 創建條件類名
func If(when bool, class string) Cond {
	return Cond{Class: class, When: when}
}

// Cn 拼接並合併類名，同組衝突時保留最後一個
func Cn(inputs ...any) string {
	joined := Clsx(inputs...)
	if joined == "" {
		return ""
	}
	return inInputOrder(joined, twmerge.Merge(joined))
}

// inInputOrder 按各類名在輸入中最後出現的位置重排合併結果
func inInputOrder(joined, merged string) string {
	survivors := strings.Fields(merged)
	if len(survivors) < 2 {
		return merged
	}
	last := make(map[string]int, len(survivors))
	for i, class := range strings.Fields(joined) {
		last[class] = i
	}
	sort.SliceStable(survivors, func(i, j int) bool {
		pi, oki := last[survivors[i]]
		pj, okj := last[survivors[j]]
		if !oki || !okj {
			return oki && !okj
		}
		return pi < pj
	})
	return strings.Join(survivors, " ")
}

// Clsx 按條件拼接類名，不做衝突處理
//
// 支持 string、數字、[]string、[]any、map[string]bool、map[string]any、
// Cond、fmt.Stringer 及其嵌套；bool 與 nil 被忽略，其他類型靜默跳過。
func Clsx(inputs ...any) string {
	var parts []string
	for _, in := range inputs {
		parts = appendValue(parts, in)
	}
	return strings.Join(parts, " ")
}

func appendValue(parts []string, v any) []string {
	switch val := v.(type) {
	case nil, bool:
		return parts
	case string:
		return appendFields(parts, val)
	case Cond:
		if val.When {
			return appendFields(parts, val.Class)
		}
		return parts
	case []string:
		for _, s := range val {
			parts = appendFields(parts, s)
		}
		return parts
	case []Cond:
		for _, c := range val {
			parts = appendValue(parts, c)
		}
		return parts
	case []any:
		for _, item := range val {
			parts = appendValue(parts, item)
		}
		return parts
	case map[string]bool:
		keys := make([]string, 0, len(val))
		for k, on := range val {
			if on {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			parts = appendFields(parts, k)
		}
		return parts
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k, on := range val {
			if truthy(on) {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			parts = appendFields(parts, k)
		}
		return parts
	case int:
		return appendInt(parts, int64(val))
	case float64:
		if val == 0 || math.IsNaN(val) {
			return parts
		}
		return append(parts, strconv.FormatFloat(val, 'f', -1, 64))
	case int64:
		return appendInt(parts, val)
	case fmt.Stringer:
		return appendFields(parts, val.String())
	default:
		return parts
	}
}

// 數字 0 視為假值
func appendInt(parts []string, n int64) []string {
	if n == 0 {
		return parts
	}
	return append(parts, strconv.FormatInt(n, 10))
}

// truthy 對象值的真假判斷：false、0、NaN、空串與 nil 為假
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0 && !math.IsNaN(val)
	default:
		return true
	}
}

func appendFields(parts []string, s string) []string {
	return append(parts, strings.Fields(s)...)
}
