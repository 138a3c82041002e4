// Package sanitizer 日誌輸出前的脫敏工具
package sanitizer

import (
	"net/url"
	"regexp"
	"strings"
)

// 敏感字段關鍵詞 (Fast Path 過濾用)
var sensitiveKeywords = []string{
	"token", "secret", "password", "auth", "key", "ghp_", "gho_", "bearer",
}

var (
	// GitHub Token 與常見 API Key
	apiKeyRegex = regexp.MustCompile(`(?i)(ghp|gho|ghs|github_pat|sk|token)_[a-zA-Z0-9_-]{16,}`)
	// Authorization 頭
	bearerRegex = regexp.MustCompile(`(?i)(bearer|token)\s+[a-zA-Z0-9._-]{8,}`)
)

// Text 對自由文本脫敏，通常用於錯誤信息
func Text(s string) string {
	if !mightContainSensitiveData(s) {
		return s
	}
	s = bearerRegex.ReplaceAllStringFunc(s, func(match string) string {
		i := strings.IndexAny(match, " \t")
		return match[:i+1] + "***"
	})
	return apiKeyRegex.ReplaceAllStringFunc(s, APIKey)
}

func mightContainSensitiveData(s string) bool {
	lower := strings.ToLower(s)
	for _, kw := range sensitiveKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// URL 去掉用戶信息並隱藏查詢參數值，無法解析時整體隱藏
func URL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "***"
	}
	// url.User 會轉義 *，去掉後手工補回
	hasUser := u.User != nil
	u.User = nil
	if u.RawQuery != "" {
		q := u.Query()
		for k := range q {
			q.Set(k, "***")
		}
		// Encode 會轉義 *，手工拼接
		u.RawQuery = strings.ReplaceAll(q.Encode(), "%2A", "*")
	}
	u.Fragment = ""
	out := u.String()
	if hasUser {
		out = strings.Replace(out, "//", "//***@", 1)
	}
	return out
}

// Code 連接碼只保留首尾各一位
func Code(s string) string {
	return String(s, 1, 1)
}

// String 通用字符串脫敏 (保留首尾)
func String(s string, start, end int) string {
	if s == "" {
		return ""
	}
	if len(s) <= start+end {
		return "***"
	}
	return s[:start] + "***" + s[len(s)-end:]
}

// APIKey 保留前後四位
func APIKey(s string) string {
	if len(s) < 12 {
		return "***"
	}
	return s[:4] + "***" + s[len(s)-4:]
}
