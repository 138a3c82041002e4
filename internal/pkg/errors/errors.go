package errors

import (
	"errors"
	"fmt"
)

// 預定義錯誤類型
var (
	// 配置相關
	ErrConfigNotFound    = errors.New("configuration file not found")
	ErrConfigInvalid     = errors.New("configuration is invalid")
	ErrConfigParseFailed = errors.New("failed to parse configuration")

	// 更新相關
	ErrNoMatchingAsset  = errors.New("no release asset matches this platform")
	ErrChecksumMismatch = errors.New("checksum mismatch")
	ErrBinaryNotFound   = errors.New("binary not found in archive")

	// 進程相關
	ErrRelaunchFailed = errors.New("failed to relaunch application")
)

// 錯誤碼
const (
	CodeUpdateCheck    = "UPDATE_CHECK"
	CodeUpdateDownload = "UPDATE_DOWNLOAD"
	CodeUpdateChecksum = "UPDATE_CHECKSUM"
	CodeUpdateInstall  = "UPDATE_INSTALL"
	CodeRelaunch       = "RELAUNCH"
	CodeConfig         = "CONFIG"
)

// Error 自定義錯誤類型
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New 創建新錯誤
func New(code, message string) error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap 包裝錯誤
func Wrap(err error, code, message string) error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf 返回錯誤鏈中最外層的錯誤碼，沒有則返回空串
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is 透傳標準庫，免得調用方同時導入兩個 errors 包
func Is(err, target error) bool {
	return errors.Is(err, target)
}
