// Package update 定義自更新流程依賴的外部協作者。
package update

import "context"

// Update 一個可安裝的新版本
type Update interface {
	Version() string
	DownloadAndInstall(ctx context.Context) error
}

// Checker 查詢是否有新版本；沒有時返回 nil, nil
type Checker interface {
	Check(ctx context.Context) (Update, error)
}

// Relauncher 重啟應用；成功時通常不會返回
type Relauncher interface {
	Relaunch(ctx context.Context) error
}
