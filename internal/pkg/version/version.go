package version

import (
	"fmt"
	"runtime"
	"strings"
)

// 構建時通過 -ldflags "-X" 注入
var (
	Version   = "dev"
	BuildTime = ""
	GoVersion = runtime.Version()
	GitCommit = ""
)

func Short() string {
	v := "v" + strings.TrimPrefix(Version, "v")
	if GitCommit != "" {
		return fmt.Sprintf("%s (%s)", v, GitCommit)
	}
	return v
}

func Info() string {
	return fmt.Sprintf(
		"wuwa-helper %s\nBuild Time: %s\nGo Version: %s\nGit Commit: %s\nPlatform: %s/%s",
		Short(), BuildTime, GoVersion, GitCommit, runtime.GOOS, runtime.GOARCH,
	)
}
