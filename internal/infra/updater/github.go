// Package updater 基於 GitHub Releases 的自更新實現。
package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	goversion "github.com/hashicorp/go-version"
	"go.uber.org/zap"

	"github.com/wuwamoe/wuwa-helper/internal/domain/update"
	"github.com/wuwamoe/wuwa-helper/internal/pkg/errors"
)

const defaultAPIBaseURL = "https://api.github.com"

// Backuper 保存即將被覆蓋的文件
type Backuper interface {
	Backup(srcPath, tag string) error
}

// Config 更新檢查配置
type Config struct {
	APIBaseURL string
	// Repo 格式 owner/name
	Repo string
	// Name 二進制名，用於資源名模板與壓縮包內查找
	Name           string
	CurrentVersion string
	AssetPattern   string
	// ChecksumAsset 為空時跳過校驗
	ChecksumAsset string
	// TargetPath 被替換的可執行文件
	TargetPath string
	// Backup 替換前保存舊版本，可為空
	Backup Backuper

	GOOS   string
	GOARCH string

	HTTPClient *http.Client
	Timeout    time.Duration
}

func (c *Config) fillDefaults() {
	if c.APIBaseURL == "" {
		c.APIBaseURL = defaultAPIBaseURL
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")
	if c.AssetPattern == "" {
		c.AssetPattern = "{name}_{version}_{os}_{arch}.tar.gz"
	}
	if c.GOOS == "" {
		c.GOOS = runtime.GOOS
	}
	if c.GOARCH == "" {
		c.GOARCH = runtime.GOARCH
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
}

type githubAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
}

type githubRelease struct {
	TagName string        `json:"tag_name"`
	Assets  []githubAsset `json:"assets"`
}

// GitHubChecker 查詢倉庫最新發佈
type GitHubChecker struct {
	cfg Config
	log *zap.Logger
}

var _ update.Checker = (*GitHubChecker)(nil)

func NewGitHubChecker(cfg Config, log *zap.Logger) *GitHubChecker {
	cfg.fillDefaults()
	return &GitHubChecker{cfg: cfg, log: log}
}

// Check 有新版本時返回可安裝的 Release，否則返回 nil
func (c *GitHubChecker) Check(ctx context.Context) (update.Update, error) {
	rel, err := c.fetchLatest(ctx)
	if err != nil {
		return nil, err
	}
	if rel.TagName == "" {
		c.log.Debug("最新發佈沒有標籤，視為無更新")
		return nil, nil
	}

	latest, err := goversion.NewVersion(rel.TagName)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUpdateCheck, fmt.Sprintf("無法解析版本號 %q", rel.TagName))
	}
	current := c.currentVersion()

	c.log.Debug("版本比較",
		zap.String("current", current.String()),
		zap.String("latest", latest.String()),
	)
	if !latest.GreaterThan(current) {
		return nil, nil
	}

	asset, ok := c.matchAsset(rel.Assets, latest.String())
	if !ok {
		return nil, errors.Wrap(errors.ErrNoMatchingAsset, errors.CodeUpdateCheck,
			fmt.Sprintf("%s/%s 沒有可用的資源", c.cfg.GOOS, c.cfg.GOARCH))
	}

	r := &Release{
		version: latest.String(),
		asset:   asset,
		checker: c,
	}
	if c.cfg.ChecksumAsset != "" {
		for _, a := range rel.Assets {
			if a.Name == c.cfg.ChecksumAsset {
				sum := a
				r.checksums = &sum
				break
			}
		}
	}
	return r, nil
}

func (c *GitHubChecker) currentVersion() *goversion.Version {
	v, err := goversion.NewVersion(c.cfg.CurrentVersion)
	if err != nil {
		// 開發版本等非法版本號視為 0.0.0，總能看到更新
		return goversion.Must(goversion.NewVersion("0.0.0"))
	}
	return v
}

func (c *GitHubChecker) fetchLatest(ctx context.Context) (*githubRelease, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", c.cfg.APIBaseURL, c.cfg.Repo)

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUpdateCheck, "創建請求失敗")
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent(c.cfg))

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUpdateCheck, "請求 GitHub API 失敗")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.CodeUpdateCheck, fmt.Sprintf("GitHub API 返回狀態碼 %d", resp.StatusCode))
	}

	var rel githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, errors.Wrap(err, errors.CodeUpdateCheck, "解析發佈信息失敗")
	}
	return &rel, nil
}

// assetNames 按優先級返回當前平台可接受的資源名
func (c *GitHubChecker) assetNames(version string) []string {
	name := strings.NewReplacer(
		"{name}", c.cfg.Name,
		"{version}", version,
		"{os}", c.cfg.GOOS,
		"{arch}", c.cfg.GOARCH,
	).Replace(c.cfg.AssetPattern)

	names := []string{name}
	if raw := trimArchiveExt(name); raw != name {
		names = append(names, raw)
		if c.cfg.GOOS == "windows" {
			names = append(names, raw+".exe")
		}
	}
	return names
}

func (c *GitHubChecker) matchAsset(assets []githubAsset, version string) (githubAsset, bool) {
	for _, want := range c.assetNames(version) {
		for _, a := range assets {
			if strings.EqualFold(a.Name, want) {
				return a, true
			}
		}
	}
	return githubAsset{}, false
}

func trimArchiveExt(name string) string {
	for _, ext := range []string{".tar.gz", ".tgz"} {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

func isArchive(name string) bool {
	return trimArchiveExt(name) != name
}

func userAgent(cfg Config) string {
	name := cfg.Name
	if name == "" {
		name = "updater"
	}
	return name + "/" + strings.TrimPrefix(cfg.CurrentVersion, "v")
}
