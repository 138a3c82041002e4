package updater

import (
	"archive/tar"
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wuwamoe/wuwa-helper/internal/pkg/errors"
	"github.com/wuwamoe/wuwa-helper/internal/pkg/fsutil"
)

// maxDownloadSize 單個資源的大小上限
const maxDownloadSize = 256 << 20

// Release 一個比當前新的發佈
type Release struct {
	version   string
	asset     githubAsset
	checksums *githubAsset
	checker   *GitHubChecker
}

func (r *Release) Version() string { return r.version }

// AssetName 選中的資源文件名
func (r *Release) AssetName() string { return r.asset.Name }

// DownloadAndInstall 下載、校驗並原子替換可執行文件
func (r *Release) DownloadAndInstall(ctx context.Context) error {
	cfg := r.checker.cfg
	log := r.checker.log.With(zap.String("version", r.version), zap.String("asset", r.asset.Name))

	if cfg.TargetPath == "" {
		return errors.New(errors.CodeUpdateInstall, "未指定安裝路徑")
	}

	var payload, sums []byte
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		payload, err = r.download(gctx, r.asset.BrowserDownloadURL)
		return err
	})
	if r.checksums != nil {
		g.Go(func() error {
			var err error
			sums, err = r.download(gctx, r.checksums.BrowserDownloadURL)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return errors.Wrap(err, errors.CodeUpdateDownload, "下載更新失敗")
	}
	log.Info("更新資源已下載", zap.Int("bytes", len(payload)))

	if r.checksums != nil {
		if err := verifyChecksum(sums, r.asset.Name, payload); err != nil {
			return errors.Wrap(err, errors.CodeUpdateChecksum, "校驗更新失敗")
		}
		log.Debug("SHA-256 校驗通過")
	}

	bin := payload
	if isArchive(r.asset.Name) {
		var err error
		bin, err = extractBinary(payload, binaryNames(cfg))
		if err != nil {
			return errors.Wrap(err, errors.CodeUpdateInstall, "解壓更新失敗")
		}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.TargetPath), 0o755); err != nil {
		return errors.Wrap(err, errors.CodeUpdateInstall, "創建安裝目錄失敗")
	}
	if cfg.Backup != nil {
		if _, err := os.Stat(cfg.TargetPath); err == nil {
			// 備份失敗不阻止更新
			if err := cfg.Backup.Backup(cfg.TargetPath, cfg.CurrentVersion); err != nil {
				log.Warn("備份舊版本失敗", zap.Error(err))
			}
		}
	}

	if err := fsutil.ReplaceExecutable(cfg.TargetPath, bin); err != nil {
		return errors.Wrap(err, errors.CodeUpdateInstall, "替換可執行文件失敗")
	}

	log.Info("更新安裝成功", zap.String("path", cfg.TargetPath))
	return nil
}

func (r *Release) download(ctx context.Context, url string) ([]byte, error) {
	cfg := r.checker.cfg

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/octet-stream")
	req.Header.Set("User-Agent", userAgent(cfg))

	resp, err := cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("下載請求失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("下載失敗，HTTP 狀態碼: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize+1))
	if err != nil {
		return nil, fmt.Errorf("讀取響應失敗: %w", err)
	}
	if len(data) > maxDownloadSize {
		return nil, fmt.Errorf("資源超過大小上限 %d", maxDownloadSize)
	}
	return data, nil
}

// verifyChecksum 按 sha256sum 輸出格式查找並比對
func verifyChecksum(sums []byte, name string, payload []byte) error {
	want := ""
	sc := bufio.NewScanner(bytes.NewReader(sums))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) != 2 {
			continue
		}
		if strings.TrimPrefix(fields[1], "*") == name {
			want = strings.ToLower(fields[0])
			break
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if want == "" {
		return fmt.Errorf("%w: %s 不在校驗文件中", errors.ErrChecksumMismatch, name)
	}

	sum := sha256.Sum256(payload)
	if got := hex.EncodeToString(sum[:]); got != want {
		return fmt.Errorf("%w: want %s, got %s", errors.ErrChecksumMismatch, want, got)
	}
	return nil
}

func binaryNames(cfg Config) []string {
	names := []string{cfg.Name}
	if cfg.GOOS == "windows" {
		names = append(names, cfg.Name+".exe")
	}
	return names
}

func extractBinary(archive []byte, names []string) ([]byte, error) {
	gzr, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return nil, fmt.Errorf("創建 gzip reader 失敗: %w", err)
	}
	defer gzr.Close()

	tr := tar.NewReader(gzr)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("讀取 tar 失敗: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}

		base := path.Base(header.Name)
		for _, n := range names {
			if base == n {
				return io.ReadAll(io.LimitReader(tr, maxDownloadSize))
			}
		}
	}

	return nil, errors.ErrBinaryNotFound
}
