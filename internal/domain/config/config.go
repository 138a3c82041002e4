package config

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/wuwamoe/wuwa-helper/internal/pkg/delay"
	"github.com/wuwamoe/wuwa-helper/internal/pkg/logger"
)

// ConfigVersionLatest 當前配置格式版本
const ConfigVersionLatest = 1

// Repository 配置倉庫接口
type Repository interface {
	Load(ctx context.Context) (*Config, error)
	Save(ctx context.Context, cfg *Config) error
}

// Config 應用配置
type Config struct {
	Version int           `yaml:"version"`
	Log     logger.Config `yaml:"log"`
	Updater UpdaterConfig `yaml:"updater"`
	Server  ServerConfig  `yaml:"server"`
}

// UpdaterConfig 自動更新配置
type UpdaterConfig struct {
	// Repo GitHub 倉庫，格式 owner/name
	Repo       string `yaml:"repo"`
	APIBaseURL string `yaml:"api_base_url"`
	// AssetPattern 發佈資源名模板，支持 {name} {version} {os} {arch}
	AssetPattern    string `yaml:"asset_pattern"`
	ChecksumAsset   string `yaml:"checksum_asset"`
	RelaunchDelayMS int    `yaml:"relaunch_delay_ms"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
	CheckOnStartup  bool   `yaml:"check_on_startup"`
}

// ServerConfig 本地通信服務地址，用於展示連接地址
type ServerConfig struct {
	IP   string `yaml:"ip"`
	Port int    `yaml:"port"`
}

// Addr 返回 ip:port
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.IP, strconv.Itoa(s.Port))
}

// RelaunchDelay 更新成功到重啟之間的等待
func (u UpdaterConfig) RelaunchDelay() time.Duration {
	return delay.Milliseconds(u.RelaunchDelayMS)
}

// Timeout 單次 HTTP 請求超時
func (u UpdaterConfig) Timeout() time.Duration {
	return time.Duration(u.TimeoutSeconds) * time.Second
}

// DefaultConfig 返回默認配置
func DefaultConfig() *Config {
	return &Config{
		Version: ConfigVersionLatest,
		Log:     logger.DefaultConfig(),
		Updater: UpdaterConfig{
			Repo:            "wuwamoe/wuwa-helper",
			APIBaseURL:      "https://api.github.com",
			AssetPattern:    "{name}_{version}_{os}_{arch}.tar.gz",
			ChecksumAsset:   "checksums.txt",
			RelaunchDelayMS: 5000,
			TimeoutSeconds:  30,
			CheckOnStartup:  true,
		},
		Server: ServerConfig{
			IP:   "127.0.0.1",
			Port: 46821,
		},
	}
}

// FillDefaults 用默認值補全缺失字段
func (c *Config) FillDefaults() {
	def := DefaultConfig()

	if c.Version == 0 {
		c.Version = def.Version
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.MaxSize == 0 {
		c.Log.MaxSize = def.Log.MaxSize
	}
	if c.Updater.Repo == "" {
		c.Updater.Repo = def.Updater.Repo
	}
	if c.Updater.APIBaseURL == "" {
		c.Updater.APIBaseURL = def.Updater.APIBaseURL
	}
	if c.Updater.AssetPattern == "" {
		c.Updater.AssetPattern = def.Updater.AssetPattern
	}
	if c.Updater.RelaunchDelayMS == 0 {
		c.Updater.RelaunchDelayMS = def.Updater.RelaunchDelayMS
	}
	if c.Updater.TimeoutSeconds == 0 {
		c.Updater.TimeoutSeconds = def.Updater.TimeoutSeconds
	}
	if c.Server.IP == "" {
		c.Server.IP = def.Server.IP
	}
	if c.Server.Port == 0 {
		c.Server.Port = def.Server.Port
	}
}

// Validate 驗證配置
func (c *Config) Validate() error {
	if c.Version > ConfigVersionLatest {
		return fmt.Errorf("配置版本過高 (v%d)，當前程序僅支持 v%d", c.Version, ConfigVersionLatest)
	}
	if owner, name, ok := strings.Cut(c.Updater.Repo, "/"); !ok || owner == "" || name == "" {
		return fmt.Errorf("無效的倉庫名: %q", c.Updater.Repo)
	}
	if c.Updater.RelaunchDelayMS < 0 {
		return fmt.Errorf("重啟延遲不能為負數: %d", c.Updater.RelaunchDelayMS)
	}
	if c.Updater.TimeoutSeconds < 0 {
		return fmt.Errorf("超時不能為負數: %d", c.Updater.TimeoutSeconds)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("無效的端口: %d", c.Server.Port)
	}
	if net.ParseIP(c.Server.IP) == nil {
		return fmt.Errorf("無效的 IP 地址: %q", c.Server.IP)
	}
	return nil
}

// DeepCopy 深拷貝（目前所有字段均為值類型）
func (c *Config) DeepCopy() *Config {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
