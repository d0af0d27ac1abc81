// Package config holds the optional yaml run configuration and the saved
// credential file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

type TestOptions struct {
	Count      int     `yaml:"count"`
	SpeedLimit float64 `yaml:"speed_limit"`
	DelayLimit int     `yaml:"delay_limit"`
	Threads    int     `yaml:"threads"`
}

type UploadOptions struct {
	Target string `yaml:"target"` // api, github or none
	Count  int    `yaml:"count"`
	Clear  bool   `yaml:"clear"`
}

type TelegramProxyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Type    string `yaml:"type"` // socks5 or reverse_proxy
	Address string `yaml:"address"`
	APIURL  string `yaml:"api_url"`
}

type TelegramConfig struct {
	BotToken string              `yaml:"bot_token"`
	ChatID   string              `yaml:"chat_id"`
	Proxy    TelegramProxyConfig `yaml:"proxy"`
}

type NotificationsConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Telegram TelegramConfig `yaml:"telegram"`
}

// Config is the yaml-backed run configuration. Everything here has a flag
// counterpart; the file just supplies defaults for scheduled runs.
type Config struct {
	Cron          string              `yaml:"cron"`
	Socks5Proxy   string              `yaml:"socks5_proxy"`
	IPv6          bool                `yaml:"test_ipv6"`
	Test          TestOptions         `yaml:"test_options"`
	Upload        UploadOptions       `yaml:"upload_options"`
	Notifications NotificationsConfig `yaml:"notifications"`
}

// Load reads and parses path, expanding environment references in secret
// fields. A missing file yields a zero config, not an error.
func Load(path string) (*Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.Notifications.Telegram.BotToken = os.ExpandEnv(cfg.Notifications.Telegram.BotToken)
	cfg.Notifications.Telegram.ChatID = os.ExpandEnv(cfg.Notifications.Telegram.ChatID)

	if cfg.Test.Count <= 0 {
		cfg.Test.Count = 10
	}
	if cfg.Test.SpeedLimit <= 0 {
		cfg.Test.SpeedLimit = 1.0
	}
	if cfg.Test.DelayLimit <= 0 {
		cfg.Test.DelayLimit = 1000
	}
	if cfg.Test.Threads <= 0 {
		cfg.Test.Threads = 200
	}
	if cfg.Upload.Count <= 0 {
		cfg.Upload.Count = 10
	}
	return &cfg, nil
}
