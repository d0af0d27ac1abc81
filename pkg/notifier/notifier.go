// Package notifier reports scheduled-run outcomes over Telegram.
package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/proxy"

	"cfst-runner/pkg/config"
)

type Notifier interface {
	Notify(title, message string) error
}

// Noop swallows notifications when none are configured.
type Noop struct{}

func (Noop) Notify(string, string) error { return nil }

type TelegramNotifier struct {
	chatID     string
	apiURL     string
	httpClient *http.Client
}

// NewTelegram builds a notifier from config, honoring either a SOCKS5 proxy
// or a reverse-proxied API base.
func NewTelegram(cfg config.TelegramConfig) (*TelegramNotifier, error) {
	apiBase := "https://api.telegram.org"
	client := &http.Client{Timeout: 30 * time.Second}

	if cfg.Proxy.Enabled {
		switch cfg.Proxy.Type {
		case "socks5":
			if cfg.Proxy.Address == "" {
				return nil, fmt.Errorf("socks5 proxy address is not set")
			}
			dialer, err := proxy.SOCKS5("tcp", cfg.Proxy.Address, nil, proxy.Direct)
			if err != nil {
				return nil, fmt.Errorf("socks5 dialer: %w", err)
			}
			client.Transport = &http.Transport{Dial: dialer.Dial}
		case "reverse_proxy":
			if cfg.Proxy.APIURL == "" {
				return nil, fmt.Errorf("reverse proxy api_url is not set")
			}
			apiBase = strings.TrimRight(cfg.Proxy.APIURL, "/")
		default:
			return nil, fmt.Errorf("invalid telegram proxy type: %s", cfg.Proxy.Type)
		}
	}

	return &TelegramNotifier{
		chatID:     cfg.ChatID,
		apiURL:     fmt.Sprintf("%s/bot%s/sendMessage", apiBase, cfg.BotToken),
		httpClient: client,
	}, nil
}

func (t *TelegramNotifier) Notify(title, message string) error {
	body, _ := json.Marshal(map[string]string{
		"chat_id":    t.chatID,
		"text":       fmt.Sprintf("<b>%s</b>\n\n%s", title, message),
		"parse_mode": "HTML",
	})

	req, err := http.NewRequest(http.MethodPost, t.apiURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram notification failed with status: %s", resp.Status)
	}
	log.Println("telegram notification sent")
	return nil
}
