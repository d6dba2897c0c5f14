package config

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Backend  BackendConfig  `json:"backend"`
	Polling  PollingConfig  `json:"polling"`
	Trading  TradingConfig  `json:"trading"`
	Telegram TelegramConfig `json:"telegram"`
	Storage  StorageConfig  `json:"storage"`
}

type BackendConfig struct {
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type PollingConfig struct {
	SniperStatusSeconds int `json:"sniper_status_seconds"`
	NetworkSeconds      int `json:"network_seconds"`
}

type TradingConfig struct {
	DefaultSlippagePct float64  `json:"default_slippage_pct"`
	DefaultLeaveSOL    float64  `json:"default_leave_sol"`
	DefaultPlatforms   []string `json:"default_platforms"`
}

type TelegramConfig struct {
	BotToken string `json:"bot_token"`
	ChatID   int64  `json:"chat_id"`
}

type StorageConfig struct {
	Path string `json:"path"`
}

// Load reads the JSON config file and applies .env / environment
// overrides on top. A missing .env file is not an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	godotenv.Load()
	applyEnv(&cfg)

	// Set defaults if not specified
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = "http://localhost:8000"
	}
	if cfg.Backend.TimeoutSeconds == 0 {
		cfg.Backend.TimeoutSeconds = 30
	}
	if cfg.Polling.SniperStatusSeconds == 0 {
		cfg.Polling.SniperStatusSeconds = 3
	}
	if cfg.Polling.NetworkSeconds == 0 {
		cfg.Polling.NetworkSeconds = 10
	}
	if cfg.Trading.DefaultSlippagePct == 0 {
		cfg.Trading.DefaultSlippagePct = 1.0
	}
	if cfg.Trading.DefaultLeaveSOL == 0 {
		cfg.Trading.DefaultLeaveSOL = 0.001
	}
	if len(cfg.Trading.DefaultPlatforms) == 0 {
		cfg.Trading.DefaultPlatforms = []string{"raydium", "pumpfun"}
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = "data/control.db"
	}

	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BACKEND_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Telegram.ChatID = id
		}
	}
	if v := os.Getenv("STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
}
