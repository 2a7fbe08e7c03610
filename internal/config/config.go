package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"MarketPulse/internal/model"
)

// Instrument is one watchlist entry: display name, provider symbol, and
// optional per-instrument classification overrides (0 means "use default").
type Instrument struct {
	Name             string  `yaml:"name"`
	Symbol           string  `yaml:"symbol"`
	CautionThreshold float64 `yaml:"caution_threshold"`
	DangerThreshold  float64 `yaml:"danger_threshold"`
}

// Thresholds resolves the effective classification bands for this
// instrument, falling back to the defaults where no override is set.
func (i Instrument) Thresholds() model.Thresholds {
	th := model.DefaultThresholds
	if i.CautionThreshold > 0 {
		th.Caution = i.CautionThreshold
	}
	if i.DangerThreshold > 0 {
		th.Danger = i.DangerThreshold
	}
	return th
}

// Config holds all application configuration.
type Config struct {
	Watchlist []Instrument `yaml:"watchlist"`
	Composite struct {
		Name        string `yaml:"name"`
		Numerator   string `yaml:"numerator"`
		Denominator string `yaml:"denominator"`
	} `yaml:"composite"`
	DataSource struct {
		BaseURL             string `yaml:"base_url"`
		APIKey              string `yaml:"api_key"`
		LookbackDays        int    `yaml:"lookback_days"`
		FetchTimeoutSeconds int    `yaml:"fetch_timeout_seconds"`
	} `yaml:"data_source"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Report struct {
		OutputDir    string `yaml:"output_dir"`
		RecentWindow int    `yaml:"recent_window"`
	} `yaml:"report"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Metrics struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"metrics"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.Metrics.ListenAddr = v
	}
	if v := os.Getenv("FETCH_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DataSource.FetchTimeoutSeconds = n
		}
	}

	// Defaults
	if len(cfg.Watchlist) == 0 {
		cfg.Watchlist = DefaultWatchlist()
	}
	if cfg.Composite.Numerator == "" {
		cfg.Composite.Numerator = "HYG"
	}
	if cfg.Composite.Denominator == "" {
		cfg.Composite.Denominator = "LQD"
	}
	if cfg.Composite.Name == "" {
		cfg.Composite.Name = cfg.Composite.Numerator + "/" + cfg.Composite.Denominator
	}
	if cfg.DataSource.LookbackDays == 0 {
		cfg.DataSource.LookbackDays = 365
	}
	if cfg.DataSource.FetchTimeoutSeconds == 0 {
		cfg.DataSource.FetchTimeoutSeconds = 30
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 30 22 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/marketpulse.db"
	}
	if cfg.Report.OutputDir == "" {
		cfg.Report.OutputDir = "reports"
	}
	if cfg.Report.RecentWindow == 0 {
		cfg.Report.RecentWindow = 30
	}

	return cfg, nil
}

// DefaultWatchlist mirrors the original five-instrument credit dashboard.
func DefaultWatchlist() []Instrument {
	return []Instrument{
		{Name: "S&P 500", Symbol: "^GSPC"},
		{Name: "VIX", Symbol: "^VIX"},
		{Name: "US 10Y", Symbol: "^TNX"},
		{Name: "HYG", Symbol: "HYG"},
		{Name: "LQD", Symbol: "LQD"},
	}
}

// Validate checks watchlist and composite consistency.
func (c *Config) Validate() error {
	if len(c.Watchlist) == 0 {
		return fmt.Errorf("watchlist must not be empty")
	}
	names := make(map[string]bool, len(c.Watchlist))
	for _, inst := range c.Watchlist {
		if inst.Name == "" || inst.Symbol == "" {
			return fmt.Errorf("watchlist entries need both name and symbol")
		}
		if names[inst.Name] {
			return fmt.Errorf("duplicate watchlist name %q", inst.Name)
		}
		names[inst.Name] = true
		if inst.CautionThreshold < 0 || inst.DangerThreshold < 0 {
			return fmt.Errorf("%s: thresholds must be non-negative", inst.Name)
		}
		if th := inst.Thresholds(); th.Caution > th.Danger {
			return fmt.Errorf("%s: caution threshold %.2f exceeds danger threshold %.2f",
				inst.Name, th.Caution, th.Danger)
		}
	}
	if !names[c.Composite.Numerator] {
		return fmt.Errorf("composite.numerator %q is not a watchlist name", c.Composite.Numerator)
	}
	if !names[c.Composite.Denominator] {
		return fmt.Errorf("composite.denominator %q is not a watchlist name", c.Composite.Denominator)
	}
	return nil
}
