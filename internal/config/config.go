package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Whois         WhoisConfig         `yaml:"whois"`
	Probe         ProbeConfig         `yaml:"probe"`
	Monitor       MonitorConfig       `yaml:"monitor"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Auth          AuthConfig          `yaml:"auth"`
	Log           LogConfig           `yaml:"log"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port string `yaml:"port" env:"DR_SERVER_PORT"`
	Mode string `yaml:"mode" env:"DR_SERVER_MODE"` // debug/release
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Type string `yaml:"type"` // sqlite only
	Path string `yaml:"path" env:"DR_DATABASE_PATH"` // ":memory:" for an ephemeral store
}

// WhoisConfig configures the JSON WHOIS API client
type WhoisConfig struct {
	APIURL        string        `yaml:"api_url" env:"DR_WHOIS_API_URL"`
	Timeout       time.Duration `yaml:"timeout"`
	RatePerSecond float64       `yaml:"rate_per_second"`
	Burst         int           `yaml:"burst"`
}

// ProbeConfig configures the website, DNS and archive collectors
type ProbeConfig struct {
	Timeout    time.Duration `yaml:"timeout"`
	WaybackURL string        `yaml:"wayback_url"`
	UserAgent  string        `yaml:"user_agent"`
	// AllowPrivateNetworks lets the website prober reach loopback and private
	// addresses on any port. Off by default since probed names are user input.
	AllowPrivateNetworks bool `yaml:"allow_private_networks" env:"DR_PROBE_ALLOW_PRIVATE"`
}

// MonitorConfig represents watchlist monitoring configuration
type MonitorConfig struct {
	CheckInterval string   `yaml:"check_interval" env:"DR_CHECK_INTERVAL"` // Cron expression
	AlertStates   []string `yaml:"alert_states"`                            // States that always notify
	Concurrency   int      `yaml:"concurrency"`                             // Domains checked in parallel
}

// NotificationsConfig represents notification configuration
type NotificationsConfig struct {
	Email    EmailConfig    `yaml:"email"`
	Webhook  WebhookConfig  `yaml:"webhook"`
	Telegram TelegramConfig `yaml:"telegram"`
	DingDing DingDingConfig `yaml:"dingding"`
}

// EmailConfig represents email notification configuration
type EmailConfig struct {
	Enabled  bool     `yaml:"enabled"`
	SMTPHost string   `yaml:"smtp_host"`
	SMTPPort int      `yaml:"smtp_port"`
	From     string   `yaml:"from"`
	Password string   `yaml:"password"`
	To       []string `yaml:"to"`
}

// WebhookConfig represents webhook notification configuration
type WebhookConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
}

// TelegramConfig represents Telegram notification configuration
type TelegramConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"bot_token"`
	ChatID   string `yaml:"chat_id"`
	Proxy    string `yaml:"proxy"` // optional SOCKS5 address, host:port
}

// DingDingConfig represents DingTalk notification configuration
type DingDingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Webhook string `yaml:"webhook"`
	Secret  string `yaml:"secret"`
}

// AuthConfig configures JWT issuance and the bootstrap admin account
type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret" env:"DR_JWT_SECRET"`
	TokenTTL      time.Duration `yaml:"token_ttl"`
	AdminUser     string        `yaml:"admin_user"`
	AdminPassword string        `yaml:"admin_password" env:"DR_ADMIN_PASSWORD"`
}

// LogConfig configures the structured logger
type LogConfig struct {
	Level string `yaml:"level" env:"DR_LOG_LEVEL"`
}

// Default returns a configuration that runs locally without a config file.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080", Mode: "release"},
		Database: DatabaseConfig{Type: "sqlite", Path: "./data/domain-recovery.db"},
		Whois: WhoisConfig{
			APIURL:        "https://api.whoiscx.com/whois/",
			Timeout:       10 * time.Second,
			RatePerSecond: 2,
			Burst:         4,
		},
		Probe: ProbeConfig{
			Timeout:    8 * time.Second,
			WaybackURL: "https://web.archive.org/cdx/search/cdx",
			UserAgent:  "domain-recovery/1.0",
		},
		Monitor: MonitorConfig{
			CheckInterval: "0 */6 * * *",
			AlertStates:   []string{"EXPIRED_GRACE", "EXPIRED_REDEMPTION", "PENDING_DELETE", "AVAILABLE"},
			Concurrency:   4,
		},
		Notifications: NotificationsConfig{
			Email: EmailConfig{SMTPPort: 587},
		},
		Auth: AuthConfig{
			TokenTTL:  24 * time.Hour,
			AdminUser: "admin",
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig loads configuration from a YAML file on top of Default. DR_* environment
// variables override both.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return finish(config)
}

// LoadEnv builds the configuration from Default and DR_* environment variables only.
func LoadEnv() (*Config, error) {
	return finish(Default())
}

func finish(config *Config) (*Config, error) {
	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects values the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port is required"))
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" && c.Server.Mode != "test" {
		errs = append(errs, fmt.Errorf("server.mode %q must be debug, release or test", c.Server.Mode))
	}
	if c.Database.Type != "sqlite" {
		errs = append(errs, fmt.Errorf("unsupported database type: %s", c.Database.Type))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	if c.Whois.Timeout <= 0 || c.Probe.Timeout <= 0 {
		errs = append(errs, errors.New("whois.timeout and probe.timeout must be positive"))
	}
	if c.Whois.RatePerSecond <= 0 || c.Whois.Burst < 1 {
		errs = append(errs, errors.New("whois.rate_per_second must be positive and whois.burst at least 1"))
	}
	if _, err := cron.ParseStandard(c.Monitor.CheckInterval); err != nil {
		errs = append(errs, fmt.Errorf("monitor.check_interval: %w", err))
	}
	if c.Monitor.Concurrency < 1 {
		errs = append(errs, errors.New("monitor.concurrency must be at least 1"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}
	if c.Notifications.Telegram.Enabled && (c.Notifications.Telegram.BotToken == "" || c.Notifications.Telegram.ChatID == "") {
		errs = append(errs, errors.New("telegram requires bot_token and chat_id"))
	}
	return errors.Join(errs...)
}
