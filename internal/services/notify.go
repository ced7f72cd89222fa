package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/smtp"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/net/proxy"

	"domain-recovery/internal/config"
	"domain-recovery/internal/metrics"
	"domain-recovery/internal/valuation"
)

// Alert describes a lifecycle state change on a watched domain
type Alert struct {
	DomainID      uint       `json:"domain_id"`
	Domain        string     `json:"domain"`
	FromState     string     `json:"from_state"`
	ToState       string     `json:"to_state"`
	Difficulty    string     `json:"difficulty"`
	RecoveryScore int        `json:"recovery_score"`
	EstimatedMid  float64    `json:"estimated_mid"`
	Registrar     string     `json:"registrar"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`
	Headline      string     `json:"headline"`
	CheckedAt     time.Time  `json:"checked_at"`
}

// Subject is a one-line summary of the alert
func (a Alert) Subject() string {
	if a.FromState == "" {
		return fmt.Sprintf("%s is %s", a.Domain, a.ToState)
	}
	return fmt.Sprintf("%s changed from %s to %s", a.Domain, a.FromState, a.ToState)
}

// Lines renders the alert body as label/value lines
func (a Alert) Lines() []string {
	lines := []string{
		"Domain: " + a.Domain,
		"State: " + a.ToState,
	}
	if a.FromState != "" {
		lines = append(lines, "Previous state: "+a.FromState)
	}
	if a.Headline != "" {
		lines = append(lines, "Summary: "+a.Headline)
	}
	lines = append(lines,
		"Difficulty: "+a.Difficulty,
		fmt.Sprintf("Recovery score: %d/100", a.RecoveryScore))
	if a.EstimatedMid > 0 {
		lines = append(lines, "Estimated value: "+valuation.FormatUSD(a.EstimatedMid))
	}
	if a.Registrar != "" {
		lines = append(lines, "Registrar: "+a.Registrar)
	}
	if a.ExpiryDate != nil {
		lines = append(lines, fmt.Sprintf("Expiry: %s (%s)", a.ExpiryDate.Format("2006-01-02"), humanize.Time(*a.ExpiryDate)))
	}
	return lines
}

// Notifier delivers alerts through one channel
type Notifier interface {
	Name() string
	Send(ctx context.Context, alert Alert) error
}

// Delivery is the outcome of one channel
type Delivery struct {
	Channel string
	Err     error
}

// NotifyService fans alerts out to every enabled channel
type NotifyService struct {
	notifiers []Notifier
	metrics   metrics.Recorder
	logger    *slog.Logger
}

// NewNotifyService creates a notification service from config
func NewNotifyService(cfg *config.NotificationsConfig, rec metrics.Recorder, logger *slog.Logger) *NotifyService {
	var notifiers []Notifier
	if cfg.Email.Enabled {
		notifiers = append(notifiers, NewEmailNotifier(&cfg.Email))
	}
	if cfg.Webhook.Enabled {
		notifiers = append(notifiers, NewWebhookNotifier(&cfg.Webhook))
	}
	if cfg.Telegram.Enabled {
		notifiers = append(notifiers, NewTelegramNotifier(&cfg.Telegram))
	}
	if cfg.DingDing.Enabled {
		notifiers = append(notifiers, NewDingDingNotifier(&cfg.DingDing))
	}
	return NewNotifyServiceWith(notifiers, rec, logger)
}

// NewNotifyServiceWith uses an explicit notifier list
func NewNotifyServiceWith(notifiers []Notifier, rec metrics.Recorder, logger *slog.Logger) *NotifyService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &NotifyService{notifiers: notifiers, metrics: rec, logger: logger}
}

// Enabled reports whether any channel is configured
func (s *NotifyService) Enabled() bool {
	return len(s.notifiers) > 0
}

// Notify sends alert through every channel and reports each outcome
func (s *NotifyService) Notify(ctx context.Context, alert Alert) []Delivery {
	out := make([]Delivery, 0, len(s.notifiers))
	for _, n := range s.notifiers {
		err := n.Send(ctx, alert)
		s.metrics.RecordNotification(n.Name(), err == nil)
		if err != nil {
			s.logger.Error("notification failed",
				slog.String("channel", n.Name()), slog.String("domain", alert.Domain), slog.Any("err", err))
		} else {
			s.logger.Info("notification sent",
				slog.String("channel", n.Name()), slog.String("domain", alert.Domain))
		}
		out = append(out, Delivery{Channel: n.Name(), Err: err})
	}
	return out
}

// EmailNotifier sends email notifications
type EmailNotifier struct {
	config *config.EmailConfig
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailNotifier creates a new email notifier
func NewEmailNotifier(cfg *config.EmailConfig) *EmailNotifier {
	return &EmailNotifier{config: cfg, send: smtp.SendMail}
}

func (e *EmailNotifier) Name() string { return "email" }

// Send sends email notification
func (e *EmailNotifier) Send(_ context.Context, alert Alert) error {
	body := strings.Join(alert.Lines(), "\n") + "\n"

	message := fmt.Sprintf("From: %s\r\n", e.config.From)
	message += fmt.Sprintf("To: %s\r\n", strings.Join(e.config.To, ","))
	message += fmt.Sprintf("Subject: [domain-recovery] %s\r\n", alert.Subject())
	message += "Content-Type: text/plain; charset=UTF-8\r\n"
	message += "\r\n"
	message += body

	auth := smtp.PlainAuth("", e.config.From, e.config.Password, e.config.SMTPHost)
	addr := fmt.Sprintf("%s:%d", e.config.SMTPHost, e.config.SMTPPort)
	if err := e.send(addr, auth, e.config.From, e.config.To, []byte(message)); err != nil {
		// Some providers close the session with "short response" after accepting the message
		if !strings.Contains(err.Error(), "short response") {
			return fmt.Errorf("failed to send email: %w", err)
		}
	}
	return nil
}

// WebhookNotifier posts the alert as JSON
type WebhookNotifier struct {
	config *config.WebhookConfig
	client *http.Client
}

// NewWebhookNotifier creates a new webhook notifier
func NewWebhookNotifier(cfg *config.WebhookConfig) *WebhookNotifier {
	return &WebhookNotifier{config: cfg, client: &http.Client{Timeout: 30 * time.Second}}
}

func (w *WebhookNotifier) Name() string { return "webhook" }

// Send sends webhook notification
func (w *WebhookNotifier) Send(ctx context.Context, alert Alert) error {
	return postJSON(ctx, w.client, w.config.URL, alert)
}

// TelegramNotifier sends Telegram notifications
type TelegramNotifier struct {
	config  *config.TelegramConfig
	client  *http.Client
	apiBase string
}

// NewTelegramNotifier creates a Telegram notifier, dialing through the SOCKS5 proxy
// when one is configured
func NewTelegramNotifier(cfg *config.TelegramConfig) *TelegramNotifier {
	client := &http.Client{Timeout: 30 * time.Second}
	if cfg.Proxy != "" {
		if transport, err := socks5Transport(cfg.Proxy); err == nil {
			client.Transport = transport
		} else {
			slog.Warn("telegram proxy disabled", slog.String("proxy", cfg.Proxy), slog.Any("err", err))
		}
	}
	return &TelegramNotifier{config: cfg, client: client, apiBase: "https://api.telegram.org"}
}

func socks5Transport(addr string) (*http.Transport, error) {
	dialer, err := proxy.SOCKS5("tcp", addr, nil, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("create SOCKS5 dialer: %w", err)
	}
	return &http.Transport{
		DialContext: func(ctx context.Context, network, address string) (net.Conn, error) {
			if cd, ok := dialer.(proxy.ContextDialer); ok {
				return cd.DialContext(ctx, network, address)
			}
			return dialer.Dial(network, address)
		},
	}, nil
}

func (t *TelegramNotifier) Name() string { return "telegram" }

// Send sends Telegram notification
func (t *TelegramNotifier) Send(ctx context.Context, alert Alert) error {
	payload := map[string]any{
		"chat_id": t.config.ChatID,
		"text":    alert.Subject() + "\n\n" + strings.Join(alert.Lines(), "\n"),
	}
	apiURL := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.config.BotToken)
	return postJSON(ctx, t.client, apiURL, payload)
}

// DingDingNotifier sends DingTalk notifications
type DingDingNotifier struct {
	config *config.DingDingConfig
	client *http.Client
	now    func() time.Time
}

// NewDingDingNotifier creates a new DingTalk notifier
func NewDingDingNotifier(cfg *config.DingDingConfig) *DingDingNotifier {
	return &DingDingNotifier{config: cfg, client: &http.Client{Timeout: 30 * time.Second}, now: time.Now}
}

func (d *DingDingNotifier) Name() string { return "dingding" }

// Send sends DingTalk notification
func (d *DingDingNotifier) Send(ctx context.Context, alert Alert) error {
	lines := alert.Lines()
	for i, l := range lines {
		if label, value, ok := strings.Cut(l, ": "); ok {
			lines[i] = fmt.Sprintf("**%s**: %s", label, value)
		}
	}
	payload := map[string]any{
		"msgtype": "markdown",
		"markdown": map[string]any{
			"title": alert.Subject(),
			"text":  "## " + alert.Subject() + "\n\n" + strings.Join(lines, "\n\n"),
		},
	}

	webhookURL := d.config.Webhook
	if d.config.Secret != "" {
		timestamp := strconv.FormatInt(d.now().UnixMilli(), 10)
		parsedURL, err := url.Parse(webhookURL)
		if err != nil {
			return fmt.Errorf("invalid webhook URL: %w", err)
		}
		query := parsedURL.Query()
		query.Add("timestamp", timestamp)
		query.Add("sign", dingSign(timestamp, d.config.Secret))
		parsedURL.RawQuery = query.Encode()
		webhookURL = parsedURL.String()
	}

	resp, err := doJSON(ctx, d.client, webhookURL, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var result struct {
		ErrCode int    `json:"errcode"`
		ErrMsg  string `json:"errmsg"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err == nil && result.ErrCode != 0 {
		return fmt.Errorf("dingding API error: %s", result.ErrMsg)
	}
	return nil
}

// dingSign is base64(HMAC-SHA256(secret, timestamp + "\n" + secret))
func dingSign(timestamp, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(timestamp + "\n" + secret))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

func postJSON(ctx context.Context, client *http.Client, target string, payload any) error {
	resp, err := doJSON(ctx, client, target, payload)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// doJSON posts payload and fails on any non-200 response
func doJSON(ctx context.Context, client *http.Client, target string, payload any) (*http.Response, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%s returned status %d", req.URL.Host, resp.StatusCode)
	}
	return resp, nil
}
