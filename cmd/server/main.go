package main

import (
	"context"
	"crypto/rand"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"

	"domain-recovery/internal/api"
	"domain-recovery/internal/config"
	"domain-recovery/internal/database"
	"domain-recovery/internal/logger"
	"domain-recovery/internal/metrics"
	"domain-recovery/internal/models"
	"domain-recovery/internal/scheduler"
	"domain-recovery/internal/services"
	"domain-recovery/internal/status"
	"domain-recovery/internal/valuation"
)

// loadSettingsFromDB loads settings from database and overrides config
func loadSettingsFromDB(db *gorm.DB, cfg *config.Config, log *slog.Logger) {
	var settings []models.Setting
	if err := db.Find(&settings).Error; err != nil {
		log.Warn("failed to load settings from database", slog.Any("err", err))
		return
	}
	if len(settings) == 0 {
		return
	}

	settingsMap := make(map[string]string, len(settings))
	for _, s := range settings {
		settingsMap[s.Key] = s.Value
	}
	applySettings(cfg, settingsMap)
	log.Info("settings loaded from database", slog.Int("count", len(settings)))
}

func applySettings(cfg *config.Config, settingsMap map[string]string) {
	// Monitor settings
	if val, ok := settingsMap["monitor.check_interval"]; ok && val != "" {
		cfg.Monitor.CheckInterval = val
	}
	if val, ok := settingsMap["monitor.alert_states"]; ok && val != "" {
		var states []string
		for _, s := range strings.Split(val, ",") {
			st := status.State(strings.ToUpper(strings.TrimSpace(s)))
			if st.Valid() {
				states = append(states, string(st))
			}
		}
		if len(states) > 0 {
			cfg.Monitor.AlertStates = states
		}
	}

	// Email settings
	if val, ok := settingsMap["email.enabled"]; ok {
		cfg.Notifications.Email.Enabled = val == "true"
	}
	if val, ok := settingsMap["email.smtp_host"]; ok {
		cfg.Notifications.Email.SMTPHost = val
	}
	if val, ok := settingsMap["email.smtp_port"]; ok {
		if port, err := strconv.Atoi(val); err == nil {
			cfg.Notifications.Email.SMTPPort = port
		}
	}
	if val, ok := settingsMap["email.from"]; ok {
		cfg.Notifications.Email.From = val
	}
	if val, ok := settingsMap["email.password"]; ok {
		cfg.Notifications.Email.Password = val
	}
	if val, ok := settingsMap["email.to"]; ok && val != "" {
		cfg.Notifications.Email.To = strings.Split(val, ",")
	}

	// Webhook settings
	if val, ok := settingsMap["webhook.enabled"]; ok {
		cfg.Notifications.Webhook.Enabled = val == "true"
	}
	if val, ok := settingsMap["webhook.url"]; ok {
		cfg.Notifications.Webhook.URL = val
	}

	// Telegram settings
	if val, ok := settingsMap["telegram.enabled"]; ok {
		cfg.Notifications.Telegram.Enabled = val == "true"
	}
	if val, ok := settingsMap["telegram.bot_token"]; ok {
		cfg.Notifications.Telegram.BotToken = val
	}
	if val, ok := settingsMap["telegram.chat_id"]; ok {
		cfg.Notifications.Telegram.ChatID = val
	}
	if val, ok := settingsMap["telegram.proxy"]; ok {
		cfg.Notifications.Telegram.Proxy = val
	}

	// DingDing settings
	if val, ok := settingsMap["dingding.enabled"]; ok {
		cfg.Notifications.DingDing.Enabled = val == "true"
	}
	if val, ok := settingsMap["dingding.webhook"]; ok {
		cfg.Notifications.DingDing.Webhook = val
	}
	if val, ok := settingsMap["dingding.secret"]; ok {
		cfg.Notifications.DingDing.Secret = val
	}
}

// loadConfig falls back to the built-in defaults plus environment overrides when
// the file does not exist
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.LoadEnv()
	}
	return cfg, err
}

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}
	log := logger.SetupDefault(os.Stdout, cfg.Log.Level)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	if dir := dataDir(cfg.Database.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		return err
	}
	log.Info("database initialized", slog.String("path", cfg.Database.Path))

	loadSettingsFromDB(db, cfg, log)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = rand.Text()
		log.Warn("auth.jwt_secret is not set; using a random secret, tokens will not survive a restart")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.NewCollector(reg)

	// Initialize services
	valuer := valuation.NewEngine()
	analyzer := status.NewAnalyzer(status.WithValuer(valuer))
	collector := services.NewCollector(
		services.NewWhoisService(cfg.Whois, log),
		services.NewWebsiteProber(cfg.Probe),
		services.NewDNSProber(nil),
		services.NewArchiveClient(cfg.Probe),
		rec, log)
	analysisService := services.NewAnalysisService(db, collector, analyzer, rec, log)
	notifyService := services.NewNotifyService(&cfg.Notifications, rec, log)
	monitorService := services.NewMonitorService(db, analysisService, notifyService, cfg.Monitor, log)
	authService := services.NewAuthService(db, cfg.Auth)

	if err := initDefaultAdmin(authService, cfg.Auth, log); err != nil {
		return err
	}

	sched := scheduler.NewScheduler(monitorService, log)
	if err := sched.Start(cfg.Monitor.CheckInterval); err != nil {
		return err
	}
	defer sched.Stop()

	// Setup Gin
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(api.CORS())
	api.SetupRoutes(r, api.NewHandler(db, analysisService, monitorService, authService, valuer, metrics.Handler(reg)))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", slog.String("addr", srv.Addr), slog.Bool("notifications", notifyService.Enabled()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// initDefaultAdmin initializes the default admin account
func initDefaultAdmin(authService *services.AuthService, cfg config.AuthConfig, log *slog.Logger) error {
	password := cfg.AdminPassword
	if password == "" {
		password = "admin123"
	}
	created, err := authService.EnsureAdmin(context.Background(), cfg.AdminUser, password)
	if err != nil {
		return err
	}
	if created {
		log.Info("default admin account created", slog.String("username", cfg.AdminUser))
		if cfg.AdminPassword == "" {
			log.Warn("admin account uses the default password; change it via /api/v1/auth/change-password")
		}
	}
	return nil
}

func dataDir(path string) string {
	if path == database.MemoryPath {
		return ""
	}
	i := strings.LastIndexAny(path, `/\`)
	if i <= 0 {
		return ""
	}
	return path[:i]
}
