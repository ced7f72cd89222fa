package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sourcegraph/conc/pool"
	"gorm.io/gorm"

	"domain-recovery/internal/config"
	"domain-recovery/internal/domain"
	"domain-recovery/internal/guide"
	"domain-recovery/internal/models"
	"domain-recovery/internal/status"
)

// Analyzer is the part of AnalysisService the monitor depends on
type Analyzer interface {
	Analyze(ctx context.Context, rawDomain string, gctx guide.Context) (*Result, error)
}

// AlertSender delivers state-change alerts
type AlertSender interface {
	Notify(ctx context.Context, alert Alert) []Delivery
}

// MonitorService re-analyses watched domains and alerts on state changes
type MonitorService struct {
	db          *gorm.DB
	analyzer    Analyzer
	notifier    AlertSender
	alertStates map[string]bool
	concurrency int
	logger      *slog.Logger
	now         func() time.Time
}

// NewMonitorService creates a new monitoring service. notifier may be nil.
func NewMonitorService(db *gorm.DB, analyzer Analyzer, notifier AlertSender, cfg config.MonitorConfig, logger *slog.Logger) *MonitorService {
	states := make(map[string]bool, len(cfg.AlertStates))
	for _, s := range cfg.AlertStates {
		states[s] = true
	}
	return &MonitorService{
		db:          db,
		analyzer:    analyzer,
		notifier:    notifier,
		alertStates: states,
		concurrency: max(cfg.Concurrency, 1),
		logger:      logger,
		now:         time.Now,
	}
}

// Add puts a domain on the watchlist. Adding an existing domain reactivates it.
func (s *MonitorService) Add(ctx context.Context, rawDomain, notes string) (*models.WatchedDomain, error) {
	d, err := domain.Normalize(rawDomain)
	if err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)

	var w models.WatchedDomain
	err = db.Where("name = ?", d).First(&w).Error
	switch {
	case err == nil:
		w.IsActive = true
		if notes != "" {
			w.Notes = notes
		}
		if err := db.Save(&w).Error; err != nil {
			return nil, fmt.Errorf("failed to update domain: %w", err)
		}
		return &w, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		w = models.WatchedDomain{Name: d, Notes: notes, IsActive: true}
		if err := db.Create(&w).Error; err != nil {
			return nil, fmt.Errorf("failed to create domain: %w", err)
		}
		return &w, nil
	default:
		return nil, fmt.Errorf("failed to look up domain: %w", err)
	}
}

// List returns the watchlist ordered by name
func (s *MonitorService) List(ctx context.Context) ([]models.WatchedDomain, error) {
	var out []models.WatchedDomain
	if err := s.db.WithContext(ctx).Order("name asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch domains: %w", err)
	}
	return out, nil
}

// Get loads one watched domain
func (s *MonitorService) Get(ctx context.Context, id uint) (*models.WatchedDomain, error) {
	var w models.WatchedDomain
	if err := s.db.WithContext(ctx).First(&w, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("watched domain %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load domain: %w", err)
	}
	return &w, nil
}

// Remove deletes a watched domain
func (s *MonitorService) Remove(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.WatchedDomain{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete domain: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("watched domain %d: %w", id, ErrNotFound)
	}
	return nil
}

// CheckAll re-analyses every active watched domain, several at a time. Individual
// failures are logged and do not stop the run.
func (s *MonitorService) CheckAll(ctx context.Context) error {
	var domains []models.WatchedDomain
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Find(&domains).Error; err != nil {
		return fmt.Errorf("failed to fetch domains: %w", err)
	}

	s.logger.Info("checking watchlist", slog.Int("domains", len(domains)), slog.Int("concurrency", s.concurrency))
	p := pool.New().WithMaxGoroutines(s.concurrency)
	for i := range domains {
		if ctx.Err() != nil {
			break
		}
		w := &domains[i]
		p.Go(func() {
			if _, err := s.Check(ctx, w); err != nil {
				s.logger.Error("watchlist check failed", slog.String("domain", w.Name), slog.Any("err", err))
			}
		})
	}
	p.Wait()
	return ctx.Err()
}

// Check analyses one watched domain, stores the new state and alerts if it changed
func (s *MonitorService) Check(ctx context.Context, w *models.WatchedDomain) (*Result, error) {
	res, err := s.analyzer.Analyze(ctx, w.Name, guide.Context{})
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	previous := w.State
	r := res.Report
	now := s.now()
	w.LastChecked = &now
	if r.State == status.StateUnknown {
		// lookups failed: keep the last known state so the next good check compares against it
		if err := s.db.WithContext(ctx).Save(w).Error; err != nil {
			return nil, fmt.Errorf("failed to save domain: %w", err)
		}
		return res, nil
	}

	w.State = string(r.State)
	w.Difficulty = string(r.Difficulty)
	w.RecoveryScore = res.RecoveryScore
	w.ExpiryDate = r.ExpiryDate
	w.Registrar = ""
	if r.Registrar != nil {
		w.Registrar = r.Registrar.Name
	}
	w.EstimatedMid, w.Grade = 0, ""
	if r.Valuation != nil {
		w.EstimatedMid = r.Valuation.Estimate.Mid
		w.Grade = r.Valuation.Grade
	}
	if err := s.db.WithContext(ctx).Save(w).Error; err != nil {
		return nil, fmt.Errorf("failed to save domain: %w", err)
	}

	if s.shouldAlert(previous, w.State) {
		s.alert(ctx, w, previous, res.Guide.Headline)
	}
	return res, nil
}

// shouldAlert fires on any change from a known state, and on the first check when the
// domain is already in an alert state. UNKNOWN is never stored, so it never alerts.
func (s *MonitorService) shouldAlert(previous, current string) bool {
	if previous == "" || previous == string(status.StateUnknown) {
		return s.alertStates[current]
	}
	return previous != current
}

func (s *MonitorService) alert(ctx context.Context, w *models.WatchedDomain, previous, headline string) {
	if s.notifier == nil {
		return
	}
	a := Alert{
		DomainID:      w.ID,
		Domain:        w.Name,
		FromState:     previous,
		ToState:       w.State,
		Difficulty:    w.Difficulty,
		RecoveryScore: w.RecoveryScore,
		EstimatedMid:  w.EstimatedMid,
		Registrar:     w.Registrar,
		ExpiryDate:    w.ExpiryDate,
		Headline:      headline,
		CheckedAt:     s.now(),
	}
	s.logger.Info("lifecycle state changed",
		slog.String("domain", w.Name), slog.String("from", previous), slog.String("to", w.State))

	for _, d := range s.notifier.Notify(ctx, a) {
		n := models.Notification{
			DomainID:  w.ID,
			Type:      d.Channel,
			FromState: previous,
			ToState:   w.State,
			Content:   a.Subject(),
			Status:    "success",
			SentAt:    a.CheckedAt,
		}
		if d.Err != nil {
			n.Status = "failed"
			n.Error = d.Err.Error()
		}
		if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
			s.logger.Error("failed to record notification", slog.String("domain", w.Name), slog.Any("err", err))
		}
	}
}

// Notifications returns the most recent notification records
func (s *MonitorService) Notifications(ctx context.Context, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 100
	}
	limit = min(limit, 500)
	var out []models.Notification
	if err := s.db.WithContext(ctx).Order("sent_at desc").Limit(limit).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	return out, nil
}
