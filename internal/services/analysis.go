package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"domain-recovery/internal/domain"
	"domain-recovery/internal/guide"
	"domain-recovery/internal/metrics"
	"domain-recovery/internal/models"
	"domain-recovery/internal/status"
	"domain-recovery/internal/valuation"
)

// ErrNotFound is returned when a stored record does not exist.
var ErrNotFound = errors.New("not found")

// Result is the output of one analysis.
type Result struct {
	ID            string        `json:"id,omitempty"`
	Domain        string        `json:"domain"`
	Report        status.Report `json:"report"`
	Guide         guide.Guide   `json:"guide"`
	RecoveryScore int           `json:"recovery_score"`
	Degraded      []string      `json:"degraded"`
	CreatedAt     time.Time     `json:"created_at"`
}

// EvaluateRequest supplies signals directly instead of collecting them.
type EvaluateRequest struct {
	Domain       string                      `json:"domain"`
	Registration *domain.RegistrationSignals `json:"registration"`
	Activity     domain.ActivitySignals      `json:"activity"`
	SEO          *domain.SEOMetrics          `json:"seo"`
	Security     *domain.SecurityMetrics     `json:"security"`
	Website      *domain.WebsiteInfo         `json:"website"`
	Context      guide.Context               `json:"context"`
}

// AnalysisService runs collect, analyze and guide, and keeps the history.
type AnalysisService struct {
	db        *gorm.DB
	collector *Collector
	analyzer  *status.Analyzer
	metrics   metrics.Recorder
	logger    *slog.Logger
	now       func() time.Time
}

// NewAnalysisService creates the orchestrator
func NewAnalysisService(db *gorm.DB, collector *Collector, analyzer *status.Analyzer, rec metrics.Recorder, logger *slog.Logger) *AnalysisService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &AnalysisService{
		db:        db,
		collector: collector,
		analyzer:  analyzer,
		metrics:   rec,
		logger:    logger,
		now:       time.Now,
	}
}

// Analyze collects live signals for rawDomain, classifies it and stores the result.
func (s *AnalysisService) Analyze(ctx context.Context, rawDomain string, gctx guide.Context) (*Result, error) {
	start := time.Now()
	d, err := domain.Normalize(rawDomain)
	if err != nil {
		return nil, err
	}

	sig := s.collector.Collect(ctx, d)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var report status.Report
	if sig.WhoisErr != nil {
		report = status.Unknown(d, sig.WhoisErr)
	} else {
		report, err = s.analyzer.Analyze(status.Input{
			Domain:       d,
			Registration: sig.Registration,
			Activity:     sig.Activity,
			Enrichment:   valuation.Inputs{Website: sig.Website},
		})
		if err != nil {
			return nil, err
		}
	}

	req := guide.RequestFromReport(report, gctx)
	if sig.Activity.HasArchivedContent() {
		req.Enrichment.HasArchivedContent = true
		req.Enrichment.SnapshotCount = *sig.Activity.ArchiveSnapshots
	}
	res := &Result{
		ID:            uuid.NewString(),
		Domain:        d,
		Report:        report,
		Guide:         guide.Generate(req),
		RecoveryScore: status.RecoveryScore(report),
		Degraded:      sig.Degraded,
		CreatedAt:     s.now(),
	}

	if err := s.save(ctx, res); err != nil {
		return nil, err
	}

	s.metrics.RecordAnalysis(string(report.State), time.Since(start))
	if report.Valuation != nil {
		s.metrics.RecordValuation(report.Valuation.Grade)
	}
	s.logger.Info("analysis complete",
		slog.String("domain", d),
		slog.String("state", string(report.State)),
		slog.Int("recovery_score", res.RecoveryScore),
		slog.Any("degraded", sig.Degraded))
	return res, nil
}

// Evaluate runs the core on caller-supplied signals. Nothing is collected or stored.
func (s *AnalysisService) Evaluate(req EvaluateRequest) (*Result, error) {
	report, err := s.analyzer.Analyze(status.Input{
		Domain:       req.Domain,
		Registration: req.Registration,
		Activity:     req.Activity,
		Enrichment: valuation.Inputs{
			SEO:      req.SEO,
			Security: req.Security,
			Website:  req.Website,
		},
	})
	if err != nil {
		return nil, err
	}

	greq := guide.RequestFromReport(report, req.Context)
	if req.Activity.HasArchivedContent() {
		greq.Enrichment.HasArchivedContent = true
		greq.Enrichment.SnapshotCount = *req.Activity.ArchiveSnapshots
	}
	return &Result{
		Domain:        report.Domain,
		Report:        report,
		Guide:         guide.Generate(greq),
		RecoveryScore: status.RecoveryScore(report),
		Degraded:      []string{},
		CreatedAt:     s.now(),
	}, nil
}

func (s *AnalysisService) save(ctx context.Context, res *Result) error {
	reportJSON, err := json.Marshal(res.Report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	guideJSON, err := json.Marshal(res.Guide)
	if err != nil {
		return fmt.Errorf("encode guide: %w", err)
	}

	rec := models.Analysis{
		ID:            res.ID,
		Domain:        res.Domain,
		State:         string(res.Report.State),
		Difficulty:    string(res.Report.Difficulty),
		RecoveryScore: res.RecoveryScore,
		Report:        string(reportJSON),
		Guide:         string(guideJSON),
		Degraded:      strings.Join(res.Degraded, ","),
		CreatedAt:     res.CreatedAt,
	}
	if v := res.Report.Valuation; v != nil {
		rec.Grade = v.Grade
		rec.EstimatedMid = v.Estimate.Mid
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// List returns the most recent analyses, optionally for a single domain.
func (s *AnalysisService) List(ctx context.Context, rawDomain string, limit int) ([]models.Analysis, error) {
	if limit <= 0 {
		limit = 50
	}
	limit = min(limit, 200)
	q := s.db.WithContext(ctx).Order("created_at desc").Limit(limit)
	if rawDomain != "" {
		d, err := domain.Normalize(rawDomain)
		if err != nil {
			return nil, err
		}
		q = q.Where("domain = ?", d)
	}

	var out []models.Analysis
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return out, nil
}

// Get loads one stored analysis with its report and guide.
func (s *AnalysisService) Get(ctx context.Context, id string) (*Result, error) {
	var rec models.Analysis
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("analysis %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load analysis: %w", err)
	}

	res := &Result{
		ID:            rec.ID,
		Domain:        rec.Domain,
		RecoveryScore: rec.RecoveryScore,
		Degraded:      []string{},
		CreatedAt:     rec.CreatedAt,
	}
	if rec.Degraded != "" {
		res.Degraded = strings.Split(rec.Degraded, ",")
	}
	if err := json.Unmarshal([]byte(rec.Report), &res.Report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	if err := json.Unmarshal([]byte(rec.Guide), &res.Guide); err != nil {
		return nil, fmt.Errorf("decode guide: %w", err)
	}
	return res, nil
}
