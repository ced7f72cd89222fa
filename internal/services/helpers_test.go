package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"domain-recovery/internal/config"
	"domain-recovery/internal/database"
	"domain-recovery/internal/domain"
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.InitDB(&config.DatabaseConfig{Type: "sqlite", Path: database.MemoryPath})
	require.NoError(t, err)
	return db
}

type fakeWhois struct {
	reg *domain.RegistrationSignals
	err error
}

func (f fakeWhois) Lookup(context.Context, string) (*domain.RegistrationSignals, error) {
	return f.reg, f.err
}

type fakeWebsite struct {
	info *domain.WebsiteInfo
	err  error
}

func (f fakeWebsite) Probe(context.Context, string) (*domain.WebsiteInfo, error) {
	return f.info, f.err
}

type fakeDNS struct {
	ok  bool
	err error
}

func (f fakeDNS) HasARecords(context.Context, string) (bool, error) {
	return f.ok, f.err
}

type fakeArchive struct {
	info *domain.ArchiveInfo
	err  error
}

func (f fakeArchive) Snapshots(context.Context, string) (*domain.ArchiveInfo, error) {
	return f.info, f.err
}

var errUpstream = errors.New("upstream unavailable")

// liveRegistration is a healthy registration that expires in 200 days.
func liveRegistration() *domain.RegistrationSignals {
	created := testNow.AddDate(-6, 0, 0)
	expires := testNow.AddDate(0, 0, 200)
	return &domain.RegistrationSignals{
		Registrar: "NameCheap, Inc.",
		CreatedAt: &created,
		ExpiresAt: &expires,
	}
}

// countingRecorder is a metrics.Recorder that remembers what it saw.
type countingRecorder struct {
	mu            sync.Mutex
	analyses      []string
	grades        []string
	failures      []string
	notifications map[string]int
}

func (r *countingRecorder) RecordAnalysis(state string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.analyses = append(r.analyses, state)
}

func (r *countingRecorder) RecordValuation(grade string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.grades = append(r.grades, grade)
}

func (r *countingRecorder) RecordCollectorFailure(source string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, source)
}

func (r *countingRecorder) RecordNotification(channel string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.notifications == nil {
		r.notifications = map[string]int{}
	}
	key := channel + "/success"
	if !ok {
		key = channel + "/failure"
	}
	r.notifications[key]++
}
