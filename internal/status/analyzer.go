package status

import (
	"fmt"
	"strings"
	"time"

	"domain-recovery/internal/catalog"
	"domain-recovery/internal/classifier"
	"domain-recovery/internal/domain"
	"domain-recovery/internal/valuation"
)

// Expiry window boundaries, in whole days since expiry.
const (
	GraceDays      = 45
	RedemptionDays = 75
	// PendingDeleteDays is when a domain in pending-delete is expected to drop.
	PendingDeleteDays = 90
)

// Valuer produces valuations. *valuation.Engine satisfies it.
type Valuer interface {
	Estimate(d string, in valuation.Inputs) valuation.Valuation
}

// Input carries every signal the analyzer consumes. Only Domain is required.
type Input struct {
	Domain       string
	Registration *domain.RegistrationSignals
	Activity     domain.ActivitySignals
	// Enrichment is forwarded to the valuation engine. Its Registration field is
	// overwritten with Input.Registration.
	Enrichment valuation.Inputs
}

// Analyzer is a stateless rule-based classifier. It is safe for concurrent use.
type Analyzer struct {
	valuer Valuer
	now    func() time.Time
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithValuer replaces the valuation engine.
func WithValuer(v Valuer) Option {
	return func(a *Analyzer) { a.valuer = v }
}

// WithClock replaces the clock used for expiry arithmetic.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

// NewAnalyzer creates an analyzer. Without WithValuer it builds a valuation engine that
// shares the analyzer's clock.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	if a.valuer == nil {
		a.valuer = valuation.NewEngine(valuation.WithClock(a.now))
	}
	return a
}

// Analyze assigns exactly one lifecycle state to in.Domain. The only error is a
// malformed domain name; every missing signal has a defined fallback.
func (a *Analyzer) Analyze(in Input) (Report, error) {
	d, err := domain.Normalize(in.Domain)
	if err != nil {
		return Report{}, err
	}
	now := a.now()
	reg := in.Registration

	b := &builder{r: Report{Domain: d}}
	b.r.Registrar = registrarContact(reg)

	// reserved names are never released, with or without registry evidence
	if catalog.IsReserved(d) {
		b.r.IsRegistered = isRegistered(reg)
		return b.reserved(), nil
	}

	if !isRegistered(reg) {
		return b.available(), nil
	}
	b.r.IsRegistered = true

	if classifier.Classify(d, classifier.Signals{}).IsMajorBrand() {
		return b.brand(), nil
	}

	b.registrationNotes(reg)

	if reg.ExpiresAt != nil {
		expiry := reg.ExpiresAt.UTC()
		b.r.ExpiryDate = &expiry
		if now.After(expiry) {
			return b.expired(expiry, daysBetween(expiry, now)), nil
		}
		until := daysBetween(now, expiry)
		b.r.DaysUntilExpiry = &until
		if until <= 30 {
			b.r.Opportunities = append(b.r.Opportunities,
				fmt.Sprintf("Expires in %d days; a backorder placed now is first in line if it is not renewed", until))
		}
	} else {
		switch {
		case reg.HasStatus("pendingDelete"):
			return b.pendingDelete(nil), nil
		case reg.HasStatus("redemptionPeriod"):
			return b.redemption(nil), nil
		}
	}

	act := in.Activity
	if act.WebsiteLive != nil && !*act.WebsiteLive && act.HasARecords != nil && *act.HasARecords {
		return b.hostingIssue(act), nil
	}

	enrichment := in.Enrichment
	enrichment.Registration = reg
	v := a.valuer.Estimate(d, enrichment)
	b.r.Valuation = &v
	b.r.IsActive = act.WebsiteLive != nil && *act.WebsiteLive
	provider, parked := catalog.ParkingProvider(reg.NameServers)
	if parked {
		b.r.ParkingProvider = provider
		b.r.IsForSale = true
	}

	switch {
	case !act.Observed():
		return b.parked(v, "No activity signals were available; assuming the conservative parked state"), nil
	case (act.WebsiteLive == nil || !*act.WebsiteLive) && !act.HasArchivedContent():
		return b.parked(v, "Website is unreachable and no archived content exists"), nil
	case parked:
		return b.forSale(v, provider), nil
	default:
		return b.inUse(v, act), nil
	}
}

// isRegistered requires a non-placeholder registrar, a creation date or a registrant.
func isRegistered(reg *domain.RegistrationSignals) bool {
	if reg == nil {
		return false
	}
	return !catalog.IsPlaceholderRegistrar(reg.Registrar) || reg.CreatedAt != nil || reg.RegistrantPresent
}

func registrarContact(reg *domain.RegistrationSignals) *RegistrarContact {
	if reg == nil || catalog.IsPlaceholderRegistrar(reg.Registrar) {
		return nil
	}
	c := &RegistrarContact{
		Name:  strings.TrimSpace(reg.Registrar),
		URL:   reg.RegistrarURL,
		Email: reg.RegistrarEmail,
		Phone: reg.RegistrarPhone,
	}
	if c.URL == "" {
		if entry, ok := catalog.LookupRegistrar(reg.Registrar); ok {
			c.URL = entry.SupportURL
		}
	}
	return c
}

// daysBetween returns the whole days elapsed from a to b.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// Unknown builds the report used when registration data could not be obtained at all.
func Unknown(d string, cause error) Report {
	r := Report{
		Domain:     d,
		State:      StateUnknown,
		Difficulty: DifficultyHard,
		Cost:       CostRange{Currency: "USD"},
		Reasons:    []string{"Registration data could not be retrieved"},
		Opportunities: []string{
			"Retry the lookup later; registry WHOIS servers rate-limit aggressively",
			"Check the registry's RDAP service directly for authoritative data",
		},
	}
	if cause != nil {
		r.Warnings = append(r.Warnings, fmt.Sprintf("Lookup failed: %v", cause))
	}
	return r
}
