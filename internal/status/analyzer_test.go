package status

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domain-recovery/internal/domain"
	"domain-recovery/internal/valuation"
)

var now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

type stubValuer struct {
	mid   float64
	calls int
}

func (s *stubValuer) Estimate(d string, _ valuation.Inputs) valuation.Valuation {
	s.calls++
	return valuation.Valuation{
		Domain:   d,
		Grade:    "B",
		Estimate: valuation.Range{Low: s.mid / 2, Mid: s.mid, High: s.mid * 2, Currency: "USD"},
	}
}

func newTestAnalyzer(v Valuer) *Analyzer {
	return NewAnalyzer(WithClock(func() time.Time { return now }), WithValuer(v))
}

func registered() *domain.RegistrationSignals {
	created := now.AddDate(-5, 0, 0)
	return &domain.RegistrationSignals{Registrar: "NameCheap, Inc.", CreatedAt: &created}
}

func expiredDaysAgo(days int) *domain.RegistrationSignals {
	r := registered()
	exp := now.Add(-time.Duration(days) * 24 * time.Hour)
	r.ExpiresAt = &exp
	return r
}

func TestAnalyze_NoRegistrationIsAvailable(t *testing.T) {
	a := newTestAnalyzer(&stubValuer{mid: 1000})
	inputs := []*domain.RegistrationSignals{
		nil,
		{},
		{Registrar: "REDACTED FOR PRIVACY"},
		{Registrar: "", NameServers: []string{"ns1.example.net"}, Statuses: []string{"ok"}},
	}
	for _, d := range []string{"freshname.com", "google.com", "ab.io"} {
		for i, reg := range inputs {
			r, err := a.Analyze(Input{Domain: d, Registration: reg})
			require.NoError(t, err)
			assert.Equal(t, StateAvailable, r.State, "%s #%d", d, i)
			assert.Equal(t, DifficultyEasy, r.Difficulty)
			assert.Equal(t, 100, r.SuccessRate)
			assert.False(t, r.IsRegistered)
			assert.NotEmpty(t, r.Reasons)
		}
	}
}

func TestAnalyze_RegistrationEvidence(t *testing.T) {
	a := newTestAnalyzer(&stubValuer{mid: 1000})
	created := now.AddDate(-1, 0, 0)
	for name, reg := range map[string]*domain.RegistrationSignals{
		"registrar":     {Registrar: "GoDaddy.com, LLC"},
		"creation date": {CreatedAt: &created},
		"registrant":    {RegistrantPresent: true},
	} {
		r, err := a.Analyze(Input{Domain: "something.com", Registration: reg})
		require.NoError(t, err)
		assert.True(t, r.IsRegistered, name)
		assert.NotEqual(t, StateAvailable, r.State, name)
	}
}

func TestAnalyze_Reserved(t *testing.T) {
	a := newTestAnalyzer(&stubValuer{mid: 1000})
	r, err := a.Analyze(Input{
		Domain:       "example.com",
		Registration: &domain.RegistrationSignals{Registrar: "RESERVED-Internet Assigned Numbers Authority"},
	})
	require.NoError(t, err)
	assert.Equal(t, StateReserved, r.State)
	assert.Equal(t, DifficultyImpossible, r.Difficulty)
	assert.Equal(t, 0.0, r.Cost.Min)
	assert.Equal(t, 0.0, r.Cost.Max)
	assert.Equal(t, 0, r.SuccessRate)
}

func TestAnalyze_ReservedWithoutRegistration(t *testing.T) {
	a := newTestAnalyzer(&stubValuer{mid: 1000})
	for _, d := range []string{"example.com", "example.org", "shop.test"} {
		r, err := a.Analyze(Input{Domain: d})
		require.NoError(t, err)
		assert.Equal(t, StateReserved, r.State, d)
		assert.Equal(t, 0, r.SuccessRate)
		assert.False(t, r.IsRegistered)
	}
}

func TestAnalyze_SubdomainsResolveToRegistrableName(t *testing.T) {
	a := newTestAnalyzer(&stubValuer{mid: 1000})

	r, err := a.Analyze(Input{
		Domain:       "mail.google.com",
		Registration: registered(),
		Activity:     domain.ActivitySignals{WebsiteLive: domain.Bool(true)},
	})
	require.NoError(t, err)
	assert.Equal(t, "google.com", r.Domain)
	assert.Equal(t, StateActiveInUse, r.State)
	assert.Equal(t, DifficultyImpossible, r.Difficulty)
	assert.Equal(t, 0, r.SuccessRate)
	assert.True(t, r.IsBrand)

	r, err = a.Analyze(Input{Domain: "docs.example.com", Registration: registered()})
	require.NoError(t, err)
	assert.Equal(t, "example.com", r.Domain)
	assert.Equal(t, StateReserved, r.State)
}

func TestAnalyze_MajorBrandRegardlessOfSignals(t *testing.T) {
	a := newTestAnalyzer(&stubValuer{mid: 1000})
	signals := []struct {
		reg *domain.RegistrationSignals
		act domain.ActivitySignals
	}{
		{registered(), domain.ActivitySignals{}},
		{expiredDaysAgo(10), domain.ActivitySignals{WebsiteLive: domain.Bool(false)}},
		{expiredDaysAgo(100), domain.ActivitySignals{}},
		{registered(), domain.ActivitySignals{WebsiteLive: domain.Bool(false), HasARecords: domain.Bool(true)}},
	}
	for _, d := range []string{"google.com", "https://www.Amazon.com/", "paypal.com"} {
		for _, s := range signals {
			r, err := a.Analyze(Input{Domain: d, Registration: s.reg, Activity: s.act})
			require.NoError(t, err)
			assert.Equal(t, StateActiveInUse, r.State, d)
			assert.Equal(t, DifficultyImpossible, r.Difficulty)
			assert.Equal(t, 0, r.SuccessRate)
			assert.True(t, r.IsBrand)
		}
	}
}

func TestAnalyze_ExpiryBuckets(t *testing.T) {
	a := newTestAnalyzer(&stubValuer{mid: 1000})
	tests := []struct {
		days       int
		want       State
		diff       Difficulty
		success    int
		deleteDays int
	}{
		{0, StateExpiredGrace, DifficultyModerate, 70, 0},
		{1, StateExpiredGrace, DifficultyModerate, 70, 0},
		{45, StateExpiredGrace, DifficultyModerate, 70, 0},
		{46, StateRedemption, DifficultyHard, 50, 75},
		{75, StateRedemption, DifficultyHard, 50, 75},
		{76, StatePendingDelete, DifficultyHard, 30, 90},
		{400, StatePendingDelete, DifficultyHard, 30, 90},
	}
	for _, tt := range tests {
		reg := expiredDaysAgo(tt.days)
		if tt.days == 0 {
			exp := now.Add(-time.Hour)
			reg.ExpiresAt = &exp
		}
		r, err := a.Analyze(Input{Domain: "lapsed.com", Registration: reg})
		require.NoError(t, err)
		assert.Equal(t, tt.want, r.State, "day %d", tt.days)
		assert.Equal(t, tt.diff, r.Difficulty, "day %d", tt.days)
		assert.Equal(t, tt.success, r.SuccessRate, "day %d", tt.days)
		require.NotNil(t, r.DaysSinceExpiry)
		assert.Equal(t, tt.days, *r.DaysSinceExpiry)
		if tt.deleteDays == 0 {
			assert.Nil(t, r.DeletionDate)
			continue
		}
		require.NotNil(t, r.DeletionDate)
		assert.Equal(t, reg.ExpiresAt.AddDate(0, 0, tt.deleteDays), *r.DeletionDate)
	}
}

func TestAnalyze_ExpiryCostTemplates(t *testing.T) {
	a := newTestAnalyzer(&stubValuer{mid: 1000})
	tests := []struct {
		days     int
		min, max float64
		weeks    int
	}{
		{10, 500, 2000, 1},
		{60, 1000, 5000, 2},
		{80, 69, 500, 1},
	}
	for _, tt := range tests {
		r, err := a.Analyze(Input{Domain: "lapsed.com", Registration: expiredDaysAgo(tt.days)})
		require.NoError(t, err)
		assert.Equal(t, tt.min, r.Cost.Min)
		assert.Equal(t, tt.max, r.Cost.Max)
		assert.Equal(t, tt.weeks, r.EstimatedWeeks)
	}
}

func TestAnalyze_StatusFlagsWithoutExpiry(t *testing.T) {
	a := newTestAnalyzer(&stubValuer{mid: 1000})

	reg := registered()
	reg.Statuses = []string{"redemptionPeriod https://icann.org/epp#redemptionPeriod"}
	r, err := a.Analyze(Input{Domain: "lapsed.com", Registration: reg})
	require.NoError(t, err)
	assert.Equal(t, StateRedemption, r.State)
	assert.Nil(t, r.DaysSinceExpiry)

	reg.Statuses = []string{"pendingDelete"}
	r, err = a.Analyze(Input{Domain: "lapsed.com", Registration: reg})
	require.NoError(t, err)
	assert.Equal(t, StatePendingDelete, r.State)
}

func TestAnalyze_HostingIssue(t *testing.T) {
	a := newTestAnalyzer(&stubValuer{mid: 1000})
	r, err := a.Analyze(Input{
		Domain:       "mybusiness.com",
		Registration: registered(),
		Activity:     domain.ActivitySignals{WebsiteLive: domain.Bool(false), HasARecords: domain.Bool(true)},
	})
	require.NoError(t, err)
	assert.Equal(t, StateHostingIssue, r.State)
	assert.Equal(t, DifficultyModerate, r.Difficulty)
	assert.Equal(t, 90, r.SuccessRate)
}

// A-records plus an unreachable site is a hosting issue even when archived content
// would otherwise make the domain look previously used.
func TestAnalyze_HostingIssueTakesPrecedenceOverArchive(t *testing.T) {
	a := newTestAnalyzer(&stubValuer{mid: 1000})
	r, err := a.Analyze(Input{
		Domain:       "mybusiness.com",
		Registration: registered(),
		Activity: domain.ActivitySignals{
			WebsiteLive:      domain.Bool(false),
			HasARecords:      domain.Bool(true),
			ArchiveSnapshots: domain.Int(120),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, StateHostingIssue, r.State)
	assert.Contains(t, r.Opportunities[0], "Archived snapshots")
}

func TestAnalyze_ExpiredBeatsHostingIssue(t *testing.T) {
	a := newTestAnalyzer(&stubValuer{mid: 1000})
	r, err := a.Analyze(Input{
		Domain:       "mybusiness.com",
		Registration: expiredDaysAgo(3),
		Activity:     domain.ActivitySignals{WebsiteLive: domain.Bool(false), HasARecords: domain.Bool(true)},
	})
	require.NoError(t, err)
	assert.Equal(t, StateExpiredGrace, r.State)
}

func TestAnalyze_ActiveSubClassification(t *testing.T) {
	sedo := []string{"ns1.sedoparking.com", "ns2.sedoparking.com"}
	tests := []struct {
		name string
		act  domain.ActivitySignals
		ns   []string
		want State
	}{
		{"no signals at all", domain.ActivitySignals{}, nil, StateActiveParked},
		{"no signals with parking ns", domain.ActivitySignals{}, sedo, StateActiveParked},
		{"down and never archived", domain.ActivitySignals{WebsiteLive: domain.Bool(false), ArchiveSnapshots: domain.Int(0)}, nil, StateActiveParked},
		{"down, no dns data, never archived", domain.ActivitySignals{WebsiteLive: domain.Bool(false)}, sedo, StateActiveParked},
		{"live on parking ns", domain.ActivitySignals{WebsiteLive: domain.Bool(true)}, sedo, StateActiveForSale},
		{"archived on parking ns", domain.ActivitySignals{ArchiveSnapshots: domain.Int(4)}, sedo, StateActiveForSale},
		{"live", domain.ActivitySignals{WebsiteLive: domain.Bool(true), HasARecords: domain.Bool(true)}, nil, StateActiveInUse},
		{"down but archived, no A records", domain.ActivitySignals{WebsiteLive: domain.Bool(false), HasARecords: domain.Bool(false), ArchiveSnapshots: domain.Int(9)}, nil, StateActiveInUse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &stubValuer{mid: 10_000}
			reg := registered()
			exp := now.AddDate(1, 0, 0)
			reg.ExpiresAt = &exp
			reg.NameServers = tt.ns
			r, err := newTestAnalyzer(v).Analyze(Input{Domain: "occupied.com", Registration: reg, Activity: tt.act})
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.State)
			assert.Equal(t, 1, v.calls)
			require.NotNil(t, r.Valuation)
			require.NotNil(t, r.DaysUntilExpiry)
			assert.NotEmpty(t, r.Reasons)
			assert.NotEmpty(t, r.Opportunities)
		})
	}
}

func TestAnalyze_CostsFromValuation(t *testing.T) {
	reg := registered()
	reg.NameServers = []string{"ns1.dan.com"}

	forSale, err := newTestAnalyzer(&stubValuer{mid: 4000}).Analyze(Input{
		Domain: "occupied.com", Registration: reg,
		Activity: domain.ActivitySignals{WebsiteLive: domain.Bool(true)},
	})
	require.NoError(t, err)
	assert.Equal(t, StateActiveForSale, forSale.State)
	assert.Equal(t, CostRange{Min: 4000, Max: 8000, Currency: "USD"}, forSale.Cost)
	assert.True(t, forSale.IsForSale)
	assert.Equal(t, "dan.com", forSale.ParkingProvider)

	cheap, err := newTestAnalyzer(&stubValuer{mid: 500}).Analyze(Input{
		Domain: "occupied.com", Registration: registered(),
		Activity: domain.ActivitySignals{WebsiteLive: domain.Bool(true)},
	})
	require.NoError(t, err)
	assert.Equal(t, StateActiveInUse, cheap.State)
	assert.Equal(t, DifficultyHard, cheap.Difficulty)
	assert.Equal(t, CostRange{Min: 250, Max: 1000, Currency: "USD"}, cheap.Cost)

	pricey, err := newTestAnalyzer(&stubValuer{mid: 50_000}).Analyze(Input{
		Domain: "occupied.com", Registration: registered(),
		Activity: domain.ActivitySignals{WebsiteLive: domain.Bool(true)},
	})
	require.NoError(t, err)
	assert.Equal(t, DifficultyVeryHard, pricey.Difficulty)
	assert.Equal(t, 15, pricey.SuccessRate)
}

func TestAnalyze_NotesAndRegistrar(t *testing.T) {
	reg := registered()
	reg.RegistrantRedacted = true
	reg.Statuses = []string{"clientTransferProhibited"}
	exp := now.AddDate(0, 0, 20)
	reg.ExpiresAt = &exp

	r, err := newTestAnalyzer(&stubValuer{mid: 1000}).Analyze(Input{
		Domain: "occupied.com", Registration: reg,
		Activity: domain.ActivitySignals{WebsiteLive: domain.Bool(true)},
	})
	require.NoError(t, err)
	assert.Len(t, r.Warnings, 3)
	require.NotNil(t, r.DaysUntilExpiry)
	assert.Equal(t, 20, *r.DaysUntilExpiry)
	assert.Contains(t, r.Opportunities[0], "Expires in 20 days")

	require.NotNil(t, r.Registrar)
	assert.Equal(t, "NameCheap, Inc.", r.Registrar.Name)
	assert.Equal(t, "https://www.namecheap.com/support/", r.Registrar.URL)
}

func TestAnalyze_InvalidDomain(t *testing.T) {
	_, err := newTestAnalyzer(&stubValuer{}).Analyze(Input{Domain: "not a domain"})
	assert.ErrorIs(t, err, domain.ErrInvalidDomain)
}

func TestAnalyze_DefaultValuerSharesClock(t *testing.T) {
	a := NewAnalyzer(WithClock(func() time.Time { return now }))
	r, err := a.Analyze(Input{
		Domain: "occupied.com", Registration: registered(),
		Activity: domain.ActivitySignals{WebsiteLive: domain.Bool(true)},
	})
	require.NoError(t, err)
	require.NotNil(t, r.Valuation)
	assert.Len(t, r.Valuation.Factors, 7)
	assert.Greater(t, r.Valuation.Confidence, 25)
}

func TestRecoveryScore(t *testing.T) {
	days := func(n int) *int { return &n }
	tests := []struct {
		name string
		r    Report
		want int
	}{
		{"available", Report{SuccessRate: 100, Difficulty: DifficultyEasy}, 100},
		{"early grace gets bonus", Report{SuccessRate: 70, Difficulty: DifficultyModerate, DaysSinceExpiry: days(5)}, 66},
		{"day 30 still gets bonus", Report{SuccessRate: 70, Difficulty: DifficultyModerate, DaysSinceExpiry: days(30)}, 66},
		{"day 31 no bonus", Report{SuccessRate: 70, Difficulty: DifficultyModerate, DaysSinceExpiry: days(31)}, 56},
		{"pending delete", Report{SuccessRate: 30, Difficulty: DifficultyHard, DaysSinceExpiry: days(80)}, 18},
		{"in use", Report{SuccessRate: 15, Difficulty: DifficultyVeryHard}, 5},
		{"impossible", Report{SuccessRate: 0, Difficulty: DifficultyImpossible}, 0},
		{"clamped", Report{SuccessRate: 100, Difficulty: DifficultyEasy, DaysSinceExpiry: days(2)}, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RecoveryScore(tt.r), tt.name)
	}
}

func TestUnknown(t *testing.T) {
	r := Unknown("lost.com", errors.New("whois timeout"))
	assert.Equal(t, StateUnknown, r.State)
	assert.True(t, r.State.Valid())
	assert.Contains(t, r.Warnings[0], "whois timeout")
}

func TestState(t *testing.T) {
	assert.Len(t, States, 10)
	assert.False(t, State("DELETED").Valid())
	assert.True(t, StateRedemption.IsExpired())
	assert.False(t, StateActiveParked.IsExpired())
}
