package valuation

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domain-recovery/internal/comps"
	"domain-recovery/internal/domain"
)

var fixedNow = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func newTestEngine(opts ...Option) *Engine {
	return NewEngine(append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)...)
}

func TestEstimate_SevenFactorsWeightsSumToOne(t *testing.T) {
	v := newTestEngine().Estimate("lumora.com", Inputs{})

	require.Len(t, v.Factors, 7)
	names := make([]string, 0, 7)
	total := 0.0
	for _, f := range v.Factors {
		names = append(names, f.Name)
		total += f.Weight
		assert.GreaterOrEqual(t, f.Score, 0.0)
		assert.LessOrEqual(t, f.Score, 100.0)
		assert.NotEmpty(t, f.Explanation)
	}
	assert.Equal(t, []string{FactorLength, FactorTLD, FactorKeyword, FactorAge, FactorSEO, FactorBrandability, FactorMarket}, names)
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestEstimate_RangeInvariants(t *testing.T) {
	e := newTestEngine()
	for _, d := range []string{
		"qz.com", "qzv.com", "lumora.com", "bestinsurancequotes.com", "google.com",
		"my-very-long-hyphenated-name-123.xyz", "a1.zzz", "x-y-z-1-2-3-q.site",
	} {
		t.Run(d, func(t *testing.T) {
			v := e.Estimate(d, Inputs{})
			assert.Less(t, v.Estimate.Low, v.Estimate.Mid)
			assert.Less(t, v.Estimate.Mid, v.Estimate.High)
			assert.GreaterOrEqual(t, v.Estimate.Mid, minimumValue)
			assert.GreaterOrEqual(t, v.Composite, 0.0)
			assert.LessOrEqual(t, v.Composite, 100.0)
			assert.LessOrEqual(t, len(v.Comparables), 5)
			assert.Equal(t, "USD", v.Estimate.Currency)
		})
	}
}

func TestEstimate_UltraShortComFloors(t *testing.T) {
	e := newTestEngine(WithIndex(comps.NewIndex(nil)))

	two := e.Estimate("qz.com", Inputs{})
	assert.GreaterOrEqual(t, two.Composite, 82.0)
	assert.Contains(t, []string{"A", "A+"}, two.Grade)

	three := e.Estimate("qzv.com", Inputs{})
	assert.GreaterOrEqual(t, three.Composite, 72.0)

	// Digits in a three-character name do not qualify for the floor.
	mixed := e.Estimate("q1v.com", Inputs{})
	assert.Less(t, mixed.Composite, 72.0)

	// Floors only apply to .com.
	net := e.Estimate("qz.net", Inputs{})
	assert.Less(t, net.Composite, 82.0)
}

func TestEstimate_Confidence(t *testing.T) {
	e := newTestEngine()
	assert.Equal(t, 25, e.Estimate("lumora.com", Inputs{}).Confidence)

	created := fixedNow.AddDate(-12, 0, 0)
	full := e.Estimate("lumora.com", Inputs{
		Registration: &domain.RegistrationSignals{Registrar: "Namecheap", CreatedAt: &created},
		SEO:          &domain.SEOMetrics{DomainAuthority: domain.Int(40), Backlinks: domain.Int(500), MonthlyTraffic: domain.Int(2000)},
		Security:     &domain.SecurityMetrics{ReputationScore: 90},
		Website:      &domain.WebsiteInfo{Live: true, SSLValid: domain.Bool(true)},
	})
	assert.Equal(t, 95, full.Confidence)

	placeholder := e.Estimate("lumora.com", Inputs{Registration: &domain.RegistrationSignals{Registrar: "REDACTED"}})
	assert.Equal(t, 25, placeholder.Confidence)
}

func TestEstimate_AgeAndSEOFactors(t *testing.T) {
	e := newTestEngine()
	created := fixedNow.AddDate(-21, 0, 0)
	v := e.Estimate("lumora.com", Inputs{
		Registration: &domain.RegistrationSignals{CreatedAt: &created},
		SEO:          &domain.SEOMetrics{DomainAuthority: domain.Int(60), Backlinks: domain.Int(20_000)},
	})

	byName := map[string]Factor{}
	for _, f := range v.Factors {
		byName[f.Name] = f
	}
	assert.Equal(t, 100.0, byName[FactorAge].Score)
	// (0.5*60 + 0.25*100) / 0.75
	assert.InDelta(t, 73.3, byName[FactorSEO].Score, 0.05)
	assert.Equal(t, ImpactPositive, byName[FactorSEO].Impact)

	bare := e.Estimate("lumora.com", Inputs{})
	for _, f := range bare.Factors {
		switch f.Name {
		case FactorAge:
			assert.Equal(t, 30.0, f.Score)
		case FactorSEO:
			assert.Equal(t, 25.0, f.Score)
			assert.Equal(t, ImpactNegative, f.Impact)
		}
	}
}

func TestEstimate_KeywordFactor(t *testing.T) {
	tests := []struct {
		name  string
		score float64
	}{
		{"q", 100},
		{"qz", 95},
		{"qzv", 90},
		{"q1v", 80},
		{"insurance", 95},
		{"river", 80},
		{"zorblatfen", 20},
		{"cloudriver", 57},
		{"carsinsurance", 70},
		{"bluestone", 44},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.score, keywordFactor(tt.name).Score, tt.name)
	}
}

func TestEstimate_MajorBrand(t *testing.T) {
	v := newTestEngine().Estimate("google.com", Inputs{})
	assert.True(t, v.Classification.IsMajorBrand())
	assert.Equal(t, 5.5e9, v.Estimate.Mid)
}

func TestEstimate_AnchorCapped(t *testing.T) {
	idx := comps.NewIndex([]comps.Sale{{Domain: "zentrox.com", Price: 1e12, Year: 2020}})
	v := newTestEngine(WithIndex(idx)).Estimate("lumora.com", Inputs{})

	require.Len(t, v.Comparables, 1)
	raw := rawValue(v.Composite, "lumora", "com")
	w := math.Min(0.35, v.Composite/250)
	assert.LessOrEqual(t, v.Estimate.Mid, raw*(1-w)+10*raw*w+1)
}

func TestEstimate_PoorReputationHalves(t *testing.T) {
	e := newTestEngine()
	good := e.Estimate("lumora.com", Inputs{Security: &domain.SecurityMetrics{ReputationScore: 80}})
	bad := e.Estimate("lumora.com", Inputs{Security: &domain.SecurityMetrics{ReputationScore: 10}})
	assert.InDelta(t, good.Estimate.Mid/2, bad.Estimate.Mid, 1)
	assert.NotEmpty(t, bad.Notes)
}

func TestEstimate_Deterministic(t *testing.T) {
	e := newTestEngine()
	assert.Equal(t, e.Estimate("brightstone.io", Inputs{}), e.Estimate("brightstone.io", Inputs{}))
}

func TestGrade(t *testing.T) {
	tests := []struct {
		composite float64
		want      string
	}{
		{100, "A+"}, {78, "A+"}, {77.9, "A"}, {70, "A"}, {62, "B+"}, {54, "B"},
		{46, "C+"}, {38, "C"}, {28, "D+"}, {18, "D"}, {17.9, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Grade(tt.composite), "%v", tt.composite)
	}
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$1,234,567", FormatUSD(1234567.4))
	assert.Equal(t, "$8", FormatUSD(8))
}

func TestCleanlinessMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, cleanlinessMultiplier("lumora"))
	assert.InDelta(t, 0.36, cleanlinessMultiplier("a-b-c"), 1e-9)
	assert.InDelta(t, 0.6, cleanlinessMultiplier("shop24"), 1e-9)
	assert.Equal(t, 1.0, cleanlinessMultiplier("365"))
	assert.Equal(t, 0.1, cleanlinessMultiplier("a-b-c-d-e-1"))
}
