// Package valuation estimates the market value of a domain name from seven weighted
// factors, comparable sales and optional enrichment data.
package valuation

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"domain-recovery/internal/catalog"
	"domain-recovery/internal/classifier"
	"domain-recovery/internal/comps"
	"domain-recovery/internal/domain"
)

// Factor names, in output order.
const (
	FactorLength       = "length"
	FactorTLD          = "tld"
	FactorKeyword      = "keyword"
	FactorAge          = "age"
	FactorSEO          = "seo"
	FactorBrandability = "brandability"
	FactorMarket       = "market"
)

// Factor weights. They sum to 1.0.
const (
	WeightLength       = 0.20
	WeightTLD          = 0.15
	WeightKeyword      = 0.15
	WeightAge          = 0.10
	WeightSEO          = 0.20
	WeightBrandability = 0.10
	WeightMarket       = 0.10
)

// Impact is the qualitative direction of a factor.
type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNeutral  Impact = "neutral"
	ImpactNegative Impact = "negative"
)

// Factor is one scoring dimension of a valuation.
type Factor struct {
	Name        string  `json:"name"`
	Score       float64 `json:"score"`
	Weight      float64 `json:"weight"`
	Impact      Impact  `json:"impact"`
	Explanation string  `json:"explanation"`
}

// Range is a low/mid/high dollar estimate.
type Range struct {
	Low      float64 `json:"low"`
	Mid      float64 `json:"mid"`
	High     float64 `json:"high"`
	Currency string  `json:"currency"`
}

// Comparable references a historical sale used as a market anchor.
type Comparable struct {
	Domain     string  `json:"domain"`
	Price      float64 `json:"price"`
	Year       int     `json:"year"`
	Similarity int     `json:"similarity"`
}

// Valuation is the engine's output.
type Valuation struct {
	Domain         string                       `json:"domain"`
	Factors        []Factor                     `json:"factors"`
	Composite      float64                      `json:"composite"`
	Estimate       Range                        `json:"estimate"`
	Confidence     int                          `json:"confidence"`
	Grade          string                       `json:"grade"`
	Comparables    []Comparable                 `json:"comparables,omitempty"`
	Classification classifier.Classification    `json:"classification"`
	Brandability   classifier.BrandabilityScore `json:"brandability"`
	Notes          []string                     `json:"notes,omitempty"`
}

// Summary renders a one-line description of v.
func (v Valuation) Summary() string {
	return fmt.Sprintf("Grade %s: estimated %s to %s (confidence %d%%)",
		v.Grade, FormatUSD(v.Estimate.Low), FormatUSD(v.Estimate.High), v.Confidence)
}

// Inputs are the optional enrichment data of an estimate. Any field may be nil.
type Inputs struct {
	Registration *domain.RegistrationSignals
	SEO          *domain.SEOMetrics
	Security     *domain.SecurityMetrics
	Website      *domain.WebsiteInfo
}

// Engine estimates domain values. It holds only read-only tables and is safe for
// concurrent use.
type Engine struct {
	index *comps.Index
	now   func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithIndex replaces the comparable-sales index.
func WithIndex(idx *comps.Index) Option {
	return func(e *Engine) { e.index = idx }
}

// WithClock replaces the clock used to compute registration age.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an engine over the bundled comparable-sales dataset.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{index: comps.Default(), now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

const (
	maxComparables   = 5
	minimumValue     = 8.0
	reputationCutoff = 30
)

// Estimate values domain d. d must already be normalised.
func (e *Engine) Estimate(d string, in Inputs) Valuation {
	name, tld := domain.Split(d)
	now := e.now()
	ageYears := in.Registration.AgeYears(now)

	sig := classifier.Signals{AgeYears: ageYears}
	if in.SEO != nil {
		if in.SEO.MonthlyTraffic != nil {
			sig.MonthlyTraffic = *in.SEO.MonthlyTraffic
		}
		if in.SEO.Backlinks != nil {
			sig.Backlinks = *in.SEO.Backlinks
		}
	}
	class := classifier.Classify(d, sig)
	brand := classifier.Brandability(name)
	matches := e.index.Similar(d, maxComparables)
	anchor, hasAnchor := comps.MedianPrice(matches)

	v := Valuation{
		Domain:         d,
		Classification: class,
		Brandability:   brand,
		Factors: []Factor{
			lengthFactor(name),
			tldFactor(tld),
			keywordFactor(name),
			ageFactor(ageYears),
			seoFactor(in.SEO),
			brandabilityFactor(brand),
			marketFactor(anchor, hasAnchor, len(matches)),
		},
	}
	for _, m := range matches {
		v.Comparables = append(v.Comparables, Comparable{
			Domain: m.Domain, Price: m.Price, Year: m.Year, Similarity: m.Similarity,
		})
	}

	composite := 0.0
	for _, f := range v.Factors {
		composite += f.Score * f.Weight
	}
	composite = clamp(composite, 0, 100)

	if tld == "com" {
		switch {
		case len(name) <= 2 && composite < 82:
			composite = 82
			v.Notes = append(v.Notes, "Ultra-short .com: scarcity floor applied")
		case len(name) == 3 && domain.IsAlpha(name) && composite < 72:
			composite = 72
			v.Notes = append(v.Notes, "Three-letter .com: scarcity floor applied")
		}
	}
	v.Composite = round1(composite)

	mid := rawValue(v.Composite, name, tld)
	if hasAnchor && v.Composite > 40 {
		capped := math.Min(anchor, 10*mid)
		w := math.Min(0.35, v.Composite/250)
		mid = mid*(1-w) + capped*w
		v.Notes = append(v.Notes, fmt.Sprintf("Blended with comparable sales median %s", FormatUSD(anchor)))
	}
	if class.IsMajorBrand() {
		mid = (class.Value.Min + class.Value.Max) / 2
		v.Notes = append(v.Notes, "Major brand: value taken from brand classification")
	}
	if in.Security != nil && in.Security.ReputationScore < reputationCutoff {
		mid /= 2
		v.Notes = append(v.Notes, fmt.Sprintf("Poor reputation (%d/100) halves the estimate", in.Security.ReputationScore))
	}
	mid = math.Max(minimumValue, math.Round(mid))

	v.Estimate = Range{
		Low:      math.Round(mid * 0.5),
		Mid:      mid,
		High:     math.Round(mid * 2),
		Currency: "USD",
	}
	v.Confidence = confidence(in)
	v.Grade = Grade(v.Composite)
	return v
}

// rawValue converts a composite score into dollars before anchoring.
func rawValue(composite float64, name, tld string) float64 {
	base := math.Pow(10, composite/16)
	return base * catalog.TLDMultiplier(tld) * lengthMultiplier(len(name)) * cleanlinessMultiplier(name)
}

func lengthMultiplier(n int) float64 {
	switch {
	case n <= 1:
		return 40
	case n == 2:
		return 25
	case n == 3:
		return 12
	case n == 4:
		return 5
	case n == 5:
		return 2.5
	case n == 6:
		return 1.5
	case n == 7:
		return 1.0
	case n == 8:
		return 0.8
	case n == 9:
		return 0.6
	case n == 10:
		return 0.5
	case n <= 12:
		return 0.35
	case n <= 15:
		return 0.2
	case n < 20:
		return 0.12
	default:
		return 0.08
	}
}

func cleanlinessMultiplier(name string) float64 {
	m := 1.0
	for i := 0; i < countHyphens(name); i++ {
		m *= 0.6
	}
	if domain.HasDigit(name) && !allDigits(name) {
		m *= 0.6
	}
	return math.Max(m, 0.1)
}

func confidence(in Inputs) int {
	c := 25
	if r := in.Registration; r != nil {
		if r.CreatedAt != nil {
			c += 15
		}
		if !catalog.IsPlaceholderRegistrar(r.Registrar) {
			c += 5
		}
	}
	if s := in.SEO; s != nil {
		if s.DomainAuthority != nil {
			c += 15
		}
		if s.Backlinks != nil {
			c += 5
		}
		if s.MonthlyTraffic != nil {
			c += 5
		}
	}
	if in.Security != nil {
		c += 10
	}
	if w := in.Website; w != nil {
		c += 10
		if w.SSLValid != nil {
			c += 5
		}
	}
	if c > 100 {
		c = 100
	}
	return c
}

var gradeLadder = []struct {
	min   float64
	grade string
}{
	{78, "A+"},
	{70, "A"},
	{62, "B+"},
	{54, "B"},
	{46, "C+"},
	{38, "C"},
	{28, "D+"},
	{18, "D"},
}

// Grade maps a composite score to a letter grade. The ladder is compressed because
// unenriched composites rarely exceed 80.
func Grade(composite float64) string {
	for _, g := range gradeLadder {
		if composite >= g.min {
			return g.grade
		}
	}
	return "F"
}

// FormatUSD renders a whole-dollar amount with thousands separators.
func FormatUSD(v float64) string {
	return "$" + humanize.Comma(int64(math.Round(v)))
}

func countHyphens(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '-' {
			n++
		}
	}
	return n
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
