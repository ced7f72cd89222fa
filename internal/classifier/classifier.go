// Package classifier implements the brand/premium classifier and the brandability
// sub-scorer. Both are pure functions over a normalised domain string.
package classifier

import (
	"fmt"
	"regexp"
	"strings"

	"domain-recovery/internal/catalog"
	"domain-recovery/internal/domain"
)

// Tier orders classifications from most to least protected.
type Tier int

const (
	TierMajorBrand      Tier = 1
	TierPremiumPattern  Tier = 2
	TierKeywordValuable Tier = 3
	TierStandard        Tier = 4
	TierLowValue        Tier = 5
)

// Category names used in serialised output.
const (
	CategoryMajorBrand      = "MAJOR_BRAND"
	CategoryPremiumPattern  = "PREMIUM_PATTERN"
	CategoryKeywordValuable = "KEYWORD_VALUABLE"
	CategoryStandard        = "STANDARD"
	CategoryLowValue        = "LOW_VALUE"
)

// Confidence levels.
const (
	ConfidenceHigh   = "HIGH"
	ConfidenceMedium = "MEDIUM"
	ConfidenceLow    = "LOW"
)

// ValueRange is an estimated dollar range.
type ValueRange struct {
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Currency   string  `json:"currency"`
	Confidence string  `json:"confidence"`
}

// Classification is the classifier's verdict for a single domain.
type Classification struct {
	Domain   string     `json:"domain"`
	Tier     Tier       `json:"tier"`
	Category string     `json:"category"`
	Value    ValueRange `json:"value"`
	Reasons  []string   `json:"reasons"`
}

// IsMajorBrand reports whether the classification is tier 1.
func (c Classification) IsMajorBrand() bool { return c.Tier == TierMajorBrand }

// Signals are the optional inputs of Classify.
type Signals struct {
	AgeYears       *float64
	MonthlyTraffic int
	Backlinks      int
}

var (
	oneCharPattern   = regexp.MustCompile(`^[a-z0-9]\.[a-z.]+$`)
	twoCharPattern   = regexp.MustCompile(`^[a-z0-9]{2}\.[a-z.]+$`)
	threeCharPattern = regexp.MustCompile(`^[a-z0-9]{3}\.[a-z.]+$`)
)

// Classify resolves domain to one of the five tiers. It never fails: anything not
// recognised resolves to the standard or low-value branch.
func Classify(d string, sig Signals) Classification {
	name, tld := domain.Split(d)

	if catalog.IsMajorBrand(d) {
		return Classification{
			Domain:   d,
			Tier:     TierMajorBrand,
			Category: CategoryMajorBrand,
			Value:    ValueRange{Min: 1e9, Max: 1e10, Currency: "USD", Confidence: ConfidenceHigh},
			Reasons: []string{
				fmt.Sprintf("%s is a globally recognised brand", d),
				"Protected by trademark law and corporate brand-protection programmes",
				"Not acquirable through registration, backorder or negotiation",
			},
		}
	}

	if c, ok := classifyPremiumPattern(d, name, tld, sig); ok {
		return c
	}

	if keywords := catalog.ContainedPremiumKeywords(name); len(keywords) > 0 {
		return classifyKeyword(d, tld, keywords, sig)
	}

	return classifyStandard(d, name, tld, sig)
}

func classifyPremiumPattern(d, name, tld string, sig Signals) (Classification, bool) {
	var lo, hi float64
	var pattern string
	registrable := name + "." + tld
	switch {
	case oneCharPattern.MatchString(registrable):
		lo, hi, pattern = 1_000_000, 10_000_000, "single-character"
	case twoCharPattern.MatchString(registrable):
		lo, hi, pattern = 100_000, 2_000_000, "two-character"
	case threeCharPattern.MatchString(registrable):
		if domain.IsAlpha(name) {
			lo, hi, pattern = 10_000, 500_000, "three-letter"
		} else {
			lo, hi, pattern = 2_000, 50_000, "three-character"
		}
	default:
		return Classification{}, false
	}

	reasons := []string{fmt.Sprintf("Scarce %s name (%s)", pattern, name)}
	if tld != "com" {
		scale := catalog.TLDMultiplier(tld)
		lo *= scale
		hi *= scale
		reasons = append(reasons, fmt.Sprintf(".%s trades at %.0f%% of .com pricing", tld, scale*100))
	}
	if sig.AgeYears != nil && *sig.AgeYears > 10 {
		lo *= 1.5
		hi *= 1.5
		reasons = append(reasons, fmt.Sprintf("Registered for %.0f years", *sig.AgeYears))
	}

	return Classification{
		Domain:   d,
		Tier:     TierPremiumPattern,
		Category: CategoryPremiumPattern,
		Value:    ValueRange{Min: lo, Max: hi, Currency: "USD", Confidence: ConfidenceHigh},
		Reasons:  reasons,
	}, true
}

func classifyKeyword(d, tld string, keywords []string, sig Signals) Classification {
	lo, hi := 1_000.0, 50_000.0
	reasons := []string{fmt.Sprintf("Contains commercial keyword(s): %s", strings.Join(keywords, ", "))}

	lo, hi, reasons = applyMarketMultipliers(lo, hi, tld, sig, reasons)
	if sig.Backlinks > 1000 {
		lo *= 1.5
		hi *= 2
		reasons = append(reasons, fmt.Sprintf("%d backlinks", sig.Backlinks))
	}

	return Classification{
		Domain:   d,
		Tier:     TierKeywordValuable,
		Category: CategoryKeywordValuable,
		Value:    ValueRange{Min: lo, Max: hi, Currency: "USD", Confidence: ConfidenceMedium},
		Reasons:  reasons,
	}
}

func classifyStandard(d, name, tld string, sig Signals) Classification {
	lo, hi := 100.0, 5_000.0
	var reasons []string

	lo, hi, reasons = applyMarketMultipliers(lo, hi, tld, sig, reasons)
	if len(name) > 15 {
		lo /= 2
		hi /= 2
		reasons = append(reasons, fmt.Sprintf("Long name (%d characters)", len(name)))
	}

	c := Classification{
		Domain:   d,
		Tier:     TierStandard,
		Category: CategoryStandard,
		Value:    ValueRange{Min: lo, Max: hi, Currency: "USD", Confidence: ConfidenceLow},
	}
	if sig.AgeYears != nil && *sig.AgeYears < 1 {
		c.Tier = TierLowValue
		c.Category = CategoryLowValue
		reasons = append(reasons, "Registered less than a year ago")
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "No premium pattern, brand or commercial keyword detected")
	}
	c.Reasons = reasons
	return c
}

// applyMarketMultipliers scales a range by TLD, age and traffic.
func applyMarketMultipliers(lo, hi float64, tld string, sig Signals, reasons []string) (float64, float64, []string) {
	if tld == "com" {
		lo *= 2
		hi *= 2
		reasons = append(reasons, ".com extension")
	}
	if sig.AgeYears != nil {
		age := *sig.AgeYears
		var m float64
		switch {
		case age > 15:
			m = 2
		case age > 10:
			m = 1.5
		case age > 5:
			m = 1.2
		}
		if m > 0 {
			lo *= m
			hi *= m
			reasons = append(reasons, fmt.Sprintf("Aged domain (%.0f years)", age))
		}
	}
	switch {
	case sig.MonthlyTraffic > 100_000:
		lo *= 5
		hi *= 10
		reasons = append(reasons, fmt.Sprintf("High traffic (%d visits/month)", sig.MonthlyTraffic))
	case sig.MonthlyTraffic > 10_000:
		lo *= 2
		hi *= 3
		reasons = append(reasons, fmt.Sprintf("Established traffic (%d visits/month)", sig.MonthlyTraffic))
	}
	return lo, hi, reasons
}
