package valuation

import (
	"fmt"
	"strings"

	"domain-recovery/internal/catalog"
	"domain-recovery/internal/classifier"
	"domain-recovery/internal/domain"
)

func newFactor(name string, score, weight float64, explanation string) Factor {
	score = round1(clamp(score, 0, 100))
	impact := ImpactNeutral
	switch {
	case score >= 65:
		impact = ImpactPositive
	case score < 40:
		impact = ImpactNegative
	}
	return Factor{Name: name, Score: score, Weight: weight, Impact: impact, Explanation: explanation}
}

var lengthLadder = []struct {
	max   int
	score float64
}{
	{1, 100}, {2, 95}, {3, 88}, {4, 78}, {5, 68}, {6, 58}, {7, 50}, {8, 42},
	{9, 35}, {10, 28}, {12, 22}, {15, 15}, {20, 8},
}

func lengthFactor(name string) Factor {
	n := len(name)
	score := 3.0
	for _, step := range lengthLadder {
		if n <= step.max {
			score = step.score
			break
		}
	}
	return newFactor(FactorLength, score, WeightLength, fmt.Sprintf("%d-character name", n))
}

func tldFactor(tld string) Factor {
	m := catalog.TLDMultiplier(tld)
	return newFactor(FactorTLD, m*100, WeightTLD, fmt.Sprintf(".%s carries a %.2fx value multiplier", tld, m))
}

func keywordFactor(name string) Factor {
	switch n := len(name); {
	case n == 1:
		return newFactor(FactorKeyword, 100, WeightKeyword, "Single-character scarcity outweighs keyword content")
	case n == 2:
		return newFactor(FactorKeyword, 95, WeightKeyword, "Two-character scarcity outweighs keyword content")
	case n == 3 && domain.IsAlpha(name):
		return newFactor(FactorKeyword, 90, WeightKeyword, "Three-letter scarcity outweighs keyword content")
	case n == 3:
		return newFactor(FactorKeyword, 80, WeightKeyword, "Three-character scarcity outweighs keyword content")
	}

	if catalog.IsPremiumKeyword(name) {
		return newFactor(FactorKeyword, 95, WeightKeyword, fmt.Sprintf("Exact-match premium keyword %q", name))
	}
	if catalog.IsDictionaryWord(name) {
		return newFactor(FactorKeyword, 80, WeightKeyword, fmt.Sprintf("Exact dictionary word %q", name))
	}

	// overlapping matches count once: "cloudriver" is cloud + river, not drive
	premium, dict := catalog.Segment(name)
	if len(premium) == 0 && len(dict) == 0 {
		return newFactor(FactorKeyword, 20, WeightKeyword, "No recognisable keywords")
	}

	score := 20 + 25*float64(len(premium)) + 12*float64(len(dict))
	if score > 75 {
		score = 75
	}
	found := append(append([]string{}, premium...), dict...)
	return newFactor(FactorKeyword, score, WeightKeyword, "Contains "+strings.Join(found, ", "))
}

var ageLadder = []struct {
	under float64
	score float64
}{
	{1, 15}, {2, 30}, {5, 45}, {10, 65}, {15, 80}, {20, 90},
}

func ageFactor(years *float64) Factor {
	if years == nil {
		return newFactor(FactorAge, 30, WeightAge, "Registration age unknown")
	}
	score := 100.0
	for _, step := range ageLadder {
		if *years < step.under {
			score = step.score
			break
		}
	}
	return newFactor(FactorAge, score, WeightAge, fmt.Sprintf("Registered %.1f years", *years))
}

const seoBaseline = 25

func seoFactor(seo *domain.SEOMetrics) Factor {
	if seo == nil || (seo.DomainAuthority == nil && seo.Backlinks == nil && seo.MonthlyTraffic == nil) {
		return newFactor(FactorSEO, seoBaseline, WeightSEO, "No SEO data; baseline score")
	}

	var sum, weights float64
	var parts []string
	if seo.DomainAuthority != nil {
		sum += 0.5 * clamp(float64(*seo.DomainAuthority), 0, 100)
		weights += 0.5
		parts = append(parts, fmt.Sprintf("DA %d", *seo.DomainAuthority))
	}
	if seo.Backlinks != nil {
		sum += 0.25 * ladder(*seo.Backlinks, 10_000, 1_000, 100, 10)
		weights += 0.25
		parts = append(parts, fmt.Sprintf("%d backlinks", *seo.Backlinks))
	}
	if seo.MonthlyTraffic != nil {
		sum += 0.25 * ladder(*seo.MonthlyTraffic, 100_000, 10_000, 1_000, 100)
		weights += 0.25
		parts = append(parts, fmt.Sprintf("%d visits/month", *seo.MonthlyTraffic))
	}
	return newFactor(FactorSEO, sum/weights, WeightSEO, strings.Join(parts, ", "))
}

// ladder scores v as 100/75/50/30/10 against four descending thresholds.
func ladder(v, t1, t2, t3, t4 int) float64 {
	switch {
	case v >= t1:
		return 100
	case v >= t2:
		return 75
	case v >= t3:
		return 50
	case v >= t4:
		return 30
	default:
		return 10
	}
}

func brandabilityFactor(b classifier.BrandabilityScore) Factor {
	return newFactor(FactorBrandability, b.Total, WeightBrandability,
		fmt.Sprintf("Pronounceability %.0f, cleanliness %.0f, memorability %.0f", b.Pronounceability, b.Cleanliness, b.Memorability))
}

var priceLadder = []struct {
	min   float64
	score float64
}{
	{1_000_000, 100}, {250_000, 90}, {100_000, 80}, {50_000, 70},
	{10_000, 60}, {5_000, 50}, {1_000, 40},
}

func marketFactor(median float64, ok bool, n int) Factor {
	if !ok {
		return newFactor(FactorMarket, 30, WeightMarket, "No close comparable sales")
	}
	score := 30.0
	for _, step := range priceLadder {
		if median >= step.min {
			score = step.score
			break
		}
	}
	return newFactor(FactorMarket, score, WeightMarket,
		fmt.Sprintf("Median of %d comparable sales is %s", n, FormatUSD(median)))
}
