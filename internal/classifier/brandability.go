package classifier

import (
	"math"
	"strings"

	"domain-recovery/internal/catalog"
)

// BrandabilityScore breaks a brandability score into its five components, each 0-100.
type BrandabilityScore struct {
	Pronounceability float64 `json:"pronounceability"`
	Length           float64 `json:"length"`
	Cleanliness      float64 `json:"cleanliness"`
	Phonetics        float64 `json:"phonetics"`
	Memorability     float64 `json:"memorability"`
	Total            float64 `json:"total"`
}

const (
	weightPronounceability = 0.30
	weightLength           = 0.20
	weightCleanliness      = 0.20
	weightPhonetics        = 0.15
	weightMemorability     = 0.15
)

// Brandability scores a bare name (no TLD) for how memorable, pronounceable and clean
// it is as a brand.
func Brandability(name string) BrandabilityScore {
	name = strings.ToLower(name)
	s := BrandabilityScore{
		Pronounceability: pronounceability(name),
		Length:           lengthScore(len(name)),
		Cleanliness:      cleanliness(name),
		Phonetics:        phonetics(name),
		Memorability:     memorability(name),
	}
	s.Total = round1(s.Pronounceability*weightPronounceability +
		s.Length*weightLength +
		s.Cleanliness*weightCleanliness +
		s.Phonetics*weightPhonetics +
		s.Memorability*weightMemorability)
	return s
}

func isVowel(r byte) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

func isLetter(r byte) bool { return r >= 'a' && r <= 'z' }

func letters(name string) string {
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		if isLetter(name[i]) {
			b.WriteByte(name[i])
		}
	}
	return b.String()
}

func pronounceability(name string) float64 {
	l := letters(name)
	if l == "" {
		return 20
	}
	if len(l) <= 3 {
		// Short names are read as acronyms.
		return 80
	}

	vowels := 0
	for i := 0; i < len(l); i++ {
		if isVowel(l[i]) {
			vowels++
		}
	}
	ratio := float64(vowels) / float64(len(l))

	score := 100.0
	switch {
	case ratio < 0.35:
		score -= (0.35 - ratio) * 250
	case ratio > 0.55:
		score -= (ratio - 0.55) * 250
	}

	consonantRun, vowelRun := 0, 0
	for i := 0; i < len(l); i++ {
		if isVowel(l[i]) {
			vowelRun++
			consonantRun = 0
			if vowelRun == 3 {
				score -= 10
			}
		} else {
			consonantRun++
			vowelRun = 0
			if consonantRun == 4 {
				score -= 15
			}
		}
	}
	return clamp(score)
}

func lengthScore(n int) float64 {
	switch {
	case n <= 4:
		return 100
	case n <= 6:
		return 95
	case n <= 8:
		return 85
	case n <= 10:
		return 70
	case n <= 12:
		return 55
	case n <= 15:
		return 40
	case n <= 20:
		return 25
	default:
		return 10
	}
}

func cleanliness(name string) float64 {
	score := 100.0
	score -= 30 * float64(strings.Count(name, "-"))
	l := letters(strings.ReplaceAll(name, "-", ""))
	hasDigit := strings.IndexAny(name, "0123456789") >= 0
	switch {
	case hasDigit && l == "":
		score -= 10
	case hasDigit:
		score -= 25
	}
	return clamp(score)
}

func phonetics(name string) float64 {
	l := letters(name)
	if len(l) < 2 {
		return 60
	}
	transitions := 0
	for i := 1; i < len(l); i++ {
		if isVowel(l[i]) != isVowel(l[i-1]) {
			transitions++
		}
	}
	score := 40 + 60*float64(transitions)/float64(len(l)-1)
	for i := 2; i < len(l); i++ {
		if l[i] == l[i-1] && l[i] == l[i-2] {
			score -= 15
		}
	}
	return clamp(score)
}

func memorability(name string) float64 {
	score := 40.0
	switch {
	case catalog.IsDictionaryWord(name):
		score += 40
	default:
		if words := catalog.ContainedDictionaryWords(name); len(words) > 0 && len(words) <= 2 {
			score += 20
		}
	}
	switch {
	case len(name) <= 6:
		score += 20
	case len(name) <= 10:
		score += 10
	}
	if strings.ContainsAny(name, "-0123456789") {
		score -= 15
	}
	return clamp(score)
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
