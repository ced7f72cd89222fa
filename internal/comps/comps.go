// Package comps provides a static, queryable table of historical domain sales used to
// anchor valuations.
package comps

import (
	"sort"

	"domain-recovery/internal/catalog"
	"domain-recovery/internal/domain"
)

// Sale is one historical sale record.
type Sale struct {
	Domain string  `json:"domain"`
	Price  float64 `json:"price"`
	Year   int     `json:"year"`
	Venue  string  `json:"venue,omitempty"`
}

// Match is a sale together with its similarity (0-100) to a queried domain.
type Match struct {
	Sale
	Similarity int `json:"similarity"`
}

// MinSimilarity is the lowest similarity returned by Similar.
const MinSimilarity = 40

// Index is an immutable, read-only set of sales. It is safe for concurrent use.
type Index struct {
	sales []indexedSale
}

type indexedSale struct {
	Sale
	name     string
	tld      string
	alpha    bool
	keywords []string
}

// NewIndex builds an index over sales. The slice is copied.
func NewIndex(sales []Sale) *Index {
	idx := &Index{sales: make([]indexedSale, 0, len(sales))}
	for _, s := range sales {
		name, tld := domain.Split(s.Domain)
		idx.sales = append(idx.sales, indexedSale{
			Sale:     s,
			name:     name,
			tld:      tld,
			alpha:    domain.IsAlpha(name),
			keywords: words(name),
		})
	}
	return idx
}

var defaultIndex = NewIndex(dataset)

// Default returns the index over the bundled dataset.
func Default() *Index { return defaultIndex }

// Len returns the number of indexed sales.
func (idx *Index) Len() int { return len(idx.sales) }

// Similar returns up to limit sales with similarity of at least MinSimilarity, ordered by
// similarity then price, both descending. The queried domain itself is never returned.
func (idx *Index) Similar(d string, limit int) []Match {
	name, tld := domain.Split(d)
	alpha := domain.IsAlpha(name)
	kw := words(name)

	var out []Match
	for _, s := range idx.sales {
		if s.Domain == d {
			continue
		}
		score := similarity(name, tld, alpha, kw, s)
		if score < MinSimilarity {
			continue
		}
		out = append(out, Match{Sale: s.Sale, Similarity: score})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Similarity != out[j].Similarity {
			return out[i].Similarity > out[j].Similarity
		}
		return out[i].Price > out[j].Price
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func similarity(name, tld string, alpha bool, kw []string, s indexedSale) int {
	score := 0
	if tld == s.tld {
		score += 30
	}

	diff := len(name) - len(s.name)
	if diff < 0 {
		diff = -diff
	}
	if lenScore := 40 - 10*diff; lenScore > 0 {
		score += lenScore
	}

	if alpha == s.alpha {
		score += 10
	}

	if sharesWord(kw, s.keywords) {
		score += 20
	}

	if score > 100 {
		score = 100
	}
	return score
}

func words(name string) []string {
	out := catalog.ContainedPremiumKeywords(name)
	out = append(out, catalog.ContainedDictionaryWords(name)...)
	return out
}

func sharesWord(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// MedianPrice returns the median sale price of matches and false when there are none.
func MedianPrice(matches []Match) (float64, bool) {
	if len(matches) == 0 {
		return 0, false
	}
	prices := make([]float64, len(matches))
	for i, m := range matches {
		prices[i] = m.Price
	}
	sort.Float64s(prices)
	mid := len(prices) / 2
	if len(prices)%2 == 1 {
		return prices[mid], true
	}
	return (prices[mid-1] + prices[mid]) / 2, true
}
