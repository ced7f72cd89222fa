// Package catalog holds the versioned lookup tables shared by the classifier, the
// valuation engine, the status analyzer and the guide generator. The tables are
// initialised once at package load and must never be mutated.
package catalog

import (
	"sort"
	"strings"
)

// Version identifies the content revision of every table in this package.
const Version = "2026.10"

var majorBrands = setOf(
	"google.com", "youtube.com", "facebook.com", "instagram.com", "whatsapp.com",
	"amazon.com", "apple.com", "microsoft.com", "netflix.com", "twitter.com", "x.com",
	"linkedin.com", "yahoo.com", "bing.com", "wikipedia.org", "tiktok.com", "openai.com",
	"paypal.com", "ebay.com", "walmart.com", "target.com", "nike.com", "adidas.com",
	"cocacola.com", "coca-cola.com", "pepsi.com", "mcdonalds.com", "starbucks.com",
	"visa.com", "mastercard.com", "americanexpress.com", "samsung.com", "sony.com",
	"intel.com", "nvidia.com", "ibm.com", "oracle.com", "salesforce.com", "adobe.com",
	"tesla.com", "toyota.com", "bmw.com", "mercedes-benz.com", "disney.com", "spotify.com",
	"uber.com", "airbnb.com", "reddit.com", "github.com", "dropbox.com", "zoom.us",
	"alibaba.com", "baidu.com", "tencent.com", "jpmorgan.com", "chase.com",
	"bankofamerica.com", "wellsfargo.com", "goldmansachs.com", "fedex.com", "ups.com",
)

// IsMajorBrand reports whether domain is an exact match in the curated brand list.
func IsMajorBrand(domain string) bool {
	return majorBrands[domain]
}

var premiumKeywords = setOf(
	"insurance", "loans", "loan", "mortgage", "casino", "poker", "crypto", "bitcoin",
	"hotel", "hotels", "travel", "cars", "car", "credit", "lawyer", "lawyers", "attorney",
	"health", "cloud", "shop", "bank", "vpn", "hosting", "software", "invest", "trading",
	"finance", "money", "pay", "solar", "energy", "diet", "dental", "pharmacy", "realty",
	"homes", "home", "jobs", "dating", "vacation", "flights", "tickets", "games", "bet",
	"ai", "data", "security", "market", "store", "deals", "rent", "rehab", "degree",
)

// IsPremiumKeyword reports whether word is in the curated commercial-keyword set.
func IsPremiumKeyword(word string) bool {
	return premiumKeywords[word]
}

// ContainedPremiumKeywords returns the premium keywords of at least three characters
// contained in name, sorted.
func ContainedPremiumKeywords(name string) []string {
	return contained(premiumKeywords, name, 3)
}

var dictionaryWords = setOf(
	"apple", "river", "stone", "light", "cloud", "bright", "green", "blue", "red", "gold",
	"silver", "star", "sun", "moon", "sky", "ocean", "wave", "fire", "wind", "earth",
	"tree", "leaf", "rock", "peak", "path", "road", "bridge", "house", "home", "garden",
	"kitchen", "table", "book", "story", "word", "voice", "music", "sound", "art", "film",
	"photo", "camera", "design", "studio", "craft", "maker", "build", "smart", "fast",
	"quick", "simple", "easy", "clear", "fresh", "pure", "true", "bold", "happy", "lucky",
	"prime", "first", "best", "top", "hub", "lab", "labs", "works", "zone", "base", "spot",
	"point", "link", "net", "web", "site", "page", "app", "code", "dev", "tech", "data",
	"mind", "brain", "idea", "vision", "focus", "pulse", "spark", "nova", "atlas", "orbit",
	"shop", "store", "market", "trade", "deal", "buy", "sell", "cash", "coin", "pay",
	"travel", "trip", "tour", "hotel", "food", "cafe", "pizza", "coffee", "tea", "wine",
	"beer", "sport", "golf", "fit", "yoga", "health", "care", "doctor", "pet", "dog", "cat",
	"baby", "kids", "school", "learn", "teach", "job", "work", "team", "group", "club",
	"news", "daily", "world", "city", "local", "global", "media", "chat", "talk", "mail",
	"car", "bike", "auto", "drive", "fly", "jet", "boat", "ship", "box", "bag", "shoe",
)

// IsDictionaryWord reports whether word is in the curated dictionary set.
func IsDictionaryWord(word string) bool {
	return dictionaryWords[word]
}

// ContainedDictionaryWords returns dictionary words of at least three characters
// contained in name, sorted.
func ContainedDictionaryWords(name string) []string {
	return contained(dictionaryWords, name, 3)
}

var tldMultipliers = map[string]float64{
	"com": 1.00, "ai": 0.70, "io": 0.55, "net": 0.45, "org": 0.45, "co": 0.40,
	"app": 0.30, "de": 0.30, "co.uk": 0.30, "uk": 0.28, "dev": 0.25, "ca": 0.25,
	"com.au": 0.22, "us": 0.20, "me": 0.20, "tv": 0.20, "eu": 0.18, "fr": 0.18,
	"nl": 0.18, "ch": 0.18, "tech": 0.15, "store": 0.14, "shop": 0.14, "info": 0.12,
	"xyz": 0.10, "biz": 0.10, "online": 0.10, "site": 0.09,
}

// DefaultTLDMultiplier applies to any TLD missing from the table.
const DefaultTLDMultiplier = 0.08

// TLDMultiplier returns the value multiplier for tld (without a leading dot).
func TLDMultiplier(tld string) float64 {
	if m, ok := tldMultipliers[tld]; ok {
		return m
	}
	return DefaultTLDMultiplier
}

var reservedDomains = setOf(
	"example.com", "example.net", "example.org", "example.edu",
	"iana.org", "icann.org", "nic.com", "nic.net", "nic.org",
)

var reservedTLDs = setOf("example", "test", "invalid", "localhost", "local", "onion")

// IsReserved reports whether domain is a documentation, example or special-use name
// that can never be acquired.
func IsReserved(domain string) bool {
	if reservedDomains[domain] {
		return true
	}
	if i := strings.LastIndex(domain, "."); i >= 0 {
		return reservedTLDs[domain[i+1:]]
	}
	return false
}

var parkingNameServers = []string{
	"sedoparking.com", "parkingcrew.net", "bodis.com", "above.com", "dan.com",
	"afternic.com", "hugedomains.com", "domainnameservers.com", "parklogic.com",
	"uniregistrymarket.link", "namebrightdns.com", "undeveloped.com", "voodoo.com",
	"fabulous.com", "smartname.com", "dsredirection.com",
}

// ParkingProvider returns the parking/for-sale provider serving any of nameServers.
func ParkingProvider(nameServers []string) (string, bool) {
	for _, ns := range nameServers {
		ns = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(ns), "."))
		for _, p := range parkingNameServers {
			if ns == p || strings.HasSuffix(ns, "."+p) {
				return p, true
			}
		}
	}
	return "", false
}

var placeholderRegistrars = setOf(
	"", "n/a", "na", "none", "null", "unknown", "not available", "-", "redacted",
	"redacted for privacy", "data redacted", "no registrar",
)

// IsPlaceholderRegistrar reports whether a WHOIS registrar value carries no information.
func IsPlaceholderRegistrar(name string) bool {
	return placeholderRegistrars[strings.ToLower(strings.TrimSpace(name))]
}

func setOf(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}

type span struct {
	word    string
	start   int
	premium bool
}

// Segment splits name into non-overlapping known words of at least three characters,
// longest first with ties going to the leftmost match. A word in both tables counts as
// premium. Both results are in the order the words appear in name.
func Segment(name string) (premium, dictionary []string) {
	var spans []span
	collect := func(set map[string]bool, isPremium bool) {
		for w := range set {
			if len(w) < 3 || (!isPremium && premiumKeywords[w]) {
				continue
			}
			for off := 0; ; {
				i := strings.Index(name[off:], w)
				if i < 0 {
					break
				}
				spans = append(spans, span{word: w, start: off + i, premium: isPremium})
				off += i + 1
			}
		}
	}
	collect(premiumKeywords, true)
	collect(dictionaryWords, false)

	sort.Slice(spans, func(i, j int) bool {
		a, b := spans[i], spans[j]
		if len(a.word) != len(b.word) {
			return len(a.word) > len(b.word)
		}
		return a.start < b.start
	})

	used := make([]bool, len(name))
	var kept []span
	for _, sp := range spans {
		end := sp.start + len(sp.word)
		free := true
		for i := sp.start; i < end; i++ {
			if used[i] {
				free = false
				break
			}
		}
		if !free {
			continue
		}
		for i := sp.start; i < end; i++ {
			used[i] = true
		}
		kept = append(kept, sp)
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].start < kept[j].start })
	for _, sp := range kept {
		if sp.premium {
			premium = append(premium, sp.word)
		} else {
			dictionary = append(dictionary, sp.word)
		}
	}
	return premium, dictionary
}

func contained(set map[string]bool, name string, minLen int) []string {
	var out []string
	for w := range set {
		if len(w) >= minLen && strings.Contains(name, w) {
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}
