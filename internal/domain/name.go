package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDomain is returned when a string cannot be normalised into name.tld form.
var ErrInvalidDomain = errors.New("invalid domain name")

// multiLabelSuffixes are public suffixes that span two labels.
var multiLabelSuffixes = map[string]bool{
	"co.uk": true, "org.uk": true, "me.uk": true, "ltd.uk": true,
	"com.au": true, "net.au": true, "org.au": true,
	"co.nz": true, "co.jp": true, "co.za": true, "co.in": true,
	"com.br": true, "com.mx": true, "com.cn": true, "com.tr": true,
}

// Normalize trims, lowercases and strips protocol, credentials, port and path from raw,
// then drops any subdomain. The result is always the registrable name.tld.
func Normalize(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndex(s, "@"); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.Index(s, ":"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSuffix(s, ".")
	s = strings.TrimPrefix(s, "www.")

	if s == "" {
		return "", fmt.Errorf("%w: empty input", ErrInvalidDomain)
	}
	if len(s) > 253 {
		return "", fmt.Errorf("%w: %q exceeds 253 characters", ErrInvalidDomain, s)
	}

	labels := strings.Split(s, ".")
	if len(labels) < 2 {
		return "", fmt.Errorf("%w: %q has no TLD", ErrInvalidDomain, s)
	}
	for _, label := range labels {
		if err := validateLabel(label); err != nil {
			return "", fmt.Errorf("%w: %q: %v", ErrInvalidDomain, s, err)
		}
	}
	name, tld := Split(s)
	return name + "." + tld, nil
}

func validateLabel(label string) error {
	if label == "" {
		return errors.New("empty label")
	}
	if len(label) > 63 {
		return errors.New("label exceeds 63 characters")
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return errors.New("label starts or ends with a hyphen")
	}
	for _, r := range label {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return fmt.Errorf("invalid character %q", r)
		}
	}
	return nil
}

// Split returns the registrable label and the TLD (without the leading dot) of a
// normalised domain. Subdomains are dropped: "blog.example.co.uk" -> ("example", "co.uk").
func Split(domain string) (name, tld string) {
	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return domain, ""
	}
	if len(labels) >= 3 {
		suffix := labels[len(labels)-2] + "." + labels[len(labels)-1]
		if multiLabelSuffixes[suffix] {
			return labels[len(labels)-3], suffix
		}
	}
	return labels[len(labels)-2], labels[len(labels)-1]
}

// Name returns only the registrable label of domain.
func Name(domain string) string {
	name, _ := Split(domain)
	return name
}

// TLD returns only the TLD of domain.
func TLD(domain string) string {
	_, tld := Split(domain)
	return tld
}

// IsAlpha reports whether s consists only of ASCII letters.
func IsAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// HasDigit reports whether s contains an ASCII digit.
func HasDigit(s string) bool {
	return strings.IndexAny(s, "0123456789") >= 0
}
