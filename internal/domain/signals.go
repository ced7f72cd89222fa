package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate is returned by ParseDate for strings in no supported layout.
var ErrInvalidDate = errors.New("invalid date")

// RegistrationSignals is the normalised output of a WHOIS/RDAP lookup.
// A nil *RegistrationSignals and a zero value both mean "no registration evidence".
type RegistrationSignals struct {
	Registrar          string     `json:"registrar,omitempty"`
	RegistrarURL       string     `json:"registrar_url,omitempty"`
	RegistrarEmail     string     `json:"registrar_email,omitempty"`
	RegistrarPhone     string     `json:"registrar_phone,omitempty"`
	CreatedAt          *time.Time `json:"created_at,omitempty"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty"`
	RegistrantPresent  bool       `json:"registrant_present"`
	RegistrantRedacted bool       `json:"registrant_redacted"`
	Statuses           []string   `json:"statuses,omitempty"`
	NameServers        []string   `json:"name_servers,omitempty"`
}

// HasStatus reports whether any status flag contains flag, ignoring case and
// EPP-style spacing ("client transfer prohibited" matches "clientTransferProhibited").
func (r *RegistrationSignals) HasStatus(flag string) bool {
	if r == nil {
		return false
	}
	want := squash(flag)
	for _, s := range r.Statuses {
		if strings.Contains(squash(s), want) {
			return true
		}
	}
	return false
}

// AgeYears returns the registration age at now, or nil when the creation date is unknown.
func (r *RegistrationSignals) AgeYears(now time.Time) *float64 {
	if r == nil || r.CreatedAt == nil {
		return nil
	}
	years := now.Sub(*r.CreatedAt).Hours() / 24 / 365.25
	if years < 0 {
		years = 0
	}
	return &years
}

func squash(s string) string {
	return strings.ToLower(strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s))
}

// ActivitySignals carries the liveness inputs. Nil pointers mean "not observed".
type ActivitySignals struct {
	WebsiteLive      *bool `json:"website_live,omitempty"`
	ArchiveSnapshots *int  `json:"archive_snapshots,omitempty"`
	HasARecords      *bool `json:"has_a_records,omitempty"`
}

// HasArchivedContent reports whether at least one historical snapshot exists.
func (a ActivitySignals) HasArchivedContent() bool {
	return a.ArchiveSnapshots != nil && *a.ArchiveSnapshots > 0
}

// Observed reports whether any activity signal is available.
func (a ActivitySignals) Observed() bool {
	return a.WebsiteLive != nil || a.ArchiveSnapshots != nil || a.HasARecords != nil
}

// ArchiveInfo is the normalised output of the historical-archive collaborator.
type ArchiveInfo struct {
	Available     bool       `json:"available"`
	SnapshotCount int        `json:"snapshot_count"`
	FirstSnapshot *time.Time `json:"first_snapshot,omitempty"`
	LastSnapshot  *time.Time `json:"last_snapshot,omitempty"`
}

// WebsiteInfo is the normalised output of the live-website collaborator.
type WebsiteInfo struct {
	Live       bool  `json:"live"`
	HTTPStatus *int  `json:"http_status,omitempty"`
	SSLValid   *bool `json:"ssl_valid,omitempty"`
}

// SEOMetrics is optional enrichment data. Nil fields were not supplied.
type SEOMetrics struct {
	DomainAuthority *int `json:"domain_authority,omitempty"`
	Backlinks       *int `json:"backlinks,omitempty"`
	MonthlyTraffic  *int `json:"monthly_traffic,omitempty"`
}

// SecurityMetrics is optional reputation data.
type SecurityMetrics struct {
	ReputationScore int    `json:"reputation_score"`
	ReputationLevel string `json:"reputation_level,omitempty"`
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to i.
func Int(i int) *int { return &i }

// Time returns a pointer to t.
func Time(t time.Time) *time.Time { return &t }

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05 MST",
	"2006-01-02",
	"02-Jan-2006",
	"2006.01.02",
}

// ParseDate parses an ISO-8601-ish timestamp. Unparseable input is a collaborator
// contract violation and returns ErrInvalidDate.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// ParseOptionalDate treats an empty string as absent.
func ParseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
