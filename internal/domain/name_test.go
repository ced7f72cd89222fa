package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "example.com", "example.com"},
		{"uppercase and spaces", "  ExAmple.COM ", "example.com"},
		{"scheme and path", "https://Example.com/path?q=1#x", "example.com"},
		{"www stripped", "http://www.shop.io", "shop.io"},
		{"port stripped", "example.net:8080", "example.net"},
		{"credentials stripped", "ftp://user:pw@files.org/", "files.org"},
		{"trailing dot", "example.org.", "example.org"},
		{"multi label suffix", "brand.co.uk", "brand.co.uk"},
		{"subdomain dropped", "mail.google.com", "google.com"},
		{"subdomain under multi label suffix", "https://shop.brand.co.uk/cart", "brand.co.uk"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "localhost", "exa mple.com", "-bad.com", "bad-.com", "a..com", "ünicode.com"} {
		t.Run(in, func(t *testing.T) {
			_, err := Normalize(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDomain)
		})
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		in, name, tld string
	}{
		{"example.com", "example", "com"},
		{"blog.example.com", "example", "com"},
		{"shop.co.uk", "shop", "co.uk"},
		{"a.b.shop.com.au", "shop", "com.au"},
		{"x.ai", "x", "ai"},
	}
	for _, tt := range tests {
		name, tld := Split(tt.in)
		assert.Equal(t, tt.name, name, tt.in)
		assert.Equal(t, tt.tld, tld, tt.in)
	}
}

func TestParseDate(t *testing.T) {
	for _, in := range []string{"2024-03-01T10:00:00Z", "2024-03-01 10:00:00", "2024-03-01", "01-Mar-2024"} {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, 2024, got.Year())
		assert.Equal(t, time.March, got.Month())
	}

	_, err := ParseDate("next tuesday")
	assert.ErrorIs(t, err, ErrInvalidDate)

	absent, err := ParseOptionalDate("  ")
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func TestRegistrationSignals_HasStatus(t *testing.T) {
	r := &RegistrationSignals{Statuses: []string{"client transfer prohibited https://icann.org/epp#clientTransferProhibited"}}
	assert.True(t, r.HasStatus("clientTransferProhibited"))
	assert.False(t, r.HasStatus("pendingDelete"))

	var nilSignals *RegistrationSignals
	assert.False(t, nilSignals.HasStatus("anything"))
}

func TestActivitySignals(t *testing.T) {
	assert.False(t, ActivitySignals{}.Observed())
	assert.False(t, ActivitySignals{ArchiveSnapshots: Int(0)}.HasArchivedContent())
	assert.True(t, ActivitySignals{ArchiveSnapshots: Int(3)}.HasArchivedContent())
	assert.True(t, ActivitySignals{HasARecords: Bool(false)}.Observed())
}

func TestWebsiteInfo_HTTPStatusOptional(t *testing.T) {
	b, err := json.Marshal(WebsiteInfo{})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "http_status", "unreachable sites carry no status")

	b, err = json.Marshal(WebsiteInfo{Live: true, HTTPStatus: Int(404)})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"http_status":404`)
}
