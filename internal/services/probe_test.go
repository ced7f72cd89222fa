package services

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domain-recovery/internal/config"
)

func testProbeConfig(waybackURL string) config.ProbeConfig {
	return config.ProbeConfig{
		Timeout:              5 * time.Second,
		WaybackURL:           waybackURL,
		UserAgent:            "domain-recovery-test",
		AllowPrivateNetworks: true,
	}
}

func hostOf(srv *httptest.Server) string {
	return strings.TrimPrefix(strings.TrimPrefix(srv.URL, "https://"), "http://")
}

func TestWebsiteProbe(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantLive bool
	}{
		{"ok", http.StatusOK, true},
		{"not found still serves", http.StatusNotFound, true},
		{"server error", http.StatusServiceUnavailable, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ua string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ua = r.UserAgent()
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			p := NewWebsiteProber(testProbeConfig(""))
			p.schemes = []string{"http"}
			info, err := p.Probe(context.Background(), hostOf(srv))
			require.NoError(t, err)
			assert.Equal(t, tt.wantLive, info.Live)
			require.NotNil(t, info.HTTPStatus)
			assert.Equal(t, tt.status, *info.HTTPStatus)
			assert.Equal(t, "domain-recovery-test", ua)
		})
	}
}

func TestWebsiteProbe_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	host := hostOf(srv)
	srv.Close()

	p := NewWebsiteProber(testProbeConfig(""))
	p.schemes = []string{"http"}
	info, err := p.Probe(context.Background(), host)
	require.NoError(t, err)
	assert.False(t, info.Live)
	assert.Nil(t, info.HTTPStatus)
}

func TestWebsiteProbe_UntrustedCertificate(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	p := NewWebsiteProber(testProbeConfig(""))
	p.schemes = []string{"https"}
	info, err := p.Probe(context.Background(), hostOf(srv))
	require.NoError(t, err)
	assert.False(t, info.Live)
	require.NotNil(t, info.SSLValid)
	assert.False(t, *info.SSLValid)
}

func TestWebsiteProbe_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewWebsiteProber(testProbeConfig(""))
	p.schemes = []string{"http"}
	_, err := p.Probe(ctx, hostOf(srv))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWebsiteProbe_BlocksPrivateNetworks(t *testing.T) {
	var hit atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit.Store(true)
	}))
	defer srv.Close()

	cfg := testProbeConfig("")
	cfg.AllowPrivateNetworks = false
	p := NewWebsiteProber(cfg)
	p.schemes = []string{"http"}
	info, err := p.Probe(context.Background(), hostOf(srv))
	require.NoError(t, err)
	assert.False(t, info.Live)
	assert.Nil(t, info.HTTPStatus)
	assert.False(t, hit.Load(), "loopback must not be dialled")
}

type fakeResolver struct {
	addrs []net.IPAddr
	err   error
}

func (f fakeResolver) LookupIPAddr(context.Context, string) ([]net.IPAddr, error) {
	return f.addrs, f.err
}

func TestDNSProber(t *testing.T) {
	tests := []struct {
		name    string
		res     fakeResolver
		want    bool
		wantErr bool
	}{
		{"ipv4", fakeResolver{addrs: []net.IPAddr{{IP: net.ParseIP("192.0.2.10")}}}, true, false},
		{"ipv6 only", fakeResolver{addrs: []net.IPAddr{{IP: net.ParseIP("2001:db8::1")}}}, false, false},
		{"nxdomain", fakeResolver{err: &net.DNSError{Err: "no such host", IsNotFound: true}}, false, false},
		{"servfail", fakeResolver{err: &net.DNSError{Err: "server misbehaving", IsTemporary: true}}, false, true},
		{"other", fakeResolver{err: errors.New("boom")}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := NewDNSProber(tt.res).HasARecords(context.Background(), "lumora.com")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestArchiveSnapshots(t *testing.T) {
	var query map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{}
		for k := range r.URL.Query() {
			query[k] = r.URL.Query().Get(k)
		}
		_, _ = w.Write([]byte(`[["timestamp"],["20150601000000"],["20100101120000"],["garbage"],["20200315080000"]]`))
	}))
	defer srv.Close()

	info, err := NewArchiveClient(testProbeConfig(srv.URL)).Snapshots(context.Background(), "lumora.com")
	require.NoError(t, err)

	assert.Equal(t, "lumora.com", query["url"])
	assert.Equal(t, "json", query["output"])
	assert.Equal(t, "statuscode:200", query["filter"])
	assert.Equal(t, "timestamp:6", query["collapse"])

	assert.True(t, info.Available)
	assert.Equal(t, 3, info.SnapshotCount)
	require.NotNil(t, info.FirstSnapshot)
	require.NotNil(t, info.LastSnapshot)
	assert.Equal(t, 2010, info.FirstSnapshot.Year())
	assert.Equal(t, 2020, info.LastSnapshot.Year())
}

func TestArchiveSnapshots_Empty(t *testing.T) {
	for _, body := range []string{``, `[]`} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))
		info, err := NewArchiveClient(testProbeConfig(srv.URL)).Snapshots(context.Background(), "lumora.com")
		srv.Close()
		require.NoError(t, err, "body %q", body)
		assert.False(t, info.Available)
		assert.Zero(t, info.SnapshotCount)
	}
}

func TestArchiveSnapshots_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewArchiveClient(testProbeConfig(srv.URL)).Snapshots(context.Background(), "lumora.com")
	assert.Error(t, err)
}
