package services

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/doyensec/safeurl"

	"domain-recovery/internal/config"
	"domain-recovery/internal/domain"
)

// WebsiteProber checks whether a domain serves a website
type WebsiteProber struct {
	client    *http.Client
	userAgent string
	// schemes are tried in order
	schemes []string
}

// NewWebsiteProber creates a prober that follows at most five redirects. Unless
// cfg.AllowPrivateNetworks is set, connections are limited to public addresses on
// ports 80 and 443, checked after DNS resolution.
func NewWebsiteProber(cfg config.ProbeConfig) *WebsiteProber {
	var client *http.Client
	if cfg.AllowPrivateNetworks {
		client = &http.Client{Timeout: cfg.Timeout}
	} else {
		safe := safeurl.GetConfigBuilder().
			SetTimeout(cfg.Timeout).
			SetAllowedSchemes("http", "https").
			SetAllowedPorts(80, 443).
			Build()
		client = safeurl.Client(safe).Client
	}
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= 5 {
			return http.ErrUseLastResponse
		}
		return nil
	}

	return &WebsiteProber{
		client:    client,
		userAgent: cfg.UserAgent,
		schemes:   []string{"https", "http"},
	}
}

// Probe tries HTTPS then HTTP. Any response below 500 counts as live. An unreachable
// site is an observation, not an error; only context cancellation is returned.
func (p *WebsiteProber) Probe(ctx context.Context, d string) (*domain.WebsiteInfo, error) {
	info := &domain.WebsiteInfo{}
	for _, scheme := range p.schemes {
		code, err := p.get(ctx, scheme+"://"+d)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			var certErr *tls.CertificateVerificationError
			if scheme == "https" && errors.As(err, &certErr) {
				info.SSLValid = domain.Bool(false)
			}
			continue
		}
		info.HTTPStatus = &code
		if scheme == "https" {
			info.SSLValid = domain.Bool(true)
		}
		if code < http.StatusInternalServerError {
			info.Live = true
			return info, nil
		}
	}
	return info, nil
}

func (p *WebsiteProber) get(ctx context.Context, target string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, err
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

// Resolver is the subset of *net.Resolver used by DNSProber
type Resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// DNSProber checks for address records
type DNSProber struct {
	resolver Resolver
}

// NewDNSProber uses r, or the system resolver when r is nil
func NewDNSProber(r Resolver) *DNSProber {
	if r == nil {
		r = net.DefaultResolver
	}
	return &DNSProber{resolver: r}
}

// HasARecords reports whether d resolves to at least one IPv4 address. NXDOMAIN and
// empty answers are false without error.
func (p *DNSProber) HasARecords(ctx context.Context, d string) (bool, error) {
	addrs, err := p.resolver.LookupIPAddr(ctx, d)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return false, nil
		}
		return false, fmt.Errorf("resolve %s: %w", d, err)
	}
	for _, a := range addrs {
		if a.IP.To4() != nil {
			return true, nil
		}
	}
	return false, nil
}

// ArchiveClient queries the Wayback Machine CDX API
type ArchiveClient struct {
	baseURL   string
	client    *http.Client
	userAgent string
}

// NewArchiveClient creates a CDX client
func NewArchiveClient(cfg config.ProbeConfig) *ArchiveClient {
	return &ArchiveClient{
		baseURL:   cfg.WaybackURL,
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
	}
}

const waybackTimestamp = "20060102150405"

// Snapshots returns one capture per month of successful responses for d.
func (c *ArchiveClient) Snapshots(ctx context.Context, d string) (*domain.ArchiveInfo, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid wayback URL: %w", err)
	}
	q := url.Values{}
	q.Set("url", d)
	q.Set("output", "json")
	q.Set("fl", "timestamp")
	q.Set("filter", "statuscode:200")
	q.Set("collapse", "timestamp:6")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query wayback: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wayback returned status %d", resp.StatusCode)
	}

	// [["timestamp"], ["20010203040506"], ...]; an empty body means no captures
	var rows [][]string
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		if errors.Is(err, io.EOF) {
			return &domain.ArchiveInfo{}, nil
		}
		return nil, fmt.Errorf("parse wayback response: %w", err)
	}

	info := &domain.ArchiveInfo{}
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		ts, err := time.Parse(waybackTimestamp, row[0])
		if err != nil {
			continue
		}
		info.SnapshotCount++
		if info.FirstSnapshot == nil || ts.Before(*info.FirstSnapshot) {
			info.FirstSnapshot = domain.Time(ts)
		}
		if info.LastSnapshot == nil || ts.After(*info.LastSnapshot) {
			info.LastSnapshot = domain.Time(ts)
		}
	}
	info.Available = info.SnapshotCount > 0
	return info, nil
}
