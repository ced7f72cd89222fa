package services

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"domain-recovery/internal/domain"
	"domain-recovery/internal/metrics"
)

// Signal sources, used as metric labels and in Signals.Degraded.
const (
	SourceWhois   = "whois"
	SourceWebsite = "website"
	SourceDNS     = "dns"
	SourceArchive = "archive"
)

// RegistrationLookup fetches registration data.
type RegistrationLookup interface {
	Lookup(ctx context.Context, d string) (*domain.RegistrationSignals, error)
}

// WebsiteChecker probes a domain's website.
type WebsiteChecker interface {
	Probe(ctx context.Context, d string) (*domain.WebsiteInfo, error)
}

// DNSChecker reports address-record presence.
type DNSChecker interface {
	HasARecords(ctx context.Context, d string) (bool, error)
}

// ArchiveLookup fetches historical-archive data.
type ArchiveLookup interface {
	Snapshots(ctx context.Context, d string) (*domain.ArchiveInfo, error)
}

// Signals is everything the collectors found for one domain.
type Signals struct {
	Registration *domain.RegistrationSignals
	Activity     domain.ActivitySignals
	Website      *domain.WebsiteInfo
	Archive      *domain.ArchiveInfo
	// WhoisErr is set when registration data could not be fetched at all.
	WhoisErr error
	// Degraded lists the sources that failed, sorted.
	Degraded []string
}

// Collector gathers signals from all sources concurrently.
type Collector struct {
	whois   RegistrationLookup
	website WebsiteChecker
	dns     DNSChecker
	archive ArchiveLookup
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewCollector creates a Collector. Any source may be nil, in which case its signal is
// always unknown.
func NewCollector(whois RegistrationLookup, website WebsiteChecker, dns DNSChecker, archive ArchiveLookup, rec metrics.Recorder, logger *slog.Logger) *Collector {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Collector{whois: whois, website: website, dns: dns, archive: archive, metrics: rec, logger: logger}
}

// Collect never fails: a source error degrades that signal to unknown.
func (c *Collector) Collect(ctx context.Context, d string) Signals {
	var (
		sig Signals
		mu  sync.Mutex
	)
	fail := func(source string, err error) {
		c.metrics.RecordCollectorFailure(source)
		c.logger.Warn("signal collection failed",
			slog.String("domain", d), slog.String("source", source), slog.Any("err", err))
		mu.Lock()
		sig.Degraded = append(sig.Degraded, source)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	if c.whois != nil {
		g.Go(func() error {
			reg, err := c.whois.Lookup(gctx, d)
			if err != nil {
				sig.WhoisErr = err
				fail(SourceWhois, err)
				return nil
			}
			sig.Registration = reg
			return nil
		})
	}
	if c.website != nil {
		g.Go(func() error {
			info, err := c.website.Probe(gctx, d)
			if err != nil {
				fail(SourceWebsite, err)
				return nil
			}
			sig.Website = info
			sig.Activity.WebsiteLive = domain.Bool(info.Live)
			return nil
		})
	}
	if c.dns != nil {
		g.Go(func() error {
			ok, err := c.dns.HasARecords(gctx, d)
			if err != nil {
				fail(SourceDNS, err)
				return nil
			}
			sig.Activity.HasARecords = domain.Bool(ok)
			return nil
		})
	}
	if c.archive != nil {
		g.Go(func() error {
			info, err := c.archive.Snapshots(gctx, d)
			if err != nil {
				fail(SourceArchive, err)
				return nil
			}
			sig.Archive = info
			sig.Activity.ArchiveSnapshots = domain.Int(info.SnapshotCount)
			return nil
		})
	}
	_ = g.Wait()

	sort.Strings(sig.Degraded)
	if sig.Degraded == nil {
		sig.Degraded = []string{}
	}
	return sig
}
