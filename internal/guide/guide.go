// Package guide turns a lifecycle state into an ordered recovery plan.
//
// A guide is built by a fixed pipeline: a base template chosen by state, registrar
// enrichment, the context overlays (replace, prepend, filter) and a final renumbering.
// Every stage is a pure function of the request, so identical requests produce
// identical guides.
package guide

import (
	"time"

	"domain-recovery/internal/status"
)

// Urgency is the time pressure of a single step.
type Urgency string

const (
	UrgencyImmediate Urgency = "immediate"
	UrgencySoon      Urgency = "soon"
	UrgencyWhenReady Urgency = "when-ready"
)

// Color is a semantic tag for the headline.
type Color string

const (
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorYellow Color = "yellow"
	ColorOrange Color = "orange"
	ColorRed    Color = "red"
	ColorGray   Color = "gray"
)

// Link is a labelled external reference attached to a step.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Step is one action in a guide.
type Step struct {
	Number        int               `json:"number"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Details       []string          `json:"details,omitempty"`
	Urgency       Urgency           `json:"urgency"`
	EstimatedTime string            `json:"estimated_time"`
	Difficulty    status.Difficulty `json:"difficulty"`
	PhoneScript   string            `json:"phone_script,omitempty"`
	EmailTemplate string            `json:"email_template,omitempty"`
	Links         []Link            `json:"links,omitempty"`
}

// RegistrarInfo is the registrar contact shown with a guide.
type RegistrarInfo struct {
	Name  string `json:"name"`
	URL   string `json:"url,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// ExpiryInfo carries the expiry arithmetic already done by the analyzer.
type ExpiryInfo struct {
	ExpiryDate      *time.Time `json:"expiry_date,omitempty"`
	DeletionDate    *time.Time `json:"deletion_date,omitempty"`
	DaysSinceExpiry *int       `json:"days_since_expiry,omitempty"`
	DaysUntilExpiry *int       `json:"days_until_expiry,omitempty"`
}

// Enrichment holds optional facts that change the wording of a guide.
type Enrichment struct {
	HasArchivedContent bool              `json:"has_archived_content"`
	SnapshotCount      int               `json:"snapshot_count,omitempty"`
	IsBrand            bool              `json:"is_brand"`
	ParkingProvider    string            `json:"parking_provider,omitempty"`
	Cost               *status.CostRange `json:"cost,omitempty"`
	SuccessRate        *int              `json:"success_rate,omitempty"`
}

// Context selects the overlays applied on top of the base template.
type Context struct {
	LostCredentials         bool `json:"lost_credentials"`
	StolenOrHijacked        bool `json:"stolen_or_hijacked"`
	ContractualDispute      bool `json:"contractual_dispute"`
	ContentRecoveryPriority bool `json:"content_recovery_priority"`
	EmergencyMode           bool `json:"emergency_mode"`
}

// Request is the structured input to Generate.
type Request struct {
	Domain     string
	State      status.State
	Registrar  *RegistrarInfo
	Expiry     *ExpiryInfo
	Enrichment Enrichment
	Context    Context
}

// Guide is the generator's output. Steps are numbered 1..N without gaps.
type Guide struct {
	Domain         string         `json:"domain"`
	State          status.State   `json:"state"`
	Headline       string         `json:"headline"`
	Color          Color          `json:"color"`
	Summary        string         `json:"summary"`
	Explanation    string         `json:"explanation"`
	Phase          string         `json:"phase"`
	Steps          []Step         `json:"steps"`
	Alternatives   []Step         `json:"alternatives,omitempty"`
	CostSummary    string         `json:"cost_summary"`
	TimeSummary    string         `json:"time_summary"`
	Likelihood     string         `json:"likelihood"`
	Registrar      *RegistrarInfo `json:"registrar,omitempty"`
	Emergency      bool           `json:"emergency"`
	AppliedOverlay []string       `json:"applied_overlays"`
}

// Generate runs the four-stage pipeline for req.
func Generate(req Request) Guide {
	g := base(req)
	for _, t := range pipeline {
		g = t(g, req)
	}
	return g
}

// FromReport builds a guide from an analyzer report.
func FromReport(r status.Report, ctx Context) Guide {
	return Generate(RequestFromReport(r, ctx))
}

// RequestFromReport lifts the registrar, expiry and enrichment data out of an analyzer
// report so callers can add signals the report does not carry before generating.
func RequestFromReport(r status.Report, ctx Context) Request {
	req := Request{
		Domain:  r.Domain,
		State:   r.State,
		Context: ctx,
		Expiry: &ExpiryInfo{
			ExpiryDate:      r.ExpiryDate,
			DeletionDate:    r.DeletionDate,
			DaysSinceExpiry: r.DaysSinceExpiry,
			DaysUntilExpiry: r.DaysUntilExpiry,
		},
		Enrichment: Enrichment{
			IsBrand:         r.IsBrand,
			ParkingProvider: r.ParkingProvider,
		},
	}
	if r.Registrar != nil {
		req.Registrar = &RegistrarInfo{
			Name:  r.Registrar.Name,
			URL:   r.Registrar.URL,
			Email: r.Registrar.Email,
			Phone: r.Registrar.Phone,
		}
	}
	if r.State != status.StateAvailable && r.State != status.StateUnknown {
		cost := r.Cost
		success := r.SuccessRate
		req.Enrichment.Cost = &cost
		req.Enrichment.SuccessRate = &success
	}
	return req
}

// GenerateFor is the positional form of Generate.
func GenerateFor(d string, state status.State, registrar *RegistrarInfo, expiry *ExpiryInfo, enrichment Enrichment, ctx Context) Guide {
	return Generate(Request{
		Domain:     d,
		State:      state,
		Registrar:  registrar,
		Expiry:     expiry,
		Enrichment: enrichment,
		Context:    ctx,
	})
}

// transform is one pipeline stage. Stages must not mutate the slices of their input.
type transform func(Guide, Request) Guide

// pipeline runs after base template selection. renumber must stay last.
var pipeline = []transform{
	enrichRegistrar,
	replaceOverlay,
	contentOverlay,
	credentialsOverlay,
	emergencyOverlay,
	renumber,
}

func renumber(g Guide, _ Request) Guide {
	g.Steps = numbered(g.Steps)
	g.Alternatives = numbered(g.Alternatives)
	if g.AppliedOverlay == nil {
		g.AppliedOverlay = []string{}
	}
	return g
}

func numbered(steps []Step) []Step {
	if steps == nil {
		return nil
	}
	out := make([]Step, len(steps))
	for i, s := range steps {
		s.Number = i + 1
		out[i] = s
	}
	return out
}
