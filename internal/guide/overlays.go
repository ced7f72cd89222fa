package guide

import (
	"fmt"
	"strings"

	"domain-recovery/internal/catalog"
	"domain-recovery/internal/status"
)

// Overlay names recorded in Guide.AppliedOverlay.
const (
	OverlayHijack          = "stolen_or_hijacked"
	OverlayDispute         = "contractual_dispute"
	OverlayContent         = "content_recovery"
	OverlayLostCredentials = "lost_credentials"
	OverlayEmergency       = "emergency"
)

const (
	icannComplaintURL = "https://www.icann.org/compliance/complaint"
	icannLookupURL    = "https://lookup.icann.org/"
	tdrpURL           = "https://www.icann.org/resources/pages/tdrp-2012-02-25-en"
	udrpURL           = "https://www.wipo.int/amc/en/domains/"
)

func enrichRegistrar(g Guide, req Request) Guide {
	if g.Registrar != nil || req.Registrar == nil || catalog.IsPlaceholderRegistrar(req.Registrar.Name) {
		return g
	}
	info := *req.Registrar
	if info.URL == "" {
		if entry, ok := catalog.LookupRegistrar(info.Name); ok {
			info.URL = entry.SupportURL
		}
	}
	g.Registrar = &info
	return g
}

// replaceOverlay swaps the whole guide for the hijack or dispute narrative. Hijack
// wins when both are requested.
func replaceOverlay(g Guide, req Request) Guide {
	var r Guide
	switch {
	case req.Context.StolenOrHijacked:
		r = hijackGuide(req)
		r.AppliedOverlay = append(appliedCopy(g), OverlayHijack)
	case req.Context.ContractualDispute:
		r = disputeGuide(req)
		r.AppliedOverlay = append(appliedCopy(g), OverlayDispute)
	default:
		return g
	}
	r.Domain = g.Domain
	r.State = g.State
	r.Registrar = g.Registrar
	return r
}

func contentOverlay(g Guide, req Request) Guide {
	if !req.Context.ContentRecoveryPriority && !req.Enrichment.HasArchivedContent {
		return g
	}
	archive := "https://web.archive.org/web/*/" + req.Domain
	snapshots := "Archived snapshots of the site exist"
	if n := req.Enrichment.SnapshotCount; n > 0 {
		snapshots = fmt.Sprintf("The archive holds %d snapshots of the site", n)
	}
	steps := []Step{
		{
			Title:       "Download archived snapshots now",
			Description: snapshots + ". Save copies before anything else changes.",
			Details: []string{
				"Open the archive calendar and note the most recent complete snapshot",
				"Save page HTML, images and downloadable files locally",
			},
			Urgency:       UrgencyImmediate,
			EstimatedTime: "1-3 hours",
			Difficulty:    status.DifficultyEasy,
			Links:         []Link{{Label: "Wayback Machine", URL: archive}},
		},
		{
			Title:         "Inventory what must be rebuilt",
			Description:   "List the pages, media and data the archive does not cover so they can be recreated.",
			Urgency:       UrgencySoon,
			EstimatedTime: "1 hour",
			Difficulty:    status.DifficultyEasy,
		},
	}
	g.Steps = prepend(steps, g.Steps)
	g.AppliedOverlay = append(appliedCopy(g), OverlayContent)
	return g
}

func credentialsOverlay(g Guide, req Request) Guide {
	if !req.Context.LostCredentials {
		return g
	}
	name := registrarName(g.Registrar)
	steps := []Step{
		{
			Title:         "Identify your registrar via WHOIS",
			Description:   "Look up the domain's public registration record to confirm which registrar holds it.",
			Urgency:       UrgencyImmediate,
			EstimatedTime: "5 minutes",
			Difficulty:    status.DifficultyEasy,
			Links:         []Link{{Label: "ICANN Lookup", URL: icannLookupURL}},
		},
		{
			Title:         "Start account recovery with " + name,
			Description:   "Use the registrar's forgotten-login flow, then escalate to support with proof of ownership.",
			Details: []string{
				"Gather invoices, the original registration email and a government ID",
				"Ask support which documents they accept for ownership verification",
			},
			Urgency:       UrgencyImmediate,
			EstimatedTime: "1-5 days",
			Difficulty:    status.DifficultyModerate,
			EmailTemplate: TemplateAccountRecovery,
			PhoneScript: fmt.Sprintf("Hello, I am the registrant of %s and I have lost access to my account. "+
				"I can verify ownership with invoices and ID. What is your recovery process?", req.Domain),
		},
		{
			Title:         "Secure the account once recovered",
			Description:   "Reset the password, enable two-factor authentication and update the account email.",
			Urgency:       UrgencySoon,
			EstimatedTime: "15 minutes",
			Difficulty:    status.DifficultyEasy,
		},
	}
	g.Steps = prepend(steps, g.Steps)
	g.AppliedOverlay = append(appliedCopy(g), OverlayLostCredentials)
	return g
}

// emergencyOverlay keeps only immediate steps and leads with a call to the registrar.
func emergencyOverlay(g Guide, req Request) Guide {
	if !req.Context.EmergencyMode {
		return g
	}
	kept := make([]Step, 0, len(g.Steps)+1)
	kept = append(kept, callRegistrarStep(req.Domain, g.Registrar))
	for _, s := range g.Steps {
		if s.Urgency == UrgencyImmediate {
			kept = append(kept, s)
		}
	}
	g.Steps = kept
	g.Emergency = true
	g.Color = ColorRed
	if !strings.HasPrefix(g.Headline, "EMERGENCY: ") {
		g.Headline = "EMERGENCY: " + g.Headline
	}
	g.AppliedOverlay = append(appliedCopy(g), OverlayEmergency)
	return g
}

func callRegistrarStep(d string, reg *RegistrarInfo) Step {
	s := Step{
		Title:         "Call your registrar now",
		Description:   fmt.Sprintf("Phone %s support and ask them to freeze any changes to %s.", registrarName(reg), d),
		Urgency:       UrgencyImmediate,
		EstimatedTime: "30 minutes",
		Difficulty:    status.DifficultyEasy,
		PhoneScript: fmt.Sprintf("This is an urgent request about %s. Please place a hold on the domain and "+
			"escalate my case to your security or abuse team.", d),
	}
	if reg != nil {
		if reg.Phone != "" {
			s.Details = append(s.Details, "Support phone: "+reg.Phone)
		}
		if reg.URL != "" {
			s.Links = append(s.Links, Link{Label: reg.Name + " support", URL: reg.URL})
		}
	}
	return s
}

func hijackGuide(req Request) Guide {
	return Guide{
		Headline:    fmt.Sprintf("%s appears to have been stolen", req.Domain),
		Color:       ColorRed,
		Summary:     "Unauthorized transfers can often be reversed if you act within days and keep evidence.",
		Explanation: "Registrars can reverse a transfer made without the registrant's consent. ICANN compliance and the Transfer Dispute Resolution Policy exist for cases the registrar will not resolve.",
		Phase:       "dispute",
		Steps: []Step{
			{
				Title:         "Preserve evidence",
				Description:   "Capture the current WHOIS record, DNS records, account emails and any notices about the transfer.",
				Details:       []string{"Screenshot the WHOIS output with timestamps", "Export the registrar's account activity log", "Keep every related email with full headers"},
				Urgency:       UrgencyImmediate,
				EstimatedTime: "1 hour",
				Difficulty:    status.DifficultyEasy,
			},
			{
				Title:         "Report the theft to your registrar",
				Description:   "Ask the losing registrar's abuse team to open an unauthorized-transfer case.",
				Urgency:       UrgencyImmediate,
				EstimatedTime: "1 day",
				Difficulty:    status.DifficultyModerate,
				EmailTemplate: TemplateHijackReport,
			},
			{
				Title:         "Secure every linked account",
				Description:   "Change passwords and enable two-factor authentication on the registrar and the email address on file.",
				Urgency:       UrgencyImmediate,
				EstimatedTime: "1 hour",
				Difficulty:    status.DifficultyEasy,
			},
			{
				Title:         "File an ICANN compliance complaint",
				Description:   "If the registrar does not act within a few days, file a transfer complaint with ICANN.",
				Urgency:       UrgencySoon,
				EstimatedTime: "1-2 weeks",
				Difficulty:    status.DifficultyModerate,
				Links:         []Link{{Label: "ICANN complaint form", URL: icannComplaintURL}},
			},
			{
				Title:         "Request a Transfer Dispute Resolution",
				Description:   "The registrar can file a TDRP proceeding with the registry to force the transfer back.",
				Urgency:       UrgencyWhenReady,
				EstimatedTime: "1-2 months",
				Difficulty:    status.DifficultyHard,
				Links:         []Link{{Label: "TDRP", URL: tdrpURL}},
			},
			{
				Title:         "Involve law enforcement and counsel",
				Description:   "For valuable domains, file a police report and consult a domain attorney about a civil action.",
				Urgency:       UrgencyWhenReady,
				EstimatedTime: "weeks to months",
				Difficulty:    status.DifficultyVeryHard,
			},
		},
		CostSummary: "$0 - $10,000+ (legal fees only if escalation is needed)",
		TimeSummary: "Days to months",
		Likelihood:  "Good if reported within 60 days of the transfer",
	}
}

func disputeGuide(req Request) Guide {
	return Guide{
		Headline:    fmt.Sprintf("Ownership of %s is in dispute", req.Domain),
		Color:       ColorOrange,
		Summary:     "Contractual disputes are resolved by agreement, UDRP or the courts, in that order.",
		Explanation: "When a developer, agency or former partner registered the domain and refuses to hand it over, the outcome depends on the contracts and evidence you hold.",
		Phase:       "dispute",
		Steps: []Step{
			{
				Title:         "Collect the paper trail",
				Description:   "Gather contracts, invoices and messages showing the domain was registered on your behalf.",
				Urgency:       UrgencyImmediate,
				EstimatedTime: "1-2 days",
				Difficulty:    status.DifficultyEasy,
			},
			{
				Title:         "Send a formal transfer request",
				Description:   "Ask the current holder in writing to transfer the domain, citing the agreement.",
				Urgency:       UrgencySoon,
				EstimatedTime: "1-2 weeks",
				Difficulty:    status.DifficultyModerate,
				EmailTemplate: TemplateDisputeNotice,
			},
			{
				Title:         "Try mediation",
				Description:   "A neutral mediator is far cheaper than litigation and often ends the standoff.",
				Urgency:       UrgencyWhenReady,
				EstimatedTime: "2-6 weeks",
				Difficulty:    status.DifficultyModerate,
			},
			{
				Title:         "File a UDRP complaint if you hold a trademark",
				Description:   "UDRP panels can order a transfer when the holder has no legitimate interest and acts in bad faith.",
				Urgency:       UrgencyWhenReady,
				EstimatedTime: "2 months",
				Difficulty:    status.DifficultyHard,
				Links:         []Link{{Label: "WIPO domain disputes", URL: udrpURL}},
			},
			{
				Title:         "Escalate to court",
				Description:   "Breach-of-contract claims can compel the transfer when other routes fail.",
				Urgency:       UrgencyWhenReady,
				EstimatedTime: "months",
				Difficulty:    status.DifficultyVeryHard,
			},
		},
		CostSummary: "$0 - $15,000 (UDRP filing starts around $1,500)",
		TimeSummary: "Weeks to months",
		Likelihood:  "Depends on the strength of your written agreement",
	}
}

func registrarName(reg *RegistrarInfo) string {
	if reg == nil || reg.Name == "" {
		return "your registrar"
	}
	return reg.Name
}

func prepend(head, tail []Step) []Step {
	out := make([]Step, 0, len(head)+len(tail))
	out = append(out, head...)
	return append(out, tail...)
}

func appliedCopy(g Guide) []string {
	out := make([]string, len(g.AppliedOverlay), len(g.AppliedOverlay)+1)
	copy(out, g.AppliedOverlay)
	return out
}
