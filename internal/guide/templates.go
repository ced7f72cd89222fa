package guide

import (
	"fmt"

	"domain-recovery/internal/status"
	"domain-recovery/internal/valuation"
)

type builderFunc func(Request) Guide

var builders = map[status.State]builderFunc{
	status.StateAvailable:     availableGuide,
	status.StateActiveInUse:   inUseGuide,
	status.StateActiveParked:  parkedGuide,
	status.StateActiveForSale: forSaleGuide,
	status.StateHostingIssue:  hostingIssueGuide,
	status.StateExpiredGrace:  graceGuide,
	status.StateRedemption:    redemptionGuide,
	status.StatePendingDelete: pendingDeleteGuide,
	status.StateReserved:      reservedGuide,
}

// base selects the template for req.State. Brand-protected names get their own
// template; anything else unrecognised falls through to the generic one.
func base(req Request) Guide {
	build, ok := builders[req.State]
	switch {
	case req.Enrichment.IsBrand && req.State == status.StateActiveInUse:
		build = brandGuide
	case !ok:
		build = unknownGuide
	}
	g := build(req)
	g.Domain = req.Domain
	g.State = req.State
	return g
}

const (
	dropCatchURL = "https://www.dropcatch.com/"
	snapNamesURL = "https://www.snapnames.com/"
	nameJetURL   = "https://www.namejet.com/"
	escrowURL    = "https://www.escrow.com/"
)

func availableGuide(req Request) Guide {
	return Guide{
		Headline:    fmt.Sprintf("%s is available", req.Domain),
		Color:       ColorGreen,
		Summary:     "Nobody holds this domain. You can register it today at the standard price.",
		Explanation: "No registrar, creation date or registrant was found, so the name sits in the public pool.",
		Phase:       "register",
		Steps: []Step{
			{
				Title:         "Register the domain now",
				Description:   "Buy it at any accredited registrar before someone else does.",
				Urgency:       UrgencyImmediate,
				EstimatedTime: "10 minutes",
				Difficulty:    status.DifficultyEasy,
			},
			{
				Title:         "Turn on auto-renew and registrar lock",
				Description:   "Avoid losing the domain again through a missed renewal or an unauthorized transfer.",
				Details:       []string{"Register for several years if budget allows", "Use an email address you will keep long-term"},
				Urgency:       UrgencySoon,
				EstimatedTime: "5 minutes",
				Difficulty:    status.DifficultyEasy,
			},
			{
				Title:         "Point DNS at your services",
				Description:   "Configure website and email records once registration completes.",
				Urgency:       UrgencyWhenReady,
				EstimatedTime: "1 hour",
				Difficulty:    status.DifficultyEasy,
			},
		},
		CostSummary: costSummary(req, status.CostRange{Min: 10, Max: 20}),
		TimeSummary: "Minutes",
		Likelihood:  likelihood(req, 100),
	}
}

func graceGuide(req Request) Guide {
	explanation := "The registration has expired but the registrar still holds it for the original owner."
	if e := req.Expiry; e != nil && e.DaysSinceExpiry != nil {
		left := status.GraceDays - *e.DaysSinceExpiry
		if left < 0 {
			left = 0
		}
		explanation = fmt.Sprintf("The registration expired %d days ago. About %d days remain before redemption fees apply.",
			*e.DaysSinceExpiry, left)
	}
	name := registrarName(req.Registrar)
	return Guide{
		Headline:    fmt.Sprintf("%s has expired and can still be renewed", req.Domain),
		Color:       ColorYellow,
		Summary:     "Renew during the grace period at or near the normal price.",
		Explanation: explanation,
		Phase:       "renew",
		Steps: []Step{
			{
				Title:         "Log in and renew",
				Description:   fmt.Sprintf("Sign in to your %s account and renew the domain.", name),
				Urgency:       UrgencyImmediate,
				EstimatedTime: "15 minutes",
				Difficulty:    status.DifficultyEasy,
			},
			{
				Title:         "Call the registrar if renewal is blocked",
				Description:   "Some registrars disable self-service renewal after expiry.",
				Urgency:       UrgencyImmediate,
				EstimatedTime: "30 minutes",
				Difficulty:    status.DifficultyModerate,
				EmailTemplate: TemplateRenewalRequest,
				PhoneScript: fmt.Sprintf("Hello, my domain %s expired recently and I would like to renew it today. "+
					"Can you restore it to my account?", req.Domain),
			},
			{
				Title:         "Restore DNS and services",
				Description:   "Registrars often point expired domains at a parking page. Check that your records came back.",
				Urgency:       UrgencySoon,
				EstimatedTime: "1 hour",
				Difficulty:    status.DifficultyEasy,
			},
			{
				Title:         "Update billing and enable auto-renew",
				Description:   "Fix the payment method that caused the lapse.",
				Urgency:       UrgencySoon,
				EstimatedTime: "5 minutes",
				Difficulty:    status.DifficultyEasy,
			},
		},
		Alternatives: []Step{
			{
				Title:         "Not the owner? Backorder it",
				Description:   "If the owner does not renew, a backorder catches it when it drops.",
				Urgency:       UrgencyWhenReady,
				EstimatedTime: "10 minutes",
				Difficulty:    status.DifficultyModerate,
				Links:         []Link{{Label: "DropCatch", URL: dropCatchURL}},
			},
		},
		CostSummary: costSummary(req, status.CostRange{Min: 500, Max: 2000}),
		TimeSummary: "1 week",
		Likelihood:  likelihood(req, 70),
	}
}

func redemptionGuide(req Request) Guide {
	explanation := "The grace period has ended. Only the original registrant can restore the domain, for a redemption fee."
	if e := req.Expiry; e != nil && e.DeletionDate != nil {
		explanation += fmt.Sprintf(" Restoration must happen before %s.", e.DeletionDate.Format("Jan 2, 2006"))
	}
	return Guide{
		Headline:    fmt.Sprintf("%s is in redemption", req.Domain),
		Color:       ColorOrange,
		Summary:     "Restore through your registrar now; the window is closing.",
		Explanation: explanation,
		Phase:       "restore",
		Steps: []Step{
			{
				Title:         "Request a redemption restore",
				Description:   fmt.Sprintf("Contact %s and ask to restore the domain from redemption.", registrarName(req.Registrar)),
				Urgency:       UrgencyImmediate,
				EstimatedTime: "1 day",
				Difficulty:    status.DifficultyModerate,
				EmailTemplate: TemplateRedemptionRestore,
				PhoneScript: fmt.Sprintf("I am the registrant of %s, which is in the redemption period. "+
					"What is the restore fee and how quickly can you process it?", req.Domain),
			},
			{
				Title:         "Pay the restore fee and renewal",
				Description:   "The registry redemption fee is charged on top of a one-year renewal.",
				Urgency:       UrgencyImmediate,
				EstimatedTime: "1 day",
				Difficulty:    status.DifficultyModerate,
			},
			{
				Title:         "Confirm the restore completed",
				Description:   "Check the public record until the redemption status disappears.",
				Urgency:       UrgencySoon,
				EstimatedTime: "1-5 days",
				Difficulty:    status.DifficultyEasy,
			},
		},
		Alternatives: []Step{
			{
				Title:         "Not the owner? Prepare a backorder",
				Description:   "Unrestored domains drop after pending delete.",
				Urgency:       UrgencyWhenReady,
				EstimatedTime: "10 minutes",
				Difficulty:    status.DifficultyModerate,
			},
		},
		CostSummary: costSummary(req, status.CostRange{Min: 1000, Max: 5000}),
		TimeSummary: "1-2 weeks",
		Likelihood:  likelihood(req, 50),
	}
}

func pendingDeleteGuide(req Request) Guide {
	when := "within days"
	if e := req.Expiry; e != nil && e.DeletionDate != nil {
		when = "around " + e.DeletionDate.Format("Jan 2, 2006")
	}
	return Guide{
		Headline:    fmt.Sprintf("%s is about to be deleted", req.Domain),
		Color:       ColorOrange,
		Summary:     "The domain can no longer be renewed. Catch it when it drops.",
		Explanation: fmt.Sprintf("The registry will release the name %s. Drop-catching services compete to register it first.", when),
		Phase:       "backorder",
		Steps: []Step{
			{
				Title:         "Place backorders with several drop catchers",
				Description:   "Each service uses different registrar connections; more backorders raise the odds.",
				Urgency:       UrgencyImmediate,
				EstimatedTime: "30 minutes",
				Difficulty:    status.DifficultyModerate,
				Links: []Link{
					{Label: "DropCatch", URL: dropCatchURL},
					{Label: "SnapNames", URL: snapNamesURL},
					{Label: "NameJet", URL: nameJetURL},
				},
			},
			{
				Title:         "Be ready on the drop date",
				Description:   fmt.Sprintf("Deletion is expected %s. Have a registrar account funded and open.", when),
				Urgency:       UrgencySoon,
				EstimatedTime: "1 hour",
				Difficulty:    status.DifficultyModerate,
			},
			{
				Title:         "Register manually if nobody catches it",
				Description:   "Names without competition become plainly available shortly after the drop.",
				Urgency:       UrgencyWhenReady,
				EstimatedTime: "10 minutes",
				Difficulty:    status.DifficultyEasy,
			},
		},
		CostSummary: costSummary(req, status.CostRange{Min: 69, Max: 500}),
		TimeSummary: "1 week",
		Likelihood:  likelihood(req, 30),
	}
}

func hostingIssueGuide(req Request) Guide {
	return Guide{
		Headline:    fmt.Sprintf("%s is registered but the site is down", req.Domain),
		Color:       ColorBlue,
		Summary:     "Ownership is fine. The web server behind the domain is not answering.",
		Explanation: "DNS still resolves to an address, so the registration is intact. The problem lies with hosting.",
		Phase:       "fix-hosting",
		Steps: []Step{
			{
				Title:         "Check the DNS records",
				Description:   "Make sure the A records point at the server you expect.",
				Urgency:       UrgencyImmediate,
				EstimatedTime: "15 minutes",
				Difficulty:    status.DifficultyEasy,
			},
			{
				Title:         "Contact your hosting provider",
				Description:   "Ask whether the account is suspended or the server is down.",
				Urgency:       UrgencyImmediate,
				EstimatedTime: "1 day",
				Difficulty:    status.DifficultyEasy,
				EmailTemplate: TemplateHostingSupport,
			},
			{
				Title:         "Restore from backup",
				Description:   "Redeploy the site from your latest backup if the server was lost.",
				Urgency:       UrgencySoon,
				EstimatedTime: "1-3 days",
				Difficulty:    status.DifficultyModerate,
			},
			{
				Title:         "Move to a new host",
				Description:   "If the provider cannot help, update DNS to a new server.",
				Urgency:       UrgencyWhenReady,
				EstimatedTime: "1 week",
				Difficulty:    status.DifficultyModerate,
			},
		},
		CostSummary: costSummary(req, status.CostRange{Min: 0, Max: 500}),
		TimeSummary: "Days",
		Likelihood:  likelihood(req, 90),
	}
}

func parkedGuide(req Request) Guide {
	explanation := "The domain is registered but shows no real use. Parked owners are often willing to sell."
	if p := req.Enrichment.ParkingProvider; p != "" {
		explanation += fmt.Sprintf(" Its name servers belong to %s.", p)
	}
	return Guide{
		Headline:    fmt.Sprintf("%s is registered and parked", req.Domain),
		Color:       ColorYellow,
		Summary:     "Reach the owner with a reasonable offer or wait for the registration to lapse.",
		Explanation: explanation,
		Phase:       "negotiate",
		Steps: []Step{
			{
				Title:         "Find a way to reach the owner",
				Description:   "Use the WHOIS contact or the registrar's relay form when details are redacted.",
				Urgency:       UrgencySoon,
				EstimatedTime: "30 minutes",
				Difficulty:    status.DifficultyModerate,
				Links:         []Link{{Label: "ICANN Lookup", URL: icannLookupURL}},
			},
			{
				Title:         "Make an opening offer",
				Description:   "Open near the low end of the estimate and leave room to negotiate.",
				Urgency:       UrgencySoon,
				EstimatedTime: "1-4 weeks",
				Difficulty:    status.DifficultyModerate,
				EmailTemplate: TemplateOwnerInquiry,
			},
			{
				Title:         "Hire a broker for valuable names",
				Description:   "A broker keeps you anonymous and often lowers the final price.",
				Urgency:       UrgencyWhenReady,
				EstimatedTime: "2-8 weeks",
				Difficulty:    status.DifficultyModerate,
			},
			{
				Title:         "Backorder in case it lapses",
				Description:   "Parked names are dropped more often than names in use.",
				Urgency:       UrgencyWhenReady,
				EstimatedTime: "10 minutes",
				Difficulty:    status.DifficultyEasy,
				Links:         []Link{{Label: "DropCatch", URL: dropCatchURL}},
			},
		},
		CostSummary: costSummary(req, status.CostRange{Min: 100, Max: 5000}),
		TimeSummary: "1-2 months",
		Likelihood:  likelihood(req, 35),
	}
}

func forSaleGuide(req Request) Guide {
	where := "a domain marketplace"
	if p := req.Enrichment.ParkingProvider; p != "" {
		where = p
	}
	return Guide{
		Headline:    fmt.Sprintf("%s is listed for sale", req.Domain),
		Color:       ColorBlue,
		Summary:     "The owner wants to sell. Check the listing and buy through escrow.",
		Explanation: fmt.Sprintf("The domain's name servers point at %s, which hosts sale listings.", where),
		Phase:       "negotiate",
		Steps: []Step{
			{
				Title:         "Check the listing price",
				Description:   fmt.Sprintf("Visit the domain or search %s for a buy-now price.", where),
				Urgency:       UrgencyImmediate,
				EstimatedTime: "10 minutes",
				Difficulty:    status.DifficultyEasy,
			},
			{
				Title:         "Negotiate if the price is high",
				Description:   "Listings usually accept offers below the asking price.",
				Urgency:       UrgencySoon,
				EstimatedTime: "1-2 weeks",
				Difficulty:    status.DifficultyModerate,
				EmailTemplate: TemplatePurchaseOffer,
			},
			{
				Title:         "Pay through escrow",
				Description:   "Release funds only after the domain is in your account.",
				Urgency:       UrgencySoon,
				EstimatedTime: "3-7 days",
				Difficulty:    status.DifficultyEasy,
				Links:         []Link{{Label: "Escrow.com", URL: escrowURL}},
			},
		},
		CostSummary: costSummary(req, status.CostRange{Min: 500, Max: 10000}),
		TimeSummary: "1-2 weeks",
		Likelihood:  likelihood(req, 75),
	}
}

func inUseGuide(req Request) Guide {
	return Guide{
		Headline:    fmt.Sprintf("%s is in active use", req.Domain),
		Color:       ColorGray,
		Summary:     "An active owner rarely sells. Expect a long, expensive negotiation.",
		Explanation: "The domain has a working website or a history of real content, and its registration is current.",
		Phase:       "negotiate",
		Steps: []Step{
			{
				Title:         "Research the owner",
				Description:   "Learn what the site does and how important the domain is to them.",
				Urgency:       UrgencyWhenReady,
				EstimatedTime: "1 hour",
				Difficulty:    status.DifficultyEasy,
			},
			{
				Title:         "Send an anonymous inquiry",
				Description:   "Ask whether they would consider selling, without naming your company.",
				Urgency:       UrgencyWhenReady,
				EstimatedTime: "2-8 weeks",
				Difficulty:    status.DifficultyHard,
				EmailTemplate: TemplateOwnerInquiry,
			},
			{
				Title:         "Monitor the expiry date",
				Description:   "Add the domain to a watchlist and backorder ahead of its expiry.",
				Urgency:       UrgencyWhenReady,
				EstimatedTime: "10 minutes",
				Difficulty:    status.DifficultyEasy,
			},
		},
		Alternatives: []Step{
			{
				Title:         "Consider another TLD or a variation",
				Description:   "A close variant is usually far cheaper than buying an active domain.",
				Urgency:       UrgencyWhenReady,
				EstimatedTime: "1 hour",
				Difficulty:    status.DifficultyEasy,
			},
		},
		CostSummary: costSummary(req, status.CostRange{Min: 1000, Max: 50000}),
		TimeSummary: "Months",
		Likelihood:  likelihood(req, 15),
	}
}

func reservedGuide(req Request) Guide {
	return Guide{
		Headline:    fmt.Sprintf("%s is reserved", req.Domain),
		Color:       ColorGray,
		Summary:     "Reserved names are never released for registration.",
		Explanation: "The name is held for documentation, testing or registry operations.",
		Phase:       "none",
		Steps: []Step{
			{
				Title:         "Choose an alternative name",
				Description:   "Pick a different name or TLD; this one cannot be acquired.",
				Urgency:       UrgencyWhenReady,
				EstimatedTime: "1 hour",
				Difficulty:    status.DifficultyEasy,
			},
		},
		CostSummary: costSummary(req, status.CostRange{}),
		TimeSummary: "Not applicable",
		Likelihood:  likelihood(req, 0),
	}
}

func brandGuide(req Request) Guide {
	return Guide{
		Headline:    fmt.Sprintf("%s belongs to a major brand", req.Domain),
		Color:       ColorRed,
		Summary:     "This domain is not obtainable. Brand owners defend their names aggressively.",
		Explanation: "Global brands renew their domains indefinitely and pursue lookalike registrations under UDRP.",
		Phase:       "none",
		Steps: []Step{
			{
				Title:         "Choose a distinct name",
				Description:   "Pick a name that does not reference the brand.",
				Urgency:       UrgencyWhenReady,
				EstimatedTime: "1 hour",
				Difficulty:    status.DifficultyEasy,
			},
			{
				Title:         "Avoid confusingly similar names",
				Description:   "Typos and brand-plus-keyword names invite trademark complaints.",
				Urgency:       UrgencyWhenReady,
				EstimatedTime: "10 minutes",
				Difficulty:    status.DifficultyEasy,
				Links:         []Link{{Label: "UDRP overview", URL: udrpURL}},
			},
		},
		CostSummary: costSummary(req, status.CostRange{}),
		TimeSummary: "Not applicable",
		Likelihood:  likelihood(req, 0),
	}
}

func unknownGuide(req Request) Guide {
	return Guide{
		Headline:    fmt.Sprintf("The status of %s could not be determined", req.Domain),
		Color:       ColorGray,
		Summary:     "Registration data was unavailable. Check again before acting.",
		Explanation: "The lookup failed or returned nothing usable, so no lifecycle state could be assigned.",
		Phase:       "investigate",
		Steps: []Step{
			{
				Title:         "Retry the lookup later",
				Description:   "Registry WHOIS servers rate-limit and time out frequently.",
				Urgency:       UrgencySoon,
				EstimatedTime: "5 minutes",
				Difficulty:    status.DifficultyEasy,
			},
			{
				Title:         "Check the registration record directly",
				Description:   "Use ICANN's lookup tool to read the RDAP record.",
				Urgency:       UrgencySoon,
				EstimatedTime: "5 minutes",
				Difficulty:    status.DifficultyEasy,
				Links:         []Link{{Label: "ICANN Lookup", URL: icannLookupURL}},
			},
			{
				Title:         "Ask the registry",
				Description:   "For country-code TLDs, the registry's own WHOIS is often the only source.",
				Urgency:       UrgencyWhenReady,
				EstimatedTime: "1 day",
				Difficulty:    status.DifficultyModerate,
			},
		},
		CostSummary: "Unknown",
		TimeSummary: "Unknown",
		Likelihood:  "Unknown",
	}
}

// costSummary prefers the analyzer's cost range over the template default.
func costSummary(req Request, fallback status.CostRange) string {
	c := fallback
	if req.Enrichment.Cost != nil {
		c = *req.Enrichment.Cost
	}
	switch {
	case c.Max <= 0:
		return "No cost"
	case c.Min == c.Max:
		return valuation.FormatUSD(c.Min)
	default:
		return valuation.FormatUSD(c.Min) + " - " + valuation.FormatUSD(c.Max)
	}
}

func likelihood(req Request, fallback int) string {
	n := fallback
	if req.Enrichment.SuccessRate != nil {
		n = *req.Enrichment.SuccessRate
	}
	if n <= 0 {
		return "Not possible"
	}
	return fmt.Sprintf("%d%% estimated success", n)
}
