package status

import (
	"fmt"
	"time"

	"domain-recovery/internal/domain"
	"domain-recovery/internal/valuation"
)

// builder accumulates a Report while the analyzer walks its decision list. Each
// terminal method fills the state template and returns the finished value.
type builder struct {
	r Report
}

func (b *builder) finish(state State, diff Difficulty, cost CostRange, weeks, success int) Report {
	b.r.State = state
	b.r.Difficulty = diff
	if cost.Currency == "" {
		cost.Currency = "USD"
	}
	b.r.Cost = cost
	b.r.EstimatedWeeks = weeks
	b.r.SuccessRate = success
	if b.r.Reasons == nil {
		b.r.Reasons = []string{}
	}
	if b.r.Warnings == nil {
		b.r.Warnings = []string{}
	}
	if b.r.Opportunities == nil {
		b.r.Opportunities = []string{}
	}
	return b.r
}

func (b *builder) registrationNotes(reg *domain.RegistrationSignals) {
	if reg.HasStatus("clientTransferProhibited") || reg.HasStatus("serverTransferProhibited") {
		b.r.Warnings = append(b.r.Warnings, "Transfer lock is set; the owner must remove it before any transfer")
	}
	if reg.RegistrantRedacted {
		b.r.Warnings = append(b.r.Warnings, "Registrant identity is redacted; contact must go through the registrar's relay form")
	}
	if reg.HasStatus("clientHold") || reg.HasStatus("serverHold") {
		b.r.Warnings = append(b.r.Warnings, "Domain is on hold and will not resolve until the hold is lifted")
	}
}

func (b *builder) available() Report {
	b.r.Reasons = append(b.r.Reasons, "No registrar, creation date or registrant was found")
	b.r.Opportunities = append(b.r.Opportunities,
		"Register it now at any accredited registrar",
		"Enable auto-renew and registrar lock immediately after registering")
	return b.finish(StateAvailable, DifficultyEasy, CostRange{Min: 10, Max: 20}, 0, 100)
}

func (b *builder) reserved() Report {
	b.r.Reasons = append(b.r.Reasons, "Name is on the reserved block-list for documentation and special use")
	b.r.Warnings = append(b.r.Warnings, "Reserved names are never released to the public pool")
	b.r.Opportunities = append(b.r.Opportunities, "Consider an alternative name or TLD")
	return b.finish(StateReserved, DifficultyImpossible, CostRange{}, 0, 0)
}

func (b *builder) brand() Report {
	b.r.IsBrand = true
	b.r.IsActive = true
	b.r.Reasons = append(b.r.Reasons, fmt.Sprintf("%s belongs to a major global brand", b.r.Domain))
	b.r.Warnings = append(b.r.Warnings,
		"Brand owners actively enforce trademarks; purchase or backorder attempts will fail",
		"Registering confusingly similar names risks a UDRP complaint")
	b.r.Opportunities = append(b.r.Opportunities, "Choose a distinct name that does not reference the brand")
	return b.finish(StateActiveInUse, DifficultyImpossible, CostRange{}, 0, 0)
}

func (b *builder) expired(expiry time.Time, days int) Report {
	b.r.DaysSinceExpiry = &days
	switch {
	case days <= GraceDays:
		return b.grace(days)
	case days <= RedemptionDays:
		deletion := expiry.AddDate(0, 0, RedemptionDays)
		return b.redemption(&deletion)
	default:
		deletion := expiry.AddDate(0, 0, PendingDeleteDays)
		return b.pendingDelete(&deletion)
	}
}

func (b *builder) grace(days int) Report {
	b.r.Reasons = append(b.r.Reasons, fmt.Sprintf("Expired %d days ago; still inside the %d-day grace period", days, GraceDays))
	b.r.Opportunities = append(b.r.Opportunities,
		"The registrant can renew at or near the normal price",
		fmt.Sprintf("%d days remain before redemption fees apply", GraceDays-days))
	b.r.Warnings = append(b.r.Warnings, "Registrars may park or auction domains during grace; act quickly")
	return b.finish(StateExpiredGrace, DifficultyModerate, CostRange{Min: 500, Max: 2000}, 1, 70)
}

func (b *builder) redemption(deletion *time.Time) Report {
	b.r.DeletionDate = deletion
	if b.r.DaysSinceExpiry != nil {
		b.r.Reasons = append(b.r.Reasons, fmt.Sprintf("Expired %d days ago; in the redemption period", *b.r.DaysSinceExpiry))
	} else {
		b.r.Reasons = append(b.r.Reasons, "Registry status reports the redemption period")
	}
	b.r.Warnings = append(b.r.Warnings, "Restoring now requires a registry redemption fee on top of renewal")
	b.r.Opportunities = append(b.r.Opportunities, "The original registrant can still restore the domain through the registrar")
	return b.finish(StateRedemption, DifficultyHard, CostRange{Min: 1000, Max: 5000}, 2, 50)
}

func (b *builder) pendingDelete(deletion *time.Time) Report {
	b.r.DeletionDate = deletion
	if b.r.DaysSinceExpiry != nil {
		b.r.Reasons = append(b.r.Reasons, fmt.Sprintf("Expired %d days ago; past redemption and pending deletion", *b.r.DaysSinceExpiry))
	} else {
		b.r.Reasons = append(b.r.Reasons, "Registry status reports pending delete")
	}
	b.r.Warnings = append(b.r.Warnings, "The domain can no longer be renewed; it will drop to the public pool")
	b.r.Opportunities = append(b.r.Opportunities,
		"Place backorders with several drop-catching services",
		"Be ready to register manually the moment it drops")
	return b.finish(StatePendingDelete, DifficultyHard, CostRange{Min: 69, Max: 500}, 1, 30)
}

func (b *builder) hostingIssue(act domain.ActivitySignals) Report {
	b.r.Reasons = append(b.r.Reasons,
		"Domain registration is current and DNS still returns A records",
		"The website does not respond, so the problem is the server, not ownership")
	if act.HasArchivedContent() {
		b.r.Opportunities = append(b.r.Opportunities, "Archived snapshots exist and can be used to rebuild the site")
	}
	b.r.Opportunities = append(b.r.Opportunities, "Contact the hosting provider or restore from backup")
	return b.finish(StateHostingIssue, DifficultyModerate, CostRange{Min: 0, Max: 500}, 1, 90)
}

func (b *builder) parked(v valuation.Valuation, reason string) Report {
	b.r.IsParked = true
	b.r.Reasons = append(b.r.Reasons, reason)
	if b.r.ParkingProvider != "" {
		b.r.Reasons = append(b.r.Reasons, fmt.Sprintf("Name servers point at %s", b.r.ParkingProvider))
	}
	b.r.Opportunities = append(b.r.Opportunities,
		"Parked owners are often open to offers; contact them through the registrar relay",
		fmt.Sprintf("Estimated value: %s", v.Summary()))
	return b.finish(StateActiveParked, DifficultyHard, CostRange{Min: v.Estimate.Low, Max: v.Estimate.Mid}, 4, 35)
}

func (b *builder) forSale(v valuation.Valuation, provider string) Report {
	b.r.Reasons = append(b.r.Reasons, fmt.Sprintf("Name servers point at the sales platform %s", provider))
	b.r.Opportunities = append(b.r.Opportunities,
		"Check the marketplace listing for a buy-now price",
		"Use escrow for any purchase")
	b.r.Warnings = append(b.r.Warnings, fmt.Sprintf("Asking prices often exceed the estimated value (%s)", valuation.FormatUSD(v.Estimate.Mid)))
	return b.finish(StateActiveForSale, DifficultyModerate, CostRange{Min: v.Estimate.Mid, Max: v.Estimate.High}, 2, 75)
}

func (b *builder) inUse(v valuation.Valuation, act domain.ActivitySignals) Report {
	switch {
	case act.WebsiteLive != nil && *act.WebsiteLive:
		b.r.Reasons = append(b.r.Reasons, "Website is live")
	case act.HasArchivedContent():
		b.r.Reasons = append(b.r.Reasons, fmt.Sprintf("Archive shows %d snapshots of prior use", *act.ArchiveSnapshots))
	}
	b.r.Reasons = append(b.r.Reasons, "Registration is current and the name is in active use")
	b.r.Warnings = append(b.r.Warnings, "Active owners rarely sell; expect long negotiations")
	b.r.Opportunities = append(b.r.Opportunities,
		"Monitor the expiry date and backorder ahead of it",
		"A broker can approach the owner anonymously")

	diff, success := DifficultyVeryHard, 15
	if v.Estimate.Mid < 2000 {
		diff, success = DifficultyHard, 25
	}
	return b.finish(StateActiveInUse, diff, CostRange{Min: v.Estimate.Low, Max: v.Estimate.High}, 12, success)
}
