// Package status classifies a domain into exactly one lifecycle state from its
// registration and activity signals.
package status

import (
	"time"

	"domain-recovery/internal/valuation"
)

// State is a domain lifecycle state. The set is closed.
type State string

const (
	StateAvailable     State = "AVAILABLE"
	StateActiveInUse   State = "ACTIVE_IN_USE"
	StateActiveParked  State = "ACTIVE_PARKED"
	StateActiveForSale State = "ACTIVE_FOR_SALE"
	StateHostingIssue  State = "ACTIVE_HOSTING_ISSUE"
	StateExpiredGrace  State = "EXPIRED_GRACE"
	StateRedemption    State = "EXPIRED_REDEMPTION"
	StatePendingDelete State = "PENDING_DELETE"
	StateReserved      State = "RESERVED"
	StateUnknown       State = "UNKNOWN"
)

// States lists every lifecycle state.
var States = []State{
	StateAvailable, StateActiveInUse, StateActiveParked, StateActiveForSale, StateHostingIssue,
	StateExpiredGrace, StateRedemption, StatePendingDelete, StateReserved, StateUnknown,
}

// Valid reports whether s is a member of the closed state set.
func (s State) Valid() bool {
	for _, st := range States {
		if s == st {
			return true
		}
	}
	return false
}

// IsExpired reports whether s is one of the post-expiry states.
func (s State) IsExpired() bool {
	return s == StateExpiredGrace || s == StateRedemption || s == StatePendingDelete
}

// Difficulty is a five-level ordinal.
type Difficulty string

const (
	DifficultyEasy       Difficulty = "EASY"
	DifficultyModerate   Difficulty = "MODERATE"
	DifficultyHard       Difficulty = "HARD"
	DifficultyVeryHard   Difficulty = "VERY_HARD"
	DifficultyImpossible Difficulty = "IMPOSSIBLE"
)

// Multiplier scales a success rate into a recovery score.
func (d Difficulty) Multiplier() float64 {
	switch d {
	case DifficultyEasy:
		return 1.0
	case DifficultyModerate:
		return 0.8
	case DifficultyHard:
		return 0.6
	case DifficultyVeryHard:
		return 0.3
	default:
		return 0
	}
}

// CostRange is a dollar range.
type CostRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// RegistrarContact identifies the sponsoring registrar.
type RegistrarContact struct {
	Name  string `json:"name"`
	URL   string `json:"url,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Report is the analyzer's output. It is built once and never mutated afterwards.
type Report struct {
	Domain          string               `json:"domain"`
	State           State                `json:"state"`
	IsRegistered    bool                 `json:"is_registered"`
	IsActive        bool                 `json:"is_active"`
	IsParked        bool                 `json:"is_parked"`
	IsForSale       bool                 `json:"is_for_sale"`
	IsBrand         bool                 `json:"is_brand"`
	Difficulty      Difficulty           `json:"difficulty"`
	Cost            CostRange            `json:"cost"`
	EstimatedWeeks  int                  `json:"estimated_weeks"`
	SuccessRate     int                  `json:"success_rate"`
	ExpiryDate      *time.Time           `json:"expiry_date,omitempty"`
	DeletionDate    *time.Time           `json:"deletion_date,omitempty"`
	DaysSinceExpiry *int                 `json:"days_since_expiry,omitempty"`
	DaysUntilExpiry *int                 `json:"days_until_expiry,omitempty"`
	Registrar       *RegistrarContact    `json:"registrar,omitempty"`
	ParkingProvider string               `json:"parking_provider,omitempty"`
	Valuation       *valuation.Valuation `json:"valuation,omitempty"`
	Reasons         []string             `json:"reasons"`
	Warnings        []string             `json:"warnings"`
	Opportunities   []string             `json:"opportunities"`
}

// RecoveryScore rescales the success rate by the difficulty multiplier and rewards
// the first 30 days after expiry with a +10 bonus. The result is clamped to [0,100].
func RecoveryScore(r Report) int {
	score := float64(r.SuccessRate) * r.Difficulty.Multiplier()
	if r.DaysSinceExpiry != nil && *r.DaysSinceExpiry >= 0 && *r.DaysSinceExpiry <= 30 {
		score += 10
	}
	switch {
	case score < 0:
		score = 0
	case score > 100:
		score = 100
	}
	return int(score + 0.5)
}
