package models

import (
	"time"
)

// WatchedDomain is a domain on the watchlist, re-analysed on a schedule
type WatchedDomain struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	Name          string     `gorm:"uniqueIndex;not null" json:"name"`  // Normalised domain name
	Registrar     string     `json:"registrar"`                          // Last seen registrar
	State         string     `gorm:"index" json:"state"`                 // Last lifecycle state
	Difficulty    string     `json:"difficulty"`                         // Last recovery difficulty
	RecoveryScore int        `json:"recovery_score"`                     // Last recovery score
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`              // Expiration date, if known
	EstimatedMid  float64    `json:"estimated_mid"`                      // Last mid valuation in USD
	Grade         string     `json:"grade"`                              // Last valuation grade
	Notes         string     `json:"notes"`                              // Free-form notes
	LastChecked   *time.Time `json:"last_checked,omitempty"`             // Last analysis time
	IsActive      bool       `gorm:"default:true" json:"is_active"`      // Monitor enabled
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Analysis is one persisted run of the analysis pipeline
type Analysis struct {
	ID            string    `gorm:"primarykey;size:36" json:"id"` // UUID
	Domain        string    `gorm:"index;not null" json:"domain"`
	State         string    `gorm:"index" json:"state"`
	Difficulty    string    `json:"difficulty"`
	RecoveryScore int       `json:"recovery_score"`
	Grade         string    `json:"grade"`
	EstimatedMid  float64   `json:"estimated_mid"`
	Report        string    `gorm:"type:text" json:"-"` // JSON status report
	Guide         string    `gorm:"type:text" json:"-"` // JSON recovery guide
	Degraded      string    `json:"degraded"`           // Comma separated collector sources that failed
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}

// Notification represents a notification record
type Notification struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	DomainID  uint      `gorm:"index" json:"domain_id"` // Associated watched domain
	Type      string    `json:"type"`                   // Channel (email/webhook/telegram/dingding)
	FromState string    `json:"from_state"`
	ToState   string    `json:"to_state"`
	Content   string    `json:"content"` // Notification content
	Status    string    `json:"status"`  // Send status (success/failed)
	Error     string    `json:"error,omitempty"`
	SentAt    time.Time `json:"sent_at"`
}

// Setting represents system configuration
type Setting struct {
	Key   string `gorm:"primarykey" json:"key"`
	Value string `json:"value"`
}

// User represents a user account
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"` // Username
	Password  string    `gorm:"not null" json:"-"`                    // Hashed password (excluded from JSON)
	Email     string    `json:"email"`                                // Email
	IsActive  bool      `gorm:"default:true" json:"is_active"`        // Account status
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
