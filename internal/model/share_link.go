package model

import "time"

// ShareLink represents a short code a specialist shares so clients can open
// their booking page directly
type ShareLink struct {
	ID           int64      `json:"id"`
	SpecialistID int64      `json:"specialist_id"`
	Code         string     `json:"code"`
	MaxUses      *int       `json:"max_uses"` // nil = без ограничения
	CurrentUses  int        `json:"current_uses"`
	ExpiresAt    *time.Time `json:"expires_at"` // nil = бессрочная
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
}

// IsValid checks if the link can still be resolved
func (l *ShareLink) IsValid() bool {
	if !l.IsActive {
		return false
	}

	// Check if expired
	if l.ExpiresAt != nil && time.Now().After(*l.ExpiresAt) {
		return false
	}

	// Check if max uses reached
	if l.MaxUses != nil && l.CurrentUses >= *l.MaxUses {
		return false
	}

	return true
}
