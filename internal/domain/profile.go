package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// AttachmentStyle is the self-reported attachment style kept on a profile.
type AttachmentStyle string

// Attachment styles.
const (
	AttachmentUnknown  AttachmentStyle = "unknown"
	AttachmentSecure   AttachmentStyle = "secure"
	AttachmentAnxious  AttachmentStyle = "anxious"
	AttachmentAvoidant AttachmentStyle = "avoidant"
	AttachmentFearful  AttachmentStyle = "fearful"
)

// Profile validation errors
var (
	ErrProfileUserIDEmpty     = errors.New("profile user ID cannot be empty")
	ErrInvalidAttachmentStyle = errors.New("invalid attachment style")
)

// Profile holds the per-user information the insight report needs,
// including the pairing key that links two partners.
type Profile struct {
	UserID          uuid.UUID       `json:"user_id"`
	CoupleID        *uuid.UUID      `json:"couple_id,omitempty"`
	DisplayName     string          `json:"display_name"`
	AttachmentStyle AttachmentStyle `json:"attachment_style"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Validate checks if the Profile has valid data.
func (p *Profile) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrProfileUserIDEmpty
	}

	switch p.AttachmentStyle {
	case AttachmentUnknown, AttachmentSecure, AttachmentAnxious,
		AttachmentAvoidant, AttachmentFearful:
		return nil
	default:
		return ErrInvalidAttachmentStyle
	}
}

// IsPaired reports whether the profile is linked to a couple.
func (p *Profile) IsPaired() bool {
	return p.CoupleID != nil && *p.CoupleID != uuid.Nil
}
