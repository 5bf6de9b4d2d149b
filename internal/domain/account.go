package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is the login identity behind a Principal. Its ID is shared with
// the Student or Tutor profile created alongside it.
type Account struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type AccountSession struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AccountID        uuid.UUID `json:"accountId" gorm:"type:uuid;not null;index"`
	RefreshTokenHash string    `json:"-" gorm:"uniqueIndex;not null"`
	ExpiresAt        time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt        time.Time `json:"createdAt"`
}

func (s *AccountSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Principal is the authenticated identity making a request.
type Principal struct {
	ID    uuid.UUID
	Email string
}
