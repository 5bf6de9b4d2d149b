package domain

import (
	"time"

	"github.com/google/uuid"
)

type Student struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	FirstName     string         `json:"firstName" gorm:"not null"`
	LastName      string         `json:"lastName" gorm:"not null"`
	Email         string         `json:"email" gorm:"uniqueIndex;not null"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	Consultations []Consultation `json:"consultations,omitempty" gorm:"foreignKey:StudentID"`
}
