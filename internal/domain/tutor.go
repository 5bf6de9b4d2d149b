package domain

import (
	"time"

	"github.com/google/uuid"
)

type Tutor struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	FirstName     string         `json:"firstName" gorm:"not null"`
	LastName      string         `json:"lastName" gorm:"not null"`
	Email         string         `json:"email" gorm:"uniqueIndex;not null"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	Consultations []Consultation `json:"consultations,omitempty" gorm:"foreignKey:TutorID"`
}

// TutorSummary is the directory projection of a tutor.
type TutorSummary struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

func (t *Tutor) Summary() TutorSummary {
	return TutorSummary{ID: t.ID, FirstName: t.FirstName, LastName: t.LastName}
}
