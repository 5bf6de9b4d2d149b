package domain

import (
	"time"

	"github.com/google/uuid"
)

type ConsultationStatus string

const (
	ConsultationStatusPending   ConsultationStatus = "PENDING"
	ConsultationStatusCompleted ConsultationStatus = "COMPLETED"
)

func (s ConsultationStatus) Valid() bool {
	switch s {
	case ConsultationStatusPending, ConsultationStatusCompleted:
		return true
	}
	return false
}

type Consultation struct {
	ID        uuid.UUID          `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TutorID   uuid.UUID          `json:"tutorId" gorm:"type:uuid;not null;index"`
	StudentID uuid.UUID          `json:"studentId" gorm:"type:uuid;not null;index"`
	Reason    string             `json:"reason" gorm:"not null"`
	StartTime time.Time          `json:"startTime" gorm:"not null;index"`
	EndTime   time.Time          `json:"endTime" gorm:"not null"`
	Status    ConsultationStatus `json:"status" gorm:"type:varchar(20);not null;default:'PENDING'"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`

	Tutor   *Tutor   `json:"tutor,omitempty" gorm:"foreignKey:TutorID;constraint:OnDelete:CASCADE"`
	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
}

// IsParticipant reports whether id is the consultation's tutor or student.
func (c *Consultation) IsParticipant(id uuid.UUID) bool {
	return c.TutorID == id || c.StudentID == id
}

// ConsultationFilter bounds a participant listing. From and To are
// inclusive; a nil From means "now".
type ConsultationFilter struct {
	ParticipantID uuid.UUID
	From          *time.Time
	To            *time.Time
	Limit         int
}
