package repository

import (
	"context"
	"errors"
	"time"

	"github.com/dom/tutoring-scheduler/internal/domain"
	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.AccountSession) error
	GetByTokenHash(ctx context.Context, hash string) (*domain.AccountSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByAccountID(ctx context.Context, accountID uuid.UUID) error
}

type TutorRepository interface {
	Create(ctx context.Context, tutor *domain.Tutor) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tutor, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]domain.TutorSummary, error)
	// GetWithUpcoming loads the tutor with consultations starting at or
	// after from, earliest first.
	GetWithUpcoming(ctx context.Context, id uuid.UUID, from time.Time) (*domain.Tutor, error)
}

type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error)
	GetWithUpcoming(ctx context.Context, id uuid.UUID, from time.Time) (*domain.Student, error)
}

type ConsultationRepository interface {
	// Create inserts the consultation and loads its tutor and student.
	Create(ctx context.Context, consultation *domain.Consultation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Consultation, error)
	ListByParticipant(ctx context.Context, filter domain.ConsultationFilter) ([]*domain.Consultation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ConsultationStatus) error
}

// Transactor runs fn against repositories bound to a single transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(repos *Repositories) error) error
}

type Repositories struct {
	Account      AccountRepository
	Session      SessionRepository
	Tutor        TutorRepository
	Student      StudentRepository
	Consultation ConsultationRepository
	Tx           Transactor
}
