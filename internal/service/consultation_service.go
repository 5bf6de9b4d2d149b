package service

import (
	"context"
	"errors"
	"time"

	"github.com/dom/tutoring-scheduler/internal/config"
	"github.com/dom/tutoring-scheduler/internal/domain"
	"github.com/dom/tutoring-scheduler/internal/repository"
	"github.com/google/uuid"
)

type ConsultationService struct {
	consultations repository.ConsultationRepository
	tutors        repository.TutorRepository
	resolver      PrincipalResolver
	defaultLength time.Duration
	now           func() time.Time
}

func NewConsultationService(consultations repository.ConsultationRepository, tutors repository.TutorRepository, resolver PrincipalResolver, cfg *config.Config) *ConsultationService {
	return &ConsultationService{
		consultations: consultations,
		tutors:        tutors,
		resolver:      resolver,
		defaultLength: cfg.DefaultConsultationLength,
		now:           time.Now,
	}
}

type CreateConsultationInput struct {
	TutorID   uuid.UUID `validate:"required"`
	StudentID uuid.UUID `validate:"required"`
	Reason    string    `validate:"required,max=1000"`
	StartTime time.Time `validate:"required"`
	// EndTime defaults to StartTime plus the configured consultation length.
	EndTime *time.Time
}

// LocalConsultationInput describes a slot in the caller's wall-clock time.
// TimezoneOffset is in minutes, positive west of UTC.
type LocalConsultationInput struct {
	TutorID        uuid.UUID `validate:"required"`
	StudentID      uuid.UUID `validate:"required"`
	Reason         string    `validate:"required,max=1000"`
	Date           string    `validate:"required"`
	StartTime      string    `validate:"required"`
	EndTime        string
	TimezoneOffset int `validate:"min=-840,max=840"`
}

func (s *ConsultationService) Get(ctx context.Context, id uuid.UUID) (*domain.Consultation, error) {
	p, err := resolvePrincipal(ctx, s.resolver)
	if err != nil {
		return nil, err
	}

	consultation, err := s.consultations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrConsultationNotFound
		}
		return nil, err
	}

	if err := domain.AuthorizeView(p, consultation); err != nil {
		return nil, err
	}

	return consultation, nil
}

// List returns the caller's consultations starting within [from, to],
// earliest first. A nil from means now; a nil to is unbounded.
func (s *ConsultationService) List(ctx context.Context, from, to *time.Time) ([]*domain.Consultation, error) {
	p, err := resolvePrincipal(ctx, s.resolver)
	if err != nil {
		return nil, err
	}

	if from == nil {
		now := s.now()
		from = &now
	}

	return s.consultations.ListByParticipant(ctx, domain.ConsultationFilter{
		ParticipantID: p.ID,
		From:          from,
		To:            to,
	})
}

// Next returns the caller's earliest consultation that has not started, or
// nil when there is none.
func (s *ConsultationService) Next(ctx context.Context) (*domain.Consultation, error) {
	p, err := resolvePrincipal(ctx, s.resolver)
	if err != nil {
		return nil, err
	}

	now := s.now()
	consultations, err := s.consultations.ListByParticipant(ctx, domain.ConsultationFilter{
		ParticipantID: p.ID,
		From:          &now,
		Limit:         1,
	})
	if err != nil {
		return nil, err
	}
	if len(consultations) == 0 {
		return nil, nil
	}
	return consultations[0], nil
}

func (s *ConsultationService) Create(ctx context.Context, input CreateConsultationInput) (*domain.Consultation, error) {
	p, err := resolvePrincipal(ctx, s.resolver)
	if err != nil {
		return nil, err
	}

	if err := validateInput(input); err != nil {
		return nil, err
	}

	role, err := domain.AuthorizeCreate(p, input.TutorID, input.StudentID)
	if err != nil {
		return nil, err
	}
	if role == domain.CreateAsTutor {
		registered, err := s.tutors.Exists(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if !registered {
			return nil, domain.ErrCannotCreateConsultation
		}
	}

	endTime := input.StartTime.Add(s.defaultLength)
	if input.EndTime != nil {
		endTime = *input.EndTime
	}

	consultation := &domain.Consultation{
		ID:        uuid.New(),
		TutorID:   input.TutorID,
		StudentID: input.StudentID,
		Reason:    input.Reason,
		StartTime: input.StartTime.UTC(),
		EndTime:   endTime.UTC(),
		Status:    domain.ConsultationStatusPending,
	}

	if err := s.consultations.Create(ctx, consultation); err != nil {
		return nil, err
	}

	return consultation, nil
}

// CreateFromLocal converts a local date and clock time to UTC and books the
// consultation through Create.
func (s *ConsultationService) CreateFromLocal(ctx context.Context, input LocalConsultationInput) (*domain.Consultation, error) {
	if _, err := resolvePrincipal(ctx, s.resolver); err != nil {
		return nil, err
	}

	if err := validateInput(input); err != nil {
		return nil, err
	}

	start, err := domain.LocalToUTC(input.Date, input.StartTime, input.TimezoneOffset)
	if err != nil {
		return nil, err
	}

	var end *time.Time
	if input.EndTime != "" {
		t, err := domain.LocalToUTC(input.Date, input.EndTime, input.TimezoneOffset)
		if err != nil {
			return nil, err
		}
		end = &t
	}

	return s.Create(ctx, CreateConsultationInput{
		TutorID:   input.TutorID,
		StudentID: input.StudentID,
		Reason:    input.Reason,
		StartTime: start,
		EndTime:   end,
	})
}

func (s *ConsultationService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ConsultationStatus) (*domain.Consultation, error) {
	p, err := resolvePrincipal(ctx, s.resolver)
	if err != nil {
		return nil, err
	}

	if !status.Valid() {
		return nil, domain.InvalidInput("Invalid input")
	}

	consultation, err := s.consultations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrConsultationNotFound
		}
		return nil, err
	}

	if err := domain.AuthorizeStatusUpdate(p, consultation); err != nil {
		return nil, err
	}

	if err := s.consultations.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrConsultationNotFound
		}
		return nil, err
	}

	return s.consultations.GetByID(ctx, id)
}
