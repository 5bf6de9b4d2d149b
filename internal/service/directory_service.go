package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dom/tutoring-scheduler/internal/cache"
	"github.com/dom/tutoring-scheduler/internal/config"
	"github.com/dom/tutoring-scheduler/internal/domain"
	"github.com/dom/tutoring-scheduler/internal/repository"
	"github.com/google/uuid"
)

type TutorCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type DirectoryService struct {
	tutors      repository.TutorRepository
	students    repository.StudentRepository
	cache       TutorCache
	resolver    PrincipalResolver
	cacheTTL    time.Duration
	requireAuth bool
	now         func() time.Time
}

func NewDirectoryService(tutors repository.TutorRepository, students repository.StudentRepository, tutorCache TutorCache, resolver PrincipalResolver, cfg *config.Config) *DirectoryService {
	if tutorCache == nil {
		tutorCache = cache.Disabled()
	}
	return &DirectoryService{
		tutors:      tutors,
		students:    students,
		cache:       tutorCache,
		resolver:    resolver,
		cacheTTL:    cfg.TutorCacheTTL,
		requireAuth: cfg.TutorsRequireAuth,
		now:         time.Now,
	}
}

// ListTutors returns the tutor directory, served from cache when possible.
func (s *DirectoryService) ListTutors(ctx context.Context) ([]domain.TutorSummary, error) {
	if s.requireAuth {
		if _, err := resolvePrincipal(ctx, s.resolver); err != nil {
			return nil, err
		}
	}

	var tutors []domain.TutorSummary
	found, err := s.cache.GetJSON(ctx, cache.TutorDirectoryKey, &tutors)
	if err != nil {
		slog.WarnContext(ctx, "tutor directory cache read failed", "error", err)
	}
	if found {
		return tutors, nil
	}

	tutors, err = s.tutors.List(ctx)
	if err != nil {
		return nil, err
	}
	if tutors == nil {
		tutors = []domain.TutorSummary{}
	}

	if err := s.cache.SetJSON(ctx, cache.TutorDirectoryKey, tutors, s.cacheTTL); err != nil {
		slog.WarnContext(ctx, "tutor directory cache write failed", "error", err)
	}

	return tutors, nil
}

func (s *DirectoryService) InvalidateTutors(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.TutorDirectoryKey); err != nil {
		slog.WarnContext(ctx, "tutor directory cache invalidation failed", "error", err)
	}
}

// GetTutor is public: a tutor's profile and upcoming consultations.
func (s *DirectoryService) GetTutor(ctx context.Context, id uuid.UUID) (*domain.Tutor, error) {
	tutor, err := s.tutors.GetWithUpcoming(ctx, id, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrTutorNotFound
		}
		return nil, err
	}
	return tutor, nil
}

// GetStudent is visible to the student themself and to registered tutors.
// Access is decided before existence is checked.
func (s *DirectoryService) GetStudent(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	p, err := resolvePrincipal(ctx, s.resolver)
	if err != nil {
		return nil, err
	}

	needsTutorCheck, err := domain.AuthorizeStudentProfile(p, id)
	if err != nil {
		return nil, err
	}
	if needsTutorCheck {
		registered, err := s.tutors.Exists(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if !registered {
			return nil, domain.ErrForbidden
		}
	}

	student, err := s.students.GetWithUpcoming(ctx, id, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}
