package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dom/tutoring-scheduler/internal/domain"
	"github.com/dom/tutoring-scheduler/internal/repository"
	"github.com/google/uuid"
)

// principalResolver returns a fixed principal, or none when p is nil.
type principalResolver struct {
	p *domain.Principal
}

func (r principalResolver) CurrentPrincipal(context.Context) (domain.Principal, bool) {
	if r.p == nil {
		return domain.Principal{}, false
	}
	return *r.p, true
}

func as(id uuid.UUID) principalResolver {
	return principalResolver{p: &domain.Principal{ID: id}}
}

var anonymous = principalResolver{}

type memoryStore struct {
	mu            sync.Mutex
	tutors        map[uuid.UUID]*domain.Tutor
	students      map[uuid.UUID]*domain.Student
	consultations map[uuid.UUID]*domain.Consultation
	statusWrites  int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		tutors:        map[uuid.UUID]*domain.Tutor{},
		students:      map[uuid.UUID]*domain.Student{},
		consultations: map[uuid.UUID]*domain.Consultation{},
	}
}

func (m *memoryStore) addTutor() *domain.Tutor {
	t := &domain.Tutor{ID: uuid.New(), FirstName: "Ada", LastName: "Lovelace", Email: uuid.NewString() + "@example.com"}
	m.tutors[t.ID] = t
	return t
}

func (m *memoryStore) addStudent() *domain.Student {
	s := &domain.Student{ID: uuid.New(), FirstName: "Alan", LastName: "Turing", Email: uuid.NewString() + "@example.com"}
	m.students[s.ID] = s
	return s
}

func (m *memoryStore) addConsultation(tutorID, studentID uuid.UUID, start time.Time) *domain.Consultation {
	c := &domain.Consultation{
		ID:        uuid.New(),
		TutorID:   tutorID,
		StudentID: studentID,
		Reason:    "exam prep",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    domain.ConsultationStatusPending,
	}
	m.consultations[c.ID] = c
	return c
}

func (m *memoryStore) withRelations(c *domain.Consultation) *domain.Consultation {
	out := *c
	out.Tutor = m.tutors[c.TutorID]
	out.Student = m.students[c.StudentID]
	return &out
}

type consultationRepo struct{ *memoryStore }

func (r consultationRepo) Create(_ context.Context, c *domain.Consultation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tutors[c.TutorID] == nil || r.students[c.StudentID] == nil {
		return domain.ErrParticipantMissing
	}
	stored := *c
	r.consultations[c.ID] = &stored
	*c = *r.withRelations(&stored)
	return nil
}

func (r consultationRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Consultation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.consultations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.withRelations(c), nil
}

func (r consultationRepo) ListByParticipant(_ context.Context, f domain.ConsultationFilter) ([]*domain.Consultation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Consultation
	for _, c := range r.consultations {
		if !c.IsParticipant(f.ParticipantID) {
			continue
		}
		if f.From != nil && c.StartTime.Before(*f.From) {
			continue
		}
		if f.To != nil && c.StartTime.After(*f.To) {
			continue
		}
		out = append(out, r.withRelations(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r consultationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.ConsultationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.consultations[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.Status = status
	r.statusWrites++
	return nil
}

type tutorRepo struct{ *memoryStore }

func (r tutorRepo) Create(_ context.Context, t *domain.Tutor) error {
	r.tutors[t.ID] = t
	return nil
}

func (r tutorRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Tutor, error) {
	t, ok := r.tutors[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t, nil
}

func (r tutorRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.tutors[id]
	return ok, nil
}

func (r tutorRepo) List(context.Context) ([]domain.TutorSummary, error) {
	var out []domain.TutorSummary
	for _, t := range r.tutors {
		out = append(out, t.Summary())
	}
	return out, nil
}

func (r tutorRepo) GetWithUpcoming(_ context.Context, id uuid.UUID, from time.Time) (*domain.Tutor, error) {
	t, ok := r.tutors[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *t
	out.Consultations = r.upcoming(func(c *domain.Consultation) bool { return c.TutorID == id }, from)
	return &out, nil
}

type studentRepo struct{ *memoryStore }

func (r studentRepo) Create(_ context.Context, s *domain.Student) error {
	r.students[s.ID] = s
	return nil
}

func (r studentRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Student, error) {
	s, ok := r.students[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

func (r studentRepo) GetWithUpcoming(_ context.Context, id uuid.UUID, from time.Time) (*domain.Student, error) {
	s, ok := r.students[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *s
	out.Consultations = r.upcoming(func(c *domain.Consultation) bool { return c.StudentID == id }, from)
	return &out, nil
}

func (m *memoryStore) upcoming(match func(*domain.Consultation) bool, from time.Time) []domain.Consultation {
	var out []domain.Consultation
	for _, c := range m.consultations {
		if match(c) && !c.StartTime.Before(from) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

// countingCache is an in-memory TutorCache that records reads and writes.
type countingCache struct {
	values map[string][]domain.TutorSummary
	gets   int
	sets   int
}

func newCountingCache() *countingCache {
	return &countingCache{values: map[string][]domain.TutorSummary{}}
}

func (c *countingCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.gets++
	v, ok := c.values[key]
	if !ok {
		return false, nil
	}
	*(out.(*[]domain.TutorSummary)) = v
	return true, nil
}

func (c *countingCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.sets++
	c.values[key] = value.([]domain.TutorSummary)
	return nil
}

func (c *countingCache) Delete(_ context.Context, key string) error {
	delete(c.values, key)
	return nil
}
