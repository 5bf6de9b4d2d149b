package postgres

import (
	"context"
	"time"

	"github.com/dom/tutoring-scheduler/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type tutorRepository struct {
	db *gorm.DB
}

func NewTutorRepository(db *gorm.DB) *tutorRepository {
	return &tutorRepository{db: db}
}

func (r *tutorRepository) Create(ctx context.Context, tutor *domain.Tutor) error {
	return translate(r.db.WithContext(ctx).Create(tutor).Error)
}

func (r *tutorRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tutor, error) {
	var tutor domain.Tutor
	if err := r.db.WithContext(ctx).First(&tutor, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &tutor, nil
}

func (r *tutorRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Tutor{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *tutorRepository) List(ctx context.Context) ([]domain.TutorSummary, error) {
	var tutors []domain.TutorSummary
	err := r.db.WithContext(ctx).
		Model(&domain.Tutor{}).
		Select("id", "first_name", "last_name").
		Order("last_name ASC, first_name ASC").
		Scan(&tutors).Error
	if err != nil {
		return nil, err
	}
	return tutors, nil
}

// GetWithUpcoming backs a public profile, so students are not loaded.
func (r *tutorRepository) GetWithUpcoming(ctx context.Context, id uuid.UUID, from time.Time) (*domain.Tutor, error) {
	var tutor domain.Tutor
	err := r.db.WithContext(ctx).
		Preload("Consultations", func(db *gorm.DB) *gorm.DB {
			return db.Where("start_time >= ?", from).Order("start_time ASC")
		}).
		First(&tutor, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &tutor, nil
}
