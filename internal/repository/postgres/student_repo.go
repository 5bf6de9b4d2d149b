package postgres

import (
	"context"
	"time"

	"github.com/dom/tutoring-scheduler/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *studentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *domain.Student) error {
	return translate(r.db.WithContext(ctx).Create(student).Error)
}

func (r *studentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	var student domain.Student
	if err := r.db.WithContext(ctx).First(&student, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &student, nil
}

func (r *studentRepository) GetWithUpcoming(ctx context.Context, id uuid.UUID, from time.Time) (*domain.Student, error) {
	var student domain.Student
	err := r.db.WithContext(ctx).
		Preload("Consultations", func(db *gorm.DB) *gorm.DB {
			return db.Where("start_time >= ?", from).Order("start_time ASC")
		}).
		Preload("Consultations.Tutor").
		First(&student, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &student, nil
}
