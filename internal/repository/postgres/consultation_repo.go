package postgres

import (
	"context"

	"github.com/dom/tutoring-scheduler/internal/domain"
	"github.com/dom/tutoring-scheduler/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type consultationRepository struct {
	db *gorm.DB
}

func NewConsultationRepository(db *gorm.DB) *consultationRepository {
	return &consultationRepository{db: db}
}

func (r *consultationRepository) Create(ctx context.Context, consultation *domain.Consultation) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit("Tutor", "Student").Create(consultation).Error; err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrParticipantMissing
		}
		return translate(err)
	}

	return translate(db.
		Preload("Tutor").
		Preload("Student").
		First(consultation, "id = ?", consultation.ID).Error)
}

func (r *consultationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Consultation, error) {
	var consultation domain.Consultation
	err := r.db.WithContext(ctx).
		Preload("Tutor").
		Preload("Student").
		First(&consultation, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &consultation, nil
}

func (r *consultationRepository) ListByParticipant(ctx context.Context, filter domain.ConsultationFilter) ([]*domain.Consultation, error) {
	query := r.db.WithContext(ctx).
		Preload("Tutor").
		Preload("Student").
		Where("(tutor_id = ? OR student_id = ?)", filter.ParticipantID, filter.ParticipantID)

	if filter.From != nil {
		query = query.Where("start_time >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("start_time <= ?", *filter.To)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var consultations []*domain.Consultation
	if err := query.Order("start_time ASC").Find(&consultations).Error; err != nil {
		return nil, err
	}
	return consultations, nil
}

func (r *consultationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ConsultationStatus) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Consultation{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
