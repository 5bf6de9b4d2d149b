package postgres

import (
	"context"

	"github.com/dom/tutoring-scheduler/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.AccountSession) error {
	return translate(r.db.WithContext(ctx).Create(session).Error)
}

func (r *sessionRepository) GetByTokenHash(ctx context.Context, hash string) (*domain.AccountSession, error) {
	var session domain.AccountSession
	err := r.db.WithContext(ctx).First(&session, "refresh_token_hash = ?", hash).Error
	if err != nil {
		return nil, translate(err)
	}
	return &session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.AccountSession{}, "id = ?", id).Error
}

func (r *sessionRepository) DeleteByAccountID(ctx context.Context, accountID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.AccountSession{}, "account_id = ?", accountID).Error
}
