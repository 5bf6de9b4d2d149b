package postgres

import (
	"context"
	"strings"

	"github.com/dom/tutoring-scheduler/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *accountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	account.Email = strings.ToLower(account.Email)
	return translate(r.db.WithContext(ctx).Create(account).Error)
}

func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	var account domain.Account
	if err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var account domain.Account
	err := r.db.WithContext(ctx).First(&account, "email = ?", strings.ToLower(email)).Error
	if err != nil {
		return nil, translate(err)
	}
	return &account, nil
}
