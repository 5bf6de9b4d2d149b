package postgres

import (
	"context"

	"github.com/dom/tutoring-scheduler/internal/domain"
	"github.com/dom/tutoring-scheduler/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates every table. Tutors and students come before
// consultations so the foreign keys can be created.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Account{},
		&domain.AccountSession{},
		&domain.Tutor{},
		&domain.Student{},
		&domain.Consultation{},
	)
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Account:      NewAccountRepository(db),
		Session:      NewSessionRepository(db),
		Tutor:        NewTutorRepository(db),
		Student:      NewStudentRepository(db),
		Consultation: NewConsultationRepository(db),
		Tx:           &transactor{db: db},
	}
}

type transactor struct {
	db *gorm.DB
}

func (t *transactor) WithinTransaction(ctx context.Context, fn func(repos *repository.Repositories) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
