package service_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/dom/tutoring-scheduler/internal/auth"
	"github.com/dom/tutoring-scheduler/internal/config"
	"github.com/dom/tutoring-scheduler/internal/domain"
	"github.com/dom/tutoring-scheduler/internal/repository"
	"github.com/dom/tutoring-scheduler/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accountRepo struct {
	account *domain.Account
}

func (r accountRepo) Create(context.Context, *domain.Account) error { return nil }

func (r accountRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Account, error) {
	if r.account.ID != id {
		return nil, repository.ErrNotFound
	}
	return r.account, nil
}

func (r accountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	if r.account.Email != email {
		return nil, repository.ErrNotFound
	}
	return r.account, nil
}

// sessionRepo stores sessions in memory; clearErr fails DeleteByAccountID.
type sessionRepo struct {
	sessions map[uuid.UUID]*domain.AccountSession
	clearErr error
}

func (r *sessionRepo) Create(_ context.Context, s *domain.AccountSession) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *sessionRepo) GetByTokenHash(_ context.Context, hash string) (*domain.AccountSession, error) {
	for _, s := range r.sessions {
		if s.RefreshTokenHash == hash {
			return s, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *sessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.sessions, id)
	return nil
}

func (r *sessionRepo) DeleteByAccountID(_ context.Context, accountID uuid.UUID) error {
	if r.clearErr != nil {
		return r.clearErr
	}
	for id, s := range r.sessions {
		if s.AccountID == accountID {
			delete(r.sessions, id)
		}
	}
	return nil
}

func TestAuthService_LoginLogsFailedSessionCleanup(t *testing.T) {
	var logs bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	hash, err := auth.HashPassword("correct horse")
	require.NoError(t, err)
	account := &domain.Account{ID: uuid.New(), Email: "ada@example.com", PasswordHash: hash}
	sessions := &sessionRepo{
		sessions: map[uuid.UUID]*domain.AccountSession{},
		clearErr: errors.New("connection reset"),
	}
	repos := &repository.Repositories{Account: accountRepo{account}, Session: sessions}
	cfg := &config.Config{RefreshTokenTTL: time.Hour}
	authService := service.NewAuthService(repos, auth.NewTokenManager("secret", time.Hour), nil, cfg)

	result, err := authService.Login(context.Background(), service.LoginInput{Email: "ada@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, account.ID, result.Account.ID)
	assert.Len(t, sessions.sessions, 1)

	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "failed to clear previous sessions")
	assert.Contains(t, logs.String(), "connection reset")
}
