package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/dom/tutoring-scheduler/internal/auth"
	"github.com/dom/tutoring-scheduler/internal/config"
	"github.com/dom/tutoring-scheduler/internal/domain"
	"github.com/dom/tutoring-scheduler/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials  = errors.New("Invalid login credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

type AuthService struct {
	repos      *repository.Repositories
	tokens     *auth.TokenManager
	directory  *DirectoryService
	refreshTTL time.Duration
}

func NewAuthService(repos *repository.Repositories, tokens *auth.TokenManager, directory *DirectoryService, cfg *config.Config) *AuthService {
	return &AuthService{
		repos:      repos,
		tokens:     tokens,
		directory:  directory,
		refreshTTL: cfg.RefreshTokenTTL,
	}
}

type SignUpInput struct {
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=8"`
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Account      *domain.Account
	AccessToken  string
	RefreshToken string
}

// SignUp registers a student. The account and the student profile share an
// id and are written in one transaction.
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*domain.Student, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	account, err := s.newAccount(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	student := &domain.Student{
		ID:        account.ID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     account.Email,
	}

	err = s.repos.Tx.WithinTransaction(ctx, func(repos *repository.Repositories) error {
		if err := repos.Account.Create(ctx, account); err != nil {
			return err
		}
		return repos.Student.Create(ctx, student)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	return student, nil
}

// RegisterTutor creates a tutor account and its profile. There is no public
// route for this; it backs the seeding tool.
func (s *AuthService) RegisterTutor(ctx context.Context, input SignUpInput) (*domain.Tutor, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	account, err := s.newAccount(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	tutor := &domain.Tutor{
		ID:        account.ID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     account.Email,
	}

	err = s.repos.Tx.WithinTransaction(ctx, func(repos *repository.Repositories) error {
		if err := repos.Account.Create(ctx, account); err != nil {
			return err
		}
		return repos.Tutor.Create(ctx, tutor)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	s.directory.InvalidateTutors(ctx)
	return tutor, nil
}

func (s *AuthService) newAccount(ctx context.Context, email, password string) (*domain.Account, error) {
	existing, err := s.repos.Account.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &domain.Account{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hashed,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	account, err := s.repos.Account.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(account.PasswordHash, input.Password) {
		return nil, ErrInvalidCredentials
	}

	// One active session per account. A failed cleanup leaves stale
	// sessions behind but does not block the login.
	if err := s.repos.Session.DeleteByAccountID(ctx, account.ID); err != nil {
		slog.WarnContext(ctx, "failed to clear previous sessions", "account_id", account.ID, "error", err)
	}

	return s.generateTokens(ctx, account)
}

// Refresh exchanges a refresh token for a new token pair. The old session
// is consumed.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	session, err := s.repos.Session.GetByTokenHash(ctx, auth.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	if err := s.repos.Session.Delete(ctx, session.ID); err != nil {
		return nil, err
	}
	if session.Expired(time.Now()) {
		return nil, ErrInvalidRefreshToken
	}

	account, err := s.repos.Account.GetByID(ctx, session.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	return s.generateTokens(ctx, account)
}

func (s *AuthService) Logout(ctx context.Context, accountID uuid.UUID) error {
	return s.repos.Session.DeleteByAccountID(ctx, accountID)
}

func (s *AuthService) generateTokens(ctx context.Context, account *domain.Account) (*AuthResult, error) {
	accessToken, err := s.tokens.Issue(domain.Principal{ID: account.ID, Email: account.Email})
	if err != nil {
		return nil, err
	}

	refreshToken, refreshHash, err := auth.NewRefreshToken()
	if err != nil {
		return nil, err
	}

	session := &domain.AccountSession{
		ID:               uuid.New(),
		AccountID:        account.ID,
		RefreshTokenHash: refreshHash,
		ExpiresAt:        time.Now().Add(s.refreshTTL),
		CreatedAt:        time.Now(),
	}

	if err := s.repos.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return &AuthResult{
		Account:      account,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
