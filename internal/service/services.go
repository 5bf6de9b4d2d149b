package service

import (
	"context"

	"github.com/dom/tutoring-scheduler/internal/auth"
	"github.com/dom/tutoring-scheduler/internal/config"
	"github.com/dom/tutoring-scheduler/internal/domain"
	"github.com/dom/tutoring-scheduler/internal/repository"
	"github.com/go-playground/validator/v10"
)

// PrincipalResolver yields the authenticated caller for a request, if any.
type PrincipalResolver interface {
	CurrentPrincipal(ctx context.Context) (domain.Principal, bool)
}

type Services struct {
	Auth         *AuthService
	Consultation *ConsultationService
	Directory    *DirectoryService
	Tokens       *auth.TokenManager
}

func NewServices(repos *repository.Repositories, tutorCache TutorCache, cfg *config.Config) *Services {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiration)
	resolver := auth.ContextResolver{}
	directory := NewDirectoryService(repos.Tutor, repos.Student, tutorCache, resolver, cfg)

	return &Services{
		Auth:         NewAuthService(repos, tokens, directory, cfg),
		Consultation: NewConsultationService(repos.Consultation, repos.Tutor, resolver, cfg),
		Directory:    directory,
		Tokens:       tokens,
	}
}

func resolvePrincipal(ctx context.Context, resolver PrincipalResolver) (*domain.Principal, error) {
	p, ok := resolver.CurrentPrincipal(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return &p, nil
}

var validate = validator.New()

func validateInput(input any) error {
	if err := validate.Struct(input); err != nil {
		return domain.InvalidInput("Invalid input")
	}
	return nil
}
