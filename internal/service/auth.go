package service

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/vitrineapp/vitrine/internal/domain"
)

// AuthService validates back-office operator credentials. Session and user
// management live outside this service; only the bearer token check crosses
// the boundary.
type AuthService struct {
	config *domain.Config
}

func NewAuthService(config *domain.Config) *AuthService {
	return &AuthService{
		config: config,
	}
}

func (s *AuthService) ValidateOperatorToken(ctx context.Context, token string) error {
	_, span := tracer.Start(ctx, "Auth.Service.ValidateOperatorToken")
	defer span.End()

	if s.config.OperatorTokenHash == "" {
		err := fmt.Errorf("operator token not configured")
		span.RecordError(err)
		return err
	}

	err := bcrypt.CompareHashAndPassword([]byte(s.config.OperatorTokenHash), []byte(token))
	if err != nil {
		span.RecordError(errors.Wrap(err, "operator token mismatch"))
		return fmt.Errorf("invalid operator token")
	}

	return nil
}
