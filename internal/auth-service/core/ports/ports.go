package ports

import (
	"context"

	"road-assist/internal/auth-service/core/domain/dto"
	"road-assist/internal/auth-service/core/domain/models"
)

type IUserRepo interface {
	// Create inserts the user and, for the provider role, the provider
	// profile in the same transaction.
	Create(ctx context.Context, user models.User, profile *models.ProviderProfile) (string, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
}

type IAuthService interface {
	Register(ctx context.Context, req dto.SignupRequest) (dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error)
}
