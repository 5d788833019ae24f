package usecase

import (
	"context"
	"errors"

	"tablebook/internal/pkg/jwt"
	"tablebook/internal/pkg/password"
	"tablebook/internal/usecase/queries"
)

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrTokenGeneration      = errors.New("token generation failed")
	ErrTokenValidation      = errors.New("token validation failed")
)

type StaffRepository interface {
	FindByEmail(ctx context.Context, email string) (*queries.StaffView, error)
}

type AuthUseCase interface {
	Login(ctx context.Context, email, plainPassword string) (string, *queries.StaffView, error)
	ValidateToken(tokenString string) (*jwt.Claims, error)
}

type authUseCaseImpl struct {
	staffRepo  StaffRepository
	jwtService *jwt.Service
}

func NewAuthUseCase(staffRepo StaffRepository, jwtService *jwt.Service) AuthUseCase {
	return &authUseCaseImpl{
		staffRepo:  staffRepo,
		jwtService: jwtService,
	}
}

func (a *authUseCaseImpl) Login(ctx context.Context, email, plainPassword string) (string, *queries.StaffView, error) {
	staff, err := a.staffRepo.FindByEmail(ctx, email)
	if err != nil {
		// Invalid email and wrong password are indistinguishable to the caller.
		return "", nil, ErrInvalidCredentials
	}
	if err := password.ComparePassword(staff.PasswordHash, plainPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := a.jwtService.GenerateToken(staff.ID, staff.OutletID, staff.Role)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}
	return token, staff, nil
}

func (a *authUseCaseImpl) ValidateToken(tokenString string) (*jwt.Claims, error) {
	claims, err := a.jwtService.ValidateToken(tokenString)
	if err != nil {
		return nil, ErrTokenValidation
	}
	return claims, nil
}
