package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stockyhq/stocky-api/internal/application/dto"
	"github.com/stockyhq/stocky-api/internal/domain"
	"github.com/stockyhq/stocky-api/internal/domain/entity"
	"github.com/stockyhq/stocky-api/internal/domain/repository"
	"github.com/stockyhq/stocky-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret            string
	ExpMinutes        int // duración del access token
	RefreshExpMinutes int // duración del refresh token
	Issuer            string
}

// UseCase casos de uso de autenticación: registro, login y refresh.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario: hashea password con bcrypt y persiste.
// Devuelve ErrUserExists si username o email ya están registrados.
// El primer rol siempre es "user"; los admin se promueven vía UpdateUser.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, err := uc.userRepo.GetByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil && err != domain.ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUserExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         entity.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica username/password y genera el par access + refresh.
// El handler decide cómo transporta el refresh (cookie httpOnly).
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, string, error) {
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, "", domain.ErrUnauthorized
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, "", domain.ErrUnauthorized
	}
	access, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, jwt.TypeAccess, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, "", err
	}
	refresh, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, jwt.TypeRefresh, uc.jwtCfg.RefreshExpMinutes)
	if err != nil {
		return nil, "", err
	}
	return &dto.LoginResponse{Token: access, User: *ToUserResponse(user)}, refresh, nil
}

// Refresh valida un refresh token y emite un access token nuevo.
// Relee el usuario para reflejar cambios de rol o bajas posteriores al login.
func (uc *UseCase) Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, refreshToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if claims.TokenType != jwt.TypeRefresh {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	access, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, jwt.TypeAccess, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.RefreshResponse{Token: access}, nil
}

// ToUserResponse proyecta un User hacia afuera sin el hash de contraseña.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
