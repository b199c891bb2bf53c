package auth

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Logistics-api/internal/application/dto"
	"github.com/jhoicas/Logistics-api/internal/domain"
	"github.com/jhoicas/Logistics-api/internal/domain/entity"
	"github.com/jhoicas/Logistics-api/internal/domain/repository"
	"github.com/jhoicas/Logistics-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Logistics-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// SessionRevoker revoca un token individual hasta su expiración.
// Lo implementa session.RedisStore; nil deshabilita el logout con revocación.
type SessionRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

// AuthUseCase casos de uso de autenticación: login y logout.
type AuthUseCase struct {
	userRepo repository.UserRepository
	sessions SessionRevoker
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth. sessions puede ser nil.
func NewAuthUseCase(userRepo repository.UserRepository, sessions SessionRevoker, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, sessions: sessions, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
//
// Email desconocido y password incorrecto devuelven el mismo
// ErrInvalidCredentials para no permitir enumerar cuentas. El estado se
// evalúa antes que el password: una cuenta PENDING siempre recibe
// ErrAccountNotActive, correcto o no el password (la distinción "aún no
// aprobado" sí es operativamente necesaria para el solicitante).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}
	if user.Status != entity.StatusActive {
		metrics.LoginAttempts.WithLabelValues("not_active").Inc()
		log.Info().Str("email", email).Str("status", user.Status).Msg("login bloqueado: cuenta no activa")
		return nil, domain.ErrAccountNotActive
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	companyID := ""
	if user.CompanyID != nil {
		companyID = *user.CompanyID
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, companyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	metrics.LoginAttempts.WithLabelValues("ok").Inc()
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// Logout revoca el token actual (por jti) hasta su expiración.
// Sin store de sesiones configurado el logout es un no-op del lado servidor.
func (uc *AuthUseCase) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if uc.sessions == nil || tokenID == "" {
		return nil
	}
	return uc.sessions.Revoke(ctx, tokenID, time.Until(expiresAt))
}

// ToUserResponse convierte la entidad a DTO de salida (sin password).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	companyID := ""
	if u.CompanyID != nil {
		companyID = *u.CompanyID
	}
	return &dto.UserResponse{
		ID:            u.ID,
		CompanyID:     companyID,
		Email:         u.Email,
		Name:          u.Name,
		Role:          u.Role,
		Status:        u.Status,
		Phone:         u.Phone,
		LicenseNumber: u.LicenseNumber,
		Rating:        u.Rating,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
