package auth

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/gestion-centros/internal/application/dto"
	"github.com/jhoicas/gestion-centros/internal/application/ports"
	"github.com/jhoicas/gestion-centros/internal/domain"
	"github.com/jhoicas/gestion-centros/internal/domain/entity"
	"github.com/jhoicas/gestion-centros/internal/domain/repository"
	"github.com/jhoicas/gestion-centros/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLen longitud mínima de una contraseña nueva.
const MinPasswordLen = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret       string
	ExpMinutes   int
	Issuer       string
	ResetMinutes int
}

// AuthUseCase casos de uso de autenticación: login y restablecimiento de contraseña.
type AuthUseCase struct {
	userRepo repository.UserRepository
	mailer   ports.Mailer
	jwtCfg   JWTConfig
	resetURL string
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, mailer ports.Mailer, jwtCfg JWTConfig, resetURL string) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, mailer: mailer, jwtCfg: jwtCfg, resetURL: resetURL}
}

// Login verifica correo/contraseña, genera JWT y retorna token + tipo de usuario + cédula.
// ErrUserNotFound si el correo no existe; ErrInvalidCredentials si la contraseña no coincide.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByCorreo(ctx, normalizeCorreo(in.Correo))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Contrasena)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Activo {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		Cedula:   user.Cedula,
		CentroID: user.CentroID,
		Role:     user.TipoUsuario.String(),
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:    token,
		UserType: user.TipoUsuario.String(),
		Cedula:   strconv.FormatInt(user.Cedula, 10),
	}, nil
}

// ForgotPassword genera un token de restablecimiento y lo envía por correo.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, correo string) error {
	user, err := uc.userRepo.GetByCorreo(ctx, normalizeCorreo(correo))
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	token, err := jwt.GenerateReset(uc.jwtCfg.Secret, user.Cedula, uc.jwtCfg.Issuer, uc.jwtCfg.ResetMinutes)
	if err != nil {
		return err
	}
	return uc.mailer.SendPasswordReset(ctx, user.Correo, user.NombreCompleto(), uc.resetLink(token))
}

// ResetPassword valida el token de restablecimiento y guarda el nuevo hash.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	if len(in.NewPassword) < MinPasswordLen {
		return domain.ErrWeakPassword
	}
	cedula, err := jwt.ParseReset(uc.jwtCfg.Secret, in.Token)
	if err != nil {
		return domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByCedula(ctx, cedula)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uc.userRepo.UpdatePassword(ctx, user.Cedula, user.PasswordHash)
}

func (uc *AuthUseCase) resetLink(token string) string {
	sep := "?"
	if strings.Contains(uc.resetURL, "?") {
		sep = "&"
	}
	return uc.resetURL + sep + "token=" + url.QueryEscape(token)
}

func normalizeCorreo(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// AdminSeed datos del administrador inicial.
type AdminSeed struct {
	Cedula   int64
	Correo   string
	Password string
	CentroID int
}

// EnsureAdmin crea el administrador inicial si la cédula aún no existe. Retorna true si lo creó.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, seed AdminSeed) (bool, error) {
	if seed.Cedula <= 0 || seed.Correo == "" {
		return false, domain.ErrInvalidInput
	}
	if len(seed.Password) < MinPasswordLen {
		return false, domain.ErrWeakPassword
	}
	existing, err := uc.userRepo.GetByCedula(ctx, seed.Cedula)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	now := time.Now()
	user := &entity.User{
		Cedula:       seed.Cedula,
		PrimerNombre: "Administrador",
		Correo:       normalizeCorreo(seed.Correo),
		CentroID:     seed.CentroID,
		TipoUsuario:  entity.TipoAdministrador,
		PasswordHash: string(hash),
		Activo:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return false, err
	}
	return true, nil
}
