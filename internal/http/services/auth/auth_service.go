// Package auth implementa registro y login con emisión de tokens.
package auth

import (
	"context"
	"errors"
	"strings"

	dto "github.com/dropDatabas3/mercadito/internal/http/dto/auth"
	"github.com/dropDatabas3/mercadito/internal/observability/logger"
	"github.com/dropDatabas3/mercadito/internal/security/password"
	"github.com/dropDatabas3/mercadito/internal/security/token"
	"github.com/dropDatabas3/mercadito/internal/store/core"
)

// Service define las operaciones de autenticación.
type Service interface {
	Register(ctx context.Context, in dto.CredentialsRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, in dto.CredentialsRequest) (*dto.AuthResponse, error)
}

// Errores sentinel del service; el controller los mapea a HTTP.
var (
	ErrMissingFields = errors.New("missing required fields")
	// ErrUsernameTaken: el username ya está registrado (Conflict).
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials se devuelve IGUAL para usuario inexistente y para
	// password incorrecto. No cambiar: evita enumeración de usuarios.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrHashFailed         = errors.New("failed to hash password")
	ErrTokenIssueFailed   = errors.New("failed to issue token")
)

// Deps contiene las dependencias del auth service.
type Deps struct {
	Users  core.UserRepository
	Issuer *token.Issuer
}

type service struct {
	deps Deps
}

// NewService crea el auth service.
func NewService(deps Deps) Service {
	return &service{deps: deps}
}

func (s *service) Register(ctx context.Context, in dto.CredentialsRequest) (*dto.AuthResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth"),
		logger.Op("Register"),
	)

	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	// Chequeo temprano para dar un error claro. La garantía real de unicidad
	// la da el índice único del store (ver manejo de ErrDuplicate abajo).
	_, err := s.deps.Users.GetByUsername(ctx, in.Username)
	if err == nil {
		log.Debug("username already registered", logger.Username(in.Username))
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}

	phc, err := password.Hash(password.Default, in.Password)
	if err != nil {
		log.Error("password hash failed", logger.Err(err))
		return nil, ErrHashFailed
	}

	user, err := s.deps.Users.Create(ctx, in.Username, phc)
	if err != nil {
		// Carrera entre el chequeo y el insert: el índice único manda.
		if errors.Is(err, core.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		log.Error("user create failed", logger.Err(err))
		return nil, err
	}

	tok, err := s.deps.Issuer.Sign(user.ID)
	if err != nil {
		log.Error("token issue failed", logger.Err(err))
		return nil, ErrTokenIssueFailed
	}

	log.Info("user registered", logger.UserID(user.ID))
	return &dto.AuthResponse{
		Token: tok,
		User:  dto.UserResponse{ID: user.ID, Username: user.Username},
	}, nil
}

func (s *service) Login(ctx context.Context, in dto.CredentialsRequest) (*dto.AuthResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth"),
		logger.Op("Login"),
	)

	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.deps.Users.GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			log.Debug("user not found")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(in.Password, user.PasswordHash) {
		log.Debug("password check failed", logger.UserID(user.ID))
		return nil, ErrInvalidCredentials
	}

	tok, err := s.deps.Issuer.Sign(user.ID)
	if err != nil {
		log.Error("token issue failed", logger.Err(err))
		return nil, ErrTokenIssueFailed
	}

	log.Info("login successful", logger.UserID(user.ID))
	return &dto.AuthResponse{
		Token: tok,
		User:  dto.UserResponse{ID: user.ID, Username: user.Username},
	}, nil
}
