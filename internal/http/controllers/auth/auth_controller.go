// Package auth expone los endpoints de registro y login.
package auth

import (
	"errors"
	"net/http"

	dto "github.com/dropDatabas3/mercadito/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/mercadito/internal/http/errors"
	"github.com/dropDatabas3/mercadito/internal/http/helpers"
	svc "github.com/dropDatabas3/mercadito/internal/http/services/auth"
	"github.com/dropDatabas3/mercadito/internal/observability/logger"
	"go.uber.org/zap"
)

// Controller maneja POST /api/auth/register y POST /api/auth/login.
type Controller struct {
	service svc.Service
}

// NewController crea el auth controller.
func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// Register maneja el alta de usuarios.
func (c *Controller) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Auth.Register"))

	var req dto.CredentialsRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	result, err := c.service.Register(ctx, req)
	if err != nil {
		c.handleError(w, err, log)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	helpers.WriteJSON(w, http.StatusCreated, result)
}

// Login maneja la autenticación con credenciales.
func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Auth.Login"))

	var req dto.CredentialsRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	result, err := c.service.Login(ctx, req)
	if err != nil {
		c.handleError(w, err, log)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	helpers.WriteJSON(w, http.StatusOK, result)
}

// handleError mapea errores del service a respuestas HTTP.
func (c *Controller) handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch {
	case errors.Is(err, svc.ErrMissingFields):
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("username and password are required"))
	case errors.Is(err, svc.ErrUsernameTaken):
		httperrors.WriteError(w, httperrors.ErrConflict.WithDetail("username already exists"))
	case errors.Is(err, svc.ErrInvalidCredentials):
		httperrors.WriteError(w, httperrors.ErrInvalidCredentials)
	case errors.Is(err, svc.ErrHashFailed), errors.Is(err, svc.ErrTokenIssueFailed):
		log.Error("auth error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	default:
		log.Error("unexpected auth error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
