package middlewares

import (
	"net/http"
	"strings"

	"github.com/dropDatabas3/mercadito/internal/http/errors"
	"github.com/dropDatabas3/mercadito/internal/observability/logger"
	"github.com/dropDatabas3/mercadito/internal/security/token"
)

// RequireAuth valida Authorization: Bearer <token> y deja el subject ID en el
// contexto. Header ausente, firma inválida, algoritmo inesperado o payload
// sin "id" responden 401 sin invocar al handler.
func RequireAuth(issuer *token.Issuer) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ah := strings.TrimSpace(r.Header.Get("Authorization"))
			if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token", error_description="missing bearer token"`)
				errors.WriteError(w, errors.ErrTokenMissing)
				return
			}
			raw := strings.TrimSpace(ah[len("Bearer "):])

			subjectID, err := issuer.Verify(raw)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
				errors.WriteError(w, errors.ErrTokenInvalid.WithCause(err))
				return
			}

			ctx := WithUserID(r.Context(), subjectID)
			// El logger scoped también lleva el subject: todo log aguas
			// abajo de la autenticación sale con user_id.
			ctx = logger.ToContext(ctx, logger.From(ctx).With(logger.UserID(subjectID)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
