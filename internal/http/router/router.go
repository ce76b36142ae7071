// Package router arma el árbol de rutas del API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	authctrl "github.com/dropDatabas3/mercadito/internal/http/controllers/auth"
	catalogctrl "github.com/dropDatabas3/mercadito/internal/http/controllers/catalog"
	httperrors "github.com/dropDatabas3/mercadito/internal/http/errors"
	mw "github.com/dropDatabas3/mercadito/internal/http/middlewares"
)

// Roles de listener: un proceso puede servir solo el catálogo, solo auth,
// o ambos grupos de rutas.
const (
	RoleProduct = "product"
	RoleAuth    = "auth"
	RoleAll     = "all"
)

// Deps contiene todas las dependencias del router.
type Deps struct {
	Role string

	// Controllers
	Auth    *authctrl.Controller
	Catalog *catalogctrl.Controller

	// Middlewares globales, en orden de aplicación.
	Global []mw.Middleware

	// Middleware de validación de token para rutas protegidas.
	RequireAuth mw.Middleware

	// Limiters por clase de ruta. Nil = sin límite para esa clase.
	PublicLimit    mw.Middleware
	ProtectedLimit mw.Middleware
	AuthLimit      mw.Middleware

	// Handlers operacionales. MetricsHandler nil = /metrics apagado.
	HealthHandler  http.HandlerFunc
	MetricsHandler http.Handler
}

func noop(next http.Handler) http.Handler { return next }

// New construye el router chi con las rutas del rol indicado, envuelto en
// la cadena global de middlewares.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	publicLimit := deps.PublicLimit
	if publicLimit == nil {
		publicLimit = noop
	}
	protectedLimit := deps.ProtectedLimit
	if protectedLimit == nil {
		protectedLimit = noop
	}
	authLimit := deps.AuthLimit
	if authLimit == nil {
		authLimit = noop
	}

	serveProducts := deps.Role == RoleProduct || deps.Role == RoleAll
	serveAuth := deps.Role == RoleAuth || deps.Role == RoleAll

	r.Route("/api", func(api chi.Router) {
		if serveProducts && deps.Catalog != nil {
			// Lecturas públicas
			api.Group(func(g chi.Router) {
				g.Use(publicLimit)
				g.Get("/products", deps.Catalog.List)
				g.Get("/products/search", deps.Catalog.Search)
				g.Get("/products/{id}", deps.Catalog.Get)
			})

			// Escrituras protegidas: primero la cuota, después el token.
			// Un request sin token también consume cuota.
			api.Group(func(g chi.Router) {
				g.Use(protectedLimit)
				g.Use(deps.RequireAuth)
				g.Post("/products", deps.Catalog.Create)
				g.Put("/products/{id}", deps.Catalog.Update)
				g.Delete("/products/{id}", deps.Catalog.Delete)
			})
		}

		if serveAuth && deps.Auth != nil {
			api.Route("/auth", func(a chi.Router) {
				a.Use(authLimit)
				a.Post("/register", deps.Auth.Register)
				a.Post("/login", deps.Auth.Login)
			})
		}
	})

	if deps.HealthHandler != nil {
		r.Get("/healthz", deps.HealthHandler)
	}
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// La cadena global envuelve el mux completo, 404/405 incluidos.
	return mw.Chain(r, deps.Global...)
}
