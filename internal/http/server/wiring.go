// Package server arma el handler HTTP con todas sus dependencias.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	rdb "github.com/redis/go-redis/v9"

	"github.com/dropDatabas3/mercadito/internal/config"
	apphttp "github.com/dropDatabas3/mercadito/internal/http"
	authctrl "github.com/dropDatabas3/mercadito/internal/http/controllers/auth"
	catalogctrl "github.com/dropDatabas3/mercadito/internal/http/controllers/catalog"
	"github.com/dropDatabas3/mercadito/internal/http/helpers"
	mw "github.com/dropDatabas3/mercadito/internal/http/middlewares"
	"github.com/dropDatabas3/mercadito/internal/http/router"
	authsvc "github.com/dropDatabas3/mercadito/internal/http/services/auth"
	catalogsvc "github.com/dropDatabas3/mercadito/internal/http/services/catalog"
	"github.com/dropDatabas3/mercadito/internal/observability/logger"
	"github.com/dropDatabas3/mercadito/internal/rate"
	"github.com/dropDatabas3/mercadito/internal/security/token"
	"github.com/dropDatabas3/mercadito/internal/store"
	"github.com/dropDatabas3/mercadito/internal/store/core"
)

// BuildHandler construye el handler completo para el rol configurado.
// Devuelve también un cleanup que cierra el store y el cliente de redis.
func BuildHandler(ctx context.Context, cfg *config.Config) (http.Handler, func() error, error) {
	repo, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("server: open store: %w", err)
	}

	var redisClient *rdb.Client
	cleanup := func() error {
		if redisClient != nil {
			_ = redisClient.Close()
		}
		return repo.Close(context.Background())
	}

	issuer, err := token.NewIssuer(cfg.JWT.Secret, cfg.AccessTTLDuration())
	if err != nil {
		_ = cleanup()
		return nil, nil, fmt.Errorf("server: token issuer: %w", err)
	}

	// Limiters por clase. Con backend redis los listeners de product y auth
	// comparten cuota; con memory cada proceso cuenta por su lado.
	var publicLim, protectedLim, authLim rate.Limiter
	if !cfg.Rate.Disabled {
		if cfg.Rate.Backend == "redis" {
			redisClient = rdb.NewClient(&rdb.Options{
				Addr: cfg.Rate.Redis.Addr,
				DB:   cfg.Rate.Redis.DB,
			})
			publicLim = rate.NewRedisLimiter(redisClient, cfg.Rate.Redis.Prefix+"public:", quota(cfg.Rate.Public))
			protectedLim = rate.NewRedisLimiter(redisClient, cfg.Rate.Redis.Prefix+"protected:", quota(cfg.Rate.Protected))
			authLim = rate.NewRedisLimiter(redisClient, cfg.Rate.Redis.Prefix+"auth:", quota(cfg.Rate.Auth))
		} else {
			publicLim = rate.NewMemoryLimiter("public:", quota(cfg.Rate.Public))
			protectedLim = rate.NewMemoryLimiter("protected:", quota(cfg.Rate.Protected))
			authLim = rate.NewMemoryLimiter("auth:", quota(cfg.Rate.Auth))
		}
	}

	authController := authctrl.NewController(authsvc.NewService(authsvc.Deps{
		Users:  repo.Users(),
		Issuer: issuer,
	}))
	catalogController := catalogctrl.NewController(catalogsvc.NewService(catalogsvc.Deps{
		Products: repo.Products(),
	}))

	global := []mw.Middleware{
		mw.WithRequestID(),
		mw.WithRecover(),
		mw.WithCORS(cfg.Server.CORSAllowedOrigins),
		mw.WithLogging(),
	}

	var metricsHandler http.Handler
	if !cfg.Metrics.Disabled {
		metricsHandler, err = apphttp.RegisterMetrics(nil)
		if err != nil {
			_ = cleanup()
			return nil, nil, fmt.Errorf("server: register metrics: %w", err)
		}
		global = append(global, apphttp.WithMetrics)
	}

	handler := router.New(router.Deps{
		Role:           cfg.Server.Role,
		Auth:           authController,
		Catalog:        catalogController,
		Global:         global,
		RequireAuth:    mw.RequireAuth(issuer),
		PublicLimit:    rateMiddleware(publicLim, "public"),
		ProtectedLimit: rateMiddleware(protectedLim, "protected"),
		AuthLimit:      rateMiddleware(authLim, "auth"),
		HealthHandler:  healthHandler(repo, cfg.Storage.Driver),
		MetricsHandler: metricsHandler,
	})

	return handler, cleanup, nil
}

func quota(q config.RouteQuota) rate.Quota {
	return rate.Quota{Max: int64(q.Limit), Window: q.WindowDuration()}
}

func rateMiddleware(l rate.Limiter, class string) mw.Middleware {
	if l == nil {
		return nil
	}
	return mw.WithRateLimit(mw.RateLimitConfig{
		Limiter: l,
		KeyFunc: mw.IPOnlyRateKey,
		OnReject: func() {
			apphttp.RecordRateLimitReject(class)
		},
	})
}

func healthHandler(repo core.Repository, driver string) http.HandlerFunc {
	if driver == "" {
		driver = "mongo"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := "ok"
		code := http.StatusOK
		if err := repo.Ping(ctx); err != nil {
			logger.From(r.Context()).Warn("health check ping failed", logger.Err(err), logger.Driver(driver))
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		helpers.WriteJSON(w, code, map[string]string{
			"status": status,
			"driver": driver,
		})
	}
}
