// Package config carga la configuración desde YAML (opcional) con overlay de
// variables de entorno. El secreto de firma viene SOLO por entorno
// (JWT_SECRET) y es obligatorio: sin secreto el proceso no arranca.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// RouteQuota define una clase de rate limit: máximo por ventana.
type RouteQuota struct {
	Limit  int    `yaml:"limit"`
	Window string `yaml:"window"`
}

// WindowDuration parsea la ventana; ante valor inválido cae a 1m.
func (q RouteQuota) WindowDuration() time.Duration {
	d, err := time.ParseDuration(q.Window)
	if err != nil || d <= 0 {
		return time.Minute
	}
	return d
}

type Config struct {
	App struct {
		// dev | prod
		Env      string `yaml:"env"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`

	Server struct {
		Addr string `yaml:"addr"`
		// Role define qué rutas registra este listener: product | auth | all.
		// Replica el esquema original de dos workers, uno por clase de tráfico.
		Role               string   `yaml:"role"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	} `yaml:"server"`

	Storage struct {
		// mongo (default) | pg
		Driver string `yaml:"driver"`
		Mongo  struct {
			URI      string `yaml:"uri"`
			Database string `yaml:"database"`
		} `yaml:"mongo"`
		Postgres struct {
			DSN string `yaml:"dsn"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	JWT struct {
		// Secret nunca se lee de YAML, solo de JWT_SECRET.
		Secret    string `yaml:"-"`
		AccessTTL string `yaml:"access_ttl"`
	} `yaml:"jwt"`

	Rate struct {
		// Disabled apaga el rate limiting (default: activo).
		Disabled bool `yaml:"disabled"`
		// memory (default, estado por proceso) | redis (cuota compartida)
		Backend string `yaml:"backend"`
		Redis   struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`

		// Clases de cuota por tipo de ruta.
		Public    RouteQuota `yaml:"public"`
		Protected RouteQuota `yaml:"protected"`
		Auth      RouteQuota `yaml:"auth"`
	} `yaml:"rate"`

	Metrics struct {
		// Disabled apaga /metrics (default: expuesto).
		Disabled bool `yaml:"disabled"`
	} `yaml:"metrics"`
}

// AccessTTLDuration parsea el TTL del access token.
// "0" explícito emite tokens sin expiración (compatibilidad con tokens
// legacy); vacío o inválido cae al default de 1h.
func (c *Config) AccessTTLDuration() time.Duration {
	if strings.TrimSpace(c.JWT.AccessTTL) == "0" {
		return 0
	}
	d, err := time.ParseDuration(c.JWT.AccessTTL)
	if err != nil {
		return time.Hour
	}
	return d
}

// envOverrides mapea las variables de entorno soportadas.
type envOverrides struct {
	AppEnv      string `env:"APP_ENV"`
	LogLevel    string `env:"LOG_LEVEL"`
	Port        string `env:"PORT"`
	Role        string `env:"SERVER_ROLE"`
	StoreDriver string `env:"STORE_DRIVER"`
	MongoURI    string `env:"MONGO_URI"`
	MongoDB     string `env:"MONGO_DATABASE"`
	PostgresDSN string `env:"DATABASE_DSN"`
	JWTSecret   string `env:"JWT_SECRET"`
	RedisAddr   string `env:"REDIS_ADDR"`
}

// Load lee el YAML (si path no es vacío), aplica defaults y el overlay de
// entorno, y valida. El entorno siempre gana sobre el archivo.
func Load(path string) (*Config, error) {
	var c Config

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyDefaults(&c)

	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	applyEnv(&c, ov)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func applyDefaults(c *Config) {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":5000"
	}
	if c.Server.Role == "" {
		c.Server.Role = "all"
	}
	if len(c.Server.CORSAllowedOrigins) == 0 {
		// API abierta: cualquier origen (intencional).
		c.Server.CORSAllowedOrigins = []string{"*"}
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "mongo"
	}
	if c.Storage.Mongo.Database == "" {
		c.Storage.Mongo.Database = "mercadito"
	}
	if c.JWT.AccessTTL == "" {
		c.JWT.AccessTTL = "1h"
	}

	if c.Rate.Backend == "" {
		c.Rate.Backend = "memory"
	}
	if c.Rate.Redis.Prefix == "" {
		c.Rate.Redis.Prefix = "rl:"
	}
	// Cuotas: públicas 300/10m, protegidas 100/30m, auth 10/10m.
	if c.Rate.Public.Limit == 0 {
		c.Rate.Public.Limit = 300
	}
	if c.Rate.Public.Window == "" {
		c.Rate.Public.Window = "10m"
	}
	if c.Rate.Protected.Limit == 0 {
		c.Rate.Protected.Limit = 100
	}
	if c.Rate.Protected.Window == "" {
		c.Rate.Protected.Window = "30m"
	}
	if c.Rate.Auth.Limit == 0 {
		c.Rate.Auth.Limit = 10
	}
	if c.Rate.Auth.Window == "" {
		c.Rate.Auth.Window = "10m"
	}
}

func applyEnv(c *Config, ov envOverrides) {
	if ov.AppEnv != "" {
		c.App.Env = ov.AppEnv
	}
	if ov.LogLevel != "" {
		c.App.LogLevel = ov.LogLevel
	}
	if ov.Port != "" {
		c.Server.Addr = normalizeAddr(ov.Port)
	}
	if ov.Role != "" {
		c.Server.Role = ov.Role
	}
	if ov.StoreDriver != "" {
		c.Storage.Driver = ov.StoreDriver
	}
	if ov.MongoURI != "" {
		c.Storage.Mongo.URI = ov.MongoURI
	}
	if ov.MongoDB != "" {
		c.Storage.Mongo.Database = ov.MongoDB
	}
	if ov.PostgresDSN != "" {
		c.Storage.Postgres.DSN = ov.PostgresDSN
	}
	if ov.JWTSecret != "" {
		c.JWT.Secret = ov.JWTSecret
	}
	if ov.RedisAddr != "" {
		c.Rate.Redis.Addr = ov.RedisAddr
	}
}

// normalizeAddr acepta "5000" (estilo PORT) o ":5000" / "host:port".
func normalizeAddr(v string) string {
	if strings.Contains(v, ":") {
		return v
	}
	return ":" + v
}

// Validate asegura los invariantes de arranque.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	switch c.Server.Role {
	case "all", "product", "auth":
	default:
		return fmt.Errorf("config: invalid server role %q (expected product|auth|all)", c.Server.Role)
	}
	switch c.Rate.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("config: invalid rate backend %q (expected memory|redis)", c.Rate.Backend)
	}
	if c.Rate.Backend == "redis" && c.Rate.Redis.Addr == "" {
		return fmt.Errorf("config: rate.redis.addr is required with the redis backend")
	}
	return nil
}
