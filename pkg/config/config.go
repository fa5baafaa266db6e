package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	JWT     JWTConfig
	Backend BackendConfig
	Cache   CacheConfig
	Drafts  DraftsConfig
	Sentry  SentryConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host           string
	Port           int
	AllowedOrigins string // orígenes CORS del SPA, separados por coma
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración de JWT. El secreto es compartido con el backend contable,
// que es quien emite los tokens.
type JWTConfig struct {
	Secret string
	Issuer string
}

// BackendConfig configuración del backend REST (clientes, productos, movimientos).
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// CacheConfig caché de catálogos. RedisURL vacío = solo caché en memoria (L1).
type CacheConfig struct {
	RedisURL      string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
	MaxL1Size     int
}

// DraftsConfig almacenamiento de borradores de movimiento: "memory" o "redis".
type DraftsConfig struct {
	Store string
	TTL   time.Duration
}

// SentryConfig reporte de errores. DSN vacío = deshabilitado.
type SentryConfig struct {
	DSN string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, JWT_SECRET, BACKEND_BASE_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "gestiva"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:           getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:           getInt(v, "HTTP_PORT", 8080),
			AllowedOrigins: getString(v, "HTTP_ALLOWED_ORIGINS", "*"),
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
			Issuer: getString(v, "JWT_ISSUER", "gestiva"),
		},
		Backend: BackendConfig{
			BaseURL: strings.TrimRight(getString(v, "BACKEND_BASE_URL", "http://localhost:3000/api"), "/"),
			Timeout: getDuration(v, "BACKEND_TIMEOUT", 15*time.Second),
		},
		Cache: CacheConfig{
			RedisURL:      getString(v, "REDIS_URL", ""),
			RedisPassword: getString(v, "REDIS_PASSWORD", ""),
			RedisDB:       getInt(v, "REDIS_DB", 0),
			TTL:           getDuration(v, "CATALOG_CACHE_TTL", 5*time.Minute),
			MaxL1Size:     getInt(v, "CATALOG_CACHE_L1_SIZE", 256),
		},
		Drafts: DraftsConfig{
			Store: getString(v, "DRAFT_STORE", "memory"),
			TTL:   getDuration(v, "DRAFT_TTL", 12*time.Hour),
		},
		Sentry: SentryConfig{
			DSN: getString(v, "SENTRY_DSN", ""),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET es requerido")
	}
	if cfg.Drafts.Store == "redis" && cfg.Cache.RedisURL == "" {
		return nil, fmt.Errorf("DRAFT_STORE=redis requiere REDIS_URL")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

// getDuration acepta "15s", "5m" o un entero en segundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(v.GetString(key))
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}
