package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/riskibarqy/chess-ratings/internal/platform/logging"
	"github.com/riskibarqy/chess-ratings/internal/platform/resilience"
)

// ConfigFileEnv names the environment variable pointing at an optional YAML
// file. Keys in the file use the lower-cased environment names
// (e.g. "fide_base_url"); environment variables win over the file.
const ConfigFileEnv = "RATINGS_CONFIG"

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	LogLevel                   logging.Level
	StorageDriver              string
	DBURL                      string
	DBBinaryParameters         bool
	CacheEnabled               bool
	CacheTTL                   time.Duration
	CORSAllowedOrigins         []string
	DefaultPerPage             int
	MaxPerPage                 int
	FideMatchMaxSamples        int
	FideEnabled                bool
	FideBaseURL                string
	FideTimeout                time.Duration
	FideMaxRetries             int
	FideSyncWorkers            int
	FideCircuit                resilience.CircuitBreakerConfig
	AdminToken                 string
	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	MetricsEnabled             bool
	MetricsPath                string
}

// Load resolves configuration from the optional YAML file and the process
// environment.
func Load() (Config, error) {
	src, err := newSource()
	if err != nil {
		return Config{}, err
	}

	appEnv, err := parseAppEnv(src.get("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        src.get("APP_SERVICE_NAME", "chess-ratings-api"),
		ServiceVersion:     src.get("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           src.get("APP_HTTP_ADDR", ":8080"),
		LogLevel:           logging.ParseLevel(src.get("APP_LOG_LEVEL", "info")),
		DBURL:              strings.TrimSpace(src.get("DB_URL", "")),
		CORSAllowedOrigins: splitCSV(src.get("CORS_ALLOWED_ORIGINS", "*")),
		FideBaseURL:        strings.TrimRight(strings.TrimSpace(src.get("FIDE_BASE_URL", "")), "/"),
		AdminToken:         strings.TrimSpace(src.get("ADMIN_TOKEN", "")),
		MetricsPath:        src.get("METRICS_PATH", "/metrics"),
	}

	if cfg.ReadTimeout, err = src.positiveDuration("APP_READ_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = src.positiveDuration("APP_WRITE_TIMEOUT", "15s"); err != nil {
		return Config{}, err
	}

	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(src.get("STORAGE_DRIVER", StorageMemory)))
	switch cfg.StorageDriver {
	case StorageMemory:
	case StoragePostgres:
		if cfg.DBURL == "" {
			return Config{}, fmt.Errorf("DB_URL is required when STORAGE_DRIVER=postgres")
		}
	default:
		return Config{}, fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s", cfg.StorageDriver, StorageMemory, StoragePostgres)
	}

	if cfg.DBBinaryParameters, err = src.boolean("DB_BINARY_PARAMETERS", "true"); err != nil {
		return Config{}, err
	}
	if cfg.CacheEnabled, err = src.boolean("CACHE_ENABLED", "true"); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = src.positiveDuration("CACHE_TTL", "30s"); err != nil {
		return Config{}, err
	}

	if cfg.DefaultPerPage, err = src.positiveInt("PAGINATION_DEFAULT_PER_PAGE", 15); err != nil {
		return Config{}, err
	}
	if cfg.MaxPerPage, err = src.positiveInt("PAGINATION_MAX_PER_PAGE", 100); err != nil {
		return Config{}, err
	}
	if cfg.MaxPerPage < cfg.DefaultPerPage {
		return Config{}, fmt.Errorf("PAGINATION_MAX_PER_PAGE must be >= PAGINATION_DEFAULT_PER_PAGE")
	}
	if cfg.FideMatchMaxSamples, err = src.positiveInt("FIDE_MATCH_MAX_SAMPLES", 3); err != nil {
		return Config{}, err
	}

	if cfg.FideEnabled, err = src.boolean("FIDE_ENABLED", "false"); err != nil {
		return Config{}, err
	}
	if cfg.FideEnabled && cfg.FideBaseURL == "" {
		return Config{}, fmt.Errorf("FIDE_BASE_URL is required when FIDE_ENABLED=true")
	}
	if cfg.FideEnabled && cfg.AdminToken == "" {
		return Config{}, fmt.Errorf("ADMIN_TOKEN is required when FIDE_ENABLED=true")
	}
	if cfg.FideTimeout, err = src.positiveDuration("FIDE_TIMEOUT", "5s"); err != nil {
		return Config{}, err
	}
	if cfg.FideMaxRetries, err = src.integer("FIDE_MAX_RETRIES", 2); err != nil {
		return Config{}, err
	}
	if cfg.FideMaxRetries < 0 {
		return Config{}, fmt.Errorf("FIDE_MAX_RETRIES must be >= 0")
	}
	if cfg.FideSyncWorkers, err = src.positiveInt("FIDE_SYNC_WORKERS", 4); err != nil {
		return Config{}, err
	}

	if cfg.FideCircuit.Enabled, err = src.boolean("FIDE_CIRCUIT_ENABLED", "true"); err != nil {
		return Config{}, err
	}
	if cfg.FideCircuit.FailureThreshold, err = src.positiveInt("FIDE_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return Config{}, err
	}
	if cfg.FideCircuit.OpenTimeout, err = src.positiveDuration("FIDE_CIRCUIT_OPEN_TIMEOUT", "30s"); err != nil {
		return Config{}, err
	}
	if cfg.FideCircuit.HalfOpenMaxReq, err = src.positiveInt("FIDE_CIRCUIT_HALF_OPEN_MAX_REQ", 1); err != nil {
		return Config{}, err
	}

	if cfg.UptraceEnabled, err = src.boolean("UPTRACE_ENABLED", "false"); err != nil {
		return Config{}, err
	}
	cfg.UptraceDSN = strings.TrimSpace(src.get("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(src.get("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	if cfg.PyroscopeEnabled, err = src.boolean("PYROSCOPE_ENABLED", "false"); err != nil {
		return Config{}, err
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(src.get("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = src.get("PYROSCOPE_APP_NAME", cfg.ServiceName)
	cfg.PyroscopeAuthToken = src.get("PYROSCOPE_AUTH_TOKEN", "")
	cfg.PyroscopeBasicAuthUser = src.get("PYROSCOPE_BASIC_AUTH_USER", "")
	cfg.PyroscopeBasicAuthPassword = src.get("PYROSCOPE_BASIC_AUTH_PASSWORD", "")
	if cfg.PyroscopeUploadRate, err = src.positiveDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return Config{}, err
	}

	if cfg.MetricsEnabled, err = src.boolean("METRICS_ENABLED", "true"); err != nil {
		return Config{}, err
	}
	if !strings.HasPrefix(cfg.MetricsPath, "/") {
		return Config{}, fmt.Errorf("METRICS_PATH must start with /")
	}

	return cfg, nil
}

// source reads flat keys from koanf; lookups use the upper-case
// environment names and are lower-cased internally.
type source struct {
	k *koanf.Koanf
}

func newSource() (source, error) {
	k := koanf.New(".")

	if path := strings.TrimSpace(os.Getenv(ConfigFileEnv)); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return source{}, fmt.Errorf("load %s %q: %w", ConfigFileEnv, path, err)
		}
	}

	// Blank variables are treated as unset so they do not mask file values.
	envProvider := env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		if strings.TrimSpace(value) == "" {
			return "", nil
		}
		return strings.ToLower(key), value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return source{}, fmt.Errorf("load environment: %w", err)
	}

	return source{k: k}, nil
}

func (s source) get(key, fallback string) string {
	value := s.k.String(strings.ToLower(key))
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func (s source) boolean(key, fallback string) (bool, error) {
	out, err := strconv.ParseBool(strings.TrimSpace(s.get(key, fallback)))
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

func (s source) integer(key string, fallback int) (int, error) {
	value := strings.TrimSpace(s.get(key, ""))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}

	return out, nil
}

func (s source) positiveInt(key string, fallback int) (int, error) {
	out, err := s.integer(key, fallback)
	if err != nil {
		return 0, err
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func (s source) positiveDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(strings.TrimSpace(s.get(key, fallback)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
