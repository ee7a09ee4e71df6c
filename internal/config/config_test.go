package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/chess-ratings/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("FIDE_ENABLED", "")
	t.Setenv("UPTRACE_ENABLED", "")
	t.Setenv("PYROSCOPE_ENABLED", "")
	t.Setenv("PAGINATION_DEFAULT_PER_PAGE", "")
	t.Setenv("PAGINATION_MAX_PER_PAGE", "")
	t.Setenv("FIDE_MATCH_MAX_SAMPLES", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Fatalf("unexpected StorageDriver: %q", cfg.StorageDriver)
	}
	if cfg.DefaultPerPage != 15 || cfg.MaxPerPage != 100 {
		t.Fatalf("unexpected pagination defaults: %d/%d", cfg.DefaultPerPage, cfg.MaxPerPage)
	}
	if cfg.FideMatchMaxSamples != 3 {
		t.Fatalf("unexpected FideMatchMaxSamples: %d", cfg.FideMatchMaxSamples)
	}
	if cfg.FideEnabled {
		t.Fatalf("expected FIDE integration to be disabled by default")
	}
}

func TestLoad_PostgresRequiresDBURL(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", StoragePostgres)
	t.Setenv("DB_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when STORAGE_DRIVER=postgres without DB_URL")
	}
}

func TestLoad_UnknownStorageDriver(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", "sqlite")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown STORAGE_DRIVER")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", StorageMemory)
	t.Setenv("FIDE_ENABLED", "false")
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "foo=bar, uptrace-dsn='https://token@api.uptrace.dev/1'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_FideRequiresBaseURLAndAdminToken(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", StorageMemory)
	t.Setenv("FIDE_ENABLED", "true")
	t.Setenv("FIDE_BASE_URL", "")
	t.Setenv("ADMIN_TOKEN", "secret")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when FIDE_ENABLED=true without FIDE_BASE_URL")
	}

	t.Setenv("FIDE_BASE_URL", "https://ratings.example.org")
	t.Setenv("ADMIN_TOKEN", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when FIDE_ENABLED=true without ADMIN_TOKEN")
	}
}

func TestLoad_FideConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", StorageMemory)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("FIDE_ENABLED", "true")
	t.Setenv("FIDE_BASE_URL", "https://ratings.example.org/api/")
	t.Setenv("ADMIN_TOKEN", "secret")
	t.Setenv("FIDE_TIMEOUT", "3s")
	t.Setenv("FIDE_MAX_RETRIES", "0")
	t.Setenv("FIDE_SYNC_WORKERS", "8")
	t.Setenv("FIDE_CIRCUIT_FAILURE_COUNT", "2")
	t.Setenv("FIDE_CIRCUIT_OPEN_TIMEOUT", "1m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.FideBaseURL != "https://ratings.example.org/api" {
		t.Fatalf("unexpected FideBaseURL: %q", cfg.FideBaseURL)
	}
	if cfg.FideTimeout != 3*time.Second {
		t.Fatalf("unexpected FideTimeout: %s", cfg.FideTimeout)
	}
	if cfg.FideMaxRetries != 0 || cfg.FideSyncWorkers != 8 {
		t.Fatalf("unexpected retries/workers: %d/%d", cfg.FideMaxRetries, cfg.FideSyncWorkers)
	}
	if cfg.FideCircuit.FailureThreshold != 2 || cfg.FideCircuit.OpenTimeout != time.Minute {
		t.Fatalf("unexpected circuit config: %+v", cfg.FideCircuit)
	}
}

func TestLoad_PaginationMaxBelowDefault(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PAGINATION_DEFAULT_PER_PAGE", "50")
	t.Setenv("PAGINATION_MAX_PER_PAGE", "20")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when max per page is below default per page")
	}
}

func TestLoad_YAMLFileOverriddenByEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratings.yaml")
	content := []byte("app_env: stage\napp_log_level: debug\ncache_ttl: 45s\npagination_default_per_page: 25\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv(ConfigFileEnv, path)
	t.Setenv("APP_ENV", "")
	t.Setenv("APP_LOG_LEVEL", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("STORAGE_DRIVER", StorageMemory)
	t.Setenv("FIDE_ENABLED", "false")
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PAGINATION_MAX_PER_PAGE", "")
	t.Setenv("PAGINATION_DEFAULT_PER_PAGE", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvStage {
		t.Fatalf("expected AppEnv from file, got %q", cfg.AppEnv)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Fatalf("expected debug level from file, got %s", cfg.LogLevel)
	}
	if cfg.CacheTTL != 45*time.Second {
		t.Fatalf("unexpected CacheTTL: %s", cfg.CacheTTL)
	}
	if cfg.DefaultPerPage != 30 {
		t.Fatalf("expected env to override file, got %d", cfg.DefaultPerPage)
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv(ConfigFileEnv, filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
