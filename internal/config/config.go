package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/football-portal/external/footballdata"
	"github.com/riskibarqy/football-portal/internal/platform/database"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
	"github.com/riskibarqy/football-portal/internal/platform/resilience"
)

// Config stores runtime configuration for the API and relay processes.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowedOrigins []string
	LogLevel           logging.Level

	DBDriver                string
	DBURL                   string
	DBMaxOpenConns          int
	DBMaxIdleConns          int
	DBConnMaxLifetime       time.Duration
	DBDisablePreparedBinary bool

	FootballAPIEnabled     bool
	FootballAPIBaseURL     string
	FootballAPIKey         string
	FootballAPIKeyHeader   string
	FootballAPITimeout     time.Duration
	FootballAPIMaxRetries  int
	FootballAPICircuit     resilience.BreakerConfig
	FootballAPITTL         footballdata.TTLConfig
	FootballAPIWarmTargets []footballdata.WarmTarget
	FootballAPIWarmWorkers int

	CacheEnabled       bool
	CacheTTL           time.Duration
	CacheSweepInterval time.Duration
	SessionTTL         time.Duration

	AdminName     string
	AdminEmail    string
	AdminPassword string

	RelayEnabled      bool
	RelayAddr         string
	RelayPublishURL   string
	RelayPublishToken string
	RelayTimeout      time.Duration
	RelayCircuit      resilience.BreakerConfig

	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

// DatabaseConfig is the Persistence Gateway view of the configuration.
func (c Config) DatabaseConfig() database.Config {
	return database.Config{
		Driver:                c.DBDriver,
		DSN:                   c.DBURL,
		MaxOpenConns:          c.DBMaxOpenConns,
		MaxIdleConns:          c.DBMaxIdleConns,
		ConnMaxLifetime:       c.DBConnMaxLifetime,
		DisablePreparedBinary: c.DBDisablePreparedBinary,
	}
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "football-portal-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:           parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if cfg.ReadTimeout, err = getEnvAsPositiveDuration("APP_READ_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = getEnvAsPositiveDuration("APP_WRITE_TIMEOUT", "15s"); err != nil {
		return Config{}, err
	}

	if err := loadDatabase(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadFootballAPI(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadCache(&cfg); err != nil {
		return Config{}, err
	}
	cfg.AdminName = strings.TrimSpace(getEnv("ADMIN_NAME", "Administrator"))
	cfg.AdminEmail = strings.TrimSpace(getEnv("ADMIN_EMAIL", ""))
	cfg.AdminPassword = getEnv("ADMIN_PASSWORD", "")
	if (cfg.AdminEmail == "") != (cfg.AdminPassword == "") {
		return Config{}, fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	if err := loadRelay(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadObservability(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadDatabase(cfg *Config) error {
	driver := strings.ToLower(strings.TrimSpace(getEnv("DB_DRIVER", database.DriverPostgres)))
	switch driver {
	case database.DriverPostgres, database.DriverSQLite:
	default:
		return fmt.Errorf("invalid DB_DRIVER %q: valid values are %s, %s", driver, database.DriverPostgres, database.DriverSQLite)
	}
	cfg.DBDriver = driver

	cfg.DBURL = strings.TrimSpace(getEnv("DB_URL", ""))
	if cfg.DBURL == "" {
		if driver == database.DriverSQLite {
			cfg.DBURL = "file:football_portal.db"
		} else {
			cfg.DBURL = database.DSNFromParts(
				getEnv("DB_HOST", "localhost"),
				getEnv("DB_PORT", "5432"),
				getEnv("DB_NAME", "football_portal"),
				getEnv("DB_USER", "postgres"),
				getEnv("DB_PASSWORD", "postgres"),
				getEnv("DB_SSLMODE", "disable"),
			)
		}
	}

	var err error
	if cfg.DBMaxOpenConns, err = getEnvAsInt("DB_MAX_OPEN_CONNS", 20); err != nil {
		return fmt.Errorf("parse DB_MAX_OPEN_CONNS: %w", err)
	}
	if cfg.DBMaxIdleConns, err = getEnvAsInt("DB_MAX_IDLE_CONNS", 10); err != nil {
		return fmt.Errorf("parse DB_MAX_IDLE_CONNS: %w", err)
	}
	if cfg.DBMaxOpenConns < 1 || cfg.DBMaxIdleConns < 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be >= 1 and DB_MAX_IDLE_CONNS >= 0")
	}
	if cfg.DBConnMaxLifetime, err = getEnvAsPositiveDuration("DB_CONN_MAX_LIFETIME", "30m"); err != nil {
		return err
	}
	if cfg.DBDisablePreparedBinary, err = strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true")); err != nil {
		return fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	return nil
}

func loadFootballAPI(cfg *Config) error {
	var err error
	if cfg.FootballAPIEnabled, err = strconv.ParseBool(getEnv("FOOTBALL_API_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse FOOTBALL_API_ENABLED: %w", err)
	}
	cfg.FootballAPIBaseURL = strings.TrimSpace(getEnv("FOOTBALL_API_BASE_URL", "https://v3.football.api-sports.io"))
	cfg.FootballAPIKey = strings.TrimSpace(getEnv("FOOTBALL_API_KEY", ""))
	cfg.FootballAPIKeyHeader = strings.TrimSpace(getEnv("FOOTBALL_API_KEY_HEADER", "x-apisports-key"))
	if cfg.FootballAPIEnabled && cfg.FootballAPIKey == "" {
		return fmt.Errorf("FOOTBALL_API_KEY is required when FOOTBALL_API_ENABLED=true")
	}

	if cfg.FootballAPITimeout, err = getEnvAsPositiveDuration("FOOTBALL_API_TIMEOUT", "30s"); err != nil {
		return err
	}
	if cfg.FootballAPIMaxRetries, err = getEnvAsInt("FOOTBALL_API_MAX_RETRIES", 1); err != nil {
		return fmt.Errorf("parse FOOTBALL_API_MAX_RETRIES: %w", err)
	}
	if cfg.FootballAPIMaxRetries < 0 {
		return fmt.Errorf("FOOTBALL_API_MAX_RETRIES must be >= 0")
	}
	if cfg.FootballAPICircuit, err = loadBreaker("FOOTBALL_API_CIRCUIT"); err != nil {
		return err
	}

	ttl := footballdata.DefaultTTLConfig()
	for _, item := range []struct {
		key    string
		target *time.Duration
	}{
		{key: "FOOTBALL_API_TTL_LIVE", target: &ttl.Live},
		{key: "FOOTBALL_API_TTL_MATCH", target: &ttl.Match},
		{key: "FOOTBALL_API_TTL_FIXTURES", target: &ttl.Fixtures},
		{key: "FOOTBALL_API_TTL_STANDINGS", target: &ttl.Standings},
		{key: "FOOTBALL_API_TTL_SCORERS", target: &ttl.Scorers},
		{key: "FOOTBALL_API_TTL_REFERENCE", target: &ttl.Reference},
	} {
		value, err := getEnvAsPositiveDuration(item.key, item.target.String())
		if err != nil {
			return err
		}
		*item.target = value
	}
	cfg.FootballAPITTL = ttl

	if cfg.FootballAPIWarmTargets, err = footballdata.ParseWarmTargets(getEnv("FOOTBALL_API_WARM_LEAGUES", "")); err != nil {
		return fmt.Errorf("parse FOOTBALL_API_WARM_LEAGUES: %w", err)
	}
	if cfg.FootballAPIWarmWorkers, err = getEnvAsInt("FOOTBALL_API_WARM_WORKERS", 4); err != nil {
		return fmt.Errorf("parse FOOTBALL_API_WARM_WORKERS: %w", err)
	}
	if cfg.FootballAPIWarmWorkers < 1 {
		return fmt.Errorf("FOOTBALL_API_WARM_WORKERS must be >= 1")
	}
	return nil
}

func loadCache(cfg *Config) error {
	var err error
	if cfg.CacheEnabled, err = strconv.ParseBool(getEnv("CACHE_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	if cfg.CacheTTL, err = getEnvAsPositiveDuration("CACHE_TTL", "60s"); err != nil {
		return err
	}
	if cfg.CacheSweepInterval, err = time.ParseDuration(getEnv("CACHE_SWEEP_INTERVAL", "10m")); err != nil {
		return fmt.Errorf("parse CACHE_SWEEP_INTERVAL: %w", err)
	}
	if cfg.CacheSweepInterval < 0 {
		return fmt.Errorf("CACHE_SWEEP_INTERVAL must be >= 0")
	}
	if cfg.SessionTTL, err = getEnvAsPositiveDuration("SESSION_TTL", "24h"); err != nil {
		return err
	}
	return nil
}

func loadRelay(cfg *Config) error {
	var err error
	if cfg.RelayEnabled, err = strconv.ParseBool(getEnv("RELAY_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse RELAY_ENABLED: %w", err)
	}
	cfg.RelayAddr = strings.TrimSpace(getEnv("RELAY_ADDR", ":8090"))
	cfg.RelayPublishURL = strings.TrimSpace(getEnv("RELAY_PUBLISH_URL", "http://localhost:8090/publish"))
	cfg.RelayPublishToken = strings.TrimSpace(getEnv("RELAY_PUBLISH_TOKEN", ""))
	if cfg.RelayEnabled && cfg.RelayPublishToken == "" {
		return fmt.Errorf("RELAY_PUBLISH_TOKEN is required when RELAY_ENABLED=true")
	}
	if cfg.RelayTimeout, err = getEnvAsPositiveDuration("RELAY_TIMEOUT", "2s"); err != nil {
		return err
	}
	if cfg.RelayCircuit, err = loadBreaker("RELAY_CIRCUIT"); err != nil {
		return err
	}
	return nil
}

func loadObservability(cfg *Config) error {
	var err error
	if cfg.PprofEnabled, err = strconv.ParseBool(getEnv("PPROF_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	cfg.PprofAddr = strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	if cfg.UptraceEnabled, err = strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	if cfg.PyroscopeEnabled, err = strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	cfg.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	if cfg.PyroscopeUploadRate, err = getEnvAsPositiveDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return err
	}
	return nil
}

// loadBreaker reads <prefix>_ENABLED, _FAILURE_COUNT, _OPEN_TIMEOUT and
// _HALF_OPEN_MAX_REQ.
func loadBreaker(prefix string) (resilience.BreakerConfig, error) {
	enabled, err := strconv.ParseBool(getEnv(prefix+"_ENABLED", "true"))
	if err != nil {
		return resilience.BreakerConfig{}, fmt.Errorf("parse %s_ENABLED: %w", prefix, err)
	}
	failures, err := getEnvAsInt(prefix+"_FAILURE_COUNT", 5)
	if err != nil {
		return resilience.BreakerConfig{}, fmt.Errorf("parse %s_FAILURE_COUNT: %w", prefix, err)
	}
	if failures < 1 {
		return resilience.BreakerConfig{}, fmt.Errorf("%s_FAILURE_COUNT must be >= 1", prefix)
	}
	openTimeout, err := getEnvAsPositiveDuration(prefix+"_OPEN_TIMEOUT", "15s")
	if err != nil {
		return resilience.BreakerConfig{}, err
	}
	probes, err := getEnvAsInt(prefix+"_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return resilience.BreakerConfig{}, fmt.Errorf("parse %s_HALF_OPEN_MAX_REQ: %w", prefix, err)
	}
	if probes < 1 {
		return resilience.BreakerConfig{}, fmt.Errorf("%s_HALF_OPEN_MAX_REQ must be >= 1", prefix)
	}
	return resilience.BreakerConfig{
		Enabled:          enabled,
		FailureThreshold: failures,
		OpenTimeout:      openTimeout,
		HalfOpenProbes:   probes,
	}, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsPositiveDuration(key, fallback string) (time.Duration, error) {
	value, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return value, nil
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
