package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/leaguedesk/standings-api/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                           string
	ServiceName                      string
	ServiceVersion                   string
	HTTPAddr                         string
	ReadTimeout                      time.Duration
	WriteTimeout                     time.Duration
	DBURL                            string
	DBDisablePreparedBinary          bool
	CacheEnabled                     bool
	CacheTTL                         time.Duration
	CORSAllowedOrigins               []string
	SwaggerEnabled                   bool
	PprofEnabled                     bool
	PprofAddr                        string
	PyroscopeEnabled                 bool
	PyroscopeServerAddress           string
	PyroscopeAppName                 string
	PyroscopeAuthToken               string
	PyroscopeUploadRate              time.Duration
	UptraceEnabled                   bool
	UptraceDSN                       string
	UptraceLogsEnabled               bool
	ProviderEnabled                  bool
	ProviderBaseURL                  string
	ProviderAPIKey                   string
	ProviderTimeout                  time.Duration
	ProviderMaxRetries               int
	ProviderCircuitEnabled           bool
	ProviderCircuitFailureCount      int
	ProviderCircuitOpenTimeout       time.Duration
	ProviderCircuitHalfOpenMaxReq    int
	QueueEnabled                     bool
	QueueBaseURL                     string
	QueueToken                       string
	QueueTargetBaseURL               string
	QueueRetries                     int
	QueueCircuitEnabled              bool
	QueueCircuitFailureCount         int
	QueueCircuitOpenTimeout          time.Duration
	QueueCircuitHalfOpenMaxReq       int
	InternalJobToken                 string
	RefreshInterval                  time.Duration
	RefreshMaxWorkers                int
	LogLevel                         logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}
	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	readTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_WRITE_TIMEOUT: %w", err)
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "2m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheEnabled && cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0 when CACHE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	providerEnabled, err := strconv.ParseBool(getEnv("PROVIDER_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PROVIDER_ENABLED: %w", err)
	}
	providerBaseURL := strings.TrimSpace(getEnv("PROVIDER_BASE_URL", "https://v3.football.api-sports.io"))
	providerAPIKey := strings.TrimSpace(getEnv("PROVIDER_API_KEY", ""))
	if providerEnabled && providerAPIKey == "" {
		return Config{}, fmt.Errorf("PROVIDER_API_KEY is required when PROVIDER_ENABLED=true")
	}
	providerTimeout, err := time.ParseDuration(getEnv("PROVIDER_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PROVIDER_TIMEOUT: %w", err)
	}
	if providerTimeout <= 0 {
		return Config{}, fmt.Errorf("PROVIDER_TIMEOUT must be > 0")
	}
	providerMaxRetries, err := getEnvAsInt("PROVIDER_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse PROVIDER_MAX_RETRIES: %w", err)
	}
	if providerMaxRetries < 0 {
		return Config{}, fmt.Errorf("PROVIDER_MAX_RETRIES must be >= 0")
	}
	providerCircuitEnabled, err := strconv.ParseBool(getEnv("PROVIDER_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PROVIDER_CIRCUIT_ENABLED: %w", err)
	}
	providerCircuitFailureCount, err := getEnvAsInt("PROVIDER_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse PROVIDER_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if providerCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("PROVIDER_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	providerCircuitOpenTimeout, err := time.ParseDuration(getEnv("PROVIDER_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PROVIDER_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if providerCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("PROVIDER_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	providerCircuitHalfOpenMaxReq, err := getEnvAsInt("PROVIDER_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse PROVIDER_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if providerCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("PROVIDER_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	queueEnabled, err := strconv.ParseBool(getEnv("QUEUE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse QUEUE_ENABLED: %w", err)
	}
	queueBaseURL := strings.TrimSpace(getEnv("QUEUE_BASE_URL", "https://qstash.upstash.io"))
	queueToken := strings.TrimSpace(getEnv("QUEUE_TOKEN", ""))
	queueTargetBaseURL := strings.TrimSpace(getEnv("QUEUE_TARGET_BASE_URL", ""))
	queueRetries, err := getEnvAsInt("QUEUE_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse QUEUE_RETRIES: %w", err)
	}
	if queueRetries < 0 {
		return Config{}, fmt.Errorf("QUEUE_RETRIES must be >= 0")
	}
	queueCircuitEnabled, err := strconv.ParseBool(getEnv("QUEUE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse QUEUE_CIRCUIT_ENABLED: %w", err)
	}
	queueCircuitFailureCount, err := getEnvAsInt("QUEUE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse QUEUE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if queueCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("QUEUE_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	queueCircuitOpenTimeout, err := time.ParseDuration(getEnv("QUEUE_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse QUEUE_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if queueCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("QUEUE_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	queueCircuitHalfOpenMaxReq, err := getEnvAsInt("QUEUE_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse QUEUE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if queueCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("QUEUE_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	internalJobToken := strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", ""))
	if queueEnabled {
		if queueToken == "" {
			return Config{}, fmt.Errorf("QUEUE_TOKEN is required when QUEUE_ENABLED=true")
		}
		if queueTargetBaseURL == "" {
			return Config{}, fmt.Errorf("QUEUE_TARGET_BASE_URL is required when QUEUE_ENABLED=true")
		}
		if internalJobToken == "" {
			return Config{}, fmt.Errorf("INTERNAL_JOB_TOKEN is required when QUEUE_ENABLED=true")
		}
	}

	refreshInterval, err := time.ParseDuration(getEnv("REFRESH_INTERVAL", "15m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse REFRESH_INTERVAL: %w", err)
	}
	if refreshInterval <= 0 {
		return Config{}, fmt.Errorf("REFRESH_INTERVAL must be > 0")
	}
	refreshMaxWorkers, err := getEnvAsInt("REFRESH_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse REFRESH_MAX_WORKERS: %w", err)
	}
	if refreshMaxWorkers < 1 {
		return Config{}, fmt.Errorf("REFRESH_MAX_WORKERS must be >= 1")
	}

	return Config{
		AppEnv:                        appEnv,
		ServiceName:                   getEnv("SERVICE_NAME", "standings-api"),
		ServiceVersion:                getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:                      getEnv("HTTP_ADDR", ":8080"),
		ReadTimeout:                   readTimeout,
		WriteTimeout:                  writeTimeout,
		DBURL:                         strings.TrimSpace(getEnv("DB_URL", "")),
		DBDisablePreparedBinary:       dbDisablePreparedBinary,
		CacheEnabled:                  cacheEnabled,
		CacheTTL:                      cacheTTL,
		CORSAllowedOrigins:            splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SwaggerEnabled:                swaggerEnabled,
		PprofEnabled:                  pprofEnabled,
		PprofAddr:                     pprofAddr,
		PyroscopeEnabled:              pyroscopeEnabled,
		PyroscopeServerAddress:        pyroscopeServerAddress,
		PyroscopeAppName:              getEnv("PYROSCOPE_APP_NAME", "standings-api"),
		PyroscopeAuthToken:            strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:           pyroscopeUploadRate,
		UptraceEnabled:                uptraceEnabled,
		UptraceDSN:                    uptraceDSN,
		UptraceLogsEnabled:            uptraceLogsEnabled,
		ProviderEnabled:               providerEnabled,
		ProviderBaseURL:               providerBaseURL,
		ProviderAPIKey:                providerAPIKey,
		ProviderTimeout:               providerTimeout,
		ProviderMaxRetries:            providerMaxRetries,
		ProviderCircuitEnabled:        providerCircuitEnabled,
		ProviderCircuitFailureCount:   providerCircuitFailureCount,
		ProviderCircuitOpenTimeout:    providerCircuitOpenTimeout,
		ProviderCircuitHalfOpenMaxReq: providerCircuitHalfOpenMaxReq,
		QueueEnabled:                  queueEnabled,
		QueueBaseURL:                  queueBaseURL,
		QueueToken:                    queueToken,
		QueueTargetBaseURL:            queueTargetBaseURL,
		QueueRetries:                  queueRetries,
		QueueCircuitEnabled:           queueCircuitEnabled,
		QueueCircuitFailureCount:      queueCircuitFailureCount,
		QueueCircuitOpenTimeout:       queueCircuitOpenTimeout,
		QueueCircuitHalfOpenMaxReq:    queueCircuitHalfOpenMaxReq,
		InternalJobToken:              internalJobToken,
		RefreshInterval:               refreshInterval,
		RefreshMaxWorkers:             refreshMaxWorkers,
		LogLevel:                      parseLogLevel(getEnv("LOG_LEVEL", "info")),
	}, nil
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
