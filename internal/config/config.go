package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/ftc-team-stats/internal/platform/logging"
)

const (
	TransportHTTP     = "http"
	TransportFastHTTP = "fasthttp"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	CORSAllowedOrigins         []string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	SwaggerEnabled             bool
	TeamNumber                 int
	Season                     int
	FTCScoutGraphQLURL         string
	FTCScoutTeamURL            string
	FTCScoutTimeout            time.Duration
	FTCScoutTransport          string
	FTCScoutCircuitEnabled     bool
	FTCScoutCircuitFailures    int
	FTCScoutCircuitOpenTimeout time.Duration
	FTCScoutCircuitHalfOpenMax int
	StatsLoadTimeout           time.Duration
	StatsMatchResultWorkers    int
	MetricsEnabled             bool
	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeUploadRate        time.Duration
	LogLevel                   logging.Level
}

// Load reads the environment. A .env file in the working directory is
// applied first when present; real environment variables win.
func Load() (Config, error) {
	_ = godotenv.Load()

	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	teamNumber, err := getEnvAsInt("FTC_TEAM_NUMBER", 23954)
	if err != nil {
		return Config{}, fmt.Errorf("parse FTC_TEAM_NUMBER: %w", err)
	}
	if teamNumber <= 0 {
		return Config{}, fmt.Errorf("FTC_TEAM_NUMBER must be > 0")
	}
	season, err := getEnvAsInt("FTC_SEASON", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse FTC_SEASON: %w", err)
	}
	if season < 0 {
		return Config{}, fmt.Errorf("FTC_SEASON must be >= 0")
	}

	graphQLURL := strings.TrimSpace(getEnv("FTCSCOUT_GRAPHQL_URL", "https://api.ftcscout.org/graphql"))
	if _, err := url.ParseRequestURI(graphQLURL); err != nil {
		return Config{}, fmt.Errorf("parse FTCSCOUT_GRAPHQL_URL: %w", err)
	}
	ftcScoutTimeout, err := time.ParseDuration(getEnv("FTCSCOUT_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FTCSCOUT_TIMEOUT: %w", err)
	}
	if ftcScoutTimeout <= 0 {
		return Config{}, fmt.Errorf("FTCSCOUT_TIMEOUT must be > 0")
	}
	transport := strings.ToLower(strings.TrimSpace(getEnv("FTCSCOUT_TRANSPORT", TransportHTTP)))
	if transport != TransportHTTP && transport != TransportFastHTTP {
		return Config{}, fmt.Errorf("invalid FTCSCOUT_TRANSPORT %q: valid values are %s, %s", transport, TransportHTTP, TransportFastHTTP)
	}
	circuitEnabled, err := strconv.ParseBool(getEnv("FTCSCOUT_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FTCSCOUT_CIRCUIT_ENABLED: %w", err)
	}
	circuitFailures, err := getEnvAsInt("FTCSCOUT_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse FTCSCOUT_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if circuitFailures < 1 {
		return Config{}, fmt.Errorf("FTCSCOUT_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	circuitOpenTimeout, err := time.ParseDuration(getEnv("FTCSCOUT_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FTCSCOUT_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if circuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("FTCSCOUT_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	circuitHalfOpenMax, err := getEnvAsInt("FTCSCOUT_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FTCSCOUT_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if circuitHalfOpenMax < 1 {
		return Config{}, fmt.Errorf("FTCSCOUT_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	loadTimeout, err := time.ParseDuration(getEnv("STATS_LOAD_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STATS_LOAD_TIMEOUT: %w", err)
	}
	if loadTimeout <= 0 {
		return Config{}, fmt.Errorf("STATS_LOAD_TIMEOUT must be > 0")
	}
	matchWorkers, err := getEnvAsInt("STATS_MATCH_RESULT_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse STATS_MATCH_RESULT_WORKERS: %w", err)
	}
	if matchWorkers < 1 {
		return Config{}, fmt.Errorf("STATS_MATCH_RESULT_WORKERS must be >= 1")
	}

	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	metricsEnabled, err := strconv.ParseBool(getEnv("METRICS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse METRICS_ENABLED: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
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

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "ftc-team-stats"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		SwaggerEnabled:             swaggerEnabled,
		TeamNumber:                 teamNumber,
		Season:                     season,
		FTCScoutGraphQLURL:         graphQLURL,
		FTCScoutTeamURL:            strings.TrimSpace(getEnv("FTCSCOUT_TEAM_URL", "https://ftcscout.org/teams/%d")),
		FTCScoutTimeout:            ftcScoutTimeout,
		FTCScoutTransport:          transport,
		FTCScoutCircuitEnabled:     circuitEnabled,
		FTCScoutCircuitFailures:    circuitFailures,
		FTCScoutCircuitOpenTimeout: circuitOpenTimeout,
		FTCScoutCircuitHalfOpenMax: circuitHalfOpenMax,
		StatsLoadTimeout:           loadTimeout,
		StatsMatchResultWorkers:    matchWorkers,
		MetricsEnabled:             metricsEnabled,
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
		LogLevel:                   parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if !strings.Contains(cfg.FTCScoutTeamURL, "%d") {
		return Config{}, fmt.Errorf("FTCSCOUT_TEAM_URL must contain %%d for the team number")
	}

	return cfg, nil
}

// TeamPageURL is the external stats page offered when data is unavailable.
func (c Config) TeamPageURL() string {
	return fmt.Sprintf(c.FTCScoutTeamURL, c.TeamNumber)
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
