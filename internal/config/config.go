package config

import (
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Environment selects the GalaChain network endpoints.
type Environment string

const (
	EnvProduction Environment = "production"
	EnvStage      Environment = "stage"
)

// Per-environment endpoint defaults, used when the corresponding env var is
// unset or not a well-formed URL.
var defaultEndpoints = map[Environment]struct{ Gateway, API string }{
	EnvProduction: {
		Gateway: "https://gateway-mainnet.galachain.com/api",
		API:     "https://api.galachain.com",
	},
	EnvStage: {
		Gateway: "https://gateway-stage.galachain.com/api",
		API:     "https://api-stage.galachain.com",
	},
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Environment Environment
	GatewayURL  string
	APIURL      string
	DatabaseURL string

	GatewayRetryMax       int
	GatewayRetryBaseDelay time.Duration
	RefreshInterval       time.Duration
	ExportInterval        time.Duration

	HTTPPort    string
	AdminAPIKey string

	WalletAddress   string
	WalletPublicKey string

	SheetsSpreadsheetID   string
	SheetsCredentialsJSON string
	XLSXPath              string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	env := loadEnvironment()
	defaults := defaultEndpoints[env]

	return Config{
		Environment: env,
		GatewayURL:  envURLOrDefault("GALACHAIN_GATEWAY_URL", defaults.Gateway),
		APIURL:      envURLOrDefault("GALACHAIN_API_URL", defaults.API),
		DatabaseURL: envOrDefaultWarn("DATABASE_URL", ""),

		GatewayRetryMax:       envOrDefaultInt("GATEWAY_RETRY_MAX", 3),
		GatewayRetryBaseDelay: envOrDefaultDuration("GATEWAY_RETRY_BASE_DELAY", time.Second),
		RefreshInterval:       envOrDefaultDuration("REFRESH_INTERVAL", 30*time.Second),
		ExportInterval:        envOrDefaultDuration("EXPORT_INTERVAL", 24*time.Hour),

		HTTPPort:    envOrDefault("HTTP_PORT", "8080"),
		AdminAPIKey: envOrDefault("ADMIN_API_KEY", ""),

		WalletAddress:   envOrDefault("WALLET_ADDRESS", ""),
		WalletPublicKey: envOrDefault("WALLET_PUBLIC_KEY", ""),

		SheetsSpreadsheetID:   envOrDefault("SHEETS_SPREADSHEET_ID", ""),
		SheetsCredentialsJSON: envOrDefault("SHEETS_CREDENTIALS_JSON", ""),
		XLSXPath:              envOrDefault("XLSX_EXPORT_PATH", ""),
	}
}

func loadEnvironment() Environment {
	v := os.Getenv("GALACHAIN_ENV")
	switch Environment(v) {
	case EnvProduction:
		return EnvProduction
	case EnvStage, "":
		return EnvStage
	default:
		slog.Warn("unknown GALACHAIN_ENV, using stage", "value", v)
		return EnvStage
	}
}

// envURLOrDefault reads a URL-valued env var, falling back to the default
// (with a warning) when the value is unset or not a well-formed http(s) URL.
func envURLOrDefault(key, defaultVal string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	u, err := url.Parse(v)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		slog.Warn("invalid URL env var, using default", "key", key, "value", v, "default", defaultVal)
		return defaultVal
	}
	return v
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultWarn(key, defaultVal string) string {
	v := envOrDefault(key, defaultVal)
	if v == "" {
		slog.Warn("required env var not set", "key", key)
	}
	return v
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return n
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}
