package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	CORS      CORSConfig
	Log       LogConfig
	Billing   BillingConfig
	Dashboard DashboardConfig
	Portal    PortalConfig
	Gemini    GeminiConfig
	Exports   ExportsConfig
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// BillingConfig tunes monthly invoice generation.
type BillingConfig struct {
	DefaultInvoiceAmount int64
	InvoiceDueDay        int
}

// DashboardConfig tunes the dashboard derivations.
type DashboardConfig struct {
	RecentPaymentsLimit int
	RevenueMonths       int
}

// PortalConfig configures the student portal identity fallback.
type PortalConfig struct {
	DefaultStudentID int64
}

// GeminiConfig configures the external summary generator.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// ExportsConfig controls ledger export jobs and storage.
type ExportsConfig struct {
	Enabled           bool
	StorageDir        string
	SignedURLSecret   string
	SignedURLTTL      time.Duration
	CleanupInterval   time.Duration
	WorkerConcurrency int
	WorkerRetries     int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Billing = BillingConfig{
		DefaultInvoiceAmount: v.GetInt64("DEFAULT_INVOICE_AMOUNT"),
		InvoiceDueDay:        v.GetInt("INVOICE_DUE_DAY"),
	}

	cfg.Dashboard = DashboardConfig{
		RecentPaymentsLimit: v.GetInt("RECENT_PAYMENTS_LIMIT"),
		RevenueMonths:       v.GetInt("REVENUE_MONTHS"),
	}

	cfg.Portal = PortalConfig{
		DefaultStudentID: v.GetInt64("PORTAL_DEFAULT_STUDENT_ID"),
	}

	cfg.Gemini = GeminiConfig{
		APIKey:  v.GetString("GEMINI_API_KEY"),
		Model:   v.GetString("GEMINI_MODEL"),
		BaseURL: v.GetString("GEMINI_BASE_URL"),
		Timeout: parseDuration(v.GetString("GEMINI_TIMEOUT"), 15*time.Second),
	}

	cfg.Exports = ExportsConfig{
		Enabled:           v.GetBool("ENABLE_EXPORTS"),
		StorageDir:        v.GetString("EXPORTS_STORAGE_DIR"),
		SignedURLSecret:   v.GetString("EXPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:      parseDuration(v.GetString("EXPORTS_SIGNED_URL_TTL"), 24*time.Hour),
		CleanupInterval:   parseDuration(v.GetString("EXPORTS_CLEANUP_INTERVAL"), time.Hour),
		WorkerConcurrency: v.GetInt("EXPORTS_WORKER_CONCURRENCY"),
		WorkerRetries:     v.GetInt("EXPORTS_WORKER_RETRIES"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DEFAULT_INVOICE_AMOUNT", 500000)
	v.SetDefault("INVOICE_DUE_DAY", 5)

	v.SetDefault("RECENT_PAYMENTS_LIMIT", 5)
	v.SetDefault("REVENUE_MONTHS", 7)

	// Seed dataset parity: the portal demo account is Odil Ahmedov Jr.
	v.SetDefault("PORTAL_DEFAULT_STUDENT_ID", 5)

	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("GEMINI_TIMEOUT", "15s")

	v.SetDefault("ENABLE_EXPORTS", false)
	v.SetDefault("EXPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("EXPORTS_SIGNED_URL_SECRET", "dev_exports_secret")
	v.SetDefault("EXPORTS_SIGNED_URL_TTL", "24h")
	v.SetDefault("EXPORTS_CLEANUP_INTERVAL", "1h")
	v.SetDefault("EXPORTS_WORKER_CONCURRENCY", 1)
	v.SetDefault("EXPORTS_WORKER_RETRIES", 3)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
