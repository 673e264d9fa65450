package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	ModeDevelopment = "development"
	ModeProduction  = "production"

	DriverREST     = "rest"
	DriverPostgres = "postgres"

	CheckoutModeSubscription = "subscription"
	CheckoutModePayment      = "payment"
)

type Config struct {
	Port string
	Mode string

	SupabaseURL       string
	SupabaseAnonKey   string
	SupabaseJWTSecret string

	BackendDriver  string
	DatabaseURL    string
	RunMigrations  bool
	MigrationsPath string

	RedisURL        string
	CatalogCacheTTL time.Duration

	StripeSecretKey    string
	StripePriceMonthly string
	StripePriceAnnual  string
	StripeModeMonthly  string
	StripeModeAnnual   string
	SiteURL            string

	RateLimitRPS   float64
	RateLimitBurst int
	ShellTTL       time.Duration

	LogLevel  string
	LogFormat string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Mode: getEnv("APP_ENV", ModeDevelopment),

		SupabaseURL:       getEnv("SUPABASE_URL", getEnv("NEXT_PUBLIC_SUPABASE_URL", "")),
		SupabaseAnonKey:   getEnv("SUPABASE_ANON_KEY", getEnv("NEXT_PUBLIC_SUPABASE_ANON_KEY", "")),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),

		BackendDriver:  getEnv("BACKEND_DRIVER", DriverREST),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RunMigrations:  getBool("RUN_MIGRATIONS", false),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),

		RedisURL:        getEnv("REDIS_URL", ""),
		CatalogCacheTTL: getDuration("CATALOG_CACHE_TTL", 5*time.Minute),

		StripeSecretKey:    getEnv("STRIPE_SECRET_KEY", ""),
		StripePriceMonthly: getEnv("STRIPE_PRICE_MONTHLY", "price_monthly_placeholder"),
		StripePriceAnnual:  getEnv("STRIPE_PRICE_ANNUAL", "price_annual_placeholder"),
		StripeModeMonthly:  getEnv("STRIPE_MODE_MONTHLY", CheckoutModeSubscription),
		StripeModeAnnual:   getEnv("STRIPE_MODE_ANNUAL", CheckoutModePayment),
		SiteURL:            getEnv("SITE_URL", getEnv("NEXT_PUBLIC_SITE_URL", "http://localhost:3000")),

		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 10),
		ShellTTL:       getDuration("SHELL_TTL", 30*time.Minute),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Mode {
	case ModeDevelopment, ModeProduction:
	default:
		return fmt.Errorf("invalid APP_ENV %q: want %s or %s", c.Mode, ModeDevelopment, ModeProduction)
	}

	switch c.BackendDriver {
	case DriverREST:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("BACKEND_DRIVER=%s requires DATABASE_URL", DriverPostgres)
		}
	default:
		return fmt.Errorf("invalid BACKEND_DRIVER %q", c.BackendDriver)
	}

	for name, mode := range map[string]string{"STRIPE_MODE_MONTHLY": c.StripeModeMonthly, "STRIPE_MODE_ANNUAL": c.StripeModeAnnual} {
		if mode != CheckoutModeSubscription && mode != CheckoutModePayment {
			return fmt.Errorf("invalid %s %q", name, mode)
		}
	}

	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Mode == ModeProduction
}

// GateBypass reports whether page routing should skip the auth gate.
// Only a development process with no configured backend runs open.
func (c *Config) GateBypass(backendConfigured bool) bool {
	return !backendConfigured && c.Mode == ModeDevelopment
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}
