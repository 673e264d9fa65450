package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "BACKEND_DRIVER", "STRIPE_PRICE_MONTHLY", "STRIPE_PRICE_ANNUAL",
		"STRIPE_MODE_MONTHLY", "STRIPE_MODE_ANNUAL", "SITE_URL", "NEXT_PUBLIC_SITE_URL", "CATALOG_CACHE_TTL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ModeDevelopment, cfg.Mode)
	assert.Equal(t, DriverREST, cfg.BackendDriver)
	assert.Equal(t, "price_monthly_placeholder", cfg.StripePriceMonthly)
	assert.Equal(t, "price_annual_placeholder", cfg.StripePriceAnnual)
	assert.Equal(t, CheckoutModeSubscription, cfg.StripeModeMonthly)
	assert.Equal(t, CheckoutModePayment, cfg.StripeModeAnnual)
	assert.Equal(t, "http://localhost:3000", cfg.SiteURL)
	assert.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", ModeProduction)
	t.Setenv("SUPABASE_URL", "https://abc.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon-key-value")
	t.Setenv("STRIPE_MODE_ANNUAL", CheckoutModeSubscription)
	t.Setenv("SHELL_TTL", "90s")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://abc.supabase.co", cfg.SupabaseURL)
	assert.Equal(t, "anon-key-value", cfg.SupabaseAnonKey)
	assert.Equal(t, CheckoutModeSubscription, cfg.StripeModeAnnual)
	assert.Equal(t, 90*time.Second, cfg.ShellTTL)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
}

func TestLoad_PublicEnvFallback(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("NEXT_PUBLIC_SUPABASE_URL", "https://public.supabase.co")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://public.supabase.co", cfg.SupabaseURL)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Mode:              ModeDevelopment,
			BackendDriver:     DriverREST,
			StripeModeMonthly: CheckoutModeSubscription,
			StripeModeAnnual:  CheckoutModePayment,
			RateLimitRPS:      1,
			RateLimitBurst:    1,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "bad mode", mutate: func(c *Config) { c.Mode = "staging" }, wantErr: "APP_ENV"},
		{name: "bad driver", mutate: func(c *Config) { c.BackendDriver = "mongo" }, wantErr: "BACKEND_DRIVER"},
		{name: "postgres without url", mutate: func(c *Config) { c.BackendDriver = DriverPostgres }, wantErr: "DATABASE_URL"},
		{name: "bad checkout mode", mutate: func(c *Config) { c.StripeModeAnnual = "setup" }, wantErr: "STRIPE_MODE_ANNUAL"},
		{name: "zero burst", mutate: func(c *Config) { c.RateLimitBurst = 0 }, wantErr: "rate limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGateBypass(t *testing.T) {
	dev := &Config{Mode: ModeDevelopment}
	prod := &Config{Mode: ModeProduction}

	assert.True(t, dev.GateBypass(false))
	assert.False(t, dev.GateBypass(true))
	assert.False(t, prod.GateBypass(false))
	assert.False(t, prod.GateBypass(true))
}
