package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "zartaaz", cfg.JWTIssuer)
	assert.Equal(t, 15, cfg.AccessTokenTTLMin)
	assert.Equal(t, 30, cfg.RefreshTokenTTLDays)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, 10, cfg.DBMaxConns)

	assert.Equal(t, 0.08, cfg.Pricing.TaxRate)
	assert.Equal(t, 10.0, cfg.Pricing.ShippingFee)
	assert.Equal(t, 100.0, cfg.Pricing.FreeShippingMin)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("ACCESS_TOKEN_TTL_MIN", "5")
	t.Setenv("TAX_RATE", "0.2")
	t.Setenv("SHIPPING_FEE", "not-a-number")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 5, cfg.AccessTokenTTLMin)
	assert.Equal(t, 0.2, cfg.Pricing.TaxRate)
	// bad values fall back to the default
	assert.Equal(t, 10.0, cfg.Pricing.ShippingFee)
}
