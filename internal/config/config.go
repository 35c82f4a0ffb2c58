package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppEnv   string
	HTTPAddr string

	DatabaseURL string
	DBMaxConns  int

	JWTIssuer        string
	JWTAccessSecret  string
	JWTRefreshSecret string
	AccessTokenTTLMin   int
	RefreshTokenTTLDays int

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	Pricing Pricing
}

// Pricing is injected configuration so tests can exercise multiple
// policies instead of reading package-level constants.
type Pricing struct {
	TaxRate         float64
	ShippingFee     float64
	FreeShippingMin float64
}

func Load() Config {
	return Config{
		AppEnv:   get("APP_ENV", "dev"),
		HTTPAddr: get("HTTP_ADDR", ":8080"),

		DatabaseURL: get("DATABASE_URL", ""),
		DBMaxConns:  getInt("DB_MAX_CONNS", 10),

		JWTIssuer:        get("JWT_ISSUER", "zartaaz"),
		JWTAccessSecret:  get("JWT_ACCESS_SECRET", ""),
		JWTRefreshSecret: get("JWT_REFRESH_SECRET", ""),
		AccessTokenTTLMin:   getInt("ACCESS_TOKEN_TTL_MIN", 15),
		RefreshTokenTTLDays: getInt("REFRESH_TOKEN_TTL_DAYS", 30),

		SMTPHost: get("SMTP_HOST", ""),
		SMTPPort: getInt("SMTP_PORT", 587),
		SMTPUser: get("SMTP_USER", ""),
		SMTPPass: get("SMTP_PASS", ""),
		SMTPFrom: get("SMTP_FROM", ""),

		Pricing: Pricing{
			TaxRate:         getFloat("TAX_RATE", 0.08),
			ShippingFee:     getFloat("SHIPPING_FEE", 10),
			FreeShippingMin: getFloat("FREE_SHIPPING_MIN", 100),
		},
	}
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getFloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
