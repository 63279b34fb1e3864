package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port                   string
	DatabaseURL            string
	PaystackURL            string
	PaystackSecretKey      string
	FrontendRedirectURL    string
	JWTSecret              string
	AlmostSoldOutThreshold int
	UploadDir              string
	PublicBaseURL          string
}

func Load() Config {
	return Config{
		Port:                   getenv("PORT", "8080"),
		DatabaseURL:            databaseURL(),
		PaystackURL:            getenv("PAYSTACK_URL", "https://api.paystack.co"),
		PaystackSecretKey:      os.Getenv("PAYSTACK_SECRET_KEY"),
		FrontendRedirectURL:    os.Getenv("FRONTEND_URL_REDIRECT"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		AlmostSoldOutThreshold: getenvInt("ALMOST_SOLD_OUT_THRESHOLD", 10),
		UploadDir:              getenv("UPLOAD_DIR", "./uploads"),
		PublicBaseURL:          getenv("PUBLIC_BASE_URL", "http://localhost:8080"),
	}
}

// databaseURL prefers a full connection string and falls back to the
// discrete DB_* parts.
func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		getenv("DB_HOST", "localhost"),
		getenv("DB_USER", "postgres"),
		os.Getenv("DB_PASSWORD"),
		getenv("DB_NAME", "postgres"),
		getenv("DB_PORT", "5432"),
	)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
