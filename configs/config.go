package config

import (
	"log"
	"os"
	"time"
)

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

type OAuthClient struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

type Config struct {
	Port            string
	PostgresURI     string
	RedisURI        string
	FrontendURL     string
	SecretKey       string
	JWTSecret       string
	CookieName      string
	WebhookSecret   string
	EntryCacheTTL   time.Duration
	DefaultTimezone string
	DefaultLocale   string
	Google          OAuthClient
	Meta            OAuthClient
	LinkedIn        OAuthClient
	R2              R2
}

func LoadConfig() *Config {
	return &Config{
		Port:            getEnv("PORT", "3000"),
		PostgresURI:     getEnv("POSTGRES_URI", ""),
		RedisURI:        getEnv("REDIS_URI", "localhost:6379"),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
		SecretKey:       getEnv("SECRET_KEY", ""),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		CookieName:      getEnv("COOKIE_NAME", "contentflow_session"),
		WebhookSecret:   getEnv("WEBHOOK_SECRET", ""),
		EntryCacheTTL:   getDuration("ENTRY_CACHE_TTL", 5*time.Minute),
		DefaultTimezone: getEnv("DEFAULT_TIMEZONE", "UTC"),
		DefaultLocale:   getEnv("DEFAULT_LOCALE", "es"),
		Google: OAuthClient{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURI:  getEnv("GOOGLE_REDIRECT_URI", ""),
		},
		Meta: OAuthClient{
			ClientID:     getEnv("META_CLIENT_ID", ""),
			ClientSecret: getEnv("META_CLIENT_SECRET", ""),
			RedirectURI:  getEnv("META_REDIRECT_URI", ""),
		},
		LinkedIn: OAuthClient{
			ClientID:     getEnv("LINKEDIN_CLIENT_ID", ""),
			ClientSecret: getEnv("LINKEDIN_CLIENT_SECRET", ""),
			RedirectURI:  getEnv("LINKEDIN_REDIRECT_URI", ""),
		},
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  getEnv("R2_PUBLIC_URL", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("invalid %s %q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
