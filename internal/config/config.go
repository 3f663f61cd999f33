package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr string
	AppEnv   string

	BackendBaseURL string
	SigningBaseURL string
	BackendTimeout time.Duration

	DatabaseURL   string
	RedisAddr     string
	RedisPassword string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	FirebaseAPIKey          string
	FirebaseCredentialsFile string
	IdentityBaseURL         string

	GoogleClientID    string
	GoogleSecret      string
	GoogleRedirectURL string

	CDNCloudName string
	CDNAPIKey    string
	CDNAPISecret string
	CDNBaseURL   string
	CDNFolder    string

	ProfileRefreshPolicy      string
	ProfileRevalidateSchedule string

	DefaultFacultyPassword string
	DefaultStudentPassword string
}

func Load() *Config {
	backend := strings.TrimRight(getEnv("BACKEND_BASE_URL", "http://localhost:5000"), "/")
	return &Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8000"),
		AppEnv:   getEnv("APP_ENV", "production"),

		BackendBaseURL: backend,
		SigningBaseURL: strings.TrimRight(getEnv("SIGNING_BASE_URL", backend), "/"),
		BackendTimeout: getEnvDuration("BACKEND_TIMEOUT", 15*time.Second),

		DatabaseURL:   getEnv("DATABASE_URL", "sqlite://upasthiti.db"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		JWTSecret:       getEnv("JWT_SECRET", ""),
		AccessTokenTTL:  getEnvDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL: getEnvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		FirebaseAPIKey:          getEnv("FIREBASE_API_KEY", ""),
		FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
		IdentityBaseURL:         strings.TrimRight(getEnv("IDENTITY_BASE_URL", "https://identitytoolkit.googleapis.com/v1"), "/"),

		GoogleClientID:    getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleSecret:      getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL: getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8000/auth/google/callback"),

		CDNCloudName: getEnv("CDN_CLOUD_NAME", ""),
		CDNAPIKey:    getEnv("CDN_API_KEY", ""),
		CDNAPISecret: getEnv("CDN_API_SECRET", ""),
		CDNBaseURL:   strings.TrimRight(getEnv("CDN_BASE_URL", "https://api.cloudinary.com/v1_1"), "/"),
		CDNFolder:    getEnv("CDN_FOLDER", "profilepictures"),

		ProfileRefreshPolicy:      getEnv("PROFILE_REFRESH_POLICY", "missing"),
		ProfileRevalidateSchedule: lookupEnv("PROFILE_REVALIDATE_SCHEDULE", "@every 1h"),

		DefaultFacultyPassword: getEnv("DEFAULT_FACULTY_PASSWORD", "Faculty@123"),
		DefaultStudentPassword: getEnv("DEFAULT_STUDENT_PASSWORD", "Student@123"),
	}
}

// Development reports whether verbose, human-readable output is wanted.
func (c *Config) Development() bool {
	return c.AppEnv == "development" || c.AppEnv == "dev"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// lookupEnv differs from getEnv in that an explicitly empty value is kept.
func lookupEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	if val := os.Getenv(key + "_SECONDS"); val != "" {
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
