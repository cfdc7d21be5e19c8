package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr             = ":8080"
	defaultDatabaseURL          = "questionbank.db"
	defaultJWTSecret            = "change-me-jwt-secret"
	defaultSessionTTL           = "12h"
	defaultReservedBranchCodes  = "CSE,CSE-AIML"
	defaultRecognizedPDFHosts   = "drive.google.com,docs.google.com"
	defaultExamTypeCode         = "END_SEM"
	defaultReservedExcludedExam = "END_SEM,MID_SEM"
)

// Config is the runtime configuration of the service binaries.
type Config struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string

	JWTSecret  string
	SessionTTL time.Duration

	// Branch codes grouped under one umbrella entry on the home page.
	ReservedBranchCodes []string
	// Exam type codes hidden from the umbrella papers listing.
	ReservedExcludedExamTypes []string
	// Hostnames (and their subdomains) treated as shareable PDF hosting.
	RecognizedPDFHosts []string
	// Exam type assigned to uploads that do not name one.
	DefaultExamTypeCode string

	CORSAllowedOrigins []string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present; real environment
// variables take precedence over it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.SessionTTL, err = parseDurationEnv("SESSION_TTL", defaultSessionTTL)
	if err != nil {
		return nil, err
	}

	cfg.ReservedBranchCodes = parseListEnv("RESERVED_BRANCH_CODES", defaultReservedBranchCodes)
	cfg.ReservedExcludedExamTypes = parseListEnv("RESERVED_PAPERS_EXCLUDED_EXAM_TYPES", defaultReservedExcludedExam)
	cfg.RecognizedPDFHosts = parseListEnv("RECOGNIZED_PDF_HOSTS", defaultRecognizedPDFHosts)
	cfg.DefaultExamTypeCode = strings.TrimSpace(getEnv("DEFAULT_EXAM_TYPE_CODE", defaultExamTypeCode))
	cfg.CORSAllowedOrigins = parseListEnv("CORS_ALLOWED_ORIGINS", "")

	if err := validate(cfg); err != nil {
		return nil, err
	}

	log.Printf("config loaded: env=%s addr=%s session_ttl=%s reserved_branches=%v pdf_hosts=%v",
		cfg.AppEnv, cfg.HTTPAddr, cfg.SessionTTL, cfg.ReservedBranchCodes, cfg.RecognizedPDFHosts)

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if cfg.DefaultExamTypeCode == "" {
		return fmt.Errorf("DEFAULT_EXAM_TYPE_CODE must not be empty")
	}
	if len(cfg.RecognizedPDFHosts) == 0 {
		return fmt.Errorf("RECOGNIZED_PDF_HOSTS must list at least one host")
	}

	if IsProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
	}

	return nil
}

// IsProdLike reports whether env names a production deployment.
func IsProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseListEnv(name, fallback string) []string {
	raw := getEnv(name, fallback)
	out := make([]string, 0)
	for _, v := range strings.Split(raw, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
