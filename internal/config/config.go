package config

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrMissing marks configuration that the process cannot start without.
var ErrMissing = errors.New("configuration missing")

// OTP store backends.
const (
	OTPStoreMemory = "memory"
	OTPStoreRedis  = "redis"
	OTPStoreDynamo = "dynamo"
)

// Config holds all runtime configuration loaded from environment variables.
// It is built once by Load and treated as read-only afterwards.
type Config struct {
	ProjectName string
	ProjectSlug string
	Version     string
	Debug       bool
	AppPort     string
	APIPrefix   string

	SecretKey           string
	AccessTokenTTL      time.Duration
	AdminAccessTokenTTL time.Duration
	JWTAlgorithm        string

	CORS CORS

	DatabaseURL string

	OTPStore  string
	OTPTTL    time.Duration
	Redis     Redis
	AWS       AWS
	OTPTable  string
	SMSEnable bool
	SNSRegion string
}

// CORS is the cross-origin policy applied by the router.
type CORS struct {
	Origins     []string
	OriginRegex string
	Methods     []string
	Headers     []string
	Credentials bool
}

// Redis holds the connection settings for the redis OTP backend.
type Redis struct {
	Host     string
	Port     string
	Password string
}

// AWS holds the shared client settings for DynamoDB and SNS.
type AWS struct {
	Region      string
	EndpointURL string // empty in prod, set to LocalStack URL in dev
	AccessKeyID string
	SecretKey   string
}

var supportedAlgorithms = map[string]bool{"HS256": true, "HS384": true, "HS512": true}

// Load reads all configuration from environment variables.
func Load() (*Config, error) {
	secret := getEnv("SECRET_KEY", "")
	if secret == "" {
		s, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("generate secret key: %w", err)
		}
		secret = s
	}

	origins, err := parseList(getEnv("CORS_ORIGINS", "http://localhost,http://10.0.2.2:8080"))
	if err != nil {
		return nil, fmt.Errorf("CORS_ORIGINS: %w", err)
	}

	cfg := &Config{
		ProjectName: getEnv("PROJECT_NAME", "FlexiBill"),
		ProjectSlug: getEnv("PROJECT_SLUG", "flexibill"),
		Version:     getEnv("APP_VERSION", "0.1.0"),
		Debug:       getEnvBool("DEBUG", true),
		AppPort:     getEnv("APP_PORT", "8000"),
		APIPrefix:   getEnv("API_STR", "/api/v1"),

		SecretKey: secret,
		// 60 minutes * 24 hours * 30 days
		AccessTokenTTL: time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 60*24*30)) * time.Minute,
		// 60 minutes * 24 hours * 30 days * 6 months
		AdminAccessTokenTTL: time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES_ADMIN", 60*24*30*6)) * time.Minute,
		JWTAlgorithm:        getEnv("JWT_ENCODE_ALGORITHM", "HS256"),

		CORS: CORS{
			Origins:     origins,
			OriginRegex: getEnv("CORS_ORIGIN_REGEX", ""),
			Methods:     splitCSV(getEnv("CORS_METHODS", "GET,POST,PUT,DELETE,OPTIONS")),
			Headers:     splitCSV(getEnv("CORS_HEADERS", "")),
			Credentials: getEnvBool("CORS_CREDENTIALS", true),
		},

		OTPStore: getEnv("OTP_STORE", OTPStoreMemory),
		OTPTTL:   time.Duration(getEnvInt("OTP_TTL_MINUTES", 0)) * time.Minute,
		Redis: Redis{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		AWS: AWS{
			Region:      getEnv("AWS_REGION", "us-east-1"),
			EndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
			AccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		},
		OTPTable:  getEnv("OTP_DYNAMO_TABLE", "otp_codes"),
		SMSEnable: getEnvBool("SMS_ENABLED", false),
		SNSRegion: getEnv("SNS_REGION", "us-east-1"),
	}

	dsn, err := databaseURL()
	if err != nil {
		return nil, err
	}
	cfg.DatabaseURL = dsn

	prefix, err := apiPrefix(cfg.APIPrefix)
	if err != nil {
		return nil, err
	}
	cfg.APIPrefix = prefix

	if !supportedAlgorithms[cfg.JWTAlgorithm] {
		return nil, fmt.Errorf("JWT_ENCODE_ALGORITHM %q is not an HMAC algorithm: %w", cfg.JWTAlgorithm, ErrMissing)
	}
	switch cfg.OTPStore {
	case OTPStoreMemory, OTPStoreRedis, OTPStoreDynamo:
	default:
		return nil, fmt.Errorf("OTP_STORE %q is not one of memory, redis, dynamo: %w", cfg.OTPStore, ErrMissing)
	}

	return cfg, nil
}

// databaseURL prefers DATABASE_URL and otherwise assembles a postgres URI
// from the POSTGRES_* pieces, all of which are then required.
func databaseURL() (string, error) {
	if v := getEnv("DATABASE_URL", ""); v != "" {
		return v, nil
	}
	var missing []string
	parts := map[string]string{}
	for _, k := range []string{"POSTGRES_SERVER", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB"} {
		v := getEnv(k, "")
		if v == "" {
			missing = append(missing, k)
		}
		parts[k] = v
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("DATABASE_URL or %s required: %w", strings.Join(missing, ", "), ErrMissing)
	}
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(parts["POSTGRES_USER"], parts["POSTGRES_PASSWORD"]),
		Host:   parts["POSTGRES_SERVER"],
		Path:   "/" + parts["POSTGRES_DB"],
	}
	return u.String(), nil
}

// apiPrefix normalises API_STR to a leading slash and no trailing slash.
// The root path is rejected since every route lives under the prefix.
func apiPrefix(v string) (string, error) {
	p := "/" + strings.Trim(strings.TrimSpace(v), "/")
	if p == "/" {
		return "", fmt.Errorf("API_STR %q must name a path below the root: %w", v, ErrMissing)
	}
	return p, nil
}

// parseList accepts either a comma separated list or a JSON array of strings.
func parseList(v string) ([]string, error) {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "[") {
		var out []string
		if err := json.Unmarshal([]byte(v), &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	return splitCSV(v), nil
}

func splitCSV(v string) []string {
	out := []string{}
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
