package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultAccessSecret  = "a-very-secret-access-key-should-be-longer-and-random"
	defaultRefreshSecret = "default_insecure_refresh_secret_please_change_this_!@#$"
)

// Argon2Config holds the cost parameters for new password and refresh-token hashes.
type Argon2Config struct {
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	MigrationsPath string

	JWTAccessSecret  string
	JWTRefreshSecret string
	JWTIssuer        string
	JWTAccessTTL     time.Duration
	JWTRefreshTTL    time.Duration

	Argon2 Argon2Config

	// SessionAnchorPrecision is the floor applied to the login time before it is
	// stored and embedded in access tokens.
	SessionAnchorPrecision time.Duration

	CORSAllowedOrigins []string

	SeedAdminEmail    string
	SeedAdminName     string
	SeedAdminPassword string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_ACCESS_SECRET", "")
	viper.SetDefault("JWT_REFRESH_SECRET", "")
	viper.SetDefault("JWT_ISSUER", "factory-system-backend")
	viper.SetDefault("JWT_ACCESS_TTL", "1h")
	viper.SetDefault("JWT_REFRESH_TTL", "168h")
	viper.SetDefault("ARGON2_MEMORY_KIB", 64*1024)
	viper.SetDefault("ARGON2_ITERATIONS", 3)
	viper.SetDefault("ARGON2_PARALLELISM", 1)
	viper.SetDefault("ARGON2_SALT_LENGTH", 16)
	viper.SetDefault("ARGON2_KEY_LENGTH", 32)
	viper.SetDefault("SESSION_ANCHOR_PRECISION", "1s")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001")
	viper.SetDefault("SEED_ADMIN_EMAIL", "admin@factory.com")
	viper.SetDefault("SEED_ADMIN_NAME", "Super Admin")
	viper.SetDefault("SEED_ADMIN_PASSWORD", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.JWTAccessSecret = viper.GetString("JWT_ACCESS_SECRET")
	if cfg.JWTAccessSecret == "" {
		cfg.JWTAccessSecret = defaultAccessSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_ACCESS_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTRefreshSecret = viper.GetString("JWT_REFRESH_SECRET")
	if cfg.JWTRefreshSecret == "" {
		cfg.JWTRefreshSecret = defaultRefreshSecret
		log.Println("Warning: JWT_REFRESH_SECRET is not set, using default insecure secret. THIS IS NOT FOR PRODUCTION.")
	}
	if cfg.JWTAccessSecret == cfg.JWTRefreshSecret {
		log.Println("Warning: JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are equal. Use independent secrets.")
	}

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "factory-system-backend"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.JWTAccessTTL = durationOrDefault("JWT_ACCESS_TTL", time.Hour)
	cfg.JWTRefreshTTL = durationOrDefault("JWT_REFRESH_TTL", 7*24*time.Hour)
	cfg.SessionAnchorPrecision = durationOrDefault("SESSION_ANCHOR_PRECISION", time.Second)
	if cfg.SessionAnchorPrecision < time.Millisecond {
		log.Printf("Warning: SESSION_ANCHOR_PRECISION below 1ms is not supported. Using %s.\n", time.Millisecond)
		cfg.SessionAnchorPrecision = time.Millisecond
	}

	cfg.Argon2 = Argon2Config{
		MemoryKiB:   viper.GetUint32("ARGON2_MEMORY_KIB"),
		Iterations:  viper.GetUint32("ARGON2_ITERATIONS"),
		Parallelism: uint8(viper.GetUint("ARGON2_PARALLELISM")),
		SaltLength:  viper.GetUint32("ARGON2_SALT_LENGTH"),
		KeyLength:   viper.GetUint32("ARGON2_KEY_LENGTH"),
	}
	if cfg.Argon2.MemoryKiB == 0 || cfg.Argon2.Iterations == 0 || cfg.Argon2.Parallelism == 0 ||
		cfg.Argon2.SaltLength == 0 || cfg.Argon2.KeyLength == 0 {
		log.Println("Warning: invalid ARGON2_* settings. Falling back to m=64MiB, t=3, p=1.")
		cfg.Argon2 = Argon2Config{MemoryKiB: 64 * 1024, Iterations: 3, Parallelism: 1, SaltLength: 16, KeyLength: 32}
	}

	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.SeedAdminEmail = viper.GetString("SEED_ADMIN_EMAIL")
	cfg.SeedAdminName = viper.GetString("SEED_ADMIN_NAME")
	cfg.SeedAdminPassword = viper.GetString("SEED_ADMIN_PASSWORD")

	return cfg, nil
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
