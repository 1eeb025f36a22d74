package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	JWTSecret string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// StorageBackend selects where uploaded bytes live: "local" or "minio".
	StorageBackend string
	ContentDir     string

	MinioHost     string
	MinioPort     string
	MinioUsername string
	MinioPassword string
	BucketName    string

	RabbitMQURL string

	// AdminSecret doubles as the instructor's fallback login secret and the
	// step-up credential for destructive operations.
	AdminSecret string

	// TeamSecrets maps a team number to its legacy shared login secret, for
	// teams that have not self-registered yet.
	TeamSecrets map[int]string

	// Assignments is the configured assignment name list; uploads must name
	// one of these, and settings are seeded from it on first run.
	Assignments []string

	InstructorEmail string
}

var AppConfig Config

// getEnv returns the environment value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvList(key string, defaultValue []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// parseTeamSecrets parses "1:alpha,2:bravo" into a team-number keyed map.
func parseTeamSecrets(raw string) map[int]string {
	secrets := make(map[int]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		idx := strings.Index(pair, ":")
		if idx <= 0 {
			log.Printf("skip malformed team secret entry %q", pair)
			continue
		}
		number, err := strconv.Atoi(strings.TrimSpace(pair[:idx]))
		if err != nil {
			log.Printf("skip malformed team secret entry %q", pair)
			continue
		}
		secret := strings.TrimSpace(pair[idx+1:])
		if secret == "" {
			continue
		}
		secrets[number] = secret
	}
	return secrets
}

// InitConfig loads configuration from the environment (and .env if present).
func InitConfig() {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded .env")
	}

	AppConfig = Config{
		JWTSecret:       getEnv("JWT_SECRET", "l=ax+b"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "3306"),
		DBUser:          getEnv("DB_USER", "root"),
		DBPass:          getEnv("DB_PASS", "root"),
		DBName:          getEnv("DB_NAME", "ClassVault"),
		RedisHost:       getEnv("REDIS_HOST", "localhost"),
		RedisPort:       getEnv("REDIS_PORT", "6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		StorageBackend:  getEnv("STORAGE_BACKEND", "local"),
		ContentDir:      getEnv("CONTENT_DIR", "./content"),
		MinioHost:       getEnv("MINIO_HOST", "localhost"),
		MinioPort:       getEnv("MINIO_PORT", "9000"),
		MinioUsername:   getEnv("MINIO_USERNAME", "minioadmin"),
		MinioPassword:   getEnv("MINIO_PASSWORD", "minioadmin"),
		BucketName:      getEnv("BUCKET_NAME", "classvault"),
		RabbitMQURL:     getEnv("RABBITMQ_URL", ""),
		AdminSecret:     getEnv("ADMIN_SECRET", "instructor"),
		TeamSecrets:     parseTeamSecrets(getEnv("TEAM_SECRETS", "")),
		Assignments:     getEnvList("ASSIGNMENTS", []string{"A1", "A2", "A3", "A4", "A5"}),
		InstructorEmail: getEnv("INSTRUCTOR_EMAIL", ""),
	}
}
