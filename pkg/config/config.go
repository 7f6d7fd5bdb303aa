package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                    string
	Env                     string
	FirebaseCredentialsPath string
	PostgresConnStr         string
	MongoURI                string
	MongoDatabase           string
	JWTSecret               string
	AuthProvider            string // "jwt" or "firebase"

	LogLevel string
	LogFile  string

	// Birth-date window around the requester used when a recommendation
	// request carries no filter at all.
	AgeLimitBottom int
	AgeLimitTop    int

	BirthdaySweepInterval time.Duration

	EventBusMode string // "channel" or "kafka"
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string
	EventWorkers int
}

// Load reads the configuration from the environment, loading a local .env
// file first when not running in production.
func Load() (*Config, error) {
	if os.Getenv("ENV") != "production" {
		_ = godotenv.Load()
	}

	bottom, err := getEnvInt("RECOMMEND_AGE_LIMIT_BOTTOM", 5)
	if err != nil {
		return nil, err
	}
	top, err := getEnvInt("RECOMMEND_AGE_LIMIT_TOP", 5)
	if err != nil {
		return nil, err
	}
	interval, err := time.ParseDuration(getEnv("BIRTHDAY_SWEEP_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid BIRTHDAY_SWEEP_INTERVAL: %w", err)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("BIRTHDAY_SWEEP_INTERVAL must be positive, got %s", interval)
	}

	mode := strings.ToLower(getEnv("EVENT_BUS_MODE", "channel"))
	if mode != "channel" && mode != "kafka" {
		return nil, fmt.Errorf("invalid EVENT_BUS_MODE %q: want channel or kafka", mode)
	}

	auth := strings.ToLower(getEnv("AUTH_PROVIDER", "jwt"))
	if auth != "jwt" && auth != "firebase" {
		return nil, fmt.Errorf("invalid AUTH_PROVIDER %q: want jwt or firebase", auth)
	}
	if auth == "firebase" && os.Getenv("FIREBASE_CREDENTIALS_PATH") == "" {
		return nil, fmt.Errorf("AUTH_PROVIDER=firebase requires FIREBASE_CREDENTIALS_PATH")
	}
	workers, err := getEnvInt("EVENT_WORKERS", 4)
	if err != nil {
		return nil, err
	}
	if workers == 0 {
		return nil, fmt.Errorf("EVENT_WORKERS must be positive")
	}

	var brokers []string
	for _, b := range strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "socialnet"),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		AuthProvider:            auth,
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		LogFile:                 getEnv("LOG_FILE", ""),
		AgeLimitBottom:          bottom,
		AgeLimitTop:             top,
		BirthdaySweepInterval:   interval,
		EventBusMode:            mode,
		KafkaBrokers:            brokers,
		KafkaTopic:              getEnv("KAFKA_TOPIC", "socialnet.events"),
		KafkaGroupID:            getEnv("KAFKA_GROUP_ID", "notification-dispatcher"),
		EventWorkers:            workers,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %d", key, v)
	}
	return v, nil
}
