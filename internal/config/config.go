package config

import (
	"os"
	"strconv"
	"time"
)

type RecommendationServiceConfig struct {
	Port              string
	PostgresCfg       PostgresConfig
	RabbitMQCfg       RabbitMQConfig
	RedisCfg          RedisConfig
	RecommendationCfg RecommendationConfig
}

type PostgresConfig struct {
	DBname   string
	Username string
	Password string
	Host     string
	Port     string
}

type RabbitMQConfig struct {
	Username string
	Password string
	Host     string
	Port     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// RecommendationConfig tunes the pipeline and its scheduled refresh.
type RecommendationConfig struct {
	// RefreshInterval of 0 disables the scheduled refresh.
	RefreshInterval time.Duration
	NumWorkers      int
	QueueSize       int
	CacheTTL        time.Duration
	// RandomSeed of 0 seeds every run freshly.
	RandomSeed uint64
}

func New() *RecommendationServiceConfig {
	return &RecommendationServiceConfig{
		Port: getEnvOrDefault("RECOMMENDATION_SERVICE_PORT", "8086"),
		PostgresCfg: PostgresConfig{
			DBname:   getEnvOrDefault("POSTGRES_DB", "agrisa"),
			Username: getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
		},
		RabbitMQCfg: RabbitMQConfig{
			Username: getEnvOrDefault("RABBITMQ_USER", "admin"),
			Password: getEnvOrDefault("RABBITMQ_PWD", "admin"),
			Host:     getEnvOrDefault("RABBITMQ_HOST", "localhost"),
			Port:     getEnvOrDefault("RABBITMQ_PORT", "5672"),
		},
		RedisCfg: RedisConfig{
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       getIntEnvOrDefault("REDIS_DB", 0),
		},
		RecommendationCfg: RecommendationConfig{
			RefreshInterval: getDurationEnvOrDefault("RECOMMENDATION_REFRESH_INTERVAL", 24*time.Hour),
			NumWorkers:      getIntEnvOrDefault("RECOMMENDATION_WORKERS", 4),
			QueueSize:       getIntEnvOrDefault("RECOMMENDATION_QUEUE_SIZE", 100),
			CacheTTL:        getDurationEnvOrDefault("RECOMMENDATION_CACHE_TTL", 10*time.Minute),
			RandomSeed:      uint64(getIntEnvOrDefault("RECOMMENDATION_RANDOM_SEED", 0)),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnvOrDefault(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnvOrDefault(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getDurationEnvOrDefault accepts Go duration strings such as "24h" or "90m".
func getDurationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnvOrDefault(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
