package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Auth     AuthConfig
	Booking  BookingConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host          string
	Port          string
	Username      string
	Password      string
	Database      string
	MigrationsDir string
	AutoMigrate   bool
}

type RedisConfig struct {
	Addr string
}

type KafkaConfig struct {
	Brokers []string
	GroupID string
	Enabled bool
	Topics  TopicConfig
}

type TopicConfig struct {
	ApplicationDecided string
	BookingConfirmed   string
	BookingCheckedIn   string
}

type AuthConfig struct {
	JWTSecret    string
	RoleCacheTTL time.Duration
}

type BookingConfig struct {
	// GuardTTL bounds how long a submit guard key lives in redis when a
	// booking attempt dies before releasing it.
	GuardTTL time.Duration
	QRSecret string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", ":8080"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnv("DB_PORT", "5432"),
			Username:      getEnv("DB_USERNAME", "eventhub"),
			Password:      getEnv("DB_PASSWORD", "eventhub"),
			Database:      getEnv("DB_NAME", "eventhub"),
			MigrationsDir: getEnv("DB_MIGRATIONS_DIR", "./migrations"),
			AutoMigrate:   getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			GroupID: getEnv("KAFKA_GROUP_ID", "eventhub-notifier"),
			Enabled: getEnvBool("KAFKA_ENABLED", true),
			Topics: TopicConfig{
				ApplicationDecided: getEnv("KAFKA_TOPIC_APPLICATION_DECIDED", "application-decided"),
				BookingConfirmed:   getEnv("KAFKA_TOPIC_BOOKING_CONFIRMED", "booking-confirmed"),
				BookingCheckedIn:   getEnv("KAFKA_TOPIC_BOOKING_CHECKED_IN", "booking-checked-in"),
			},
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("AUTH_JWT_SECRET", "dev-secret"),
			RoleCacheTTL: time.Duration(getEnvInt("AUTH_ROLE_CACHE_TTL_MINUTES", 10)) * time.Minute,
		},
		Booking: BookingConfig{
			GuardTTL: time.Duration(getEnvInt("BOOKING_GUARD_TTL_SECONDS", 30)) * time.Second,
			QRSecret: getEnv("BOOKING_QR_SECRET", "dev-qr-secret"),
		},
	}
}

// DSN builds the postgres connection string for pgdriver.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.Username, c.Password, c.Host, c.Port, c.Database)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
