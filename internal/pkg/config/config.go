package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, secrets)
// - default: Values common across all environments (timezone, schedules, topics)
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Storage   StorageConfig
	Kafka     KafkaConfig
	Scheduler SchedulerConfig
}

type ServerConfig struct {
	Port   string `envconfig:"PORT" required:"true"`
	AppEnv string `envconfig:"APP_ENV" default:"production"`
}

func (c ServerConfig) IsDevelopment() bool {
	return c.AppEnv == "development"
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PATCH,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Location"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// JWTConfig verifies tokens minted by the identity provider. This service never issues them.
type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
	Issuer string `envconfig:"JWT_ISSUER" default:""`
	Leeway string `envconfig:"JWT_LEEWAY" default:"30s"`
}

type StorageConfig struct {
	// postgres | memory
	Driver         string `envconfig:"STORAGE_DRIVER" default:"postgres"`
	// JSON array of rentals loaded into the memory driver at startup
	MemorySeedFile string `envconfig:"MEMORY_SEED_FILE"`
}

func (c StorageConfig) UsesMemory() bool {
	return c.Driver == "memory"
}

type KafkaConfig struct {
	Enabled      bool          `envconfig:"KAFKA_ENABLED" default:"false"`
	Brokers      []string      `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	BookingTopic string        `envconfig:"KAFKA_BOOKING_TOPIC" default:"booking.events"`
	ReviewTopic  string        `envconfig:"KAFKA_REVIEW_TOPIC" default:"review.events"`
	GroupID      string        `envconfig:"KAFKA_GROUP_ID" default:"rental-booking"`
	WriteTimeout time.Duration `envconfig:"KAFKA_WRITE_TIMEOUT" default:"10s"`
}

type SchedulerConfig struct {
	Enabled            bool   `envconfig:"SCHEDULER_ENABLED" default:"true"`
	CompletionSchedule string `envconfig:"COMPLETION_SCHEDULE" default:"@every 1h"`
	OutboxSchedule     string `envconfig:"OUTBOX_RELAY_SCHEDULE" default:"@every 10s"`
	OutboxBatchSize    int    `envconfig:"OUTBOX_BATCH_SIZE" default:"100"`
}

func (c *DBConfig) BuildDSN() string {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
	if c.MaxConns > 0 {
		dsn += fmt.Sprintf("&pool_max_conns=%d", c.MaxConns)
	}
	return dsn
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:   "8889", // Test port
			AppEnv: "test",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 50,
		},
		CORS: CORSConfig{
			AllowOrigins:  []string{"http://localhost:3000"},
			AllowMethods:  []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders: []string{"Content-Length", "Location"},
			MaxAge:        time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret: "test-secret-key-for-bookings",
			Leeway: "0s",
		},
		Storage: StorageConfig{
			Driver: "postgres",
		},
		Kafka: KafkaConfig{
			Enabled: false,
		},
		Scheduler: SchedulerConfig{
			Enabled:            false,
			CompletionSchedule: "@every 1h",
			OutboxSchedule:     "@every 10s",
			OutboxBatchSize:    100,
		},
	}
}
