package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/wb-go/wbf/retry"
)

type Config struct {
	Server ServerConfig
	DB     DBConfig
	Minio  MinioConfig
	Kafka  KafkaConfig
	Worker WorkerConfig
	Badges BadgesConfig
}

type ServerConfig struct {
	Addr            string        `env:"SERVER_ADDR" env-default:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type DBConfig struct {
	Host            string        `env:"DB_HOST" env-default:"localhost"`
	Port            int           `env:"DB_PORT" env-default:"5432"`
	User            string        `env:"DB_USER" env-default:"postgres"`
	Password        string        `env:"DB_PASSWORD" env-default:"postgres"`
	Name            string        `env:"DB_NAME" env-default:"poster_badger"`
	SSLMode         string        `env:"DB_SSLMODE" env-default:"disable"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"30m"`
}

type MinioConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT" env-default:"localhost:9000"`
	AccessKey string `env:"MINIO_ACCESS_KEY" env-default:"minioadmin"`
	SecretKey string `env:"MINIO_SECRET_KEY" env-default:"minioadmin"`
	Bucket    string `env:"MINIO_BUCKET" env-default:"posters"`
	UseSSL    bool   `env:"MINIO_USE_SSL" env-default:"false"`
}

type KafkaConfig struct {
	Brokers      []string `env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	EnhanceTopic string   `env:"KAFKA_ENHANCE_TOPIC" env-default:"poster-enhance"`
	ResultsTopic string   `env:"KAFKA_RESULTS_TOPIC" env-default:"poster-enhanced"`
	GroupID      string   `env:"KAFKA_GROUP_ID" env-default:"poster-badger-group"`
}

type WorkerConfig struct {
	Concurrency int    `env:"WORKER_CONCURRENCY" env-default:"4"`
	TempDir     string `env:"WORKER_TEMP_DIR" env-default:""`
}

type BadgesConfig struct {
	FontDir     string `env:"BADGE_FONT_DIR" env-default:"fonts"`
	AssetDir    string `env:"BADGE_ASSET_DIR" env-default:"assets/badges"`
	JPEGQuality int    `env:"BADGE_JPEG_QUALITY" env-default:"95"`
}

func MustLoad() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) DBDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

func (c *Config) DefaultRetryStrategy() retry.Strategy {
	return retry.Strategy{
		Attempts: 3,
		Delay:    500 * time.Millisecond,
		Backoff:  2,
	}
}
