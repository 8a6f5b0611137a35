package configs

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Cfg uygulama genelinde kullanılan konfigürasyon örneğidir.
var Cfg Config

// Config tüm ortam değişkenlerini tek bir struct altında toplar.
type Config struct {
	// Sunucu
	ServerHost    string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	ServerPort    string `env:"SERVER_PORT" envDefault:"3000"`
	Environment   string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"https://kartvizit.link"`

	// PostgreSQL
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName     string `env:"DB_NAME" envDefault:"kartvizit"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// Redis (bölüm sırası cache'i ve import batch deposu)
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"kvl"`

	// RabbitMQ (cüzdan senkronu ve toplu e-posta işleri kuyruğa yazılır,
	// worker'lar bu projenin dışındadır)
	MQAddr     string `env:"RABBITMQ_ADDR" envDefault:"localhost"`
	MQPort     string `env:"RABBITMQ_PORT" envDefault:"5672"`
	MQUsername string `env:"RABBITMQ_USERNAME" envDefault:"guest"`
	MQPassword string `env:"RABBITMQ_PASSWORD" envDefault:"guest"`
	MQVhost    string `env:"RABBITMQ_VHOST" envDefault:"/"`

	// Snowflake (kart seri kodu üretimi)
	SnowflakeNodeID int64 `env:"SNOWFLAKE_NODE_ID" envDefault:"1"`

	// CSV import
	ImportBatchTTLMinutes int `env:"IMPORT_BATCH_TTL_MINUTES" envDefault:"60"`

	// Loglama
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig .env dosyasını (varsa) ve ortam değişkenlerini okur.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Printf("UYARI: .env dosyası yüklenemedi (%v), mevcut ortam değişkenleri kullanılacak", err)
	}

	Cfg = Config{}
	if err := env.Parse(&Cfg); err != nil {
		log.Fatalf("Ortam değişkenleri parse edilemedi: %v", err)
	}
}

// GetDSN PostgreSQL bağlantı cümlesini üretir.
func (c *Config) GetDSN() string {
	return "host=" + c.DBHost +
		" port=" + c.DBPort +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" sslmode=" + c.DBSSLMode
}

// GetMQURL RabbitMQ bağlantı adresini üretir.
func (c *Config) GetMQURL() string {
	return "amqp://" + c.MQUsername + ":" + c.MQPassword + "@" + c.MQAddr + ":" + c.MQPort + c.MQVhost
}

// IsProduction ortamın production olup olmadığını söyler.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
