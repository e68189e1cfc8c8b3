package config

import (
	"log"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Name string
		Port string
	}
	Database struct {
		Dsn          string
		MaxIdleConns int
		MaxOpenConns int
	}
	Redis struct {
		Addr     string
		DB       int
		Password string
	}
	RabbitMQ struct {
		Url string
	}
	Cache struct {
		ArticleTTLSeconds int
	}
}

var AppConfig *Config

func InitConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}

	AppConfig = &Config{}

	if err := viper.Unmarshal(AppConfig); err != nil {
		log.Fatalf("Unable to decode into struct: %v", err)
	}

	// 环境变量覆盖，便于容器部署
	AppConfig.App.Port = GetEnvOrDefault("PORT", AppConfig.App.Port)
	AppConfig.Database.Dsn = GetEnvOrDefault("DB_DSN", AppConfig.Database.Dsn)
	AppConfig.Redis.Addr = GetEnvOrDefault("REDIS_ADDR", AppConfig.Redis.Addr)
	AppConfig.RabbitMQ.Url = GetEnvOrDefault("RABBITMQ_URL", AppConfig.RabbitMQ.Url)

	initLogger()
	initDB()
	initRedis()
}

// GetEnvOrDefault 获取环境变量，如果不存在则返回默认值
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
