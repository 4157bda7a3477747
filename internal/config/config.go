package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Port         int    `mapstructure:"PORT"`
	DBURL        string `mapstructure:"DB_URL"`
	RedisAddr    string `mapstructure:"REDIS_ADDR"`
	MQTTBroker   string `mapstructure:"MQTT_BROKER"`
	MQTTClientID string `mapstructure:"MQTT_CLIENT_ID"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`
	JWTSecret    string `mapstructure:"JWT_SECRET"`
	AIEndpoint   string `mapstructure:"AI_ENDPOINT"`
	AIModel      string `mapstructure:"AI_MODEL"`
	AIAPIKey     string `mapstructure:"AI_API_KEY"`
}

// LoadConfig reads configuration from file, .env, or env vars
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		println("Error loading .env file: ", err)
	}

	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("PORT", 5069)
	viper.SetDefault("AI_ENDPOINT", "https://generativelanguage.googleapis.com")
	viper.SetDefault("AI_MODEL", "gemini-1.5-flash-8b")

	cfg := &Config{
		Port:         viper.GetInt("PORT"),
		DBURL:        viper.GetString("DB_URL"),
		RedisAddr:    viper.GetString("REDIS_ADDR"),
		MQTTBroker:   viper.GetString("MQTT_BROKER"),
		MQTTClientID: viper.GetString("MQTT_CLIENT_ID"),
		LogLevel:     viper.GetString("LOG_LEVEL"),
		JWTSecret:    viper.GetString("JWT_SECRET"),
		AIEndpoint:   viper.GetString("AI_ENDPOINT"),
		AIModel:      viper.GetString("AI_MODEL"),
		AIAPIKey:     viper.GetString("AI_API_KEY"),
	}
	return cfg, nil
}
