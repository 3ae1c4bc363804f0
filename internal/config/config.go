package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	DBSSLMode   string
	RedisAddr   string
	KafkaBroker string
	JWTSecret   string
}

var loaded Config

// Load membaca config.yaml kalau ada, lalu environment variables menimpa
// nilai file. Defaults dipakai untuk development lokal.
func Load() Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "3000")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "zestpay")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("KAFKA_BROKER", "")

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file found, using env and defaults")
	}

	loaded = Config{
		Port:        viper.GetString("PORT"),
		DBHost:      viper.GetString("DB_HOST"),
		DBUser:      viper.GetString("DB_USER"),
		DBPassword:  viper.GetString("DB_PASSWORD"),
		DBName:      viper.GetString("DB_NAME"),
		DBPort:      viper.GetString("DB_PORT"),
		DBSSLMode:   viper.GetString("DB_SSLMODE"),
		RedisAddr:   viper.GetString("REDIS_ADDR"),
		KafkaBroker: viper.GetString("KAFKA_BROKER"),
		JWTSecret:   viper.GetString("JWT_SECRET"),
	}
	return loaded
}

// JWTSecret mengembalikan secret hasil Load (config.yaml atau env lewat
// viper). Fallback ke env mentah untuk proses yang belum memanggil Load,
// misalnya unit test.
func JWTSecret() string {
	if loaded.JWTSecret != "" {
		return loaded.JWTSecret
	}
	return os.Getenv("JWT_SECRET")
}
