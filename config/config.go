package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	Port       string
	Env        string

	// Mercado Pago access token used for PIX payment creation and lookup
	MPAccessToken string

	// Restaurant origin used by the delivery fee estimator
	RestaurantLat float64
	RestaurantLng float64
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// A missing .env file is fine in production; variables may come from the
	// real environment.
	_ = godotenv.Load()

	config := &Config{
		DBHost:        os.Getenv("DB_HOST"),
		DBPort:        os.Getenv("DB_PORT"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		Port:          os.Getenv("PORT"),
		Env:           os.Getenv("ENV"),
		MPAccessToken: os.Getenv("MP_ACCESS_TOKEN"),
	}

	config.RestaurantLat = parseCoord(os.Getenv("RESTAURANT_LAT"), -23.55052)
	config.RestaurantLng = parseCoord(os.Getenv("RESTAURANT_LNG"), -46.633308)

	if config.DBHost == "" || config.DBName == "" {
		return nil, fmt.Errorf("database configuration is incomplete")
	}

	return config, nil
}

func parseCoord(raw string, fallback float64) float64 {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
