package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port         string
	Environment  string
	LogLevel     string
	ClientOrigin string

	MongoDBURI  string
	MongoDBName string

	// One of the two auth providers must be configured.
	AuthJWKSURL string
	AuthURL     string
	AuthAnonKey string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:         getEnvWithDefault("PORT", "8080"),
		Environment:  getEnvWithDefault("MODE", "development"),
		LogLevel:     getEnvWithDefault("LOG_LEVEL", "info"),
		ClientOrigin: getEnvWithDefault("CLIENT_ORIGIN", "http://localhost:3000"),

		MongoDBURI:  os.Getenv("MONGODB_URI"),
		MongoDBName: getEnvWithDefault("MONGODB_DB", "recyclewise"),

		AuthJWKSURL: os.Getenv("AUTH_JWKS_URL"),
		AuthURL:     os.Getenv("AUTH_URL"),
		AuthAnonKey: os.Getenv("AUTH_ANON_KEY"),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
	}

	if cfg.MongoDBURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.AuthJWKSURL == "" && cfg.AuthURL == "" {
		return nil, fmt.Errorf("either AUTH_JWKS_URL or AUTH_URL is required")
	}
	if cfg.AuthURL != "" && cfg.AuthAnonKey == "" {
		return nil, fmt.Errorf("AUTH_ANON_KEY is required when AUTH_URL is set")
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) HasCloudinary() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}
