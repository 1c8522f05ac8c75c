package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/device-inventory/pkg/middleware"
	"github.com/JaimeStill/device-inventory/pkg/openapi"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "API_CORS_ENABLED",
	Origins:          "API_CORS_ORIGINS",
	AllowedMethods:   "API_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "API_CORS_ALLOWED_HEADERS",
	AllowCredentials: "API_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "API_CORS_MAX_AGE",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "API_OPENAPI_TITLE",
	Description: "API_OPENAPI_DESCRIPTION",
}

// APIConfig configures the JSON API module.
type APIConfig struct {
	BasePath string                `toml:"base_path"`
	CORS     middleware.CORSConfig `toml:"cors"`
	OpenAPI  openapi.Config        `toml:"openapi"`
}

func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	c.CORS.Merge(&overlay.CORS)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
}

// AppConfig configures the server-rendered dashboard module.
type AppConfig struct {
	BasePath string `toml:"base_path"`
	Title    string `toml:"title"`
}

func (c *AppConfig) Finalize() error {
	if c.BasePath == "" {
		c.BasePath = "/app"
	}
	if c.Title == "" {
		c.Title = "Device Inventory"
	}
	if v := os.Getenv("APP_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	return nil
}

func (c *AppConfig) Merge(overlay *AppConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
}

// UploadsConfig configures where device artifacts are stored.
type UploadsConfig struct {
	// Bucket is the top-level storage prefix for device downloads.
	Bucket string `toml:"bucket"`
}

func (c *UploadsConfig) Finalize() error {
	if c.Bucket == "" {
		c.Bucket = "device-downloads"
	}
	if v := os.Getenv("UPLOADS_BUCKET"); v != "" {
		c.Bucket = v
	}
	return nil
}

func (c *UploadsConfig) Merge(overlay *UploadsConfig) {
	if overlay.Bucket != "" {
		c.Bucket = overlay.Bucket
	}
}
