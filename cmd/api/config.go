package main

import (
	"io"
	"log"
	"os"

	"homefinder-listings/pkg/config"
	"homefinder-listings/pkg/logger"

	"github.com/joho/godotenv"
)

// load environment variables and configuration, then start the logger
func LoadConfiguration() (*config.Config, func()) {
	loadEnvironment()
	cfg := loadConfigFile()
	return cfg, initializeLogger(cfg)
}

// load environment variables from .env file
func loadEnvironment() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, relying on system environment variables: %v", err)
	}
}

// load the application configuration from a YAML file
func loadConfigFile() *config.Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Printf("Config file %s not found, using defaults and environment", configPath)
		configPath = ""
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	return cfg
}

// initializeLogger sends logs to stdout and, when enabled, to Fluent Bit.
// The returned func flushes and closes the Fluent connection.
func initializeLogger(cfg *config.Config) func() {
	var out io.Writer = os.Stdout
	closeFn := func() {}

	if cfg.Fluent.Enabled {
		writer, client, err := logger.NewFluentWriter(cfg.Fluent.Host, cfg.Fluent.Port, cfg.Fluent.Tag)
		if err != nil {
			log.Printf("Fluent Bit unavailable, logging to stdout only: %v", err)
		} else {
			out = io.MultiWriter(os.Stdout, writer)
			closeFn = func() { client.Close() }
		}
	}

	logger.InitLogger(out, cfg.Log.Level)
	return closeFn
}
