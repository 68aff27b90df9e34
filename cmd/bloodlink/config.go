package main

import (
	"errors"
	"fmt"
	"io/fs"

	"bloodlink/pkg/types"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

func loadConfig() (*types.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	c := new(types.Config)
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.ServerPort == 0 {
		c.ServerPort = 8080
	}

	if c.DefaultSearchRadiusKm <= 0 {
		return nil, fmt.Errorf("DEFAULT_SEARCH_RADIUS_KM must be positive, got %v", c.DefaultSearchRadiusKm)
	}

	return c, nil
}

func requireDatabase(c *types.Config) error {
	if !c.DurableStorageEnabled() {
		return fmt.Errorf("set DATABASE_URL")
	}
	return nil
}

func newLogger(c *types.Config) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parse LOG_LEVEL: %w", err)
	}
	logger.SetLevel(level)

	return logger, nil
}
