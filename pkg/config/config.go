package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/akfactory/planning/pkg/domain/entities"
)

// Config holds process configuration, loaded from the environment with
// a PLANNING_ prefix. A local .env file is merged in when present.
type Config struct {
	ServiceName string `envconfig:"SERVICE_NAME" default:"planning"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"console"`

	// Stages is the ordered WIP stage list the ledger accepts
	Stages []string `envconfig:"STAGES" default:"cutting,bending,welding,zinc,painting,assembly,machining,polishing"`
}

// Load reads configuration from .env (if present) and the environment
func Load() (*Config, error) {
	// missing .env is the normal case outside local dev
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("planning", &cfg); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}
	return &cfg, nil
}

// StageSet builds the validated stage set from the configured list
func (c *Config) StageSet() (*entities.StageSet, error) {
	stages := make([]entities.Stage, len(c.Stages))
	for i, s := range c.Stages {
		stages[i] = entities.Stage(s)
	}
	return entities.NewStageSet(stages...)
}
