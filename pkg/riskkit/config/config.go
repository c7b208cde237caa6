// Package config loads the riskkit settings from a YAML file and the
// environment.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/mail"
)

// Config represents the riskkit configuration.
type Config struct {
	// Environment selects the logger flavour (development, production).
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment" validate:"oneof=development production"` //nolint: lll

	Log struct {
		// Level is a zap level name; empty keeps the environment default.
		Level string `env:"LOG_LEVEL" yaml:"level" validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`
	} `yaml:"log"`

	// Mail is checked when a mail is sent, not on load.
	Mail mail.Config `yaml:"mail" validate:"-"`

	Chart struct {
		// Width and Height are the default chart size in pixels.
		Width  int `env:"CHART_WIDTH" env-default:"900" yaml:"width" validate:"gt=0"`
		Height int `env:"CHART_HEIGHT" env-default:"500" yaml:"height" validate:"gt=0"`
	} `yaml:"chart"`
}

var validate = validator.New() //nolint: gochecknoglobals

// Load reads the yaml config file at configPath, or only the environment
// when configPath is empty, and returns a validated Config.
func Load(configPath string) (*Config, error) {
	var cfg Config
	var err error
	if configPath == "" {
		err = cleanenv.ReadEnv(&cfg)
	} else {
		err = cleanenv.ReadConfig(configPath, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
