// Package config loads and validates run parameters for an optimization
// run from YAML, with sane defaults for anything omitted.
package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/XiaoConstantine/evolife/pkg/errors"
	"github.com/XiaoConstantine/evolife/pkg/evolution"
	"github.com/XiaoConstantine/evolife/pkg/fitness"
)

// Config is the run-parameter bundle consumed from the outside world.
type Config struct {
	GridSize       int `yaml:"grid_size" validate:"required,min=3"`
	PopulationSize int `yaml:"population_size" validate:"required,min=1"`
	Generations    int `yaml:"generations" validate:"required,min=1"`

	InitialMutationRate    float64 `yaml:"initial_mutation_rate" validate:"gt=0,lte=1"`
	MutationRateLowerLimit float64 `yaml:"mutation_rate_lower_limit" validate:"gt=0,lte=1"`

	TournamentSize       int `yaml:"tournament_size" validate:"min=1"`
	GameIterationLimit   int `yaml:"game_iteration_limit" validate:"min=1"`
	MaxStableGenerations int `yaml:"max_stable_generations" validate:"min=1"`
	MaxGoroutines        int `yaml:"max_goroutines" validate:"min=1"`

	// Seed pins the random source for reproducible runs; 0 seeds from
	// the clock.
	Seed int64 `yaml:"seed"`

	Fitness fitness.Weights `yaml:"fitness"`

	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=DEBUG INFO WARN ERROR"`
}

// Default returns the reference configuration.
func Default() *Config {
	return &Config{
		GridSize:               10,
		PopulationSize:         20,
		Generations:            50,
		InitialMutationRate:    1.0,
		MutationRateLowerLimit: 0.2,
		TournamentSize:         3,
		GameIterationLimit:     150000,
		MaxStableGenerations:   10,
		MaxGoroutines:          8,
		Fitness:                fitness.DefaultWeights(),
		LogLevel:               "INFO",
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.InvalidInput, "failed to read config file")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, errors.InvalidInput, "failed to parse config file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate applies struct-tag validation plus cross-field checks.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			first := errs[0]
			return errors.WithFields(
				errors.New(errors.ValidationFailed, "invalid configuration value"),
				errors.Fields{
					"field": first.Namespace(),
					"tag":   first.Tag(),
					"value": first.Value(),
				})
		}
		return errors.Wrap(err, errors.ValidationFailed, "config validation failed")
	}

	if c.MutationRateLowerLimit > c.InitialMutationRate {
		return errors.New(errors.ValidationFailed,
			"mutation rate lower limit must not exceed the initial mutation rate")
	}
	return nil
}

// EvolutionConfig maps the bundle onto the evolution loop's options.
func (c *Config) EvolutionConfig() *evolution.Config {
	return &evolution.Config{
		GridSize:               c.GridSize,
		PopulationSize:         c.PopulationSize,
		Generations:            c.Generations,
		InitialMutationRate:    c.InitialMutationRate,
		MutationRateLowerLimit: c.MutationRateLowerLimit,
		TournamentSize:         c.TournamentSize,
		IterationLimit:         c.GameIterationLimit,
		MaxStableGenerations:   c.MaxStableGenerations,
		MaxGoroutines:          c.MaxGoroutines,
		Seed:                   c.Seed,
		Weights:                c.Fitness,
	}
}
