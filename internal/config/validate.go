package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks required fields, including those of optional features that
// are switched on.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Primary.DSN == "" {
			return errors.New("database.primary.dsn is required when database.driver is postgres")
		}
	case DriverSQLite:
		if c.Database.Local.Path == "" {
			return errors.New("database.local.path is required when database.driver is sqlite")
		}
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.Database.Driver)
	}

	if strings.TrimSpace(c.Catalog.Path) == "" {
		return errors.New("catalog.path is required")
	}

	// Scoring
	if c.Scoring.BioWeight <= 0 {
		return errors.New("scoring.bio_weight must be a positive integer")
	}
	if c.Scoring.RunnerUpRatio <= 1 {
		return fmt.Errorf("scoring.runner_up_ratio (%g) must be greater than 1", c.Scoring.RunnerUpRatio)
	}
	if c.Scoring.ThirdPlaceRatio <= 1 {
		return fmt.Errorf("scoring.third_place_ratio (%g) must be greater than 1", c.Scoring.ThirdPlaceRatio)
	}

	// Worker config only matters once Redis is configured.
	if c.Redis.Address != "" {
		if c.Worker.Concurrency <= 0 {
			return errors.New("worker.concurrency must be a positive integer")
		}
		if len(c.Worker.Queues) == 0 {
			return errors.New("worker.queues must define at least one queue")
		}
		for name, priority := range c.Worker.Queues {
			if name == "" {
				return errors.New("worker.queues contains an empty queue name")
			}
			if priority <= 0 {
				return fmt.Errorf("worker.queues priority for queue '%s' must be positive", name)
			}
		}
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}

	if c.Suggest.Enabled {
		if c.OpenAI.APIKey == "" {
			return errors.New("openai.api_key (or OPENAI_API_KEY) is required when suggest.enabled is true")
		}
		if c.Suggest.Model == "" {
			return errors.New("suggest.model is required when suggest.enabled is true")
		}
	}

	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}
