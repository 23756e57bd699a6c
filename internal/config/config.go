package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Database struct {
		Driver  string `mapstructure:"driver"`
		Primary struct {
			DSN string `mapstructure:"dsn"`
		} `mapstructure:"primary"`
		Local struct {
			Path string `mapstructure:"path"`
		} `mapstructure:"local"`
	} `mapstructure:"database"`

	Catalog struct {
		Path string `mapstructure:"path"` // file path or http(s) URL
	} `mapstructure:"catalog"`

	Scoring struct {
		BioWeight       int     `mapstructure:"bio_weight"`
		RunnerUpRatio   float64 `mapstructure:"runner_up_ratio"`
		ThirdPlaceRatio float64 `mapstructure:"third_place_ratio"`
	} `mapstructure:"scoring"`

	Redis struct {
		Address  string `mapstructure:"address"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	Worker struct {
		Concurrency int            `mapstructure:"concurrency"`
		Queues      map[string]int `mapstructure:"queues"`
	} `mapstructure:"worker"`

	Server struct {
		Addr string `mapstructure:"addr"`
		Port int    `mapstructure:"port"`
	} `mapstructure:"server"`

	Suggest struct {
		Enabled     bool   `mapstructure:"enabled"`
		Model       string `mapstructure:"model"`
		Prompt      string `mapstructure:"prompt"` // path to a prompt template
		MaxKeywords int    `mapstructure:"max_keywords"`
	} `mapstructure:"suggest"`

	OpenAI struct {
		APIKey  string `mapstructure:"api_key"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"openai"`

	Logging struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"` // text or json
	} `mapstructure:"logging"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.local.path", "niche.db")
	v.SetDefault("catalog.path", "categories.json")

	v.SetDefault("scoring.bio_weight", 2)
	v.SetDefault("scoring.runner_up_ratio", 10.0)
	v.SetDefault("scoring.third_place_ratio", 15.0)

	v.SetDefault("redis.db", 0)
	v.SetDefault("worker.concurrency", 10)
	v.SetDefault("worker.queues", map[string]int{"categorization": 1})

	v.SetDefault("server.addr", "127.0.0.1")
	v.SetDefault("server.port", 8080)

	v.SetDefault("suggest.model", "gpt-4o-mini")
	v.SetDefault("suggest.max_keywords", 10)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// LoadConfig reads configuration from path, or from config.yaml in the
// working directory when path is empty. Environment variables prefixed with
// NICHE_ override file values (scoring.bio_weight -> NICHE_SCORING_BIO_WEIGHT),
// and OPENAI_API_KEY sets openai.api_key.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("NICHE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("openai.api_key", "NICHE_OPENAI_API_KEY", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("bind openai.api_key: %w", err)
	}
	// AutomaticEnv only applies to keys viper already knows about.
	for _, key := range []string{"database.primary.dsn", "redis.address", "redis.password", "openai.base_url", "suggest.prompt", "suggest.enabled"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit path that does not exist is an error; a missing default file is not.
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return &config, nil
}
