package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/Rainerrr/Mizrahi-Automations/internal/models"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	PGURL string
	Port  string

	// TaseAPIKey enables the closing-price checks; empty skips them.
	TaseAPIKey  string
	TaseBaseURL string

	// TaskRunnerToken enables the automation and denylist fetches; empty
	// skips them.
	TaskRunnerToken   string
	TaskRunnerBaseURL string

	TrusteeName string
	ManagerName string
	// ExpectedPeriod overrides period inference for validation runs. Zero
	// when EXPECTED_PERIOD is unset.
	ExpectedPeriod models.Period

	PriceVarianceThreshold float64
	MaxExceptions          int
	SamplerSeed            int64
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	pgURL := os.Getenv("PG_URL")
	if pgURL == "" {
		return nil, fmt.Errorf("PG_URL environment variable is required")
	}

	trustee := os.Getenv("TRUSTEE_NAME")
	if trustee == "" {
		return nil, fmt.Errorf("TRUSTEE_NAME environment variable is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	var expected models.Period
	if v := os.Getenv("EXPECTED_PERIOD"); v != "" {
		p, err := models.ParsePeriod(v)
		if err != nil {
			return nil, fmt.Errorf("invalid EXPECTED_PERIOD: %w", err)
		}
		expected = p
	}

	threshold, err := envFloat("PRICE_VARIANCE_THRESHOLD", 5.0)
	if err != nil {
		return nil, err
	}
	maxExceptions, err := envInt("MAX_EXCEPTIONS", 100)
	if err != nil {
		return nil, err
	}
	seed, err := envInt64("SAMPLER_SEED", 1)
	if err != nil {
		return nil, err
	}

	return &Config{
		PGURL:                  pgURL,
		Port:                   port,
		TaseAPIKey:             os.Getenv("TASE_API_KEY"),
		TaseBaseURL:            os.Getenv("TASE_BASE_URL"),
		TaskRunnerToken:        os.Getenv("TASKRUNNER_TOKEN"),
		TaskRunnerBaseURL:      os.Getenv("TASKRUNNER_BASE_URL"),
		TrusteeName:            trustee,
		ManagerName:            os.Getenv("MANAGER_NAME"),
		ExpectedPeriod:         expected,
		PriceVarianceThreshold: threshold,
		MaxExceptions:          maxExceptions,
		SamplerSeed:            seed,
	}, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envInt64(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
