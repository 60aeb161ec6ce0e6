package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var ErrMissingRequired = errors.New("missing required configuration")

type Config struct {
	DBHost string `envconfig:"DB_HOST" default:"postgres"`
	DBPort int    `envconfig:"DB_PORT" default:"5432"`
	DBUser string `envconfig:"DB_USER" default:"socialpulse"`
	DBPass string `envconfig:"DB_PASS" default:"password"`
	DBName string `envconfig:"DB_NAME" default:"socialpulse"`

	// Graph API
	MetaToken    string `envconfig:"META_TOKEN"`
	GraphBaseURL string `envconfig:"GRAPH_BASE_URL" default:"https://graph.facebook.com/v20.0"`
	PageID       string `envconfig:"PAGE_ID"`

	// Classification
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`

	// Enrichment batching
	BatchSize  int `envconfig:"ENRICH_BATCH_SIZE" default:"10"`
	DelayMinMS int `envconfig:"ENRICH_DELAY_MIN_MS" default:"1000"`
	DelayMaxMS int `envconfig:"ENRICH_DELAY_MAX_MS" default:"3000"`

	MigrationPath string `envconfig:"MIGRATION_PATH" default:"file://migrations"`

	// Work item hierarchy (Azure DevOps). When PruneWorkItemID is set the run
	// performs a subtree delete instead of the social sync.
	DevOpsOrganization string `envconfig:"DEVOPS_ORGANIZATION"`
	DevOpsProject      string `envconfig:"DEVOPS_PROJECT"`
	DevOpsPAT          string `envconfig:"DEVOPS_PAT"`
	PruneWorkItemID    int    `envconfig:"PRUNE_WORK_ITEM_ID" default:"0"`

	// Resilience
	BootstrapRetryAttempts     int `envconfig:"BOOTSTRAP_RETRY_ATTEMPTS" default:"10"`
	BootstrapRetryDelaySeconds int `envconfig:"BOOTSTRAP_RETRY_DELAY_SECONDS" default:"2"`
}

func Load() (*Config, error) {
	// Try loading .env from current dir and repo root
	// Ignore errors, as env vars might be set in the shell
	_ = godotenv.Load(".env")

	cwd, _ := os.Getwd()
	rootEnv := filepath.Join(cwd, "../.env")
	_ = godotenv.Load(rootEnv)

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DBHost == "" {
		return fmt.Errorf("%w: DB_HOST", ErrMissingRequired)
	}
	if c.DBUser == "" {
		return fmt.Errorf("%w: DB_USER", ErrMissingRequired)
	}
	if c.DBName == "" {
		return fmt.Errorf("%w: DB_NAME", ErrMissingRequired)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: ENRICH_BATCH_SIZE must be positive", ErrMissingRequired)
	}
	if c.DelayMaxMS < c.DelayMinMS {
		return fmt.Errorf("%w: ENRICH_DELAY_MAX_MS below ENRICH_DELAY_MIN_MS", ErrMissingRequired)
	}
	return nil
}
