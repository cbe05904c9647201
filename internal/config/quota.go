package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	FeatureDailyAnalysis = "dailyAnalysis"
	FeatureDailySearch   = "dailySearch"
)

const (
	QuotaBackendMemory   = "memory"
	QuotaBackendPostgres = "postgres"
	QuotaBackendRedis    = "redis"
)

// QuotaConfig holds per-feature daily limits and the store backing the ledger.
type QuotaConfig struct {
	Backend string         `yaml:"backend"`
	Limits  map[string]int `yaml:"limits"`
}

var (
	quotaConfig *QuotaConfig
	quotaOnce   sync.Once
)

func defaultQuotaConfig() *QuotaConfig {
	return &QuotaConfig{
		Backend: QuotaBackendPostgres,
		Limits: map[string]int{
			FeatureDailyAnalysis: 5,
			FeatureDailySearch:   20,
		},
	}
}

func LoadQuotaConfig() *QuotaConfig {
	quotaOnce.Do(func() {
		path := os.Getenv("QUOTA_CONFIG_PATH")
		if path == "" {
			path = "configs/quota.yaml"
		}
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Warning: Could not read %s: %v", path, err)
		}
		cfg, err := parseQuotaConfig(data, os.Getenv)
		if err != nil {
			log.Fatalf("Error parsing %s: %v", path, err)
		}
		quotaConfig = cfg
	})
	return quotaConfig
}

// parseQuotaConfig overlays the YAML document (may be empty) and then the
// environment on top of the defaults.
func parseQuotaConfig(data []byte, getenv func(string) string) (*QuotaConfig, error) {
	cfg := defaultQuotaConfig()

	if len(data) > 0 {
		var file QuotaConfig
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, err
		}
		if file.Backend != "" {
			cfg.Backend = file.Backend
		}
		for feature, limit := range file.Limits {
			cfg.Limits[feature] = limit
		}
	}

	if backend := getenv("QUOTA_BACKEND"); backend != "" {
		cfg.Backend = backend
	}
	envLimits := map[string]string{
		FeatureDailyAnalysis: "QUOTA_DAILY_ANALYSIS",
		FeatureDailySearch:   "QUOTA_DAILY_SEARCH",
	}
	for feature, key := range envLimits {
		raw := getenv(key)
		if raw == "" {
			continue
		}
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
		cfg.Limits[feature] = limit
	}

	switch cfg.Backend {
	case QuotaBackendMemory, QuotaBackendPostgres, QuotaBackendRedis:
	default:
		return nil, fmt.Errorf("unknown quota backend %q", cfg.Backend)
	}
	for feature, limit := range cfg.Limits {
		if limit < 0 {
			return nil, fmt.Errorf("negative limit for %s", feature)
		}
	}
	return cfg, nil
}

func (c *QuotaConfig) Limit(feature string) int {
	return c.Limits[feature]
}
