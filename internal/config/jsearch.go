package config

import (
	"os"
	"sync"
)

// JSearchConfig points at the RapidAPI JSearch job-listing API.
type JSearchConfig struct {
	APIKey  string
	Host    string
	BaseURL string
}

var (
	jsearchConfig *JSearchConfig
	jsearchOnce   sync.Once
)

func LoadJSearchConfig() *JSearchConfig {
	jsearchOnce.Do(func() {
		host := os.Getenv("JSEARCH_HOST")
		if host == "" {
			host = "jsearch.p.rapidapi.com"
		}
		baseURL := os.Getenv("JSEARCH_BASE_URL")
		if baseURL == "" {
			baseURL = "https://" + host
		}
		jsearchConfig = &JSearchConfig{
			APIKey:  os.Getenv("JSEARCH_API_KEY"),
			Host:    host,
			BaseURL: baseURL,
		}
	})
	return jsearchConfig
}
