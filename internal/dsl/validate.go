package dsl

import (
	"fmt"
	"strings"
	"time"
)

// Validate applies defaults and verifies required fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Server.Name == "" {
		return fmt.Errorf("server.name is required")
	}
	if cfg.Server.Version == "" {
		return fmt.Errorf("server.version is required")
	}
	if cfg.Server.Transport == "" {
		cfg.Server.Transport = "http"
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Server.Transport)) {
	case "http", "stdio":
	default:
		return fmt.Errorf("server.transport must be http or stdio")
	}
	if cfg.Server.HTTP.Listen == "" {
		cfg.Server.HTTP.Listen = ":8080"
	}
	if cfg.Server.HTTP.Path == "" {
		cfg.Server.HTTP.Path = "/mcp"
	}

	if cfg.Server.RateLimit.Enabled {
		if cfg.Server.RateLimit.PerMinute < 0 {
			return fmt.Errorf("server.rate_limit.per_minute must be >= 0")
		}
		if cfg.Server.RateLimit.Burst < 0 {
			return fmt.Errorf("server.rate_limit.burst must be >= 0")
		}
		if cfg.Server.RateLimit.MaxTotal < 0 {
			return fmt.Errorf("server.rate_limit.max_total must be >= 0")
		}
		if cfg.Server.RateLimit.PerMinute == 0 && cfg.Server.RateLimit.MaxTotal == 0 {
			return fmt.Errorf("server.rate_limit requires per_minute or max_total")
		}
		if cfg.Server.RateLimit.PerMinute > 0 && cfg.Server.RateLimit.Burst == 0 {
			cfg.Server.RateLimit.Burst = cfg.Server.RateLimit.PerMinute
		}
	}

	if cfg.Server.QuoteCache.Enabled {
		if cfg.Server.QuoteCache.TTL == "" {
			cfg.Server.QuoteCache.TTL = "1m"
		}
		if _, err := time.ParseDuration(cfg.Server.QuoteCache.TTL); err != nil {
			return fmt.Errorf("server.quote_cache.ttl is invalid: %w", err)
		}
		if cfg.Server.QuoteCache.MaxEntries < 0 {
			return fmt.Errorf("server.quote_cache.max_entries must be >= 0")
		}
		if cfg.Server.QuoteCache.MaxEntries == 0 {
			cfg.Server.QuoteCache.MaxEntries = 1000
		}
	}

	companyNames := map[string]struct{}{}
	for i, company := range cfg.Companies {
		if strings.TrimSpace(company.Name) == "" {
			return fmt.Errorf("companies[%d].name is required", i)
		}
		if _, exists := companyNames[company.Name]; exists {
			return fmt.Errorf("duplicate company name: %s", company.Name)
		}
		companyNames[company.Name] = struct{}{}
		if company.EmployeesCount < 0 {
			return fmt.Errorf("companies[%d].employees_count must be >= 0", i)
		}
	}

	resourceURIs := map[string]struct{}{}
	for i, res := range cfg.Resources {
		if res.URI == "" {
			return fmt.Errorf("resources[%d].uri is required", i)
		}
		if _, exists := resourceURIs[res.URI]; exists {
			return fmt.Errorf("duplicate resource uri: %s", res.URI)
		}
		resourceURIs[res.URI] = struct{}{}
	}

	return nil
}
