// Package config reads the environment-driven service configuration.
// Optional integrations degrade gracefully when their credentials are
// absent; only the Postgres DSN is mandatory.
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

var ErrMissingDSN = errors.New("POSTGRES_DSN is not set")

type Config struct {
	ListenAddr  string
	PostgresDSN string

	// Web-analytics provider (GA-style API).
	AnalyticsAPIURL   string
	AnalyticsAPIKey   string
	AnalyticsHostname string

	// Product analytics (PostHog-style API).
	PostHogEnabled   bool
	PostHogAPIURL    string
	PostHogAPIKey    string
	PostHogProjectID string

	// Page-performance audits (Lighthouse-style API).
	SEOAuditEnabled    bool
	PageSpeedAPIURL    string
	PageSpeedAPIKey    string
	SEOAuditDefaultURL string

	// SearchRowLimit caps search-console reads per request. Result sets
	// larger than the cap are silently undercounted; responses carry a
	// truncated flag so callers can tell.
	SearchRowLimit int

	CacheTTL        time.Duration
	UpstreamTimeout time.Duration
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("LISTEN_ADDR", ":8080")
	v.SetDefault("ANALYTICS_API_URL", "")
	v.SetDefault("ANALYTICS_API_KEY", "")
	v.SetDefault("ANALYTICS_HOSTNAME", "")
	v.SetDefault("POSTHOG_ENABLED", false)
	v.SetDefault("POSTHOG_API_URL", "https://app.posthog.com")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_PROJECT_ID", "")
	v.SetDefault("SEO_AUDIT_ENABLED", false)
	v.SetDefault("PAGESPEED_API_URL", "https://www.googleapis.com/pagespeedonline/v5")
	v.SetDefault("PAGESPEED_API_KEY", "")
	v.SetDefault("SEO_AUDIT_DEFAULT_URL", "")
	v.SetDefault("SEARCH_ROW_LIMIT", 100)
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("UPSTREAM_TIMEOUT", "15s")

	cfg := &Config{
		ListenAddr:         v.GetString("LISTEN_ADDR"),
		PostgresDSN:        v.GetString("POSTGRES_DSN"),
		AnalyticsAPIURL:    v.GetString("ANALYTICS_API_URL"),
		AnalyticsAPIKey:    v.GetString("ANALYTICS_API_KEY"),
		AnalyticsHostname:  v.GetString("ANALYTICS_HOSTNAME"),
		PostHogEnabled:     v.GetBool("POSTHOG_ENABLED"),
		PostHogAPIURL:      v.GetString("POSTHOG_API_URL"),
		PostHogAPIKey:      v.GetString("POSTHOG_API_KEY"),
		PostHogProjectID:   v.GetString("POSTHOG_PROJECT_ID"),
		SEOAuditEnabled:    v.GetBool("SEO_AUDIT_ENABLED"),
		PageSpeedAPIURL:    v.GetString("PAGESPEED_API_URL"),
		PageSpeedAPIKey:    v.GetString("PAGESPEED_API_KEY"),
		SEOAuditDefaultURL: v.GetString("SEO_AUDIT_DEFAULT_URL"),
		SearchRowLimit:     v.GetInt("SEARCH_ROW_LIMIT"),
		CacheTTL:           v.GetDuration("CACHE_TTL"),
		UpstreamTimeout:    v.GetDuration("UPSTREAM_TIMEOUT"),
	}

	if cfg.PostgresDSN == "" {
		return nil, ErrMissingDSN
	}
	if cfg.SearchRowLimit <= 0 {
		cfg.SearchRowLimit = 100
	}

	return cfg, nil
}

// AnalyticsConfigured reports whether real traffic queries can be made.
// Without credentials the service serves deterministic demo data.
func (c *Config) AnalyticsConfigured() bool {
	return c.AnalyticsAPIURL != "" && c.AnalyticsAPIKey != ""
}

func (c *Config) PostHogConfigured() bool {
	return c.PostHogEnabled && c.PostHogAPIKey != "" && c.PostHogProjectID != ""
}

func (c *Config) SEOAuditConfigured() bool {
	return c.SEOAuditEnabled && c.PageSpeedAPIKey != ""
}
