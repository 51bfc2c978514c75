package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Crawl     CrawlConfig
	Cleaner   CleanerConfig
	Search    SearchConfig
	Budget    BudgetConfig
	LLM       LLMConfig
	Cache     CacheConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// CrawlConfig controls the bounded one-hop crawler.
type CrawlConfig struct {
	// MaxDepth is the maximum link distance from the seed.
	MaxDepth int // default: 1

	// Concurrency caps in-flight page fetches.
	Concurrency int // default: 3

	// MaxPages caps the number of successfully fetched pages.
	MaxPages int // default: 10

	// Timeout is the wall-clock budget for the whole crawl.
	Timeout time.Duration // default: 15s
}

// CleanerConfig controls HTML-to-text normalization.
type CleanerConfig struct {
	// ExtractMode selects the normalization strategy.
	// "strip" (default): remove boilerplate elements, keep all remaining text.
	// "readability": Mozilla Readability main-content extraction with strip fallback.
	ExtractMode string // default: "strip"
}

// SearchConfig controls the external snippet fetcher.
type SearchConfig struct {
	// MaxSnippets caps the number of collected result snippets.
	MaxSnippets int // default: 20

	// MinSnippetLen is the minimum visible text length for a snippet to count.
	MinSnippetLen int // default: 10

	// Timeout is the deadline for the single search request.
	Timeout time.Duration // default: 10s
}

// BudgetConfig holds the token ceilings applied by the optimizer, expressed
// in subword tokens of the same encoding the synthesizer uses.
type BudgetConfig struct {
	// CrawledTokens is the ceiling for the crawled-text block alone.
	CrawledTokens int // default: 400000

	// SnippetTokens is the ceiling for the external-snippet block alone.
	SnippetTokens int // default: 50000

	// CombinedTokens is the ceiling for the labeled crawled+external block.
	CombinedTokens int // default: 600000

	// HardCeiling is the backend's absolute prompt limit, re-checked after
	// prompt assembly.
	HardCeiling int // default: 1048575

	// BoundaryRatio is the fraction of a truncated block beyond which a
	// sentence boundary is preferred over the hard token cut.
	BoundaryRatio float64 // default: 0.8
}

// LLMConfig controls the report synthesizer client.
type LLMConfig struct {
	APIKey      string
	Model       string        // default: "gpt-4o-mini"
	BaseURL     string        // default: "https://api.openai.com/v1"
	Temperature float64       // default: 0.3
	Timeout     time.Duration // default: 120s
}

// CacheConfig controls the in-memory report cache.
type CacheConfig struct {
	// Enabled toggles report caching.
	Enabled bool // default: true

	// MaxEntries caps the number of cached reports.
	MaxEntries int // default: 100

	// TTL is how long a cached report stays servable.
	TTL time.Duration // default: 1h
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 1

	// Burst is the maximum burst size per API key.
	Burst int // default: 3
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("SITEBRIEF_HOST", "0.0.0.0"),
			Port: envIntOr("SITEBRIEF_PORT", 8080),
			Mode: envOr("SITEBRIEF_MODE", "release"),
		},
		Crawl: CrawlConfig{
			MaxDepth:    envIntOr("SITEBRIEF_CRAWL_DEPTH", 1),
			Concurrency: envIntOr("SITEBRIEF_CRAWL_CONCURRENCY", 3),
			MaxPages:    envIntOr("SITEBRIEF_CRAWL_MAX_PAGES", 10),
			Timeout:     envDurationOr("SITEBRIEF_CRAWL_TIMEOUT", 15*time.Second),
		},
		Cleaner: CleanerConfig{
			ExtractMode: envOr("SITEBRIEF_EXTRACT_MODE", "strip"),
		},
		Search: SearchConfig{
			MaxSnippets:   envIntOr("SITEBRIEF_SEARCH_MAX_SNIPPETS", 20),
			MinSnippetLen: envIntOr("SITEBRIEF_SEARCH_MIN_SNIPPET_LEN", 10),
			Timeout:       envDurationOr("SITEBRIEF_SEARCH_TIMEOUT", 10*time.Second),
		},
		Budget: BudgetConfig{
			CrawledTokens:  envIntOr("SITEBRIEF_BUDGET_CRAWLED", 400000),
			SnippetTokens:  envIntOr("SITEBRIEF_BUDGET_SNIPPETS", 50000),
			CombinedTokens: envIntOr("SITEBRIEF_BUDGET_COMBINED", 600000),
			HardCeiling:    envIntOr("SITEBRIEF_BUDGET_HARD_CEILING", 1048575),
			BoundaryRatio:  envFloatOr("SITEBRIEF_BOUNDARY_RATIO", 0.8),
		},
		LLM: LLMConfig{
			APIKey:      os.Getenv("SITEBRIEF_LLM_API_KEY"),
			Model:       envOr("SITEBRIEF_LLM_MODEL", "gpt-4o-mini"),
			BaseURL:     envOr("SITEBRIEF_LLM_BASE_URL", "https://api.openai.com/v1"),
			Temperature: envFloatOr("SITEBRIEF_LLM_TEMPERATURE", 0.3),
			Timeout:     envDurationOr("SITEBRIEF_LLM_TIMEOUT", 120*time.Second),
		},
		Cache: CacheConfig{
			Enabled:    envBoolOr("SITEBRIEF_CACHE_ENABLED", true),
			MaxEntries: envIntOr("SITEBRIEF_CACHE_MAX_ENTRIES", 100),
			TTL:        envDurationOr("SITEBRIEF_CACHE_TTL", time.Hour),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("SITEBRIEF_AUTH_ENABLED", false),
			APIKeys: envSliceOr("SITEBRIEF_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("SITEBRIEF_RATE_RPS", 1.0),
			Burst:             envIntOr("SITEBRIEF_RATE_BURST", 3),
		},
		Log: LogConfig{
			Level:  envOr("SITEBRIEF_LOG_LEVEL", "info"),
			Format: envOr("SITEBRIEF_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
