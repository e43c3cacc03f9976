package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// OpenAI configuration
	OpenAI OpenAIConfig

	// Bedrock configuration
	Bedrock BedrockConfig

	// Provider configuration
	Providers ProviderConfig

	// Search configuration
	Search SearchConfig

	// Analysis configuration
	Analysis AnalysisConfig

	// HTTP configuration
	HTTP HTTPConfig
}

// OpenAIConfig holds OpenAI API configuration
type OpenAIConfig struct {
	APIKey    string
	Models    []string
	MaxTokens int
}

// BedrockConfig holds AWS Bedrock configuration
type BedrockConfig struct {
	Region  string
	ModelID string
	Enabled bool
}

// ProviderConfig holds quote-provider configuration
type ProviderConfig struct {
	// Order is the failover order for quote resolution
	Order          []string
	TimeoutSeconds int
	RetryAttempts  int
	NSEBaseURL     string
	ScreenerURL    string
}

// SearchConfig holds stock-search configuration
type SearchConfig struct {
	TimeoutSeconds int
	MaxResults     int
}

// AnalysisConfig holds analysis pipeline configuration
type AnalysisConfig struct {
	TimeoutSeconds   int
	ConcurrencyLimit int
	RedactionTarget  string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Port               string
	CORSAllowedOrigins string
	ReadTimeoutSec     int
	WriteTimeoutSec    int
}

// DefaultOpenAIModels is the failover order of chat models tried per analysis.
var DefaultOpenAIModels = []string{
	"gpt-4o-mini",
	"gpt-4o",
	"gpt-4-turbo",
	"gpt-4",
	"gpt-3.5-turbo-0125",
	"gpt-3.5-turbo",
}

// DefaultProviderOrder is the quote-resolution failover order.
var DefaultProviderOrder = []string{"yahoo", "nse", "screener", "catalog"}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		OpenAI: OpenAIConfig{
			APIKey:    os.Getenv("OPENAI_API_KEY"),
			Models:    getEnvList("OPENAI_MODELS", DefaultOpenAIModels),
			MaxTokens: getEnvInt("OPENAI_MAX_TOKENS", 2000),
		},
		Bedrock: BedrockConfig{
			Region:  getEnvString("BEDROCK_REGION", "us-east-1"),
			ModelID: getEnvString("BEDROCK_MODEL_ID", "anthropic.claude-3-haiku-20240307-v1:0"),
			Enabled: getEnvBool("BEDROCK_ENABLED", false),
		},
		Providers: ProviderConfig{
			Order:          getEnvList("QUOTE_PROVIDER_ORDER", DefaultProviderOrder),
			TimeoutSeconds: getEnvInt("PROVIDER_TIMEOUT_SECONDS", 10),
			RetryAttempts:  getEnvInt("PROVIDER_RETRY_ATTEMPTS", 2),
			NSEBaseURL:     getEnvString("NSE_BASE_URL", "https://www.nseindia.com"),
			ScreenerURL:    getEnvString("SCREENER_BASE_URL", "https://www.screener.in"),
		},
		Search: SearchConfig{
			TimeoutSeconds: getEnvInt("SEARCH_TIMEOUT_SECONDS", 8),
			MaxResults:     getEnvInt("SEARCH_MAX_RESULTS", 15),
		},
		Analysis: AnalysisConfig{
			TimeoutSeconds:   getEnvInt("ANALYSIS_TIMEOUT_SECONDS", 60),
			ConcurrencyLimit: getEnvInt("ANALYSIS_CONCURRENCY_LIMIT", 3),
			RedactionTarget:  getEnvString("ANALYSIS_BRAND_NAME", "Scout AI"),
		},
		HTTP: HTTPConfig{
			Port:               getEnvString("PORT", "8080"),
			CORSAllowedOrigins: getEnvString("CORS_ALLOWED_ORIGINS", "*"),
			ReadTimeoutSec:     getEnvInt("HTTP_READ_TIMEOUT_SEC", 15),
			WriteTimeoutSec:    getEnvInt("HTTP_WRITE_TIMEOUT_SEC", 90),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Providers.Order) == 0 {
		return fmt.Errorf("QUOTE_PROVIDER_ORDER must name at least one provider")
	}
	known := map[string]bool{"yahoo": true, "nse": true, "screener": true, "catalog": true}
	for _, name := range c.Providers.Order {
		if !known[name] {
			return fmt.Errorf("QUOTE_PROVIDER_ORDER contains unknown provider %q", name)
		}
	}

	if len(c.OpenAI.Models) == 0 {
		return fmt.Errorf("OPENAI_MODELS must name at least one model")
	}

	if c.Providers.TimeoutSeconds <= 0 {
		return fmt.Errorf("PROVIDER_TIMEOUT_SECONDS must be positive, got %d", c.Providers.TimeoutSeconds)
	}
	if c.Search.TimeoutSeconds <= 0 {
		return fmt.Errorf("SEARCH_TIMEOUT_SECONDS must be positive, got %d", c.Search.TimeoutSeconds)
	}
	if c.Search.MaxResults <= 0 {
		return fmt.Errorf("SEARCH_MAX_RESULTS must be positive, got %d", c.Search.MaxResults)
	}
	if c.Analysis.TimeoutSeconds <= 0 {
		return fmt.Errorf("ANALYSIS_TIMEOUT_SECONDS must be positive, got %d", c.Analysis.TimeoutSeconds)
	}
	if c.Analysis.ConcurrencyLimit <= 0 {
		return fmt.Errorf("ANALYSIS_CONCURRENCY_LIMIT must be positive, got %d", c.Analysis.ConcurrencyLimit)
	}

	return nil
}

// HasOpenAI returns true if OpenAI configuration is available
func (c *Config) HasOpenAI() bool {
	return c.OpenAI.APIKey != ""
}

// HasBedrock returns true if Bedrock generation is enabled
func (c *Config) HasBedrock() bool {
	return c.Bedrock.Enabled && c.Bedrock.Region != ""
}

func getEnvString(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// NewTestConfig creates a Config with default values for testing
func NewTestConfig() *Config {
	return &Config{
		OpenAI: OpenAIConfig{
			APIKey:    "",
			Models:    []string{"gpt-4o-mini"},
			MaxTokens: 2000,
		},
		Bedrock: BedrockConfig{
			Region:  "us-east-1",
			ModelID: "anthropic.claude-3-haiku-20240307-v1:0",
			Enabled: false,
		},
		Providers: ProviderConfig{
			Order:          []string{"yahoo", "nse", "screener", "catalog"},
			TimeoutSeconds: 10,
			RetryAttempts:  2,
			NSEBaseURL:     "https://www.nseindia.com",
			ScreenerURL:    "https://www.screener.in",
		},
		Search: SearchConfig{
			TimeoutSeconds: 8,
			MaxResults:     15,
		},
		Analysis: AnalysisConfig{
			TimeoutSeconds:   60,
			ConcurrencyLimit: 3,
			RedactionTarget:  "Scout AI",
		},
		HTTP: HTTPConfig{
			Port:               "8080",
			CORSAllowedOrigins: "*",
			ReadTimeoutSec:     15,
			WriteTimeoutSec:    90,
		},
	}
}
