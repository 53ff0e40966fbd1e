package config

import (
	"log/slog"
	"time"
)

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Config holds the server configuration. It is built once at process start
// and passed by reference; the core never reads global state.
type Config struct {
	LogLevel  LogLeveler `mapstructure:"LOG_LEVEL"`
	HTTP      HTTP       `mapstructure:",squash"`
	Search    Search     `mapstructure:",squash"`
	Providers Provider   `mapstructure:",squash"`
	Redis     Redis      `mapstructure:",squash"`
}

type HTTP struct {
	Port    int           `mapstructure:"HTTP_PORT"`
	Timeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
}

type Redis struct {
	Addr     string        `mapstructure:"REDIS_ADDR"`
	Password string        `mapstructure:"REDIS_PASSWORD"`
	DB       int           `mapstructure:"REDIS_DB"`
	Timeout  time.Duration `mapstructure:"REDIS_TIMEOUT"`
}

// Search bounds the strategy fan-out of a single search.
type Search struct {
	DefaultCurrency       string        `mapstructure:"DEFAULT_CURRENCY"`
	DefaultLocale         string        `mapstructure:"DEFAULT_LOCALE"`
	Timeout               time.Duration `mapstructure:"SEARCH_TIMEOUT"`
	MaxConcurrentRequests int           `mapstructure:"MAX_CONCURRENT_REQUESTS"`
	FlexDatesWindow       int           `mapstructure:"FLEX_DATES_WINDOW"`
	MaxAirportPairs       int           `mapstructure:"MAX_AIRPORT_PAIRS"`
	MaxSplitCombinations  int           `mapstructure:"MAX_SPLIT_COMBINATIONS"`
}

// AmadeusProvider holds the Amadeus API credentials. The provider is skipped
// when client id or secret is missing.
type AmadeusProvider struct {
	BaseURL      string        `mapstructure:"AMADEUS_BASE_URL"`
	ClientID     string        `mapstructure:"AMADEUS_CLIENT_ID"`
	ClientSecret string        `mapstructure:"AMADEUS_CLIENT_SECRET"`
	Timeout      time.Duration `mapstructure:"AMADEUS_TIMEOUT"`
	RateLimitRPS int           `mapstructure:"AMADEUS_RATE_LIMIT"`
}

func (p AmadeusProvider) IsConfigured() bool {
	return p.ClientID != "" && p.ClientSecret != ""
}

// KiwiProvider holds the Kiwi/Tequila API credentials. The provider is
// skipped when the api key is missing.
type KiwiProvider struct {
	BaseURL      string        `mapstructure:"TEQUILA_BASE_URL"`
	APIKey       string        `mapstructure:"TEQUILA_API_KEY"`
	Timeout      time.Duration `mapstructure:"TEQUILA_TIMEOUT"`
	RateLimitRPS int           `mapstructure:"TEQUILA_RATE_LIMIT"`
}

func (p KiwiProvider) IsConfigured() bool {
	return p.APIKey != ""
}

type Provider struct {
	AmadeusProvider AmadeusProvider `mapstructure:",squash"`
	KiwiProvider    KiwiProvider    `mapstructure:",squash"`
	LockTimeout     time.Duration   `mapstructure:"PROVIDER_LOCK_TIMEOUT"`
	CacheExpiration time.Duration   `mapstructure:"PROVIDER_CACHE_EXPIRATION"`
}
