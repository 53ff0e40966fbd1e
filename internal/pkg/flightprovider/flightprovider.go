package flightprovider

import (
	"context"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/app/dto"
)

// FlightProviderConfig carries the per-gateway settings injected at wiring
// time. Credentials stay inside the gateway; the core never sees them.
type FlightProviderConfig struct {
	BaseURL         string
	APIKey          string
	ClientID        string
	ClientSecret    string
	Timeout         time.Duration
	RateLimitRPS    int
	Limiter         *redis_rate.Limiter
	DefaultCurrency string
	DefaultLocale   string
}

// FlightProvider is the uniform search capability implemented per external
// travel API. Implementations must not panic past this boundary; a failed
// call returns an error and contributes zero offers.
type FlightProvider interface {
	Name() string
	Search(ctx context.Context, criteria dto.SearchCriteria) ([]dto.FlightOffer, error)
}

// FlightProviderFactory holds the registered providers. Registration order is
// preserved so fan-out and deduplication see a deterministic provider
// sequence.
type FlightProviderFactory struct {
	providers []FlightProvider
	byName    map[string]FlightProvider
}

func NewFlightProviderFactory() *FlightProviderFactory {
	return &FlightProviderFactory{
		byName: make(map[string]FlightProvider),
	}
}

func (f *FlightProviderFactory) AddProvider(provider FlightProvider) {
	if _, exists := f.byName[provider.Name()]; exists {
		return
	}

	f.byName[provider.Name()] = provider
	f.providers = append(f.providers, provider)
}

func (f *FlightProviderFactory) GetProvider(name string) FlightProvider {
	return f.byName[name]
}

// GetAllProviders returns providers in registration order.
func (f *FlightProviderFactory) GetAllProviders() []FlightProvider {
	return f.providers
}

func (f *FlightProviderFactory) Len() int {
	return len(f.providers)
}
