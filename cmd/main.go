package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-redis/redis_rate/v10"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/app/config"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/app/dto"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/app/endpoints"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/app/service"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/app/transport"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/pkg/airport"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/pkg/flightprovider"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/pkg/flightprovider/amadeus"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/pkg/flightprovider/kiwi"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/pkg/logger"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/pkg/offer"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/pkg/strategy"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/semaphore"
)

// @title           FlightTicker API
// @version         0.0.1
// @description     flight offer aggregation and ranking service
// @host      localhost:8080
// @BasePath  /
func main() {
	cfg := config.MustInitConfig(".env")
	logger.InitStructuredLogger(cfg.LogLevel)

	slog.Debug("config loaded successfully", slog.Any("config", cfg))
	runApp(cfg)
}

func runApp(cfg config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slog.InfoContext(ctx, "starting...", slog.String("log_level", string(cfg.LogLevel)))

	var waitGroup sync.WaitGroup

	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		startHTTPServer(ctx, cfg)
	}()

	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case sig := <-sigChannel:
		cancel()
		slog.InfoContext(ctx, "received OS signal. Exiting...", slog.String("signal", sig.String()))
	case <-ctx.Done():
		slog.ErrorContext(ctx, "failed to start HTTP server")
	}

	waitGroup.Wait()
	slog.InfoContext(ctx, "All service closed...")
}

func startHTTPServer(ctx context.Context, cfg config.Config) {
	endpts := makeEndpoints(ctx, &cfg)
	router := transport.MakeHTTPRouter(&cfg, endpts)
	server := &http.Server{
		Handler:      router,
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		WriteTimeout: cfg.HTTP.Timeout,
		ReadTimeout:  cfg.HTTP.Timeout,
	}

	slog.Info("running HTTP server...", slog.Int("port", cfg.HTTP.Port))

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "failed to start HTTP server", slog.String("error", err.Error()))
		}
	}()

	<-ctx.Done()

	if err := server.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to shutdown HTTP server", slog.String("error", err.Error()))
	}

	slog.InfoContext(ctx, "HTTP server shutdown gracefully")
}

func makeEndpoints(ctx context.Context, cfg *config.Config) endpoints.Endpoints {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := dto.InitValidator(); err != nil {
		slog.ErrorContext(ctx, "failed to init validator", slog.String("error", err.Error()))
		panic(err)
	}

	factory := makeProviderFactory(ctx, cfg, redisClient)

	return endpoints.Endpoints{
		SearchEndpoint: makeSearchEndpoint(factory, redisClient, cfg),
	}
}

// makeProviderFactory registers every provider with usable credentials.
// An unconfigured provider is skipped with a warning, not an error.
func makeProviderFactory(ctx context.Context, cfg *config.Config,
	redisClient *redis.Client) *flightprovider.FlightProviderFactory {

	limiter := redis_rate.NewLimiter(redisClient)

	factory := flightprovider.NewFlightProviderFactory()

	if cfg.Providers.KiwiProvider.IsConfigured() {
		factory.AddProvider(kiwi.NewProvider(flightprovider.FlightProviderConfig{
			BaseURL:         cfg.Providers.KiwiProvider.BaseURL,
			APIKey:          cfg.Providers.KiwiProvider.APIKey,
			Timeout:         cfg.Providers.KiwiProvider.Timeout,
			RateLimitRPS:    cfg.Providers.KiwiProvider.RateLimitRPS,
			Limiter:         limiter,
			DefaultCurrency: cfg.Search.DefaultCurrency,
			DefaultLocale:   cfg.Search.DefaultLocale,
		}))
	} else {
		slog.WarnContext(ctx, "provider not configured, skipping",
			slog.String("provider", kiwi.ProviderName))
	}

	if cfg.Providers.AmadeusProvider.IsConfigured() {
		factory.AddProvider(amadeus.NewProvider(flightprovider.FlightProviderConfig{
			BaseURL:         cfg.Providers.AmadeusProvider.BaseURL,
			ClientID:        cfg.Providers.AmadeusProvider.ClientID,
			ClientSecret:    cfg.Providers.AmadeusProvider.ClientSecret,
			Timeout:         cfg.Providers.AmadeusProvider.Timeout,
			RateLimitRPS:    cfg.Providers.AmadeusProvider.RateLimitRPS,
			Limiter:         limiter,
			DefaultCurrency: cfg.Search.DefaultCurrency,
			DefaultLocale:   cfg.Search.DefaultLocale,
		}))
	} else {
		slog.WarnContext(ctx, "provider not configured, skipping",
			slog.String("provider", amadeus.ProviderName))
	}

	if factory.Len() == 0 {
		slog.WarnContext(ctx, "no flight provider configured; searches will return empty results")
	}

	return factory
}

func makeSearchEndpoint(factory *flightprovider.FlightProviderFactory,
	redisClient *redis.Client, cfg *config.Config) endpoints.SearchEndpoint {

	// one shared slot pool caps concurrent provider calls per process
	sem := semaphore.NewWeighted(int64(cfg.Search.MaxConcurrentRequests))

	strategies := []strategy.SearchStrategy{
		strategy.NewDirect(factory, sem),
		strategy.NewFlexibleDates(factory, sem,
			cfg.Search.FlexDatesWindow, cfg.Search.FlexDatesWindow),
		strategy.NewAlternativeAirports(factory, sem, cfg.Search.MaxAirportPairs),
		strategy.NewSplitTickets(factory, sem,
			airport.MajorHubs, cfg.Search.MaxSplitCombinations),
	}

	offerCache := offer.NewOfferCache(redisClient)

	searchService := service.NewSearchService(factory, strategies, offerCache,
		cfg.Providers.CacheExpiration, cfg.Providers.LockTimeout, cfg.Search.Timeout)

	return endpoints.MakeSearchEndpoint(searchService)
}
