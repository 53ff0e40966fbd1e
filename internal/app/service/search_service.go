package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pedrosgmagalhaes/FlightTicker/internal/app/dto"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/pkg/flightprovider"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/pkg/offer"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/pkg/strategy"
)

// NoticeNoProviders is attached to the result metadata when no provider has
// usable credentials. The search still returns an empty, valid result.
const NoticeNoProviders = "no flight provider configured; result is empty"

type OfferCacher interface {
	GetLockKey(req dto.SearchCriteria) string
	GetCacheKey(req dto.SearchCriteria) string
	AcquireLock(ctx context.Context, key string, timeout time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
	GetOffers(ctx context.Context, key string) ([]dto.FlightOffer, error)
	GetMetadata(ctx context.Context, key string) (dto.Metadata, error)
	SetOffers(ctx context.Context,
		key string,
		offers []dto.FlightOffer,
		metadata dto.Metadata,
		expiration time.Duration,
	) error
}

type strategyResult struct {
	Outcome strategy.Outcome
	Error   error
}

// SearchService fans a search out over all strategies, merges their offers
// deterministically and runs the dedupe -> filter -> rank pipeline.
type SearchService struct {
	ProviderFactory *flightprovider.FlightProviderFactory
	Strategies      []strategy.SearchStrategy
	Cache           OfferCacher
	CacheExpiration time.Duration
	LockTimeout     time.Duration
	SearchTimeout   time.Duration
}

func NewSearchService(providerFactory *flightprovider.FlightProviderFactory,
	strategies []strategy.SearchStrategy, cache OfferCacher,
	cacheExpiration, lockTimeout, searchTimeout time.Duration,
) *SearchService {
	return &SearchService{
		ProviderFactory: providerFactory,
		Strategies:      strategies,
		Cache:           cache,
		CacheExpiration: cacheExpiration,
		LockTimeout:     lockTimeout,
		SearchTimeout:   searchTimeout,
	}
}

// Search runs every strategy concurrently against the criteria and returns
// the ranked result. Failures below this boundary always degrade to fewer
// offers; a zero-offer result is a valid outcome, not an error.
// @Summary      Search flight offers
// @Tags         Flights
// @Description  Aggregate flight offers from all providers across all search strategies
// @Param        request  body      dto.SearchCriteria  true  "Search Criteria"
// @Success      200      {object}  dto.SearchResult
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /api/v1/offers/search [post]
func (s *SearchService) Search(
	ctx context.Context,
	req dto.SearchCriteria,
) (dto.SearchResult, error) {
	startTime := time.Now()

	var (
		rawOffers []dto.FlightOffer
		metadata  dto.Metadata
	)

	cacheKey := s.Cache.GetCacheKey(req)
	lockKey := s.Cache.GetLockKey(req)

	cacheHit := false

	rawOffers, err := s.Cache.GetOffers(ctx, cacheKey)
	if err == nil {
		cacheHit = true

		metadata, err = s.Cache.GetMetadata(ctx, cacheKey)
		if err != nil {
			slog.WarnContext(ctx, "failed to get metadata from cache",
				slog.String("error", err.Error()))
		}
	}

	if !cacheHit {
		rawOffers, metadata = s.runStrategies(ctx, req)

		// only one concurrent identical search populates the cache; the
		// others already have their offers and just skip the write
		acquired, err := s.Cache.AcquireLock(ctx, lockKey, s.LockTimeout)
		if err != nil {
			slog.WarnContext(ctx, "failed to acquire cache lock",
				slog.String("error", err.Error()))
		} else if acquired {
			defer s.Cache.ReleaseLock(ctx, lockKey)

			if err := s.Cache.SetOffers(ctx, cacheKey, rawOffers,
				metadata, s.CacheExpiration); err != nil {
				slog.WarnContext(ctx, "failed to store offers in cache",
					slog.String("error", err.Error()))
			}
		}
	}

	deduped := offer.DedupeOffers(rawOffers)
	filtered := offer.FilterOffers(deduped, req)
	ranked := offer.RankOffers(filtered)

	metadata.TotalResults = len(ranked)
	metadata.SearchTimeMs = int(time.Since(startTime).Milliseconds())
	metadata.CacheHit = cacheHit
	if s.ProviderFactory.Len() == 0 {
		metadata.Notice = NoticeNoProviders
	}

	return dto.SearchResult{
		SearchCriteria:  req,
		SearchTimestamp: time.Now().UTC(),
		TotalFound:      len(deduped),
		Metadata:        metadata,
		Offers:          ranked,
	}, nil
}

// runStrategies dispatches all strategies concurrently and waits for every
// one to settle; there is no short-circuit on failure or success. Offers
// merge in declared strategy order regardless of completion order, so the
// dedupe first-occurrence rule sees a deterministic sequence.
func (s *SearchService) runStrategies(ctx context.Context,
	req dto.SearchCriteria,
) ([]dto.FlightOffer, dto.Metadata) {
	if s.SearchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.SearchTimeout)
		defer cancel()
	}

	results := make([]strategyResult, len(s.Strategies))

	var waitGroup sync.WaitGroup
	for i, strat := range s.Strategies {
		waitGroup.Add(1)

		go func(slot int, strat strategy.SearchStrategy) {
			defer waitGroup.Done()

			outcome, err := strat.Execute(ctx, req)
			results[slot] = strategyResult{Outcome: outcome, Error: err}
		}(i, strat)
	}

	waitGroup.Wait()

	metadata := dto.Metadata{
		ProvidersQueried: s.ProviderFactory.Len(),
		StrategiesRun:    len(s.Strategies),
	}

	var allOffers []dto.FlightOffer
	for i, result := range results {
		metadata.CallsIssued += result.Outcome.CallsIssued
		metadata.CallsFailed += result.Outcome.CallsFailed

		if result.Error != nil {
			slog.WarnContext(ctx, "strategy failed",
				slog.String("strategy", s.Strategies[i].Name()),
				slog.String("error", result.Error.Error()))

			continue
		}

		allOffers = append(allOffers, result.Outcome.Offers...)
	}

	return allOffers, metadata
}
