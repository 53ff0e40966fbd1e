package strategy

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pedrosgmagalhaes/FlightTicker/internal/app/dto"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/pkg/flightprovider"
	"golang.org/x/sync/semaphore"
)

// Outcome carries the offers one strategy produced plus its provider call
// accounting for the search metadata.
type Outcome struct {
	Offers      []dto.FlightOffer
	CallsIssued int
	CallsFailed int
}

// SearchStrategy derives provider queries from one criteria value and
// returns all offers it found. Implementations absorb per-call failures:
// a failed provider call contributes zero offers and never aborts siblings.
type SearchStrategy interface {
	Name() string
	Execute(ctx context.Context, criteria dto.SearchCriteria) (Outcome, error)
}

type unitResult struct {
	offers []dto.FlightOffer
	err    error
}

// fanOut queries every registered provider once per derived criteria,
// concurrently and bounded by the shared semaphore. All units settle before
// merging; merge order is (criteria order, provider registration order) so
// downstream deduplication sees a deterministic sequence.
func fanOut(ctx context.Context,
	providers []flightprovider.FlightProvider,
	sem *semaphore.Weighted,
	criteriaList []dto.SearchCriteria,
) Outcome {
	if len(providers) == 0 || len(criteriaList) == 0 {
		return Outcome{}
	}

	results := make([]unitResult, len(criteriaList)*len(providers))

	var waitGroup sync.WaitGroup
	for ci, criteria := range criteriaList {
		for pi, provider := range providers {
			waitGroup.Add(1)

			go func(slot int, provider flightprovider.FlightProvider, criteria dto.SearchCriteria) {
				defer waitGroup.Done()

				if sem != nil {
					if err := sem.Acquire(ctx, 1); err != nil {
						results[slot] = unitResult{err: fmt.Errorf("acquire search slot: %w", err)}

						return
					}
					defer sem.Release(1)
				}

				offers, err := safeSearch(ctx, provider, criteria)
				results[slot] = unitResult{offers: offers, err: err}
			}(ci*len(providers)+pi, provider, criteria)
		}
	}

	waitGroup.Wait()

	outcome := Outcome{CallsIssued: len(results)}
	for _, result := range results {
		if result.err != nil {
			slog.WarnContext(ctx, "provider call failed",
				slog.String("error", result.err.Error()))
			outcome.CallsFailed++

			continue
		}

		outcome.Offers = append(outcome.Offers, result.offers...)
	}

	return outcome
}

// safeSearch guards the provider boundary so a panicking gateway degrades to
// a failed call instead of taking down the whole search.
func safeSearch(ctx context.Context,
	provider flightprovider.FlightProvider,
	criteria dto.SearchCriteria,
) (offers []dto.FlightOffer, err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			offers = nil
			err = fmt.Errorf("provider %s panicked: %v", provider.Name(), rvr)
		}
	}()

	offers, err = provider.Search(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("provider %s: %w", provider.Name(), err)
	}

	return offers, nil
}

func cheapestOffer(offers []dto.FlightOffer) dto.FlightOffer {
	cheapest := offers[0]
	for _, offer := range offers[1:] {
		if offer.PriceTotal < cheapest.PriceTotal {
			cheapest = offer
		}
	}

	return cheapest
}
