package strategy

import (
	"context"

	"github.com/pedrosgmagalhaes/FlightTicker/internal/app/dto"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/pkg/airport"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/pkg/flightprovider"
	"golang.org/x/sync/semaphore"
)

const AlternativeAirportsName = "AlternativeAirports"

// AlternativeAirports resolves the origin and destination through the airport
// group table and queries the cross product of alternate pairs, excluding the
// original pair the direct strategy covers.
type AlternativeAirports struct {
	factory         *flightprovider.FlightProviderFactory
	sem             *semaphore.Weighted
	maxCombinations int
}

func NewAlternativeAirports(factory *flightprovider.FlightProviderFactory,
	sem *semaphore.Weighted, maxCombinations int,
) *AlternativeAirports {
	return &AlternativeAirports{
		factory:         factory,
		sem:             sem,
		maxCombinations: maxCombinations,
	}
}

func (s *AlternativeAirports) Name() string {
	return AlternativeAirportsName
}

func (s *AlternativeAirports) Execute(ctx context.Context, criteria dto.SearchCriteria) (Outcome, error) {
	origins := airport.Expand(criteria.Origin)
	destinations := airport.Expand(criteria.Destination)

	var returnDates []string
	if criteria.IsRoundTrip() {
		returnDates = []string{criteria.FirstReturnDate()}
	}

	base := criteria.WithDates([]string{criteria.FirstDepartDate()}, returnDates)

	var derived []dto.SearchCriteria
	for _, origin := range origins {
		for _, destination := range destinations {
			if origin == destination {
				continue
			}

			if origin == criteria.Origin && destination == criteria.Destination {
				continue
			}

			derived = append(derived, base.WithRoute(origin, destination))

			if len(derived) == s.maxCombinations {
				return fanOut(ctx, s.factory.GetAllProviders(), s.sem, derived), nil
			}
		}
	}

	return fanOut(ctx, s.factory.GetAllProviders(), s.sem, derived), nil
}
