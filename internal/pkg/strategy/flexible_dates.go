package strategy

import (
	"context"

	"github.com/pedrosgmagalhaes/FlightTicker/internal/app/dto"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/pkg/dates"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/pkg/flightprovider"
	"golang.org/x/sync/semaphore"
)

const FlexibleDatesName = "FlexibleDates"

// FlexibleDates widens the departure (and return) date into a window and
// queries every date combination the window introduces beyond the first,
// which the direct strategy already covers.
type FlexibleDates struct {
	factory    *flightprovider.FlightProviderFactory
	sem        *semaphore.Weighted
	daysBefore int
	daysAfter  int
}

func NewFlexibleDates(factory *flightprovider.FlightProviderFactory,
	sem *semaphore.Weighted, daysBefore, daysAfter int,
) *FlexibleDates {
	return &FlexibleDates{
		factory:    factory,
		sem:        sem,
		daysBefore: daysBefore,
		daysAfter:  daysAfter,
	}
}

func (s *FlexibleDates) Name() string {
	return FlexibleDatesName
}

func (s *FlexibleDates) Execute(ctx context.Context, criteria dto.SearchCriteria) (Outcome, error) {
	departWindow := dates.ExpandOrFallback(criteria.FirstDepartDate(), s.daysBefore, s.daysAfter)

	returnWindow := []string{""}
	if criteria.IsRoundTrip() {
		returnWindow = dates.ExpandOrFallback(criteria.FirstReturnDate(), s.daysBefore, s.daysAfter)
	}

	var derived []dto.SearchCriteria
	for _, departDate := range departWindow {
		for _, returnDate := range returnWindow {
			if departDate == criteria.FirstDepartDate() && returnDate == criteria.FirstReturnDate() {
				continue
			}

			var returnDates []string
			if returnDate != "" {
				returnDates = []string{returnDate}
			}

			derived = append(derived, criteria.WithDates([]string{departDate}, returnDates))
		}
	}

	return fanOut(ctx, s.factory.GetAllProviders(), s.sem, derived), nil
}
