package strategy

import (
	"context"

	"github.com/pedrosgmagalhaes/FlightTicker/internal/app/dto"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/pkg/flightprovider"
	"golang.org/x/sync/semaphore"
)

const DirectName = "Direct"

// Direct queries every provider once with the unmodified criteria, using
// only the first departure and return date.
type Direct struct {
	factory *flightprovider.FlightProviderFactory
	sem     *semaphore.Weighted
}

func NewDirect(factory *flightprovider.FlightProviderFactory, sem *semaphore.Weighted) *Direct {
	return &Direct{
		factory: factory,
		sem:     sem,
	}
}

func (s *Direct) Name() string {
	return DirectName
}

func (s *Direct) Execute(ctx context.Context, criteria dto.SearchCriteria) (Outcome, error) {
	var returnDates []string
	if criteria.IsRoundTrip() {
		returnDates = []string{criteria.FirstReturnDate()}
	}

	derived := criteria.WithDates([]string{criteria.FirstDepartDate()}, returnDates)

	return fanOut(ctx, s.factory.GetAllProviders(), s.sem, []dto.SearchCriteria{derived}), nil
}
