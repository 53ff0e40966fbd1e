//go:build unit

package strategy

import (
	"context"
	"testing"

	"github.com/pedrosgmagalhaes/FlightTicker/internal/app/dto"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/pkg/flightprovider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/sync/semaphore"
)

func routeMatcher(origin, destination string) interface{} {
	return mock.MatchedBy(func(c dto.SearchCriteria) bool {
		return c.Origin == origin && c.Destination == destination
	})
}

func splitFactory(t *testing.T) *flightprovider.FlightProviderFactory {
	t.Helper()

	provider := newMockProvider(t, "p1")
	provider.On("Search", mock.Anything, routeMatcher("RIO", "MAD")).
		Return([]dto.FlightOffer{
			legOffer("p1", "GIG", "MAD", 350),
			legOffer("p1", "GIG", "MAD", 300),
		}, nil)
	provider.On("Search", mock.Anything, routeMatcher("MAD", "LIS")).
		Return([]dto.FlightOffer{legOffer("p1", "MAD", "LIS", 900)}, nil)

	factory := flightprovider.NewFlightProviderFactory()
	factory.AddProvider(provider)

	return factory
}

func TestSplitTickets_CombinesCheapestLegs(t *testing.T) {
	split := NewSplitTickets(splitFactory(t), semaphore.NewWeighted(4), []string{"MAD"}, 15)

	criteria := oneWayCriteria()
	criteria.CabinClass = dto.CabinEconomy

	outcome, err := split.Execute(context.Background(), criteria)

	assert.NoError(t, err)
	assert.Equal(t, 2, outcome.CallsIssued)

	if assert.Len(t, outcome.Offers, 1) {
		combined := outcome.Offers[0]
		assert.Equal(t, SplitTicketsName, combined.Provider)
		assert.Equal(t, 1200.0, combined.PriceTotal)
		assert.Equal(t, "EUR", combined.Currency)
		assert.Equal(t, dto.CabinEconomy, combined.CabinClass)
		assert.Equal(t, SplitTicketNote, combined.Notes)
		assert.Equal(t, "GIG → MAD → LIS", combined.RouteSummary())
	}
}

func TestSplitTickets_DiscardsCombinationAboveMaxPrice(t *testing.T) {
	split := NewSplitTickets(splitFactory(t), semaphore.NewWeighted(4), []string{"MAD"}, 15)

	limit := 1000.0
	criteria := oneWayCriteria()
	criteria.MaxPrice = &limit

	outcome, err := split.Execute(context.Background(), criteria)

	assert.NoError(t, err)
	// legs sum to 1200, above the cap
	assert.Empty(t, outcome.Offers)
	assert.Equal(t, 2, outcome.CallsIssued)
}

func TestSplitTickets_RoundTripReturnsNothing(t *testing.T) {
	provider := newMockProvider(t, "p1")

	factory := flightprovider.NewFlightProviderFactory()
	factory.AddProvider(provider)

	split := NewSplitTickets(factory, semaphore.NewWeighted(4), []string{"MAD"}, 15)

	criteria := oneWayCriteria()
	criteria.ReturnDates = []string{"2025-03-27"}

	outcome, err := split.Execute(context.Background(), criteria)

	assert.NoError(t, err)
	assert.Empty(t, outcome.Offers)
	assert.Equal(t, 0, outcome.CallsIssued)
}

func TestSplitTickets_EmptyLegYieldsNothing(t *testing.T) {
	provider := newMockProvider(t, "p1")
	provider.On("Search", mock.Anything, routeMatcher("RIO", "MAD")).
		Return([]dto.FlightOffer{legOffer("p1", "GIG", "MAD", 300)}, nil)
	provider.On("Search", mock.Anything, routeMatcher("MAD", "LIS")).
		Return(nil, nil)

	factory := flightprovider.NewFlightProviderFactory()
	factory.AddProvider(provider)

	split := NewSplitTickets(factory, semaphore.NewWeighted(4), []string{"MAD"}, 15)

	outcome, err := split.Execute(context.Background(), oneWayCriteria())

	assert.NoError(t, err)
	assert.Empty(t, outcome.Offers)
}

func TestSplitTickets_BaggageRequiresBothLegs(t *testing.T) {
	withBag := legOffer("p1", "GIG", "MAD", 300)
	withBag.BaggageIncluded = true

	provider := newMockProvider(t, "p1")
	provider.On("Search", mock.Anything, routeMatcher("RIO", "MAD")).
		Return([]dto.FlightOffer{withBag}, nil)
	provider.On("Search", mock.Anything, routeMatcher("MAD", "LIS")).
		Return([]dto.FlightOffer{legOffer("p1", "MAD", "LIS", 900)}, nil)

	factory := flightprovider.NewFlightProviderFactory()
	factory.AddProvider(provider)

	split := NewSplitTickets(factory, semaphore.NewWeighted(4), []string{"MAD"}, 15)

	outcome, err := split.Execute(context.Background(), oneWayCriteria())

	assert.NoError(t, err)
	if assert.Len(t, outcome.Offers, 1) {
		assert.False(t, outcome.Offers[0].BaggageIncluded)
	}
}

func TestSplitTickets_CapsCombinations(t *testing.T) {
	provider := newMockProvider(t, "p1")
	provider.On("Search", mock.Anything, mock.Anything).Return(nil, nil)

	factory := flightprovider.NewFlightProviderFactory()
	factory.AddProvider(provider)

	split := NewSplitTickets(factory, semaphore.NewWeighted(4),
		[]string{"MAD", "CDG", "AMS", "FRA"}, 2)

	outcome, err := split.Execute(context.Background(), oneWayCriteria())

	assert.NoError(t, err)
	// two combinations, two legs each
	assert.Equal(t, 4, outcome.CallsIssued)
}
