//go:build unit

package offer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/app/dto"
	"github.com/stretchr/testify/assert"
)

func multiStopOffer(price float64, stops int) dto.FlightOffer {
	return dto.FlightOffer{
		Provider:   "Amadeus",
		PriceTotal: price,
		Currency:   "EUR",
		Segments:   make([]dto.FlightSegment, stops+1),
	}
}

func TestFilterOffers(t *testing.T) {
	maxPrice := func(v float64) *float64 { return &v }
	maxStops := func(v int) *int { return &v }

	offers := []dto.FlightOffer{
		multiStopOffer(800, 0),
		multiStopOffer(1500, 1),
		multiStopOffer(2400, 0),
		multiStopOffer(600, 3),
	}

	filterRequest := func(criteria dto.SearchCriteria, wantPrices []float64) func(t *testing.T) {
		return func(t *testing.T) {
			got := FilterOffers(offers, criteria)

			prices := make([]float64, len(got))
			for i, offer := range got {
				prices[i] = offer.PriceTotal
			}

			diff := cmp.Diff(wantPrices, prices)
			if diff != "" {
				t.Fatalf("FilterOffers mismatch (-want +got):\n%s", diff)
			}
		}
	}

	t.Run("no_constraints_keeps_all", filterRequest(
		dto.SearchCriteria{}, []float64{800, 1500, 2400, 600}))
	t.Run("max_price", filterRequest(
		dto.SearchCriteria{MaxPrice: maxPrice(2000)}, []float64{800, 1500, 600}))
	t.Run("max_stops", filterRequest(
		dto.SearchCriteria{MaxStops: maxStops(1)}, []float64{800, 1500, 2400}))
	t.Run("both_constraints", filterRequest(
		dto.SearchCriteria{MaxPrice: maxPrice(2000), MaxStops: maxStops(0)},
		[]float64{800}))
	t.Run("boundary_price_kept", filterRequest(
		dto.SearchCriteria{MaxPrice: maxPrice(800)}, []float64{800, 600}))

	t.Run("filters_commute", func(t *testing.T) {
		priceOnly := dto.SearchCriteria{MaxPrice: maxPrice(2000)}
		stopsOnly := dto.SearchCriteria{MaxStops: maxStops(1)}

		priceThenStops := FilterOffers(FilterOffers(offers, priceOnly), stopsOnly)
		stopsThenPrice := FilterOffers(FilterOffers(offers, stopsOnly), priceOnly)

		assert.Equal(t, priceThenStops, stopsThenPrice)
	})
}
