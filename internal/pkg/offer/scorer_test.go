//go:build unit

package offer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/app/dto"
	"github.com/stretchr/testify/assert"
)

func scorableOffer(price float64, stops int, baggage bool, cabin string) dto.FlightOffer {
	return dto.FlightOffer{
		Provider:        "Amadeus",
		PriceTotal:      price,
		Currency:        "EUR",
		BaggageIncluded: baggage,
		CabinClass:      cabin,
		Segments:        make([]dto.FlightSegment, stops+1),
	}
}

func TestRankOffers_Empty(t *testing.T) {
	assert.Empty(t, RankOffers(nil))
}

func TestRankOffers_ScoreBounds(t *testing.T) {
	offers := RankOffers([]dto.FlightOffer{
		scorableOffer(0.01, 0, true, dto.CabinEconomy),
		scorableOffer(99999, 5, false, dto.CabinFirst),
		scorableOffer(800, 1, true, ""),
	})

	for _, offer := range offers {
		if assert.NotNil(t, offer.Score) {
			assert.GreaterOrEqual(t, *offer.Score, 0.0)
			assert.LessOrEqual(t, *offer.Score, 100.0)
		}
		assert.NotEmpty(t, offer.ScoreExplanation)
	}
}

func TestRankOffers_PriceMonotonicity(t *testing.T) {
	// identical offers except price, all above half the median so the
	// price factor stays below its 2x cap
	offers := RankOffers([]dto.FlightOffer{
		scorableOffer(1200, 0, false, dto.CabinEconomy),
		scorableOffer(800, 0, false, dto.CabinEconomy),
		scorableOffer(1000, 0, false, dto.CabinEconomy),
	})

	want := []float64{800, 1000, 1200}
	prices := make([]float64, len(offers))
	for i, offer := range offers {
		prices[i] = offer.PriceTotal
	}

	if diff := cmp.Diff(want, prices); diff != "" {
		t.Fatalf("ranking order mismatch (-want +got):\n%s", diff)
	}

	assert.Greater(t, *offers[0].Score, *offers[1].Score)
	assert.Greater(t, *offers[1].Score, *offers[2].Score)
}

func TestRankOffers_TieBreaksOnPrice(t *testing.T) {
	// both cheap offers hit the 2x price-factor cap, producing equal
	// scores; the cheaper one must rank first
	offers := RankOffers([]dto.FlightOffer{
		scorableOffer(200, 0, false, dto.CabinEconomy),
		scorableOffer(100, 0, false, dto.CabinEconomy),
		scorableOffer(1000, 0, false, dto.CabinEconomy),
		scorableOffer(1000, 0, false, dto.CabinEconomy),
		scorableOffer(1000, 0, false, dto.CabinEconomy),
	})

	assert.Equal(t, *offers[0].Score, *offers[1].Score)
	assert.Equal(t, 100.0, offers[0].PriceTotal)
	assert.Equal(t, 200.0, offers[1].PriceTotal)
}

func TestRankOffers_FactorInfluence(t *testing.T) {
	rankPair := func(better, worse dto.FlightOffer) func(t *testing.T) {
		return func(t *testing.T) {
			// pad the set so the two offers do not dominate the median
			got := RankOffers([]dto.FlightOffer{
				worse, better,
				scorableOffer(1000, 0, false, dto.CabinEconomy),
			})

			assert.Greater(t, scoreOf(t, got, better.PriceTotal, better.BaggageIncluded, better.CabinClass, better.TotalStops()),
				scoreOf(t, got, worse.PriceTotal, worse.BaggageIncluded, worse.CabinClass, worse.TotalStops()))
		}
	}

	t.Run("baggage_bonus", rankPair(
		scorableOffer(1000, 0, true, dto.CabinEconomy),
		scorableOffer(1000, 0, false, dto.CabinEconomy)))
	t.Run("stops_penalty", rankPair(
		scorableOffer(1000, 0, false, dto.CabinEconomy),
		scorableOffer(1000, 2, false, dto.CabinEconomy)))
	t.Run("cabin_factor", rankPair(
		scorableOffer(1000, 0, false, dto.CabinEconomy),
		scorableOffer(1000, 0, false, dto.CabinFirst)))
}

func scoreOf(t *testing.T, offers []dto.FlightOffer,
	price float64, baggage bool, cabin string, stops int,
) float64 {
	t.Helper()

	for _, offer := range offers {
		if offer.PriceTotal == price && offer.BaggageIncluded == baggage &&
			offer.CabinClass == cabin && offer.TotalStops() == stops {
			return *offer.Score
		}
	}

	t.Fatalf("offer not found (price=%v baggage=%v cabin=%q stops=%d)", price, baggage, cabin, stops)

	return 0
}

func TestMedianPrice(t *testing.T) {
	medianRequest := func(prices []float64, want float64) func(t *testing.T) {
		return func(t *testing.T) {
			offers := make([]dto.FlightOffer, len(prices))
			for i, price := range prices {
				offers[i] = scorableOffer(price, 0, false, "")
			}

			assert.Equal(t, want, medianPrice(offers))
		}
	}

	t.Run("single", medianRequest([]float64{800}, 800))
	t.Run("odd", medianRequest([]float64{1500, 800, 1000}, 1000))
	t.Run("even_averages_middle_pair", medianRequest([]float64{800, 1500, 1000, 1200}, 1100))
}

func TestRankOffers_Explanation(t *testing.T) {
	offers := RankOffers([]dto.FlightOffer{
		scorableOffer(800, 1, true, ""),
	})

	// single offer: median equals the price, so priceFactor is 1.0;
	// 35 * (1/1.4) * 1.1 = 27.5
	want := "Price: EUR 800.00 | Stops: 1 | Baggage: included | Cabin: ECONOMY | Score: 27.5/100"
	if diff := cmp.Diff(want, offers[0].ScoreExplanation); diff != "" {
		t.Fatalf("explanation mismatch (-want +got):\n%s", diff)
	}
}
