package offer

import (
	"fmt"
	"math"
	"sort"

	"github.com/pedrosgmagalhaes/FlightTicker/internal/app/dto"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/pkg/utils"
)

// desirability score weights
const (
	stopsPenaltyWeight      = 0.4
	complexityPenaltyWeight = 0.1
	baggageBonusFactor      = 1.1
	maxPriceFactor          = 2.0
	scoreScale              = 35.0
	priceEpsilon            = 1e-6
)

// cabinFactors rewards economy fares slightly and penalizes premium cabins;
// an unknown or absent cabin scores neutral.
var cabinFactors = map[string]float64{
	dto.CabinEconomy:        1.05,
	dto.CabinPremiumEconomy: 0.98,
	dto.CabinBusiness:       0.90,
	dto.CabinFirst:          0.85,
}

// RankOffers computes a 0-100 desirability score per offer and sorts by
// descending score, ties broken by ascending price. The function is pure:
// deterministic given identical input order, no I/O.
func RankOffers(offers []dto.FlightOffer) []dto.FlightOffer {
	if len(offers) == 0 {
		return offers
	}

	referencePrice := medianPrice(offers)

	for i := range offers {
		score, explanation := scoreOffer(offers[i], referencePrice)
		offers[i].Score = &score
		offers[i].ScoreExplanation = explanation
	}

	sort.SliceStable(offers, func(i, j int) bool {
		if offers[i].ScoreOrZero() != offers[j].ScoreOrZero() {
			return offers[i].ScoreOrZero() > offers[j].ScoreOrZero()
		}

		return offers[i].PriceTotal < offers[j].PriceTotal
	})

	return offers
}

// medianPrice is the reference price all offers are scored against. Even-sized
// sets average the two middle values after numeric sort.
func medianPrice(offers []dto.FlightOffer) float64 {
	prices := make([]float64, len(offers))
	for i, offer := range offers {
		prices[i] = offer.PriceTotal
	}

	sort.Float64s(prices)

	middle := len(prices) / 2
	if len(prices)%2 == 1 {
		return prices[middle]
	}

	return (prices[middle-1] + prices[middle]) / 2
}

func scoreOffer(offer dto.FlightOffer, referencePrice float64) (float64, string) {
	priceFactor := math.Min(
		referencePrice/math.Max(offer.PriceTotal, priceEpsilon), maxPriceFactor)

	stopsPenalty := 1 / (1 + stopsPenaltyWeight*float64(offer.TotalStops()))

	baggageBonus := 1.0
	if offer.BaggageIncluded {
		baggageBonus = baggageBonusFactor
	}

	cabinFactor, ok := cabinFactors[offer.CabinClass]
	if !ok {
		cabinFactor = 1.0
	}

	extraSegments := math.Max(0, float64(len(offer.Segments)-2))
	complexityPenalty := 1 / (1 + complexityPenaltyWeight*extraSegments)

	rawScore := priceFactor * stopsPenalty * baggageBonus * cabinFactor * complexityPenalty
	score := math.Min(math.Max(rawScore*scoreScale, 0), 100)

	return score, buildExplanation(offer, score)
}

func buildExplanation(offer dto.FlightOffer, score float64) string {
	baggage := "not included"
	if offer.BaggageIncluded {
		baggage = "included"
	}

	cabin := offer.CabinClass
	if cabin == "" {
		cabin = dto.CabinEconomy
	}

	return fmt.Sprintf("Price: %s | Stops: %d | Baggage: %s | Cabin: %s | Score: %.1f/100",
		utils.FormatPrice(offer.Currency, offer.PriceTotal),
		offer.TotalStops(), baggage, cabin, score)
}
