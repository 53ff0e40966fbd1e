package offer

import (
	"fmt"

	"github.com/pedrosgmagalhaes/FlightTicker/internal/app/dto"
)

// DedupeOffers collapses offers that represent the same bookable itinerary:
// same provider, route summary, price rounded to 2 decimals and currency.
// The first occurrence wins and relative order is preserved.
func DedupeOffers(offers []dto.FlightOffer) []dto.FlightOffer {
	seen := make(map[string]struct{}, len(offers))
	unique := make([]dto.FlightOffer, 0, len(offers))

	for _, offer := range offers {
		key := dedupeKey(offer)
		if _, dup := seen[key]; dup {
			continue
		}

		seen[key] = struct{}{}
		unique = append(unique, offer)
	}

	return unique
}

func dedupeKey(offer dto.FlightOffer) string {
	return fmt.Sprintf("%s|%s|%.2f|%s",
		offer.Provider, offer.RouteSummary(), offer.PriceTotal, offer.Currency)
}
