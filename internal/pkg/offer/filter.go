package offer

import (
	"github.com/pedrosgmagalhaes/FlightTicker/internal/app/dto"
)

// FilterOffers applies the user constraints from the criteria. The filters
// are independent and commute.
func FilterOffers(offers []dto.FlightOffer, criteria dto.SearchCriteria) []dto.FlightOffer {
	results := make([]dto.FlightOffer, 0, len(offers))

	for _, offer := range offers {
		if criteria.MaxPrice != nil && offer.PriceTotal > *criteria.MaxPrice {
			continue
		}

		if criteria.MaxStops != nil && offer.TotalStops() > *criteria.MaxStops {
			continue
		}

		results = append(results, offer)
	}

	return results
}
