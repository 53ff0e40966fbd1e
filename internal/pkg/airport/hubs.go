package airport

import (
	"sort"

	"github.com/pedrosgmagalhaes/FlightTicker/internal/app/dto"
)

// MajorHubs are the interchange airports considered for split-ticket routing.
// Read-only at runtime.
var MajorHubs = []string{
	"LIS", "MAD", "IST", "CDG", "FRA", "LHR", "AMS",
	"DOH", "DXB", "MUC", "ZRH", "BCN", "FCO", "ATH",
	"VIE", "CPH", "ARN", "HEL", "WAW",
}

// HubCombination is an (origin, hub, destination) triple for a split-ticket
// search. Internal to the split-ticket strategy, never persisted.
type HubCombination struct {
	Origin      string
	Hub         string
	Destination string
}

// HubCombinations enumerates (origin, hub, destination) triples over the
// given hub set, excluding any hub equal to the origin or the destination.
// Hubs are sorted first so truncation by the caller is reproducible.
func HubCombinations(origin, destination string, hubs []string) []HubCombination {
	origin = dto.NormalizeIATA(origin)
	destination = dto.NormalizeIATA(destination)

	ordered := make([]string, len(hubs))
	copy(ordered, hubs)
	sort.Strings(ordered)

	combinations := make([]HubCombination, 0, len(ordered))
	for _, hub := range ordered {
		hub = dto.NormalizeIATA(hub)
		if hub == origin || hub == destination {
			continue
		}

		combinations = append(combinations, HubCombination{
			Origin:      origin,
			Hub:         hub,
			Destination: destination,
		})
	}

	return combinations
}
