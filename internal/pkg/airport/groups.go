package airport

import (
	"sort"

	"github.com/pedrosgmagalhaes/FlightTicker/internal/app/dto"
)

// airportGroups maps a metro/region code to the IATA codes of its member
// airports. Read-only at runtime.
var airportGroups = map[string][]string{
	"SAO": {"GRU", "CGH", "VCP"},                      // São Paulo
	"RIO": {"GIG", "SDU"},                             // Rio de Janeiro
	"LON": {"LHR", "LGW", "STN", "LTN", "LCY", "SEN"}, // London
	"PAR": {"CDG", "ORY", "BVA"},                      // Paris
	"NYC": {"JFK", "EWR", "LGA"},                      // New York
	"MIL": {"MXP", "LIN", "BGY"},                      // Milan
	"ROM": {"FCO", "CIA"},                             // Rome
	"BER": {"BER", "SXF", "TXL"},                      // Berlin
}

// Expand resolves an airport or metro-group code to its member airports.
// A group code returns its members, a member code returns its whole group,
// and an unknown code returns itself. The result is sorted and never empty.
func Expand(code string) []string {
	code = dto.NormalizeIATA(code)

	if members, ok := airportGroups[code]; ok {
		return sortedCopy(members)
	}

	for _, members := range airportGroups {
		for _, member := range members {
			if member == code {
				return sortedCopy(members)
			}
		}
	}

	return []string{code}
}

func sortedCopy(codes []string) []string {
	copied := make([]string, len(codes))
	copy(copied, codes)
	sort.Strings(copied)

	return copied
}
