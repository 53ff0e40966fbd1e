package dto

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pedrosgmagalhaes/FlightTicker/internal/pkg/exception"
)

// Cabin class fare tiers as used by the scoring engine and the provider APIs.
const (
	CabinEconomy        = "ECONOMY"
	CabinPremiumEconomy = "PREMIUM_ECONOMY"
	CabinBusiness       = "BUSINESS"
	CabinFirst          = "FIRST"
)

// RouteSeparator joins airport codes in a route summary.
const RouteSeparator = " → "

// FlightSegment is one non-stop leg of an itinerary. Immutable once built.
type FlightSegment struct {
	Origin           string `json:"origin"`
	Destination      string `json:"destination"`
	Departure        string `json:"departure"`
	Arrival          string `json:"arrival"`
	MarketingCarrier string `json:"marketing_carrier,omitempty"`
	FlightNumber     string `json:"flight_number,omitempty"`
}

// FlightOffer is one priced itinerary returned by a provider.
// Score and ScoreExplanation are written once by the ranking engine.
type FlightOffer struct {
	Provider         string          `json:"provider"`
	PriceTotal       float64         `json:"price_total"`
	Currency         string          `json:"currency"`
	BaggageIncluded  bool            `json:"baggage_included"`
	CabinClass       string          `json:"cabin_class,omitempty"`
	Segments         []FlightSegment `json:"segments"`
	BookingLink      string          `json:"booking_link,omitempty"`
	Refundable       *bool           `json:"refundable,omitempty"`
	Changeable       *bool           `json:"changeable,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	Score            *float64        `json:"score,omitempty"`
	ScoreExplanation string          `json:"score_explanation,omitempty"`
}

// TotalStops is the number of intermediate stops implied by the segments.
func (o FlightOffer) TotalStops() int {
	if len(o.Segments) <= 1 {
		return 0
	}

	return len(o.Segments) - 1
}

// RouteSummary renders the itinerary as origin plus every segment destination,
// e.g. "GRU → LIS → CDG".
func (o FlightOffer) RouteSummary() string {
	if len(o.Segments) == 0 {
		return ""
	}

	codes := make([]string, 0, len(o.Segments)+1)
	codes = append(codes, o.Segments[0].Origin)
	for _, segment := range o.Segments {
		codes = append(codes, segment.Destination)
	}

	return strings.Join(codes, RouteSeparator)
}

// ScoreOrZero treats an unranked offer as score 0 for ordering purposes.
func (o FlightOffer) ScoreOrZero() float64 {
	if o.Score == nil {
		return 0
	}

	return *o.Score
}

// SearchCriteria is the caller-owned search request. Strategies never mutate
// it in place; they derive modified copies via the With* helpers.
type SearchCriteria struct {
	Origin            string   `json:"origin" validate:"required,alpha,len=3"`
	Destination       string   `json:"destination" validate:"required,alpha,len=3"`
	DepartDates       []string `json:"depart_dates" validate:"required,min=1"`
	ReturnDates       []string `json:"return_dates,omitempty"`
	Adults            int      `json:"adults" validate:"required,min=1,max=9"`
	Children          int      `json:"children" validate:"min=0"`
	Infants           int      `json:"infants" validate:"min=0"`
	CabinClass        string   `json:"cabin_class,omitempty" validate:"omitempty,oneof=ECONOMY PREMIUM_ECONOMY BUSINESS FIRST"`
	MaxStops          *int     `json:"max_stops,omitempty" validate:"omitempty,gte=0"`
	PreferredCurrency string   `json:"preferred_currency,omitempty" validate:"omitempty,alpha,len=3"`
	Locale            string   `json:"locale,omitempty"`
	CarryOnOnly       bool     `json:"carry_on_only"`
	CheckedBag        bool     `json:"checked_bag"`
	MaxPrice          *float64 `json:"max_price,omitempty" validate:"omitempty,gt=0"`
}

// IsRoundTrip reports whether any return date is requested.
func (s SearchCriteria) IsRoundTrip() bool {
	return len(s.ReturnDates) > 0
}

// FirstDepartDate returns the primary departure date.
func (s SearchCriteria) FirstDepartDate() string {
	if len(s.DepartDates) == 0 {
		return ""
	}

	return s.DepartDates[0]
}

// FirstReturnDate returns the primary return date or "" for one-way trips.
func (s SearchCriteria) FirstReturnDate() string {
	if len(s.ReturnDates) == 0 {
		return ""
	}

	return s.ReturnDates[0]
}

// WithRoute derives a copy of the criteria with a different origin and
// destination. Date slices are copied so the derived value shares nothing
// mutable with the original.
func (s SearchCriteria) WithRoute(origin, destination string) SearchCriteria {
	derived := s
	derived.Origin = NormalizeIATA(origin)
	derived.Destination = NormalizeIATA(destination)
	derived.DepartDates = copyDates(s.DepartDates)
	derived.ReturnDates = copyDates(s.ReturnDates)

	return derived
}

// WithDates derives a copy of the criteria with replaced candidate dates.
// A nil returnDates produces a one-way criteria.
func (s SearchCriteria) WithDates(departDates, returnDates []string) SearchCriteria {
	derived := s
	derived.DepartDates = copyDates(departDates)
	derived.ReturnDates = copyDates(returnDates)

	return derived
}

func copyDates(dates []string) []string {
	if dates == nil {
		return nil
	}

	copied := make([]string, len(dates))
	copy(copied, dates)

	return copied
}

// NormalizeIATA uppercases and trims an airport or metro-group code.
// Shape validation happens separately; codes are not checked against a
// real registry.
func NormalizeIATA(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *SearchCriteria) Bind(_ *http.Request) error {
	s.Origin = NormalizeIATA(s.Origin)
	s.Destination = NormalizeIATA(s.Destination)
	s.CabinClass = strings.ToUpper(strings.TrimSpace(s.CabinClass))
	s.PreferredCurrency = NormalizeIATA(s.PreferredCurrency)

	if err := s.Validate(); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

func (s *SearchCriteria) Validate() error {
	if err := ValidateSingleError(s); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	if s.Origin == s.Destination {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    "origin and destination must differ",
		}
	}

	return nil
}

// Metadata describes how a search result was produced.
type Metadata struct {
	TotalResults     int    `json:"total_results"`
	ProvidersQueried int    `json:"providers_queried"`
	StrategiesRun    int    `json:"strategies_run"`
	CallsIssued      int    `json:"calls_issued"`
	CallsFailed      int    `json:"calls_failed"`
	SearchTimeMs     int    `json:"search_time_ms"`
	CacheHit         bool   `json:"cache_hit"`
	Notice           string `json:"notice,omitempty"`
}

// SearchResult is the ranked, filtered outcome of one search. TotalFound
// counts offers before filtering; zero offers is a valid result.
type SearchResult struct {
	SearchCriteria  SearchCriteria `json:"search_criteria"`
	SearchTimestamp time.Time      `json:"search_timestamp"`
	TotalFound      int            `json:"total_found"`
	Metadata        Metadata       `json:"metadata"`
	Offers          []FlightOffer  `json:"offers"`
}

// BestOffer is the highest-scored offer, ties broken by lowest price.
func (r SearchResult) BestOffer() *FlightOffer {
	if len(r.Offers) == 0 {
		return nil
	}

	best := 0
	for i := 1; i < len(r.Offers); i++ {
		candidate, current := r.Offers[i], r.Offers[best]
		if candidate.ScoreOrZero() > current.ScoreOrZero() ||
			(candidate.ScoreOrZero() == current.ScoreOrZero() &&
				candidate.PriceTotal < current.PriceTotal) {
			best = i
		}
	}

	return &r.Offers[best]
}

// CheapestOffer is the lowest-priced offer.
func (r SearchResult) CheapestOffer() *FlightOffer {
	if len(r.Offers) == 0 {
		return nil
	}

	cheapest := 0
	for i := 1; i < len(r.Offers); i++ {
		if r.Offers[i].PriceTotal < r.Offers[cheapest].PriceTotal {
			cheapest = i
		}
	}

	return &r.Offers[cheapest]
}
