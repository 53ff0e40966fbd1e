package kiwi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/app/dto"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/pkg/flightprovider"
)

const (
	ProviderName = "Kiwi/Tequila"

	searchPath = "/v2/search"

	// search result page size requested from the API
	resultLimit = 50
)

type Provider struct {
	BaseURL         string
	APIKey          string
	Timeout         time.Duration
	Limiter         *redis_rate.Limiter
	RateLimitRPS    int
	DefaultCurrency string
	DefaultLocale   string

	client *http.Client
}

func NewProvider(config flightprovider.FlightProviderConfig) *Provider {
	return &Provider{
		BaseURL:         config.BaseURL,
		APIKey:          config.APIKey,
		Timeout:         config.Timeout,
		Limiter:         config.Limiter,
		RateLimitRPS:    config.RateLimitRPS,
		DefaultCurrency: config.DefaultCurrency,
		DefaultLocale:   config.DefaultLocale,
		client:          &http.Client{Timeout: config.Timeout},
	}
}

func (p *Provider) Name() string {
	return ProviderName
}

// Search queries the Tequila search API once per candidate departure date.
// A failed date query degrades to zero offers for that date only.
func (p *Provider) Search(ctx context.Context,
	criteria dto.SearchCriteria,
) ([]dto.FlightOffer, error) {
	if p.APIKey == "" {
		return nil, flightprovider.ErrProviderNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	var offers []dto.FlightOffer

	for _, departDate := range criteria.DepartDates {
		dateOffers, err := p.searchDate(ctx, criteria, departDate)
		if err != nil {
			slog.WarnContext(ctx, "tequila date query failed",
				slog.String("provider", ProviderName),
				slog.String("depart_date", departDate),
				slog.String("error", err.Error()))

			continue
		}

		offers = append(offers, dateOffers...)
	}

	return offers, nil
}

func (p *Provider) searchDate(ctx context.Context,
	criteria dto.SearchCriteria, departDate string,
) ([]dto.FlightOffer, error) {
	if p.Limiter != nil && p.RateLimitRPS > 0 {
		res, err := p.Limiter.Allow(ctx, fmt.Sprintf("limit:%s", ProviderName),
			redis_rate.PerSecond(p.RateLimitRPS))
		if err != nil {
			return nil, fmt.Errorf("failed to rate limit: %w", err)
		}

		if res.Allowed == 0 {
			return nil, flightprovider.ErrProviderRateLimitExceeded
		}
	}

	searchURL := p.BaseURL + searchPath + "?" + p.buildSearchParams(criteria, departDate).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("apikey", p.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call tequila search API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tequila search API status %d: %w",
			resp.StatusCode, flightprovider.ErrProviderInternalError)
	}

	var response searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode tequila response: %w", err)
	}

	return p.itinerariesToDTO(ctx, response.Data, criteria), nil
}

func (p *Provider) buildSearchParams(criteria dto.SearchCriteria, departDate string) url.Values {
	maxStops := 10
	if criteria.MaxStops != nil {
		maxStops = *criteria.MaxStops
	}

	params := url.Values{}
	params.Set("fly_from", criteria.Origin)
	params.Set("fly_to", criteria.Destination)
	params.Set("date_from", departDate)
	params.Set("date_to", departDate)
	params.Set("curr", p.currency(criteria))
	params.Set("locale", firstNonEmpty(criteria.Locale, p.DefaultLocale))
	params.Set("adults", strconv.Itoa(criteria.Adults))
	params.Set("selected_cabins", cabinCode(criteria.CabinClass))
	params.Set("max_stopovers", strconv.Itoa(maxStops))
	params.Set("carry_on", boolFlag(criteria.CarryOnOnly))
	params.Set("hold_bag", boolFlag(criteria.CheckedBag))
	params.Set("limit", strconv.Itoa(resultLimit))
	params.Set("sort", "price")

	if criteria.IsRoundTrip() {
		params.Set("return_from", criteria.FirstReturnDate())
		params.Set("return_to", criteria.FirstReturnDate())
	}

	return params
}

func (p *Provider) itinerariesToDTO(ctx context.Context,
	items []itineraryData, criteria dto.SearchCriteria,
) []dto.FlightOffer {
	offers := make([]dto.FlightOffer, 0, len(items))

	for _, item := range items {
		offer, ok := p.itineraryToDTO(item, criteria)
		if !ok {
			slog.DebugContext(ctx, "skipping malformed offer record",
				slog.String("provider", ProviderName), slog.String("offer_id", item.ID))

			continue
		}

		offers = append(offers, offer)
	}

	return offers
}

func (p *Provider) itineraryToDTO(item itineraryData, criteria dto.SearchCriteria) (dto.FlightOffer, bool) {
	price, err := item.Price.Float64()
	if err != nil || price < 0 || len(item.Route) == 0 {
		return dto.FlightOffer{}, false
	}

	segments := make([]dto.FlightSegment, 0, len(item.Route))
	for _, leg := range item.Route {
		if leg.FlyFrom == "" || leg.FlyTo == "" {
			return dto.FlightOffer{}, false
		}

		segments = append(segments, dto.FlightSegment{
			Origin:           leg.FlyFrom,
			Destination:      leg.FlyTo,
			Departure:        leg.LocalDeparture,
			Arrival:          leg.LocalArrival,
			MarketingCarrier: firstNonEmpty(leg.OperatingCarrier, leg.Airline),
			FlightNumber:     firstNonEmpty(leg.OperatingFlightNo, flightNo(leg.FlightNo)),
		})
	}

	changeable := len(item.ChangePenalty) > 0 && string(item.ChangePenalty) != "null"

	return dto.FlightOffer{
		Provider:        ProviderName,
		PriceTotal:      price,
		Currency:        firstNonEmpty(item.Currency, p.currency(criteria)),
		BaggageIncluded: len(item.BagsPrice) == 0,
		CabinClass:      firstNonEmpty(criteria.CabinClass, dto.CabinEconomy),
		Segments:        segments,
		BookingLink:     item.DeepLink,
		Refundable:      item.Refundable,
		Changeable:      &changeable,
	}, true
}

// cabinCode maps a cabin class to the Tequila selected_cabins code.
func cabinCode(cabinClass string) string {
	switch cabinClass {
	case dto.CabinPremiumEconomy:
		return "W"
	case dto.CabinBusiness:
		return "C"
	case dto.CabinFirst:
		return "F"
	default:
		return "M"
	}
}

func (p *Provider) currency(criteria dto.SearchCriteria) string {
	return firstNonEmpty(criteria.PreferredCurrency, p.DefaultCurrency)
}

func flightNo(number int) string {
	if number == 0 {
		return ""
	}

	return strconv.Itoa(number)
}

func boolFlag(value bool) string {
	if value {
		return "1"
	}

	return "0"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
