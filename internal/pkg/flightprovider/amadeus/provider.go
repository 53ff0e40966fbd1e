package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/app/dto"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/pkg/flightprovider"
)

const (
	ProviderName = "Amadeus"

	tokenPath  = "/v1/security/oauth2/token"
	searchPath = "/v2/shopping/flight-offers"

	// token refresh margin before the reported expiry
	tokenExpirySlack = 60 * time.Second
)

type Provider struct {
	BaseURL         string
	ClientID        string
	ClientSecret    string
	Timeout         time.Duration
	Limiter         *redis_rate.Limiter
	RateLimitRPS    int
	DefaultCurrency string
	DefaultLocale   string

	client *http.Client

	tokenMu     sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewProvider(config flightprovider.FlightProviderConfig) *Provider {
	return &Provider{
		BaseURL:         config.BaseURL,
		ClientID:        config.ClientID,
		ClientSecret:    config.ClientSecret,
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

// Search queries the Amadeus flight-offers API with the first departure and
// return date of the criteria. Response items that cannot be converted into
// an offer are skipped one by one.
func (p *Provider) Search(ctx context.Context,
	criteria dto.SearchCriteria,
) ([]dto.FlightOffer, error) {
	if p.ClientID == "" || p.ClientSecret == "" {
		return nil, flightprovider.ErrProviderNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

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

	token, err := p.accessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get access token: %w", err)
	}

	searchURL := p.BaseURL + searchPath + "?" + p.buildSearchParams(criteria).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call flight offers API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("flight offers API status %d: %w",
			resp.StatusCode, flightprovider.ErrProviderInternalError)
	}

	var response searchOffersResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode flight offers response: %w", err)
	}

	return p.offersToDTO(ctx, response.Data, criteria), nil
}

// accessToken returns a cached OAuth2 client-credentials token, fetching a
// fresh one when the cached token is near expiry.
func (p *Provider) accessToken(ctx context.Context) (string, error) {
	p.tokenMu.Lock()
	defer p.tokenMu.Unlock()

	if p.token != "" && time.Now().Before(p.tokenExpiry) {
		return p.token, nil
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {p.ClientID},
		"client_secret": {p.ClientSecret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.BaseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call token endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint status %d: %w",
			resp.StatusCode, flightprovider.ErrProviderInternalError)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	p.token = token.AccessToken
	p.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - tokenExpirySlack)

	return p.token, nil
}

func (p *Provider) buildSearchParams(criteria dto.SearchCriteria) url.Values {
	params := url.Values{}
	params.Set("originLocationCode", criteria.Origin)
	params.Set("destinationLocationCode", criteria.Destination)
	params.Set("departureDate", criteria.FirstDepartDate())
	params.Set("adults", strconv.Itoa(criteria.Adults))
	params.Set("currencyCode", p.currency(criteria))

	if criteria.Children > 0 {
		params.Set("children", strconv.Itoa(criteria.Children))
	}
	if criteria.Infants > 0 {
		params.Set("infants", strconv.Itoa(criteria.Infants))
	}
	if criteria.MaxStops != nil && *criteria.MaxStops == 0 {
		params.Set("nonStop", "true")
	}
	if criteria.IsRoundTrip() {
		params.Set("returnDate", criteria.FirstReturnDate())
	}
	if criteria.CabinClass != "" {
		params.Set("travelClass", criteria.CabinClass)
	}

	return params
}

func (p *Provider) offersToDTO(ctx context.Context,
	items []offerData, criteria dto.SearchCriteria,
) []dto.FlightOffer {
	offers := make([]dto.FlightOffer, 0, len(items))

	for _, item := range items {
		offer, ok := p.offerToDTO(item, criteria)
		if !ok {
			slog.DebugContext(ctx, "skipping malformed offer record",
				slog.String("provider", ProviderName), slog.String("offer_id", item.ID))

			continue
		}

		offers = append(offers, offer)
	}

	return offers
}

// offerToDTO converts one response item, reporting ok=false when a required
// field is missing so the caller can skip just that item.
func (p *Provider) offerToDTO(item offerData, criteria dto.SearchCriteria) (dto.FlightOffer, bool) {
	price, err := strconv.ParseFloat(firstNonEmpty(item.Price.GrandTotal, item.Price.Total), 64)
	if err != nil || price < 0 {
		return dto.FlightOffer{}, false
	}

	baggageIncluded := hasCheckedBags(item.TravelerPricings)
	if criteria.CheckedBag && !baggageIncluded {
		return dto.FlightOffer{}, false
	}

	var (
		segments   []dto.FlightSegment
		departDate string
		returnDate string
	)

	for i, itin := range item.Itineraries {
		if len(itin.Segments) == 0 {
			return dto.FlightOffer{}, false
		}

		first := itin.Segments[0]
		if i == 0 {
			departDate = dateOf(first.Departure.At)
		} else {
			// second itinerary is the inbound half of a round trip
			returnDate = dateOf(first.Departure.At)
		}

		for _, seg := range itin.Segments {
			if seg.Departure.IataCode == "" || seg.Arrival.IataCode == "" {
				return dto.FlightOffer{}, false
			}

			segments = append(segments, dto.FlightSegment{
				Origin:           seg.Departure.IataCode,
				Destination:      seg.Arrival.IataCode,
				Departure:        seg.Departure.At,
				Arrival:          seg.Arrival.At,
				MarketingCarrier: seg.CarrierCode,
				FlightNumber:     seg.Number,
			})
		}
	}

	if len(segments) == 0 {
		return dto.FlightOffer{}, false
	}

	return dto.FlightOffer{
		Provider:        ProviderName,
		PriceTotal:      price,
		Currency:        firstNonEmpty(item.Price.Currency, p.currency(criteria)),
		BaggageIncluded: baggageIncluded,
		CabinClass:      criteria.CabinClass,
		Segments:        segments,
		BookingLink:     p.bookingLink(segments, criteria, departDate, returnDate),
	}, true
}

// bookingLink prefers an airline deep link when the whole itinerary is flown
// by a single known carrier, falling back to a Google Flights search URL.
func (p *Provider) bookingLink(segments []dto.FlightSegment,
	criteria dto.SearchCriteria, departDate, returnDate string,
) string {
	if len(segments) == 0 || departDate == "" {
		return ""
	}

	origin := segments[0].Origin
	destination := segments[len(segments)-1].Destination

	if link := airlineDeepLink(segments, criteria, departDate, returnDate); link != "" {
		return link
	}

	locale := strings.ReplaceAll(firstNonEmpty(criteria.Locale, p.DefaultLocale), "_", "-")
	flt := fmt.Sprintf("%s.%s.%s", origin, destination, departDate)
	if returnDate != "" {
		flt = fmt.Sprintf("%s*%s.%s.%s", flt, destination, origin, returnDate)
	}

	return fmt.Sprintf("https://www.google.com/travel/flights?hl=%s#flt=%s;c:%s",
		locale, flt, p.currency(criteria))
}

func airlineDeepLink(segments []dto.FlightSegment,
	criteria dto.SearchCriteria, departDate, returnDate string,
) string {
	carrier := singleCarrier(segments)

	switch carrier {
	case "LA":
		link := fmt.Sprintf(
			"https://www.latamairlines.com/br/pt/oferta-de-voos?origin=%s&destination=%s&departureDate=%s",
			segments[0].Origin, segments[len(segments)-1].Destination, departDate)
		if returnDate != "" {
			link += "&returnDate=" + returnDate
		}

		return fmt.Sprintf("%s&adt=%d&chd=%d&inf=%d",
			link, criteria.Adults, criteria.Children, criteria.Infants)
	case "G3":
		return "https://www.voegol.com.br/"
	case "AV":
		return "https://www.avianca.com/br/pt/"
	default:
		return ""
	}
}

func singleCarrier(segments []dto.FlightSegment) string {
	carrier := ""
	for _, seg := range segments {
		if seg.MarketingCarrier == "" {
			continue
		}

		if carrier != "" && carrier != seg.MarketingCarrier {
			return ""
		}

		carrier = seg.MarketingCarrier
	}

	return carrier
}

func hasCheckedBags(pricings []travelerPricing) bool {
	for _, tp := range pricings {
		for _, fd := range tp.FareDetailsBySegment {
			if fd.IncludedCheckedBags != nil && fd.IncludedCheckedBags.Quantity > 0 {
				return true
			}
		}
	}

	return false
}

func (p *Provider) currency(criteria dto.SearchCriteria) string {
	return firstNonEmpty(criteria.PreferredCurrency, p.DefaultCurrency)
}

func dateOf(timestamp string) string {
	if len(timestamp) < 10 {
		return ""
	}

	return timestamp[:10]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
