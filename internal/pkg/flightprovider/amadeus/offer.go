package amadeus

// Wire types for the Amadeus Flight Offers Search API.

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type searchOffersResponse struct {
	Data []offerData `json:"data"`
}

type offerData struct {
	ID               string            `json:"id"`
	Itineraries      []itinerary       `json:"itineraries"`
	Price            priceInfo         `json:"price"`
	TravelerPricings []travelerPricing `json:"travelerPricings"`
}

type itinerary struct {
	Duration string    `json:"duration"`
	Segments []segment `json:"segments"`
}

type segment struct {
	Departure   endpoint `json:"departure"`
	Arrival     endpoint `json:"arrival"`
	CarrierCode string   `json:"carrierCode"`
	Number      string   `json:"number"`
}

type endpoint struct {
	IataCode string `json:"iataCode"`
	At       string `json:"at"`
}

type priceInfo struct {
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	GrandTotal string `json:"grandTotal"`
}

type travelerPricing struct {
	FareDetailsBySegment []fareDetails `json:"fareDetailsBySegment"`
}

type fareDetails struct {
	Cabin               string       `json:"cabin"`
	IncludedCheckedBags *checkedBags `json:"includedCheckedBags"`
}

type checkedBags struct {
	Quantity int `json:"quantity"`
}
