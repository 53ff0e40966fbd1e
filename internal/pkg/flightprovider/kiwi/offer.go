package kiwi

import "encoding/json"

// Wire types for the Kiwi/Tequila search API.

type searchResponse struct {
	Data []itineraryData `json:"data"`
}

type itineraryData struct {
	ID            string          `json:"id"`
	Price         json.Number     `json:"price"`
	Currency      string          `json:"currency"`
	Route         []routeLeg      `json:"route"`
	DeepLink      string          `json:"deep_link"`
	Refundable    *bool           `json:"refundable"`
	ChangePenalty json.RawMessage `json:"change_penalty"`
	BagsPrice     map[string]any  `json:"bags_price"`
}

type routeLeg struct {
	FlyFrom           string `json:"flyFrom"`
	FlyTo             string `json:"flyTo"`
	LocalDeparture    string `json:"local_departure"`
	LocalArrival      string `json:"local_arrival"`
	Airline           string `json:"airline"`
	OperatingCarrier  string `json:"operating_carrier"`
	FlightNo          int    `json:"flight_no"`
	OperatingFlightNo string `json:"operating_flight_no"`
}
