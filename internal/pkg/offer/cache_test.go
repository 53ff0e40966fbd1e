package offer

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/app/dto"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

func TestOfferCache_Keys(t *testing.T) {
	req := dto.SearchCriteria{
		Origin:      "RIO",
		Destination: "LIS",
		DepartDates: []string{"2025-03-20"},
		Adults:      1,
		CabinClass:  "ECONOMY",
	}

	c := &OfferCache{}

	wantCache := "offers:cache:RIO:LIS:2025-03-20::1:0:0:ECONOMY::false:false::"
	if got := c.GetCacheKey(req); got != wantCache {
		t.Fatalf("expected %s, got %s", wantCache, got)
	}

	wantLock := "offers:lock:RIO:LIS:2025-03-20::1:0:0:ECONOMY::false:false::"
	if got := c.GetLockKey(req); got != wantLock {
		t.Fatalf("expected %s, got %s", wantLock, got)
	}
}

func TestOfferCache_KeysCoverConstraints(t *testing.T) {
	maxPrice := 500.0
	maxStops := 0

	tight := dto.SearchCriteria{
		Origin:      "RIO",
		Destination: "LIS",
		DepartDates: []string{"2025-03-20"},
		Adults:      1,
		MaxPrice:    &maxPrice,
		MaxStops:    &maxStops,
	}

	laxPrice := 2000.0
	lax := tight
	lax.MaxPrice = &laxPrice
	lax.MaxStops = nil

	c := &OfferCache{}

	// offers cached under tight constraints must never serve a laxer search
	wantTight := "offers:cache:RIO:LIS:2025-03-20::1:0:0:::false:false:0:500.00"
	if got := c.GetCacheKey(tight); got != wantTight {
		t.Fatalf("expected %s, got %s", wantTight, got)
	}

	if c.GetCacheKey(tight) == c.GetCacheKey(lax) {
		t.Fatalf("constrained and unconstrained searches share cache key %s", c.GetCacheKey(tight))
	}
}

func TestOfferCache_AcquireLock(t *testing.T) {
	acquireLockRequest := func(key string, timeout time.Duration,
		mockSetup func(m *MockRedisClient), want bool,
	) func(t *testing.T) {
		return func(t *testing.T) {
			m := NewMockRedisClient(t)
			mockSetup(m)
			c := NewOfferCache(m)

			got, err := c.AcquireLock(context.Background(), key, timeout)
			if err != nil {
				t.Fatalf("AcquireLock returned error: %v", err)
			}
			if got != want {
				t.Fatalf("expected %v, got %v", want, got)
			}
		}
	}

	t.Run("lock_acquired", acquireLockRequest("test-key", 5*time.Second, func(m *MockRedisClient) {
		m.On("SetNX", mock.Anything, "test-key", "1", 5*time.Second).Return(redis.NewBoolResult(true, nil))
	}, true))

	t.Run("lock_not_acquired", acquireLockRequest("test-key", 5*time.Second, func(m *MockRedisClient) {
		m.On("SetNX", mock.Anything, "test-key", "1", 5*time.Second).Return(redis.NewBoolResult(false, nil))
	}, false))
}

func TestOfferCache_SetOffers(t *testing.T) {
	offers := []dto.FlightOffer{{Provider: "Amadeus", PriceTotal: 800, Currency: "EUR"}}
	meta := dto.Metadata{TotalResults: 1}

	m := NewMockRedisClient(t)
	m.On("Set", mock.Anything, "test-cache", mock.Anything, 10*time.Minute).Return(redis.NewStatusResult("OK", nil))
	m.On("Set", mock.Anything, "test-cache:metadata", mock.Anything, 10*time.Minute).Return(redis.NewStatusResult("OK", nil))

	c := NewOfferCache(m)

	if err := c.SetOffers(context.Background(), "test-cache", offers, meta, 10*time.Minute); err != nil {
		t.Fatalf("SetOffers returned error: %v", err)
	}
}

func TestOfferCache_GetOffers(t *testing.T) {
	getOffersRequest := func(key string, mockSetup func(m *MockRedisClient),
		want []dto.FlightOffer, wantErr bool,
	) func(t *testing.T) {
		return func(t *testing.T) {
			m := NewMockRedisClient(t)
			mockSetup(m)
			c := NewOfferCache(m)

			got, err := c.GetOffers(context.Background(), key)
			if (err != nil) != wantErr {
				t.Fatalf("GetOffers error = %v, wantErr %v", err, wantErr)
			}
			if !wantErr {
				diff := cmp.Diff(want, got)
				if diff != "" {
					t.Fatalf("GetOffers mismatch (-want +got):\n%s", diff)
				}
			}
		}
	}

	offers := []dto.FlightOffer{{Provider: "Amadeus", PriceTotal: 800, Currency: "EUR"}}
	t.Run("success", getOffersRequest("test-cache", func(m *MockRedisClient) {
		m.On("Get", mock.Anything, "test-cache").
			Return(redis.NewStringResult(`[{"provider":"Amadeus","price_total":800,"currency":"EUR"}]`, nil))
	}, offers, false))

	t.Run("cache_miss", getOffersRequest("test-cache", func(m *MockRedisClient) {
		m.On("Get", mock.Anything, "test-cache").Return(redis.NewStringResult("", redis.Nil))
	}, nil, true))
}
