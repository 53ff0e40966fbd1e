package offer

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/pedrosgmagalhaes/FlightTicker/internal/app/dto"
	"github.com/redis/go-redis/v9"
)

type RedisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// OfferCache stores the merged raw offers of a search so identical criteria
// hit redis instead of the provider fan-out. Dedup, filtering and ranking
// still run per request.
type OfferCache struct {
	redis RedisClient
}

func NewOfferCache(redis RedisClient) *OfferCache {
	return &OfferCache{
		redis: redis,
	}
}

func (c *OfferCache) GetLockKey(req dto.SearchCriteria) string {
	return "offers:lock:" + criteriaKey(req)
}

func (c *OfferCache) GetCacheKey(req dto.SearchCriteria) string {
	return "offers:cache:" + criteriaKey(req)
}

// criteriaKey must cover every criteria field that shapes the raw offers
// stored under it: max stops changes the gateway queries and max price
// discards split-ticket combinations before caching.
func criteriaKey(req dto.SearchCriteria) string {
	return fmt.Sprintf("%s:%s:%s:%s:%d:%d:%d:%s:%s:%t:%t:%s:%s",
		req.Origin, req.Destination,
		req.FirstDepartDate(), req.FirstReturnDate(),
		req.Adults, req.Children, req.Infants,
		req.CabinClass, req.PreferredCurrency,
		req.CarryOnOnly, req.CheckedBag,
		intKeyPart(req.MaxStops), priceKeyPart(req.MaxPrice))
}

func intKeyPart(value *int) string {
	if value == nil {
		return ""
	}

	return strconv.Itoa(*value)
}

func priceKeyPart(value *float64) string {
	if value == nil {
		return ""
	}

	return strconv.FormatFloat(*value, 'f', 2, 64)
}

func (c *OfferCache) AcquireLock(ctx context.Context, key string, timeout time.Duration) (bool, error) {
	return c.redis.SetNX(ctx, key, "1", timeout).Result()
}

func (c *OfferCache) ReleaseLock(ctx context.Context, key string) error {
	return c.redis.Del(ctx, key).Err()
}

func (c *OfferCache) SetOffers(ctx context.Context,
	key string,
	offers []dto.FlightOffer,
	metadata dto.Metadata,
	expiration time.Duration,
) error {
	data, err := json.Marshal(offers)
	if err != nil {
		return fmt.Errorf("failed to marshal offers: %w", err)
	}

	if err := c.redis.Set(ctx, key, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set offers: %w", err)
	}

	metadataBytes, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	if err := c.redis.Set(ctx, key+":metadata", metadataBytes, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set metadata: %w", err)
	}

	return nil
}

func (c *OfferCache) GetOffers(ctx context.Context, key string) ([]dto.FlightOffer, error) {
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var offers []dto.FlightOffer
	if err := json.Unmarshal(data, &offers); err != nil {
		return nil, err
	}

	return offers, nil
}

func (c *OfferCache) GetMetadata(ctx context.Context, key string) (dto.Metadata, error) {
	metadataBytes, err := c.redis.Get(ctx, key+":metadata").Bytes()
	if err != nil {
		return dto.Metadata{}, err
	}

	var metadata dto.Metadata
	if err := json.Unmarshal(metadataBytes, &metadata); err != nil {
		return dto.Metadata{}, err
	}

	return metadata, nil
}
