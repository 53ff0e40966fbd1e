package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/endpoint"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/app/dto"
)

type SearchService interface {
	Search(ctx context.Context, req dto.SearchCriteria) (dto.SearchResult, error)
}

type Endpoints struct {
	SearchEndpoint SearchEndpoint
}

type SearchEndpoint struct {
	SearchOffers endpoint.Endpoint
}

func MakeSearchEndpoint(service SearchService) SearchEndpoint {
	return SearchEndpoint{
		SearchOffers: makeSearchOffersEndpoint(service),
	}
}

func makeSearchOffersEndpoint(service SearchService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.SearchCriteria)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		result, err := service.Search(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("search service: %w", err)
		}

		return result, nil
	}
}
