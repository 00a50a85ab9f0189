package localmart

import (
	"context"
	"fmt"

	"localmart_go/internal/domain"
)

// ListMarkets fetches all public markets.
func (c *Client) ListMarkets(ctx context.Context) ([]domain.Market, error) {
	var dtos []marketDTO
	if err := c.get(ctx, "/api/market", nil, &dtos); err != nil {
		return nil, err
	}

	markets := make([]domain.Market, 0, len(dtos))
	for i := range dtos {
		markets = append(markets, dtos[i].toDomain())
	}
	return markets, nil
}

// GetMarket fetches a single market by id.
func (c *Client) GetMarket(ctx context.Context, id string) (*domain.Market, error) {
	var dto marketDTO
	if err := c.get(ctx, fmt.Sprintf("/api/market/%s", id), nil, &dto); err != nil {
		return nil, err
	}
	m := dto.toDomain()
	return &m, nil
}

// GetStoresByMarket fetches the public stores of a market.
func (c *Client) GetStoresByMarket(ctx context.Context, marketID string) ([]Store, error) {
	var dtos []storeDTO
	if err := c.get(ctx, fmt.Sprintf("/api/store/market/%s", marketID), nil, &dtos); err != nil {
		return nil, err
	}

	stores := make([]Store, 0, len(dtos))
	for i := range dtos {
		stores = append(stores, dtos[i].toDomain())
	}
	return stores, nil
}
