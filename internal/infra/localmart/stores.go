package localmart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"localmart_go/internal/domain"
)

// GetStore fetches a single public store.
func (c *Client) GetStore(ctx context.Context, id string) (*Store, error) {
	var dto storeDTO
	if err := c.get(ctx, fmt.Sprintf("/api/store/%s", id), nil, &dto); err != nil {
		return nil, err
	}
	s := dto.toDomain()
	return &s, nil
}

// FollowStore marks a store as followed for the authenticated buyer and
// writes it through to the local mirror.
func (c *Client) FollowStore(ctx context.Context, id string) error {
	if err := c.post(ctx, fmt.Sprintf("/api/store/%s/follow", id), nil, nil); err != nil {
		return err
	}

	if c.mirror != nil {
		store, err := c.GetStore(ctx, id)
		if err != nil {
			c.logger.Warn("Followed store not mirrored", slog.String("id", id), slog.Any("error", err))
			return nil
		}
		if err := c.mirror.FollowStore(store.ID, store.Name, store.MarketID); err != nil {
			c.logger.Warn("Follow mirror write failed", slog.String("id", id), slog.Any("error", err))
		}
	}
	return nil
}

// UnfollowStore removes a store from the buyer's following list and from
// the local mirror.
func (c *Client) UnfollowStore(ctx context.Context, id string) error {
	if err := c.post(ctx, fmt.Sprintf("/api/store/%s/unfollow", id), nil, nil); err != nil {
		return err
	}

	if c.mirror != nil {
		if err := c.mirror.UnfollowStore(id); err != nil {
			c.logger.Warn("Follow mirror delete failed", slog.String("id", id), slog.Any("error", err))
		}
	}
	return nil
}

// ListFollowing fetches the stores the authenticated buyer follows. A
// successful fetch refreshes the mirror; when the backend is unreachable
// the mirrored copy is served instead. Auth failures are never masked by
// the mirror.
func (c *Client) ListFollowing(ctx context.Context) ([]Store, error) {
	var dtos []storeDTO
	if err := c.get(ctx, "/api/store/following", nil, &dtos); err != nil {
		var netErr *domain.NetworkError
		if c.mirror != nil && errors.As(err, &netErr) {
			return c.followingFromMirror(err)
		}
		return nil, err
	}

	stores := make([]Store, 0, len(dtos))
	for i := range dtos {
		s := dtos[i].toDomain()
		stores = append(stores, s)
		if c.mirror != nil {
			if err := c.mirror.FollowStore(s.ID, s.Name, s.MarketID); err != nil {
				c.logger.Warn("Follow mirror refresh failed", slog.String("id", s.ID), slog.Any("error", err))
			}
		}
	}
	return stores, nil
}

func (c *Client) followingFromMirror(cause error) ([]Store, error) {
	records, err := c.mirror.GetFollowedStores()
	if err != nil {
		return nil, cause
	}
	c.logger.Warn("Following fetch failed, serving mirrored copy", slog.Any("error", cause))

	stores := make([]Store, 0, len(records))
	for _, r := range records {
		stores = append(stores, Store{
			ID:          r.StoreID,
			Name:        r.Name,
			MarketID:    r.MarketID,
			IsFollowing: true,
		})
	}
	return stores, nil
}
