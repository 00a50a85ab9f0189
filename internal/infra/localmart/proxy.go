package localmart

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"localmart_go/internal/domain"
	"localmart_go/internal/infra"
)

// Proxy-shopping endpoints. This client never computes or validates status
// transitions: it issues exactly four transition triggers and re-fetches
// the resulting state, treating every response as authoritative.

// ListProxyRequests fetches proxy requests, optionally filtered by status.
func (c *Client) ListProxyRequests(ctx context.Context, status string) ([]domain.ProxyRequest, error) {
	var query url.Values
	if status != "" {
		query = url.Values{"status": {status}}
	}

	var dtos []proxyRequestDTO
	if err := c.get(ctx, "/api/proxyshopper/requests", query, &dtos); err != nil {
		return nil, err
	}

	reqs := make([]domain.ProxyRequest, 0, len(dtos))
	for i := range dtos {
		reqs = append(reqs, dtos[i].toDomain())
	}
	return reqs, nil
}

// GetProxyRequest fetches a single proxy request with its order, if any.
func (c *Client) GetProxyRequest(ctx context.Context, id string) (*domain.ProxyRequest, error) {
	var dto proxyRequestDTO
	if err := c.get(ctx, fmt.Sprintf("/api/proxyshopper/requests/%s", id), nil, &dto); err != nil {
		return nil, err
	}
	req := dto.toDomain()
	return &req, nil
}

// transition fires a transition trigger and re-fetches the request.
func (c *Client) transition(ctx context.Context, id, action string) (*domain.ProxyRequest, error) {
	infra.GlobalMetrics.RecordTransition()

	path := fmt.Sprintf("/api/proxyshopper/requests/%s/%s", id, action)
	if err := c.post(ctx, path, nil, nil); err != nil {
		return nil, err
	}

	c.logger.Info("Transition issued", slog.String("request", id), slog.String("action", action))

	// The backend owns the state machine; whatever it says now is the truth.
	return c.GetProxyRequest(ctx, id)
}

// ApproveProposal accepts the shopper's priced proposal.
func (c *Client) ApproveProposal(ctx context.Context, id string) (*domain.ProxyRequest, error) {
	return c.transition(ctx, id, "approve")
}

// RejectProposal declines the shopper's priced proposal.
func (c *Client) RejectProposal(ctx context.Context, id string) (*domain.ProxyRequest, error) {
	return c.transition(ctx, id, "reject")
}

// CancelRequest cancels the buyer's proxy request.
func (c *Client) CancelRequest(ctx context.Context, id string) (*domain.ProxyRequest, error) {
	return c.transition(ctx, id, "cancel")
}

// ConfirmDelivery confirms receipt of the purchased items.
func (c *Client) ConfirmDelivery(ctx context.Context, id string) (*domain.ProxyRequest, error) {
	return c.transition(ctx, id, "confirm-delivery")
}
