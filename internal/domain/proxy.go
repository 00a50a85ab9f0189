package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request-level statuses. Transitions are owned and enforced by the
// backend; this client only triggers them and re-fetches the result.
const (
	RequestStatusOpen      = "Open"
	RequestStatusLocked    = "Locked"
	RequestStatusCompleted = "Completed"
	RequestStatusCancelled = "Cancelled"
	RequestStatusExpired   = "Expired"
)

// Order-level statuses, meaningful only once an order exists.
const (
	OrderStatusDraft      = "Draft"
	OrderStatusProposed   = "Proposed"
	OrderStatusPaid       = "Paid"
	OrderStatusInProgress = "InProgress"
	OrderStatusCompleted  = "Completed"
	OrderStatusCancelled  = "Cancelled"
	OrderStatusExpired    = "Expired"
)

// RequestItem is a single line item on a buyer's shopping list.
type RequestItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Unit     string          `json:"unit,omitempty"`
	Note     string          `json:"note,omitempty"`
	Price    decimal.Decimal `json:"price"` // zero until priced by a shopper
}

// Proposal is the priced, itemized offer a proxy shopper submits against
// a request.
type Proposal struct {
	ID          string          `json:"id"`
	ShopperID   string          `json:"shopper_id"`
	ShopperName string          `json:"shopper_name,omitempty"`
	Items       []RequestItem   `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ProxyFee    decimal.Decimal `json:"proxy_fee"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ProxyRequest is a buyer's standing ask for a proxy shopper to fulfill a
// shopping list. OrderStatus and Proposal are only meaningful once HasOrder
// is true; a request may remain indefinitely Open with neither.
type ProxyRequest struct {
	ID           string          `json:"id"`
	BuyerID      string          `json:"buyer_id"`
	BuyerName    string          `json:"buyer_name,omitempty"`
	ShopperID    string          `json:"shopper_id,omitempty"`
	MarketID     string          `json:"market_id,omitempty"`
	Status       string          `json:"status"`
	HasOrder     bool            `json:"has_order"`
	OrderStatus  string          `json:"order_status,omitempty"`
	CurrentPhase string          `json:"current_phase,omitempty"` // preferred when present
	Items        []RequestItem   `json:"items"`
	Proposal     *Proposal       `json:"proposal,omitempty"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	ProxyFee     decimal.Decimal `json:"proxy_fee"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// IsOpenForProposals reports whether the request can still receive shopper
// proposals.
func (r *ProxyRequest) IsOpenForProposals() bool {
	return r.Status == RequestStatusOpen && !r.HasOrder
}

// IsTerminal reports whether the request has reached a final state.
func (r *ProxyRequest) IsTerminal() bool {
	switch r.Status {
	case RequestStatusCompleted, RequestStatusCancelled, RequestStatusExpired:
		return true
	}
	return false
}

// GrandTotal is the item total plus the proxy fee.
func (r *ProxyRequest) GrandTotal() decimal.Decimal {
	return r.TotalAmount.Add(r.ProxyFee)
}
