package localmart

import (
	"time"

	"github.com/shopspring/decimal"

	"localmart_go/internal/domain"
)

// Wire DTOs for the LocalMart backend. The proxy-request shape evolved:
// newer responses carry currentPhase, older ones only status/orderStatus.
// toDomain is the single adapter normalizing both shapes; the rest of the
// module never sees the raw wire form.

type marketDTO struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	Address        string   `json:"address"`
	OperatingHours string   `json:"operatingHours"`
}

func (d *marketDTO) toDomain() domain.Market {
	return domain.Market{
		ID:             d.ID,
		Name:           d.Name,
		Latitude:       d.Latitude,
		Longitude:      d.Longitude,
		Address:        d.Address,
		OperatingHours: d.OperatingHours,
	}
}

type storeDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MarketID    string `json:"marketId"`
	Description string `json:"description"`
	IsFollowing bool   `json:"isFollowing"`
}

// Store is a seller's stall within a market.
type Store struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MarketID    string `json:"market_id"`
	Description string `json:"description"`
	IsFollowing bool   `json:"is_following"`
}

func (d *storeDTO) toDomain() Store {
	return Store(*d)
}

type requestItemDTO struct {
	ID       string          `json:"id"`
	Name     string          `json:"productName"`
	Quantity int             `json:"quantity"`
	Unit     string          `json:"unit"`
	Note     string          `json:"note"`
	Price    decimal.Decimal `json:"price"`
}

type proposalDTO struct {
	ID          string           `json:"id"`
	ShopperID   string           `json:"proxyShopperId"`
	ShopperName string           `json:"proxyShopperName"`
	Items       []requestItemDTO `json:"items"`
	TotalAmount decimal.Decimal  `json:"totalAmount"`
	ProxyFee    decimal.Decimal  `json:"proxyFee"`
	CreatedAt   time.Time        `json:"createdAt"`
}

type orderDTO struct {
	ID       string       `json:"id"`
	Status   string       `json:"status"`
	Proposal *proposalDTO `json:"proposal"`
}

type proxyRequestDTO struct {
	ID           string           `json:"id"`
	BuyerID      string           `json:"buyerId"`
	BuyerName    string           `json:"buyerName"`
	ShopperID    string           `json:"proxyShopperId"`
	MarketID     string           `json:"marketId"`
	Status       string           `json:"status"`
	CurrentPhase string           `json:"currentPhase"`
	Order        *orderDTO        `json:"order"`
	OrderStatus  string           `json:"orderStatus"` // legacy flat field
	Items        []requestItemDTO `json:"items"`
	TotalAmount  decimal.Decimal  `json:"totalAmount"`
	ProxyFee     decimal.Decimal  `json:"proxyFee"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

func itemsToDomain(items []requestItemDTO) []domain.RequestItem {
	out := make([]domain.RequestItem, 0, len(items))
	for _, it := range items {
		out = append(out, domain.RequestItem{
			ID:       it.ID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Unit:     it.Unit,
			Note:     it.Note,
			Price:    it.Price,
		})
	}
	return out
}

func (d *proxyRequestDTO) toDomain() domain.ProxyRequest {
	req := domain.ProxyRequest{
		ID:           d.ID,
		BuyerID:      d.BuyerID,
		BuyerName:    d.BuyerName,
		ShopperID:    d.ShopperID,
		MarketID:     d.MarketID,
		Status:       d.Status,
		CurrentPhase: d.CurrentPhase,
		Items:        itemsToDomain(d.Items),
		TotalAmount:  d.TotalAmount,
		ProxyFee:     d.ProxyFee,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}

	switch {
	case d.Order != nil:
		req.HasOrder = true
		req.OrderStatus = d.Order.Status
		if d.Order.Proposal != nil {
			p := d.Order.Proposal
			req.Proposal = &domain.Proposal{
				ID:          p.ID,
				ShopperID:   p.ShopperID,
				ShopperName: p.ShopperName,
				Items:       itemsToDomain(p.Items),
				TotalAmount: p.TotalAmount,
				ProxyFee:    p.ProxyFee,
				CreatedAt:   p.CreatedAt,
			}
		}
	case d.OrderStatus != "":
		// Oldest shape: flat orderStatus with no order object
		req.HasOrder = true
		req.OrderStatus = d.OrderStatus
	}

	return req
}

type paymentDTO struct {
	PaymentURL string `json:"paymentUrl"`
	TxnRef     string `json:"txnRef"`
}

// Payment is a created VNPay payment: the redirect URL plus the
// transaction reference for later reconciliation.
type Payment struct {
	PaymentURL string `json:"payment_url"`
	TxnRef     string `json:"txn_ref"`
}

// PaymentCallback is the decoded VNPay return. Signature validation is
// deferred to the backend; this client only reads the outcome fields.
type PaymentCallback struct {
	TxnRef       string
	ResponseCode string
	Amount       decimal.Decimal
	BankCode     string
	Success      bool
}
