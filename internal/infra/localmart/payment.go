package localmart

import (
	"context"
	"net/url"

	"github.com/shopspring/decimal"
)

// createPaymentRequest - Internal Struct for JSON Marshaling
type createPaymentRequest struct {
	OrderID   string `json:"orderId"`
	Amount    string `json:"amount"`
	ReturnURL string `json:"returnUrl,omitempty"`
}

// CreateVNPayPayment asks the backend for a VNPay payment URL for an order.
// Amounts are sent as strings; VNPay works in whole VND.
func (c *Client) CreateVNPayPayment(ctx context.Context, orderID string, amount decimal.Decimal, returnURL string) (*Payment, error) {
	req := createPaymentRequest{
		OrderID:   orderID,
		Amount:    amount.StringFixed(0),
		ReturnURL: returnURL,
	}

	var dto paymentDTO
	if err := c.post(ctx, "/api/vnpay/create-payment", req, &dto); err != nil {
		return nil, err
	}

	return &Payment{PaymentURL: dto.PaymentURL, TxnRef: dto.TxnRef}, nil
}

// ParseVNPayCallback decodes the VNPay return query parameters. Signature
// validation is the backend's job; this only reads the outcome. VNPay
// amounts arrive multiplied by 100.
func ParseVNPayCallback(rawQuery string) (*PaymentCallback, error) {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, err
	}

	cb := &PaymentCallback{
		TxnRef:       values.Get("vnp_TxnRef"),
		ResponseCode: values.Get("vnp_ResponseCode"),
		BankCode:     values.Get("vnp_BankCode"),
	}

	if raw := values.Get("vnp_Amount"); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err == nil {
			cb.Amount = amount.Div(decimal.NewFromInt(100))
		}
	}

	// "00" is VNPay's success code
	cb.Success = cb.ResponseCode == "00"

	return cb, nil
}
