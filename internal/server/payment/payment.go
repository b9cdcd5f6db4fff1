// Package payment creates Razorpay orders and verifies completed-payment
// callbacks before an upgrade is granted.
package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/dmitrijs2005/flashdeck/internal/common"
	razorpay "github.com/razorpay/razorpay-go"
)

// Order is the created gateway order, echoed to the checkout widget.
// Amount is in minor units (paise).
type Order struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// gateway is the slice of the Razorpay client used here, so tests can
// substitute a fake.
type gateway interface {
	CreateOrder(data map[string]interface{}) (map[string]interface{}, error)
}

type razorpayGateway struct {
	client *razorpay.Client
}

func (g *razorpayGateway) CreateOrder(data map[string]interface{}) (map[string]interface{}, error) {
	return g.client.Order.Create(data, nil)
}

type Service struct {
	gateway gateway
	secret  string
}

// NewService builds the payment service. With empty credentials the service
// stays unconfigured and every call fails with ErrGatewayNotConfigured;
// deployments without a payment gateway still boot.
func NewService(keyID, keySecret string, timeout time.Duration) *Service {
	if keyID == "" || keySecret == "" {
		return &Service{}
	}

	client := razorpay.NewClient(keyID, keySecret)
	client.SetTimeout(int16(timeout / time.Second))

	return &Service{
		gateway: &razorpayGateway{client: client},
		secret:  keySecret,
	}
}

// Configured reports whether gateway credentials were provided.
func (s *Service) Configured() bool {
	return s.gateway != nil && s.secret != ""
}

// CreateOrder submits a new order for amountMajor in major currency units.
// The receipt combines the owner id and the current time so a retried
// checkout is traceable to its user.
func (s *Service) CreateOrder(ctx context.Context, ownerID string, amountMajor float64, currency string) (*Order, error) {

	if !s.Configured() {
		return nil, common.ErrGatewayNotConfigured
	}
	if amountMajor <= 0 {
		return nil, fmt.Errorf("%w: invalid amount", common.ErrorValidation)
	}
	if currency == "" {
		currency = common.DefaultCurrency
	}

	data := map[string]interface{}{
		"amount":   int64(amountMajor*100 + 0.5),
		"currency": currency,
		"receipt":  fmt.Sprintf("receipt_%s_%d", ownerID, time.Now().UnixMilli()),
		"notes": map[string]interface{}{
			"owner_id":   ownerID,
			"plan":       common.PlanPro,
			"created_at": time.Now().UTC().Format(time.RFC3339),
		},
	}

	body, err := s.gateway.CreateOrder(data)
	if err != nil {
		return nil, fmt.Errorf("gateway error: %v", err)
	}

	order := &Order{}
	if id, ok := body["id"].(string); ok {
		order.OrderID = id
	}
	if amount, ok := body["amount"].(float64); ok {
		order.Amount = int64(amount)
	}
	if cur, ok := body["currency"].(string); ok {
		order.Currency = cur
	}
	if receipt, ok := body["receipt"].(string); ok {
		order.Receipt = receipt
	}
	if order.OrderID == "" {
		return nil, fmt.Errorf("gateway error: order id missing in response")
	}

	return order, nil
}

// VerifySignature recomputes the HMAC-SHA256 of "orderID|paymentID" with
// the gateway secret and compares it against the callback signature in
// constant time. A mismatch means the callback did not come from the
// gateway.
func (s *Service) VerifySignature(orderID, paymentID, signature string) error {

	if s.secret == "" {
		return common.ErrGatewayNotConfigured
	}

	mac := hmac.New(sha256.New, []byte(s.secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return common.ErrInvalidSignature
	}

	return nil
}
