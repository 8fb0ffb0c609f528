package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/Apurer/henri-storefront/internal/domains/orders/domain"
	"github.com/Apurer/henri-storefront/internal/domains/orders/ports"
)

type normalizedCheckout struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	PaymentMethod string `json:"paymentMethod"`
	Notes         string `json:"notes"`
}

// FingerprintPlaceOrder hashes the checkout form (excluding the idempotency key).
// Cart lines are session state and are left out so a retry after the cart was
// cleared still replays the original order.
func FingerprintPlaceOrder(input ports.PlaceOrderInput) (string, error) {
	payment := strings.ToLower(strings.TrimSpace(input.PaymentMethod))
	if payment == "" {
		payment = domain.DefaultPaymentMethod
	}
	normalized := normalizedCheckout{
		Name:          strings.TrimSpace(input.Customer.Name),
		Phone:         strings.TrimSpace(input.Customer.Phone),
		Email:         strings.ToLower(strings.TrimSpace(input.Customer.Email)),
		Address:       strings.TrimSpace(input.Customer.Address),
		PaymentMethod: payment,
		Notes:         strings.TrimSpace(input.Notes),
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
