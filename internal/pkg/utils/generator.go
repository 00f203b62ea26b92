package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"medika-service/internal/pkg/constvars"

	"github.com/google/uuid"
)

// GenerateRequestID returns a fresh identifier for request tracing.
func GenerateRequestID() string {
	return uuid.NewString()
}

// GenerateGatewayOrderID builds the gateway-facing order identifier for a
// booking payment: {prefix}-{first 8 chars of the payment id}-{unix millis}.
// The timestamp suffix keeps re-issued payments for the same booking unique
// at the gateway.
func GenerateGatewayOrderID(prefix, paymentID string) string {
	shortID := paymentID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	return fmt.Sprintf("%s-%s-%d", prefix, shortID, time.Now().UnixMilli())
}

// GenerateMarketplaceOrderID builds the gateway-facing order identifier for a
// marketplace order payment. The marker segment lets the webhook handler route
// the notification to the order reconciliation path.
func GenerateMarketplaceOrderID(prefix, orderID string) string {
	shortID := orderID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	return fmt.Sprintf("%s%s%s-%d", prefix, constvars.MarketplaceOrderIDMarker, shortID, time.Now().UnixMilli())
}

// IsMarketplaceOrderID reports whether a gateway order identifier belongs to a
// marketplace order payment.
func IsMarketplaceOrderID(gatewayOrderID string) bool {
	return strings.Contains(gatewayOrderID, constvars.MarketplaceOrderIDMarker)
}

// GenerateOrderNumber returns a human-facing order number: ORD-YYYYMMDD-XXXX.
func GenerateOrderNumber() (string, error) {
	const digits = "0123456789"
	max := big.NewInt(int64(len(digits)))

	suffix := make([]byte, 4)
	for i := range suffix {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		suffix[i] = digits[num.Int64()]
	}

	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), string(suffix)), nil
}
