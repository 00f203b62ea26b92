package constvars

// Transaction statuses delivered by the payment gateway. These strings are an
// external contract; do not rename them.
const (
	GatewayStatusCapture       = "capture"
	GatewayStatusSettlement    = "settlement"
	GatewayStatusPending       = "pending"
	GatewayStatusDeny          = "deny"
	GatewayStatusCancel        = "cancel"
	GatewayStatusExpire        = "expire"
	GatewayStatusRefund        = "refund"
	GatewayStatusPartialRefund = "partial_refund"

	GatewayFraudAccept    = "accept"
	GatewayFraudChallenge = "challenge"
)

// MarketplaceOrderIDMarker distinguishes marketplace order payments from
// booking payments inside a gateway-facing order identifier.
const MarketplaceOrderIDMarker = "-MKT-"
