package models

import "time"

type OrderStatus string

const (
	OrderPendingPayment OrderStatus = "PENDING_PAYMENT"
	OrderProcessing     OrderStatus = "PROCESSING"
	OrderShipped        OrderStatus = "SHIPPED"
	OrderDelivered      OrderStatus = "DELIVERED"
	OrderCancelled      OrderStatus = "CANCELLED"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPendingPayment: {OrderProcessing, OrderCancelled},
	OrderProcessing:     {OrderShipped, OrderCancelled},
	OrderShipped:        {OrderDelivered},
}

func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

type Order struct {
	ID           string      `json:"id"`
	OrderNumber  string      `json:"order_number"`
	UserID       string      `json:"user_id"`
	Subtotal     float64     `json:"subtotal"`
	AdminFee     float64     `json:"admin_fee"`
	ShippingCost float64     `json:"shipping_cost"`
	Courier      string      `json:"courier,omitempty"`
	TotalAmount  float64     `json:"total_amount"`
	Status       OrderStatus `json:"status"`
	Items        []OrderItem `json:"items,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// OrderItem snapshots the product price at purchase time so later price edits
// do not change historical orders.
type OrderItem struct {
	ID          string  `json:"id"`
	OrderID     string  `json:"order_id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

// OrderPayment mirrors Payment but is keyed to a marketplace order.
type OrderPayment struct {
	ID                string        `json:"id"`
	OrderID           string        `json:"order_id"`
	GatewayOrderID    string        `json:"gateway_order_id"`
	GrossAmount       float64       `json:"gross_amount"`
	Status            PaymentStatus `json:"status"`
	SnapToken         string        `json:"snap_token,omitempty"`
	RedirectURL       string        `json:"redirect_url,omitempty"`
	PaymentType       string        `json:"payment_type,omitempty"`
	TransactionID     string        `json:"transaction_id,omitempty"`
	TransactionStatus string        `json:"transaction_status,omitempty"`
	TransactionTime   string        `json:"transaction_time,omitempty"`
	RawResponse       string        `json:"-"`
	PaidAt            *time.Time    `json:"paid_at,omitempty"`
	ExpiresAt         time.Time     `json:"expires_at"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}
