package responses

import "time"

type OrderResponse struct {
	ID           string              `json:"id"`
	OrderNumber  string              `json:"order_number"`
	Subtotal     float64             `json:"subtotal"`
	AdminFee     float64             `json:"admin_fee"`
	ShippingCost float64             `json:"shipping_cost"`
	Courier      string              `json:"courier,omitempty"`
	TotalAmount  float64             `json:"total_amount"`
	Status       string              `json:"status"`
	Items        []OrderItemResponse `json:"items,omitempty"`
	SnapToken    string              `json:"snap_token,omitempty"`
	RedirectURL  string              `json:"redirect_url,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

type OrderItemResponse struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

type ProductResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	IsAvailable bool    `json:"is_available"`
}
