package requests

type CreateOrderRequest struct {
	Items        []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	ShippingCost float64            `json:"shipping_cost" validate:"omitempty,gte=0"`
	Courier      string             `json:"courier" validate:"omitempty,max=50"`
}

type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}
