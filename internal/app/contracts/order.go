package contracts

import (
	"context"

	"medika-service/internal/app/models"
	"medika-service/internal/pkg/dto/requests"
	"medika-service/internal/pkg/dto/responses"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (*models.Order, error)
	FindByUserID(ctx context.Context, userID string, limit, offset int) ([]models.Order, int, error)
	FindItemsByOrderID(ctx context.Context, orderID string) ([]models.OrderItem, error)
	// CreateWithItems inserts the order, its items, its payment row, and
	// decrements product stock in one transaction. A stock guard miss aborts
	// the whole order.
	CreateWithItems(ctx context.Context, order *models.Order, payment *models.OrderPayment) error
	FindPaymentByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.OrderPayment, error)
	FindPaymentsByUserID(ctx context.Context, userID string, limit, offset int) ([]models.OrderPayment, error)
	FindPendingPaymentByOrderID(ctx context.Context, orderID string) (*models.OrderPayment, error)
	// ApplyReconciliation moves the order payment and order together; when the
	// result asks for it, reserved stock is returned in the same transaction.
	ApplyReconciliation(ctx context.Context, payment *models.OrderPayment, result *models.ReconciliationResult) error
	// CancelWithRestock cancels a pending order and returns its stock.
	CancelWithRestock(ctx context.Context, orderID string) error
	FindOverduePendingPayments(ctx context.Context, limit int) ([]models.OrderPayment, error)
}

type OrderUsecase interface {
	CreateOrder(ctx context.Context, userID string, request *requests.CreateOrderRequest) (*responses.OrderResponse, error)
	GetOrderByID(ctx context.Context, userID, orderID string) (*responses.OrderResponse, error)
	GetOrdersByUser(ctx context.Context, userID string, page, pageSize int) ([]responses.OrderResponse, int, error)
	CancelOrder(ctx context.Context, userID, orderID string) error
	HandleNotification(ctx context.Context, request *requests.PaymentNotificationRequest) error
	ExpireOverdueOrders(ctx context.Context, batchSize int) (int, error)
	GetProducts(ctx context.Context, page, pageSize int) ([]responses.ProductResponse, int, error)
}

type ProductRepository interface {
	FindByID(ctx context.Context, productID string) (*models.Product, error)
	FindAll(ctx context.Context, limit, offset int) ([]models.Product, int, error)
}
