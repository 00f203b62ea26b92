package orders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"medika-service/internal/app/config"
	"medika-service/internal/app/contracts"
	"medika-service/internal/app/models"
	"medika-service/internal/app/services/core/payments"
	"medika-service/internal/app/services/shared/events"
	"medika-service/internal/pkg/constvars"
	"medika-service/internal/pkg/dto/requests"
	"medika-service/internal/pkg/dto/responses"
	"medika-service/internal/pkg/exceptions"
	"medika-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type orderUsecase struct {
	OrderRepository   contracts.OrderRepository
	ProductRepository contracts.ProductRepository
	UserRepository    contracts.UserRepository
	PaymentGateway    contracts.PaymentGatewayService
	EventPublisher    contracts.EventPublisher
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger
}

var (
	orderUsecaseInstance contracts.OrderUsecase
	onceOrderUsecase     sync.Once
)

func NewOrderUsecase(
	orderRepository contracts.OrderRepository,
	productRepository contracts.ProductRepository,
	userRepository contracts.UserRepository,
	paymentGateway contracts.PaymentGatewayService,
	eventPublisher contracts.EventPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.OrderUsecase {
	onceOrderUsecase.Do(func() {
		instance := &orderUsecase{
			OrderRepository:   orderRepository,
			ProductRepository: productRepository,
			UserRepository:    userRepository,
			PaymentGateway:    paymentGateway,
			EventPublisher:    eventPublisher,
			InternalConfig:    internalConfig,
			Log:               logger,
		}
		orderUsecaseInstance = instance
	})
	return orderUsecaseInstance
}

// CreateOrder validates the requested items, snapshots prices, opens a
// checkout, and commits order + items + stock reservation + payment row in a
// single repository transaction.
func (uc *orderUsecase) CreateOrder(ctx context.Context, userID string, request *requests.CreateOrderRequest) (*responses.OrderResponse, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("orderUsecase.CreateOrder called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	if len(request.Items) == 0 {
		return nil, exceptions.ErrEmptyOrder(nil)
	}

	orderID := uuid.NewString()
	orderNumber, err := utils.GenerateOrderNumber()
	if err != nil {
		return nil, exceptions.ErrPostgresDBInsertData(err)
	}

	var subtotal float64
	items := make([]models.OrderItem, 0, len(request.Items))
	for _, itemReq := range request.Items {
		product, err := uc.ProductRepository.FindByID(ctx, itemReq.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, exceptions.ErrProductNotFound(nil)
		}
		if !product.IsAvailable {
			return nil, exceptions.ErrProductUnavailable(nil)
		}
		if product.Quantity < itemReq.Quantity {
			return nil, exceptions.ErrInsufficientStock(fmt.Errorf("product %s has %d left", product.ID, product.Quantity))
		}

		itemSubtotal := product.Price * float64(itemReq.Quantity)
		subtotal += itemSubtotal
		items = append(items, models.OrderItem{
			ID:          uuid.NewString(),
			OrderID:     orderID,
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    itemReq.Quantity,
			Subtotal:    itemSubtotal,
		})
	}

	adminFee := subtotal * uc.InternalConfig.Payment.AdminFeeRate
	totalAmount := subtotal + adminFee + request.ShippingCost
	expiresAt := time.Now().Add(time.Duration(uc.InternalConfig.Payment.ExpiryHours) * time.Hour)

	order := &models.Order{
		ID:           orderID,
		OrderNumber:  orderNumber,
		UserID:       userID,
		Subtotal:     subtotal,
		AdminFee:     adminFee,
		ShippingCost: request.ShippingCost,
		Courier:      request.Courier,
		TotalAmount:  totalAmount,
		Status:       models.OrderPendingPayment,
		Items:        items,
	}

	payment := &models.OrderPayment{
		ID:          uuid.NewString(),
		OrderID:     orderID,
		GrossAmount: totalAmount,
		Status:      models.PaymentPending,
		ExpiresAt:   expiresAt,
	}
	payment.GatewayOrderID = utils.GenerateMarketplaceOrderID(uc.InternalConfig.Payment.OrderIDPrefix, orderID)

	input := &contracts.GatewayTransactionInput{
		OrderID:     payment.GatewayOrderID,
		GrossAmount: totalAmount,
		ItemName:    fmt.Sprintf("Order %s", orderNumber),
		ExpiryAt:    expiresAt,
	}
	if user, err := uc.UserRepository.FindByID(ctx, userID); err != nil {
		return nil, err
	} else if user != nil {
		input.CustomerName = user.Name
		input.CustomerEmail = user.Email
	}

	checkout, err := uc.PaymentGateway.CreateTransaction(ctx, input)
	if err != nil {
		uc.Log.Error("orderUsecase.CreateOrder gateway rejected checkout",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, payment.GatewayOrderID),
			zap.Error(err),
		)
		return nil, err
	}
	payment.SnapToken = checkout.Token
	payment.RedirectURL = checkout.RedirectURL

	if err := uc.OrderRepository.CreateWithItems(ctx, order, payment); err != nil {
		// The checkout was already opened; void it so the user cannot pay for
		// an order that never landed.
		if cancelErr := uc.PaymentGateway.CancelTransaction(ctx, payment.GatewayOrderID); cancelErr != nil {
			uc.Log.Warn("orderUsecase.CreateOrder failed to void orphaned checkout",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingOrderIDKey, payment.GatewayOrderID),
				zap.Error(cancelErr),
			)
		}
		return nil, err
	}

	uc.publishEvent(ctx, events.EventOrderCreated, order)

	response := buildOrderResponse(order, order.Items)
	response.SnapToken = payment.SnapToken
	response.RedirectURL = payment.RedirectURL
	return response, nil
}

func (uc *orderUsecase) GetOrderByID(ctx context.Context, userID, orderID string) (*responses.OrderResponse, error) {
	order, err := uc.fetchOwnedOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	items, err := uc.OrderRepository.FindItemsByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	response := buildOrderResponse(order, items)
	if order.Status == models.OrderPendingPayment {
		if pending, err := uc.OrderRepository.FindPendingPaymentByOrderID(ctx, orderID); err == nil && pending != nil {
			response.SnapToken = pending.SnapToken
			response.RedirectURL = pending.RedirectURL
		}
	}
	return response, nil
}

func (uc *orderUsecase) GetOrdersByUser(ctx context.Context, userID string, page, pageSize int) ([]responses.OrderResponse, int, error) {
	offset := (page - 1) * pageSize
	orders, total, err := uc.OrderRepository.FindByUserID(ctx, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	result := make([]responses.OrderResponse, 0, len(orders))
	for i := range orders {
		result = append(result, *buildOrderResponse(&orders[i], nil))
	}
	return result, total, nil
}

// CancelOrder cancels a pending order explicitly: the checkout is voided at
// the gateway and stock is returned in the same transaction that flips the
// order.
func (uc *orderUsecase) CancelOrder(ctx context.Context, userID, orderID string) error {
	order, err := uc.fetchOwnedOrder(ctx, userID, orderID)
	if err != nil {
		return err
	}

	if order.Status != models.OrderPendingPayment {
		return exceptions.ErrOrderInvalidState(fmt.Errorf("order is %s", order.Status))
	}

	if pending, err := uc.OrderRepository.FindPendingPaymentByOrderID(ctx, orderID); err != nil {
		return err
	} else if pending != nil {
		if err := uc.PaymentGateway.CancelTransaction(ctx, pending.GatewayOrderID); err != nil {
			return err
		}
	}

	if err := uc.OrderRepository.CancelWithRestock(ctx, orderID); err != nil {
		return err
	}

	uc.publishEvent(ctx, events.EventOrderCancelled, order)
	return nil
}

// HandleNotification is the marketplace webhook path, routed here when the
// gateway order id carries the marketplace marker.
func (uc *orderUsecase) HandleNotification(ctx context.Context, request *requests.PaymentNotificationRequest) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("orderUsecase.HandleNotification called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, request.OrderID),
		zap.String("transaction_status", request.TransactionStatus),
	)

	if !uc.PaymentGateway.VerifySignature(request.OrderID, request.StatusCode, request.GrossAmount, request.SignatureKey) {
		uc.Log.Warn("orderUsecase.HandleNotification rejected invalid signature",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, request.OrderID),
		)
		return exceptions.ErrWebhookSignatureInvalid(nil)
	}

	payment, err := uc.OrderRepository.FindPaymentByGatewayOrderID(ctx, request.OrderID)
	if err != nil {
		return err
	}
	if payment == nil {
		return exceptions.ErrPaymentNotFound(nil)
	}

	result := payments.MapOrderNotification(request.TransactionStatus, request.FraudStatus)
	if result == nil {
		return nil
	}

	payment.PaymentType = request.PaymentType
	payment.TransactionID = request.TransactionID
	payment.TransactionStatus = request.TransactionStatus
	payment.TransactionTime = request.TransactionTime
	if raw, err := json.Marshal(request); err == nil {
		payment.RawResponse = string(raw)
	}

	if err := uc.OrderRepository.ApplyReconciliation(ctx, payment, result); err != nil {
		return err
	}

	if result.PaymentStatus == models.PaymentPaid {
		uc.publishEvent(ctx, events.EventOrderPaid, payment)
	} else if result.OrderStatus == models.OrderCancelled {
		uc.publishEvent(ctx, events.EventOrderCancelled, payment)
	}

	return nil
}

// ExpireOverdueOrders sweeps marketplace payments past their deadline,
// cancelling each order and returning its stock.
func (uc *orderUsecase) ExpireOverdueOrders(ctx context.Context, batchSize int) (int, error) {
	overdue, err := uc.OrderRepository.FindOverduePendingPayments(ctx, batchSize)
	if err != nil {
		return 0, err
	}

	expired := 0
	result := &models.ReconciliationResult{
		PaymentStatus: models.PaymentExpired,
		OrderStatus:   models.OrderCancelled,
		RestoreStock:  true,
	}
	for i := range overdue {
		payment := &overdue[i]

		if err := uc.PaymentGateway.ExpireTransaction(ctx, payment.GatewayOrderID); err != nil {
			uc.Log.Warn("orderUsecase.ExpireOverdueOrders gateway expire failed",
				zap.String(constvars.LoggingOrderIDKey, payment.GatewayOrderID),
				zap.Error(err),
			)
		}

		if err := uc.OrderRepository.ApplyReconciliation(ctx, payment, result); err != nil {
			uc.Log.Error("orderUsecase.ExpireOverdueOrders reconciliation failed",
				zap.String(constvars.LoggingOrderIDKey, payment.GatewayOrderID),
				zap.Error(err),
			)
			continue
		}
		expired++

		uc.publishEvent(ctx, events.EventOrderCancelled, payment)
	}
	return expired, nil
}

func (uc *orderUsecase) fetchOwnedOrder(ctx context.Context, userID, orderID string) (*models.Order, error) {
	order, err := uc.OrderRepository.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, exceptions.ErrOrderNotFound(nil)
	}
	if order.UserID != userID {
		return nil, exceptions.ErrNotAuthorized(nil)
	}
	return order, nil
}

func buildOrderResponse(order *models.Order, items []models.OrderItem) *responses.OrderResponse {
	response := &responses.OrderResponse{
		ID:           order.ID,
		OrderNumber:  order.OrderNumber,
		Subtotal:     order.Subtotal,
		AdminFee:     order.AdminFee,
		ShippingCost: order.ShippingCost,
		Courier:      order.Courier,
		TotalAmount:  order.TotalAmount,
		Status:       string(order.Status),
		CreatedAt:    order.CreatedAt,
	}
	for _, item := range items {
		response.Items = append(response.Items, responses.OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal,
		})
	}
	return response
}

// GetProducts lists the purchasable catalog for building an order.
func (uc *orderUsecase) GetProducts(ctx context.Context, page, pageSize int) ([]responses.ProductResponse, int, error) {
	offset := (page - 1) * pageSize
	products, total, err := uc.ProductRepository.FindAll(ctx, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	result := make([]responses.ProductResponse, 0, len(products))
	for i := range products {
		product := &products[i]
		result = append(result, responses.ProductResponse{
			ID:          product.ID,
			Name:        product.Name,
			Description: product.Description,
			Price:       product.Price,
			Quantity:    product.Quantity,
			IsAvailable: product.IsAvailable,
		})
	}
	return result, total, nil
}

func (uc *orderUsecase) publishEvent(ctx context.Context, event string, payload interface{}) {
	if err := uc.EventPublisher.Publish(ctx, event, payload); err != nil {
		uc.Log.Warn("orderUsecase event publish failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingEventKey, event),
			zap.Error(err),
		)
	}
}
