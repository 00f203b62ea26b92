package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"medika-service/internal/app/contracts"
	"medika-service/internal/pkg/constvars"
	"medika-service/internal/pkg/dto/requests"
	"medika-service/internal/pkg/exceptions"
	"medika-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderController struct {
	Log          *zap.Logger
	OrderUsecase contracts.OrderUsecase
}

var (
	orderControllerInstance *OrderController
	onceOrderController     sync.Once
)

func NewOrderController(logger *zap.Logger, orderUsecase contracts.OrderUsecase) *OrderController {
	onceOrderController.Do(func() {
		instance := &OrderController{
			Log:          logger,
			OrderUsecase: orderUsecase,
		}
		orderControllerInstance = instance
	})
	return orderControllerInstance
}

func (ctrl *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	userID := utils.GetUserID(r.Context())

	request := new(requests.CreateOrderRequest)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("Failed to parse create order request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	order, err := ctrl.OrderUsecase.CreateOrder(ctx, userID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.OrderCreatedMessage, order)
}

func (ctrl *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID := utils.GetUserID(r.Context())
	page, pageSize := parsePagination(r)

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	orders, total, err := ctrl.OrderUsecase.GetOrdersByUser(ctx, userID, page, pageSize)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination := utils.BuildPaginationResponse(total, page, pageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.ResponseSuccess, pagination, orders)
}

func (ctrl *OrderController) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	userID := utils.GetUserID(r.Context())
	orderID := chi.URLParam(r, "orderId")

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	order, err := ctrl.OrderUsecase.GetOrderByID(ctx, userID, orderID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, order)
}

func (ctrl *OrderController) CancelOrder(w http.ResponseWriter, r *http.Request) {
	userID := utils.GetUserID(r.Context())
	orderID := chi.URLParam(r, "orderId")

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	if err := ctrl.OrderUsecase.CancelOrder(ctx, userID, orderID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.OrderCancelledMessage, nil)
}

func (ctrl *OrderController) GetProducts(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	products, total, err := ctrl.OrderUsecase.GetProducts(ctx, page, pageSize)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination := utils.BuildPaginationResponse(total, page, pageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.ResponseSuccess, pagination, products)
}
