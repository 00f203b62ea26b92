package routers

import (
	"medika-service/internal/app/delivery/http/controllers"
	"medika-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachOrderRouter(router chi.Router, middlewares *middlewares.Middlewares, orderController *controllers.OrderController) {
	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate)

		r.Post("/", orderController.CreateOrder)
		r.Get("/", orderController.GetOrders)
		r.Get("/{orderId}", orderController.GetOrderByID)
		r.Post("/{orderId}/cancel", orderController.CancelOrder)
	})
}

func attachProductRouter(router chi.Router, orderController *controllers.OrderController) {
	router.Get("/", orderController.GetProducts)
}
