package routers

import (
	"medika-service/internal/app/delivery/http/controllers"
	"medika-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPaymentRouter(router chi.Router, middlewares *middlewares.Middlewares, paymentController *controllers.PaymentController) {
	// The webhook authenticates itself with the signature in the body, and
	// the redirect landings are where the hosted checkout sends the payer.
	router.Post("/notification", paymentController.HandleNotification)
	router.Get("/finish", paymentController.PaymentRedirect)
	router.Get("/pending", paymentController.PaymentRedirect)
	router.Get("/error", paymentController.PaymentRedirect)

	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate)

		r.Post("/create/{bookingId}", paymentController.CreatePayment)
		r.Get("/status/{orderId}", paymentController.GetPaymentStatus)
		r.Get("/booking/{bookingId}", paymentController.GetPaymentByBooking)
		r.Get("/history", paymentController.GetPaymentHistory)
		r.Post("/cancel/{orderId}", paymentController.CancelPayment)
	})
}
