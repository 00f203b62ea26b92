package routers

import (
	"time"

	"medika-service/internal/app/config"
	"medika-service/internal/app/delivery/http/controllers"
	"medika-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	bookingController *controllers.BookingController,
	scheduleController *controllers.ScheduleController,
	paymentController *controllers.PaymentController,
	orderController *controllers.OrderController,
	reportController *controllers.ReportController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(httprate.LimitByIP(internalConfig.App.MaxRequestsPerMinute, time.Minute))

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)

	router.Route(internalConfig.App.EndpointPrefix, func(r chi.Router) {
		r.Route("/bookings", func(r chi.Router) {
			attachBookingRouter(r, middlewares, bookingController)
		})

		r.Route("/doctors", func(r chi.Router) {
			attachScheduleRouter(r, middlewares, scheduleController)
		})

		r.Route("/payments", func(r chi.Router) {
			attachPaymentRouter(r, middlewares, paymentController)
		})

		r.Route("/orders", func(r chi.Router) {
			attachOrderRouter(r, middlewares, orderController)
		})

		r.Route("/products", func(r chi.Router) {
			attachProductRouter(r, orderController)
		})

		r.Route("/reports", func(r chi.Router) {
			attachReportRouter(r, middlewares, reportController)
		})
	})
}
