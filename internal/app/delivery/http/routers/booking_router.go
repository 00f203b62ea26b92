package routers

import (
	"medika-service/internal/app/delivery/http/controllers"
	"medika-service/internal/app/delivery/http/middlewares"
	"medika-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachBookingRouter(router chi.Router, middlewares *middlewares.Middlewares, bookingController *controllers.BookingController) {
	// Slot availability is public so a patient can browse before logging in.
	router.Get("/available-slots/{doctorId}", bookingController.GetAvailableSlots)

	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate)

		r.Post("/", bookingController.CreateBooking)
		r.Get("/my", bookingController.GetMyBookings)
		r.Get("/{bookingId}", bookingController.GetBookingByID)
		r.Patch("/{bookingId}/cancel", bookingController.CancelBooking)

		r.With(middlewares.RequireRoles(constvars.RoleDoctor)).Get("/doctor", bookingController.GetDoctorBookings)
		r.With(middlewares.RequireRoles(constvars.RoleDoctor)).Patch("/{bookingId}/confirm", bookingController.ConfirmBooking)
		r.With(middlewares.RequireRoles(constvars.RoleDoctor)).Patch("/{bookingId}/complete", bookingController.CompleteBooking)

		r.With(middlewares.RequireRoles(constvars.RoleAdmin)).Get("/", bookingController.ListBookings)
	})
}
