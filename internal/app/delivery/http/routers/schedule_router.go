package routers

import (
	"medika-service/internal/app/delivery/http/controllers"
	"medika-service/internal/app/delivery/http/middlewares"
	"medika-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachScheduleRouter(router chi.Router, middlewares *middlewares.Middlewares, scheduleController *controllers.ScheduleController) {
	router.Get("/", scheduleController.GetDoctors)
	router.Get("/{doctorId}", scheduleController.GetDoctorByID)
	router.Get("/{doctorId}/schedules", scheduleController.GetSchedules)

	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate)
		r.Use(middlewares.RequireRoles(constvars.RoleDoctor, constvars.RoleAdmin))

		r.Post("/{doctorId}/schedules", scheduleController.CreateSchedule)
		r.Patch("/{doctorId}/schedules/{scheduleId}", scheduleController.UpdateScheduleStatus)
	})
}
