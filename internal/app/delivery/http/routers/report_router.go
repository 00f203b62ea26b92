package routers

import (
	"medika-service/internal/app/delivery/http/controllers"
	"medika-service/internal/app/delivery/http/middlewares"
	"medika-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachReportRouter(router chi.Router, middlewares *middlewares.Middlewares, reportController *controllers.ReportController) {
	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate)
		r.Use(middlewares.RequireRoles(constvars.RoleAdmin))

		r.Get("/income", reportController.GetIncomeReport)
		r.Get("/patients", reportController.GetPatientReport)
	})
}
