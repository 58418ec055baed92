package routers

import (
	"medisync-service/internal/app/delivery/http/controllers"
	"medisync-service/internal/app/delivery/http/middlewares"
	"medisync-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(
	router chi.Router,
	middlewares *middlewares.Middlewares,
	appointmentController *controllers.AppointmentController,
	scheduleController *controllers.ScheduleController,
) {
	staff := []string{constvars.RoleReceptionist, constvars.RoleHospital, constvars.RoleAdmin}

	router.With(middlewares.Authenticate).Post("/", appointmentController.Create)
	router.With(middlewares.Authenticate).Get("/my", appointmentController.FindMine)
	router.With(middlewares.Authenticate).Get("/{appointmentID}", appointmentController.FindByID)
	router.With(middlewares.Authenticate).Get("/doctor/{doctorID}/date/{date}", appointmentController.BookingCounts)
	router.With(middlewares.Authenticate).Get("/doctor/{doctorID}/slots/{date}", scheduleController.DoctorSlots)

	router.With(middlewares.Authenticate, middlewares.RequireRoles(staff...)).
		Patch("/{appointmentID}/confirm", appointmentController.Confirm)
	router.With(middlewares.Authenticate, middlewares.RequireRoles(staff...)).
		Patch("/{appointmentID}/reject", appointmentController.Reject)
	router.With(middlewares.Authenticate, middlewares.RequireRoles(staff...)).
		Patch("/{appointmentID}/check-in", appointmentController.CheckIn)
	router.With(middlewares.Authenticate, middlewares.RequireRoles(constvars.RoleDoctor)).
		Patch("/{appointmentID}/start-consultation", appointmentController.StartConsultation)
	router.With(middlewares.Authenticate, middlewares.RequireRoles(constvars.RoleDoctor)).
		Patch("/{appointmentID}/complete", appointmentController.Complete)
	router.With(middlewares.Authenticate).
		Patch("/{appointmentID}/cancel", appointmentController.Cancel)
	router.With(middlewares.Authenticate, middlewares.RequireRoles(staff...)).
		Patch("/{appointmentID}/no-show", appointmentController.MarkNoShow)
	router.With(middlewares.Authenticate, middlewares.RequireRoles(staff...)).
		Patch("/{appointmentID}/reschedule", appointmentController.Reschedule)
}
