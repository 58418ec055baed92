package routers

import (
	"medisync-service/internal/app/delivery/http/controllers"
	"medisync-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachEventRoutes(
	router chi.Router,
	middlewares *middlewares.Middlewares,
	eventController *controllers.EventController,
) {
	router.With(middlewares.Authenticate).Get("/appointments", eventController.StreamAppointments)
}
