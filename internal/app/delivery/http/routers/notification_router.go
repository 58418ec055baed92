package routers

import (
	"medisync-service/internal/app/delivery/http/controllers"
	"medisync-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachNotificationRoutes(
	router chi.Router,
	middlewares *middlewares.Middlewares,
	notificationController *controllers.NotificationController,
) {
	router.With(middlewares.Authenticate).Get("/me", notificationController.FindMine)
	router.With(middlewares.Authenticate).Post("/{notificationID}/read", notificationController.MarkRead)
	// Legacy route shape kept for older dashboard builds.
	router.With(middlewares.Authenticate).Post("/read/{notificationID}", notificationController.MarkRead)
}
