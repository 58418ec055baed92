package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medisync-service/internal/app/config"
	"medisync-service/internal/app/delivery/http/controllers"
	"medisync-service/internal/app/delivery/http/middlewares"
	"medisync-service/internal/app/delivery/http/routers"
	"medisync-service/internal/app/drivers/database"
	"medisync-service/internal/app/drivers/logger"
	"medisync-service/internal/app/drivers/messaging"
	"medisync-service/internal/app/services/core/appointments"
	"medisync-service/internal/app/services/core/notifications"
	"medisync-service/internal/app/services/core/schedule"
	"medisync-service/internal/app/services/shared/broadcast"
	"medisync-service/internal/app/services/shared/locker"
	"medisync-service/internal/app/services/shared/redis"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		logrus.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	bootstrapingTheApp(&bootstrap)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Error while closing connections: %v", err)
	}

	logrus.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) {
	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, bootstrap.Logger)
	broadcaster := broadcast.NewRedisBroadcaster(bootstrap.Redis, bootstrap.Logger)

	// Middlewares
	appMiddlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)

	// Notifications
	notificationRepository := notifications.NewNotificationMongoRepository(bootstrap.MongoDB)
	notificationPublisher, err := notifications.NewAMQPPublisher(bootstrap.RabbitMQ, bootstrap.InternalConfig.App.NotificationQueue)
	if err != nil {
		logrus.Fatalf("Failed to set up notification publisher: %v", err)
	}
	notificationUsecase := notifications.NewNotificationUsecase(notificationRepository, notificationPublisher, bootstrap.Logger)
	notificationController := controllers.NewNotificationController(bootstrap.Logger, notificationUsecase, bootstrap.InternalConfig)

	// Appointments
	appointmentRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoDB)
	doctorRepository := schedule.NewDoctorMongoRepository(bootstrap.MongoDB)
	appointmentUsecase := appointments.NewAppointmentUsecase(
		appointmentRepository,
		doctorRepository,
		notificationUsecase,
		lockService,
		broadcaster,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	appointmentController := controllers.NewAppointmentController(bootstrap.Logger, appointmentUsecase, bootstrap.InternalConfig)

	// Schedule
	scheduleUsecase := schedule.NewScheduleUsecase(doctorRepository, appointmentUsecase, bootstrap.InternalConfig, bootstrap.Logger)
	scheduleController := controllers.NewScheduleController(bootstrap.Logger, scheduleUsecase, bootstrap.InternalConfig)

	// Events
	eventController := controllers.NewEventController(bootstrap.Logger, broadcaster, bootstrap.InternalConfig)

	// Reminder worker
	reminderWorker := appointments.NewReminderWorker(
		bootstrap.Logger,
		bootstrap.InternalConfig,
		lockService,
		appointmentRepository,
		notificationUsecase,
	)
	reminderWorker.Start(context.Background())
	bootstrap.ReminderWorkerStop = reminderWorker.Stop

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		appMiddlewares,
		appointmentController,
		scheduleController,
		notificationController,
		eventController,
	)
}
