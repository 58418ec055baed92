package config

import (
	"medisync-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "medisync"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                     utils.GetEnvString("APP_ENV", "development"),
			Port:                    utils.GetEnvString("APP_PORT", ":8080"),
			Version:                 utils.GetEnvString("APP_VERSION", "v1"),
			Timezone:                utils.GetEnvString("APP_TIMEZONE", "Asia/Kolkata"),
			EndpointPrefix:          utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:             utils.GetEnvInt("APP_MAX_REQUEST", 50),
			ShutdownTimeout:         utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestTimeoutInSeconds: utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 30),
			NotificationQueue:       utils.GetEnvString("APP_RABBITMQ_NOTIFICATION_QUEUE", "notification-delivery"),
		},
		JWT: JWT{
			Secret: utils.GetEnvString("JWT_SECRET", "anyjwt"),
		},
		Scheduling: Scheduling{
			SlotDurationMinutes: utils.GetEnvInt("APP_SLOT_DURATION_MINUTES", 30),
			SlotCapacity:        utils.GetEnvInt("APP_SLOT_CAPACITY", 5),
			ReminderCronSpec:    utils.GetEnvString("APP_REMINDER_CRON_SPEC", "0 18 * * *"),
		},
		Sync: Sync{
			PollIntervalInSeconds: utils.GetEnvInt("APP_SYNC_POLL_INTERVAL_IN_SECONDS", 3),
			RefetchBurst:          utils.GetEnvInt("APP_SYNC_REFETCH_BURST", 2),
		},
	}
}
