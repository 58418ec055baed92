package config

type (
	InternalConfig struct {
		App        App
		JWT        JWT
		Scheduling Scheduling
		Sync       Sync
	}

	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		RabbitMQ RabbitMQ
		Logger   Logger
	}

	App struct {
		Env                     string
		Port                    string
		Version                 string
		Timezone                string
		EndpointPrefix          string
		MaxRequests             int
		ShutdownTimeout         int
		RequestTimeoutInSeconds int
		NotificationQueue       string
	}

	JWT struct {
		Secret string
	}

	// Scheduling makes the clinic policy knobs explicit configuration rather
	// than constants embedded at call sites.
	Scheduling struct {
		SlotDurationMinutes int
		SlotCapacity        int
		ReminderCronSpec    string
	}

	// Sync drives the dashboard convergence protocol.
	Sync struct {
		PollIntervalInSeconds int
		RefetchBurst          int
	}

	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
)
