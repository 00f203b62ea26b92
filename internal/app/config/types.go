package config

import "time"

type (
	InternalConfig struct {
		App     App
		JWT     JWT
		Payment Payment
		Worker  Worker
	}

	DriverConfig struct {
		PostgresDB PostgresDB
		Redis      Redis
		RabbitMQ   RabbitMQ
		Logger     Logger
	}

	App struct {
		Env                   string
		Port                  string
		Version               string
		Address               string
		Timezone              string
		EndpointPrefix        string
		ShutdownTimeout       time.Duration
		MaxRequestsPerMinute  int
		RequestTimeoutSeconds int
		RabbitMQEventsQueue   string
		DefaultPageSize       int
	}

	PostgresDB struct {
		Host     string
		Port     string
		DBName   string
		Username string
		Password string
	}

	Redis struct {
		Host     string
		Port     string
		Password string
	}

	RabbitMQ struct {
		Host     string
		Port     string
		Username string
		Password string
	}

	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}

	JWT struct {
		Secret string
	}

	// Payment holds the gateway credentials and pricing policy. AdminFeeRate
	// is a fraction of the base amount added on top of every charge.
	Payment struct {
		ServerKey         string
		ClientKey         string
		SnapBaseURL       string
		CoreAPIBaseURL    string
		OrderIDPrefix     string
		AdminFeeRate      float64
		ExpiryHours       int
		FinishRedirectURL string
		RequestsPerSecond float64
	}

	Worker struct {
		ExpirySchedule  string
		ExpiryBatchSize int
		LockTTL         time.Duration
	}
)
