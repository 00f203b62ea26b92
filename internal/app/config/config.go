package config

import (
	"time"

	"medika-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		PostgresDB: PostgresDB{
			Host:     utils.GetEnvString("POSTGRES_HOST", "localhost"),
			Port:     utils.GetEnvString("POSTGRES_PORT", "5432"),
			DBName:   utils.GetEnvString("POSTGRES_DB_NAME", "medika"),
			Username: utils.GetEnvString("POSTGRES_USERNAME", "postgres"),
			Password: utils.GetEnvString("POSTGRES_PASSWORD", "postgres"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		RabbitMQ: RabbitMQ{
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
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
			Env:                   utils.GetEnvString("APP_ENV", "development"),
			Port:                  utils.GetEnvString("APP_PORT", ":8080"),
			Version:               utils.GetEnvString("APP_VERSION", "v1.0"),
			Address:               utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:              utils.GetEnvString("APP_TIMEZONE", "Asia/Jakarta"),
			EndpointPrefix:        utils.GetEnvString("APP_ENDPOINT_PREFIX", "/api/v1"),
			ShutdownTimeout:       utils.GetEnvDuration("APP_SHUTDOWN_TIMEOUT", 10*time.Second),
			MaxRequestsPerMinute:  utils.GetEnvInt("APP_MAX_REQUESTS_PER_MINUTE", 100),
			RequestTimeoutSeconds: utils.GetEnvInt("APP_REQUEST_TIMEOUT_SECONDS", 30),
			RabbitMQEventsQueue:   utils.GetEnvString("APP_RABBITMQ_EVENTS_QUEUE", "medika.events"),
			DefaultPageSize:       utils.GetEnvInt("APP_DEFAULT_PAGE_SIZE", 10),
		},
		JWT: JWT{
			Secret: utils.GetEnvString("JWT_SECRET", ""),
		},
		Payment: Payment{
			ServerKey:         utils.GetEnvString("PAYMENT_SERVER_KEY", ""),
			ClientKey:         utils.GetEnvString("PAYMENT_CLIENT_KEY", ""),
			SnapBaseURL:       utils.GetEnvString("PAYMENT_SNAP_BASE_URL", "https://app.sandbox.midtrans.com/snap/v1"),
			CoreAPIBaseURL:    utils.GetEnvString("PAYMENT_CORE_API_BASE_URL", "https://api.sandbox.midtrans.com/v2"),
			OrderIDPrefix:     utils.GetEnvString("PAYMENT_ORDER_ID_PREFIX", "MEDIKA"),
			AdminFeeRate:      utils.GetEnvFloat("PAYMENT_ADMIN_FEE_RATE", 0.05),
			ExpiryHours:       utils.GetEnvInt("PAYMENT_EXPIRY_HOURS", 24),
			FinishRedirectURL: utils.GetEnvString("PAYMENT_FINISH_REDIRECT_URL", ""),
			RequestsPerSecond: utils.GetEnvFloat("PAYMENT_REQUESTS_PER_SECOND", 10),
		},
		Worker: Worker{
			ExpirySchedule:  utils.GetEnvString("WORKER_EXPIRY_SCHEDULE", "*/5 * * * *"),
			ExpiryBatchSize: utils.GetEnvInt("WORKER_EXPIRY_BATCH_SIZE", 100),
			LockTTL:         utils.GetEnvDuration("WORKER_LOCK_TTL_SECONDS", 240*time.Second),
		},
	}
}
