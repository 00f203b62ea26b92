package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medika-service/cmd/migration"
	"medika-service/internal/app/config"
	"medika-service/internal/app/delivery/http/controllers"
	"medika-service/internal/app/delivery/http/middlewares"
	"medika-service/internal/app/delivery/http/routers"
	"medika-service/internal/app/drivers/database"
	"medika-service/internal/app/drivers/logger"
	"medika-service/internal/app/drivers/messaging"
	"medika-service/internal/app/services/core/bookings"
	"medika-service/internal/app/services/core/doctors"
	"medika-service/internal/app/services/core/orders"
	"medika-service/internal/app/services/core/payments"
	"medika-service/internal/app/services/core/products"
	"medika-service/internal/app/services/core/reports"
	"medika-service/internal/app/services/core/schedules"
	"medika-service/internal/app/services/core/users"
	"medika-service/internal/app/services/shared/events"
	"medika-service/internal/app/services/shared/locker"
	"medika-service/internal/app/services/shared/payment_gateway"
	sharedRedis "medika-service/internal/app/services/shared/redis"
	"medika-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	postgresDB := database.NewPostgresDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	if utils.GetEnvBool("APP_AUTO_MIGRATE", true) {
		migration.Run(postgresDB)
	}

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		PostgresDB:     postgresDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	if err := bootstrapTheApp(bootstrap); err != nil {
		log.Fatalf("Error bootstrapping the application: %v", err)
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		internalConfig.App.ShutdownTimeout,
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapTheApp(bootstrap *config.Bootstrap) error {
	// Shared services
	redisRepository := sharedRedis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	paymentGateway := payment_gateway.NewMidtransService(bootstrap.InternalConfig, bootstrap.Logger)
	eventPublisher, err := events.NewEventPublisher(bootstrap.RabbitMQ, bootstrap.InternalConfig.App.RabbitMQEventsQueue, bootstrap.Logger)
	if err != nil {
		return err
	}

	// Repositories
	doctorRepository := doctors.NewDoctorPostgresRepository(bootstrap.PostgresDB)
	scheduleRepository := schedules.NewSchedulePostgresRepository(bootstrap.PostgresDB)
	bookingRepository := bookings.NewBookingPostgresRepository(bootstrap.PostgresDB)
	paymentRepository := payments.NewPaymentPostgresRepository(bootstrap.PostgresDB)
	productRepository := products.NewProductPostgresRepository(bootstrap.PostgresDB)
	orderRepository := orders.NewOrderPostgresRepository(bootstrap.PostgresDB)
	reportRepository := reports.NewReportPostgresRepository(bootstrap.PostgresDB)
	userRepository := users.NewUserPostgresRepository(bootstrap.PostgresDB)

	// Usecases
	doctorUsecase := doctors.NewDoctorUsecase(doctorRepository, bootstrap.Logger)
	scheduleUsecase := schedules.NewScheduleUsecase(scheduleRepository, doctorRepository, bootstrap.Logger)
	bookingUsecase := bookings.NewBookingUsecase(bookingRepository, scheduleRepository, doctorRepository, eventPublisher, bootstrap.Logger)
	paymentUsecase := payments.NewPaymentUsecase(paymentRepository, bookingRepository, doctorRepository, orderRepository, userRepository, paymentGateway, lockerService, eventPublisher, bootstrap.InternalConfig, bootstrap.Logger)
	orderUsecase := orders.NewOrderUsecase(orderRepository, productRepository, userRepository, paymentGateway, eventPublisher, bootstrap.InternalConfig, bootstrap.Logger)
	reportUsecase := reports.NewReportUsecase(reportRepository, bootstrap.Logger)

	// Controllers
	bookingController := controllers.NewBookingController(bootstrap.Logger, bookingUsecase)
	scheduleController := controllers.NewScheduleController(bootstrap.Logger, scheduleUsecase, doctorUsecase)
	paymentController := controllers.NewPaymentController(bootstrap.Logger, paymentUsecase, orderUsecase)
	orderController := controllers.NewOrderController(bootstrap.Logger, orderUsecase)
	reportController := controllers.NewReportController(bootstrap.Logger, reportUsecase)

	// Background worker
	expiryWorker := payments.NewExpiryWorker(bootstrap.Logger, bootstrap.InternalConfig, lockerService, paymentUsecase, orderUsecase)
	expiryWorker.Start(context.Background())
	bootstrap.WorkerStop = expiryWorker.Stop

	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewares,
		bookingController,
		scheduleController,
		paymentController,
		orderController,
		reportController,
	)
	return nil
}
