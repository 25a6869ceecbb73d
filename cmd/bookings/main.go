package main

import (
	"cabroster/internal/bookings/handler"
	"cabroster/internal/bookings/repository"
	"cabroster/internal/bookings/service"
	"cabroster/internal/bookings/validator"
	"cabroster/pkg/app"
	"cabroster/pkg/auth"
	"cabroster/pkg/client"
	"cabroster/pkg/config"
	"cabroster/pkg/kafka"
	kafka_config "cabroster/pkg/kafka/config"
	kafka_middleware "cabroster/pkg/kafka/middleware"
	"cabroster/pkg/middleware"
	"cabroster/pkg/model"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Bookings service")

	producer := initProducer(cfg)
	defer func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	}()

	bookingService := initServices(cfg, producer)
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg,
		handler.NewBookingHandler(bookingService, cfg.Log),
		middleware.Authentication(cfg.Log, issuer),
	)
	serverApp.Run()
}

func initProducer(cfg *config.Config) *kafka.Producer {
	kafkaCfg := kafka_config.Load()
	kafkaCfg.Brokers = cfg.KafkaBrokers

	producer, err := kafka.NewProducer(kafkaCfg, model.TopicBookingEvents, model.TopicBookingEventsDLQ)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	return producer
}

func initServices(cfg *config.Config, producer *kafka.Producer) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	lockRepo := repository.NewBookingLockRepository(cfg)
	rosterClient := client.NewRosterClient(cfg.RosterServiceURL)
	usersClient := client.NewUsersClient(cfg.UsersServiceURL)

	bookingService := service.NewBookingService(
		bookingRepo,
		lockRepo,
		bookingValidator,
		rosterClient,
		usersClient,
		producer,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}
