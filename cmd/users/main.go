package main

import (
	"cabroster/internal/users/handler"
	"cabroster/internal/users/repository"
	"cabroster/internal/users/service"
	"cabroster/internal/users/validator"
	"cabroster/pkg/app"
	"cabroster/pkg/auth"
	"cabroster/pkg/config"
	"cabroster/pkg/kafka"
	kafka_config "cabroster/pkg/kafka/config"
	kafka_middleware "cabroster/pkg/kafka/middleware"
	"cabroster/pkg/middleware"
	"cabroster/pkg/model"
)

const ServiceName = "users"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Users service")

	producer := initProducer(cfg)
	defer func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	}()

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	userService := initServices(cfg, issuer, producer)

	// Register, login and the internal lookup stay public; everything
	// else requires a session token.
	serverApp := app.NewApplication()
	serverApp.SetApp(cfg,
		handler.NewUserHandler(userService, cfg.Log),
		middleware.Authentication(cfg.Log, issuer,
			"/api/v1/users/register",
			"/api/v1/users/login",
			"/api/v1/users/lookup/",
		),
	)
	serverApp.Run()
}

func initProducer(cfg *config.Config) *kafka.Producer {
	kafkaCfg := kafka_config.Load()
	kafkaCfg.Brokers = cfg.KafkaBrokers

	producer, err := kafka.NewProducer(kafkaCfg, model.TopicUserEvents, model.TopicUserEventsDLQ)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	return producer
}

func initServices(cfg *config.Config, issuer *auth.TokenIssuer, producer *kafka.Producer) service.UserService {
	userValidator := validator.NewUserValidator(cfg.DefaultRegion, cfg.Log)
	userRepo := repository.NewMongoUserRepository(cfg)
	userService := service.NewUserService(userRepo, userValidator, issuer, producer, cfg)

	cfg.Log.Info("User service initialized", "database", cfg.MongoDatabaseName)
	return userService
}
