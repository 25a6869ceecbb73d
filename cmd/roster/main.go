package main

import (
	"cabroster/internal/roster/handler"
	"cabroster/internal/roster/repository"
	"cabroster/internal/roster/service"
	"cabroster/pkg/app"
	"cabroster/pkg/auth"
	"cabroster/pkg/config"
	"cabroster/pkg/middleware"
)

const ServiceName = "roster"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Roster service")

	rosterService := initServices(cfg)
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	// Reads are public so the bookings service can resolve references
	// without a session token. Only the admin write needs identity.
	serverApp := app.NewApplication()
	serverApp.SetApp(cfg,
		handler.NewRosterHandler(rosterService, cfg.Log),
		middleware.Authentication(cfg.Log, issuer,
			"/api/v1/shifts",
			"/api/v1/nodal-points",
		),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config) service.RosterService {
	shiftRepo := repository.NewMongoShiftRepository(cfg)
	pointRepo := repository.NewMongoNodalPointRepository(cfg)
	rosterService := service.NewRosterService(shiftRepo, pointRepo, cfg)

	cfg.Log.Info("Roster service initialized", "database", cfg.MongoDatabaseName)
	return rosterService
}
