package main

import (
	"github.com/wfunc/tycoon/config"
	"github.com/wfunc/tycoon/logger"
	"github.com/wfunc/tycoon/monitor"
	"github.com/wfunc/tycoon/persistence"
	"github.com/wfunc/tycoon/server"
	"github.com/wfunc/tycoon/services"
)

func main() {
	// Initialize logger
	logger.Init()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Database. The server runs fine without one; games just
	// go unrecorded.
	var records *services.RecordService
	if cfg.Database.Enabled {
		db, err := persistence.NewGormPostgreSQL(
			cfg.Database.Postgres.Host,
			cfg.Database.Postgres.Port,
			cfg.Database.Postgres.User,
			cfg.Database.Postgres.Password,
			cfg.Database.Postgres.DBName,
		)
		if err != nil {
			logger.Log.Fatalf("Failed to connect to database: %v", err)
		}
		logger.Log.Info("Database connection successful.")
		records = services.NewRecordService(db)
	} else {
		logger.Log.Info("Database disabled, game records will not be saved.")
	}

	// Metrics
	mon := monitor.NewMonitor("tycoon")
	mon.StartServer(cfg.Server.MetricsAddress)

	// Initialize Game Server
	gameServer := server.NewGameServer(cfg, records, mon)

	// Start Server
	logger.Log.Infof("Starting game server on %s", cfg.Server.HTTPAddress)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}
