package main

import (
	"github.com/rs/zerolog/log"

	"tienda-api/config"
	"tienda-api/internal/app"
	"tienda-api/internal/infrastructure/database/postgres"
)

func main() {
	config := config.CreateNewConfig()

	db, err := postgres.OpenDB(config.PostgreSQLConfig.DBUsername, config.PostgreSQLConfig.DBPassword, config.PostgreSQLConfig.DBHost, config.PostgreSQLConfig.DBPort, config.PostgreSQLConfig.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	server := app.App{
		DB:     db,
		Config: config,
	}

	if err := server.Start(); err != nil {
		log.Fatal().Err(err).Msg("Server terminated")
	}
}
