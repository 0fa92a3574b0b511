package main

import (
	"os"

	"github.com/oakhaven/prepschool/internal/pkg/logger"
	"github.com/oakhaven/prepschool/internal/server"
)

// @title Oakhaven Preparatory School API
// @version 1.0
// @description Admissions, contact and student portal backend for Oakhaven Preparatory School

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT session token

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully")
}
