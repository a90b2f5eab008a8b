package main

import (
	"context"
	"fmt"

	"github.com/flicsl/jsonsync/internal/client"
	"github.com/flicsl/jsonsync/internal/config"
	"github.com/flicsl/jsonsync/internal/logger"
	"github.com/flicsl/jsonsync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewLogger("jsonsync-client").Fatal().Err(err).Msg("error getting configs")
	}

	// stdout belongs to the terminal ui
	log := logger.NewFileLogger("jsonsync-client", cfg.Log.FilePath)
	log.Debug().Any("config", cfg).Msg("received configs")

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	app, err := client.NewApp(cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
