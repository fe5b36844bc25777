package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/skilllink/skilllink/internal/buildinfo"
	"github.com/skilllink/skilllink/internal/client/cli"
	"github.com/skilllink/skilllink/internal/client/config"
	"github.com/skilllink/skilllink/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	logger := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
