package main

import (
	"context"
	"log"

	"github.com/nikonik/mediavault/internal/server"
	"github.com/nikonik/mediavault/internal/server/config"
)

func main() {
	cfg := config.LoadConfig()

	ctx := context.Background()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("error initializing app: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
