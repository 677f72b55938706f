package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/quanle-dev/taskboard/internal/server"
	"github.com/quanle-dev/taskboard/internal/server/config"
)

func main() {
	// .env is optional; real environments inject variables directly.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
