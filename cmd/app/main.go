package main

import (
	"log"

	"github.com/joho/godotenv"

	"disputedesk/config"
	"disputedesk/internal/app"
)

func main() {
	// .env is optional, real deployments configure through the environment
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Config error: %s", err)
	}

	if err := app.Run(cfg); err != nil {
		log.Fatalf("App error: %s", err)
	}
}
