// Command server runs the dealboard HTTP API.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/dealboard/dealboard-backend/internal/app"
)

func main() {
	// Best effort: a missing .env just means real env vars are used.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("run: %v", err)
	}
}
