package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/renaqiu/stylematch/internal/domain/closet"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := closet.VerifyPartition(); err != nil {
		log.Fatalf("category partition broken: %v", err)
	}

	app, err := initializeApp()
	if err != nil {
		log.Fatalf("failed to wire application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}
