package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

var (
	port    = flag.Int("port", 8090, "HTTP port to listen on")
	drift   = flag.Float64("drift", 0.4, "Max deviation of each slot's total from 100%")
	seed    = flag.Int64("seed", 42, "Seed for the simulated weather")
	verbose = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	// Setup logger
	var logger *zap.Logger
	var err error
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	generator := NewGenerator(GeneratorConfig{Seed: *seed, Drift: *drift})
	app := NewApp(generator, logger)

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down simulator...")
		if err := app.Shutdown(); err != nil {
			logger.Error("Shutdown failed", zap.Error(err))
		}
	}()

	fmt.Printf("Carbon Intensity generation simulator started\n")
	fmt.Printf("  Listen: :%d\n", *port)
	fmt.Printf("  Seed: %d  Drift: %.2f\n", *seed, *drift)
	fmt.Printf("  Try: curl localhost:%d/generation/2025-01-01T00:00Z/2025-01-02T00:00Z\n", *port)

	if err := app.Listen(fmt.Sprintf(":%d", *port)); err != nil {
		logger.Fatal("Simulator failed", zap.Error(err))
	}
}
