package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/siegeai/schemalike/commands"
)

// Version is set with -ldflags at build time.
var Version = "dev"

func main() {
	_ = godotenv.Load()
	addr := getEnv("SCHEMALIKE_ADDR", ":8080")
	level := getEnv("SCHEMALIKE_LOG", "info")

	if err := setupLogging(level); err != nil {
		slog.Error("could not init logging", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := commands.Execute(ctx, commands.Config{Version: Version, Addr: addr})
	if err != nil {
		slog.Error("command failed", "err", err)
		stop()
		os.Exit(1)
	}
}

func setupLogging(level string) error {
	var logLevel slog.Level
	err := logLevel.UnmarshalText([]byte(level))
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(h))
	return err
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
