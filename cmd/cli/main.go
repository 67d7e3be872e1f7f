package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/gym-reports/pkg/config"
	"github.com/de-tools/gym-reports/pkg/runtime/bootstrap"
	"github.com/de-tools/gym-reports/pkg/runtime/terminal"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	cfg, err := config.LoadConfig(os.Getenv(config.EnvPrefix + "_CONFIG"))
	if err != nil {
		return err
	}

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	cli := terminal.NewCLI(terminal.Options{
		Registry: app.Reports,
		Tenants:  app.Tenants,
		Output:   os.Stdout,
	})
	return cli.Execute(ctx)
}
