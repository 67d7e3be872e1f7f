package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/de-tools/gym-reports/pkg/config"
	"github.com/de-tools/gym-reports/pkg/models/domain"
	"github.com/de-tools/gym-reports/pkg/runtime/bootstrap"
	"github.com/de-tools/gym-reports/pkg/server"
	"github.com/de-tools/gym-reports/pkg/server/middleware"
	"github.com/de-tools/gym-reports/pkg/services/delivery"
	"github.com/de-tools/gym-reports/pkg/services/schedule"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for gym report exports",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to the YAML config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx, cancel := context.WithCancel(logger.WithContext(cmd.Context()))
	defer cancel()

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return err
	}
	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close database")
		}
	}()

	journal := delivery.NewJournal(app.Jobs)
	queue := delivery.NewQueue(
		delivery.NewSMTPMailer(delivery.SMTPSettings{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}),
		delivery.Settings{
			Size:          cfg.Delivery.QueueSize,
			MaxAttempts:   cfg.Delivery.MaxAttempts,
			Backoff:       cfg.Delivery.Backoff,
			RatePerMinute: cfg.Delivery.RatePerMinute,
			Journal:       journal,
		},
	)
	queue.Start(ctx)
	dispatcher := delivery.NewDispatcher(app.Reports, queue)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	scheduler := schedule.NewScheduler(dispatcher, schedule.Settings{Location: loc, Tenants: app.Tenants})
	for _, s := range cfg.Schedules {
		exportFormat, ok := domain.ParseExportFormat(s.Format)
		if !ok {
			return fmt.Errorf("schedule %q: unsupported format %q", s.Spec, s.Format)
		}
		if _, err := app.Reports.Get(domain.ReportFamily(s.Family)); err != nil {
			return fmt.Errorf("schedule %q: %w", s.Spec, err)
		}
		if _, err := scheduler.Add(ctx, schedule.Entry{
			Spec:       s.Spec,
			AccountID:  s.AccountID,
			Family:     domain.ReportFamily(s.Family),
			Format:     exportFormat,
			Recipients: s.Recipients,
		}); err != nil {
			return err
		}
	}
	scheduler.Start()
	logger.Info().Int("entries", scheduler.Entries()).Msg("report scheduler started")

	api := server.NewWebAPI(server.Config{
		Addr:            cfg.Addr(),
		ShutdownTimeout: 10 * time.Second,
		Auth: middleware.AuthSettings{
			Secret: []byte(cfg.Auth.JWTSecret),
			Issuer: cfg.Auth.Issuer,
		},
		Dependencies: server.Dependencies{
			Reports:    app.Reports,
			Tenants:    app.Tenants,
			Dispatcher: dispatcher,
			Deliveries: journal,
			Logger:     logger,
		},
	})

	serveErr := api.Start()

	<-scheduler.Stop().Done()
	queue.Stop()
	select {
	case <-queue.Done():
	case <-time.After(30 * time.Second):
		logger.Warn().Msg("delivery queue did not drain in time")
	}
	return serveErr
}
