package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/skirace-standings-go/log"
	"github.com/mpapenbr/skirace-standings-go/pkg/api"
	"github.com/mpapenbr/skirace-standings-go/pkg/cmd/cmdutil"
	"github.com/mpapenbr/skirace-standings-go/pkg/config"
	"github.com/mpapenbr/skirace-standings-go/pkg/loader"
	"github.com/mpapenbr/skirace-standings-go/pkg/telemetry"
	"github.com/mpapenbr/skirace-standings-go/pkg/utils/broadcast"
)

func NewServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "starts the HTTP server providing the standings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startServer(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&config.Addr,
		"addr",
		"a",
		"localhost:8080",
		"HTTP server listen address")
	cmd.Flags().BoolVar(&config.Watch,
		"watch",
		false,
		"invalidate parsed race files when they change")
	cmd.Flags().BoolVar(&config.EnableTelemetry,
		"enable-telemetry",
		false,
		"enables telemetry")
	return cmd
}

//nolint:funlen // by design
func startServer(ctx context.Context) error {
	logger := cmdutil.SetupLogger()
	log.Debug("Config:",
		log.String("manifest", config.Manifest),
		log.String("addr", config.Addr),
		log.Strings("scoringTeams", config.ScoringTeams),
		log.Int("teamTopN", config.TeamTopN),
		log.String("seasonTeamClass", config.SeasonTeamClass),
		log.String("teamTieBreak", config.TeamTieBreak),
	)

	engine, err := cmdutil.NewEngine()
	if err != nil {
		log.Error("invalid scoring configuration", log.ErrorField(err))
		return err
	}

	var tel *telemetry.Telemetry
	if config.EnableTelemetry {
		log.Info("Enabling telemetry")
		if tel, err = telemetry.Setup(time.Minute); err != nil {
			log.Warn("Could not setup telemetry", log.ErrorField(err))
		}
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	apiOpts := []api.Option{
		api.WithEngine(engine),
		api.WithLogger(logger.Named("api")),
	}
	var ld *loader.Loader
	var hub broadcast.Hub[loader.Change]
	if config.Watch {
		changes := make(chan loader.Change)
		ld = cmdutil.NewLoader(loader.WithChanges(changes))
		hub = broadcast.New("changes", changes,
			broadcast.WithLogger[loader.Change](logger.Named("broadcast")))
		apiOpts = append(apiOpts, api.WithChanges(hub))
		go func() {
			if err := ld.Watch(ctx); err != nil {
				log.Warn("Could not watch race files", log.ErrorField(err))
			}
		}()
	} else {
		ld = cmdutil.NewLoader()
	}
	srv := api.NewServer(append(apiOpts, api.WithSource(ld))...)

	server := &http.Server{
		Addr:              config.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if hub != nil {
		// open change streams end when the hub closes
		server.RegisterOnShutdown(hub.Close)
	}
	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", log.String("addr", config.Addr))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			log.Error("server could not be started", log.ErrorField(err))
			return err
		}
	case <-ctx.Done():
		log.Debug("Got signal")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("server shutdown", log.ErrorField(err))
	}
	if tel != nil {
		tel.Shutdown(shutdownCtx)
	}
	log.Info("Server terminated")
	return nil
}
