package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hard-gainer/buurtstemming/internal/api"
	"github.com/hard-gainer/buurtstemming/internal/ballot"
	"github.com/hard-gainer/buurtstemming/internal/config"
	"github.com/hard-gainer/buurtstemming/internal/export"
	"github.com/hard-gainer/buurtstemming/internal/hub"
	"github.com/hard-gainer/buurtstemming/internal/logger"
	"github.com/hard-gainer/buurtstemming/internal/mattermost"
	"github.com/hard-gainer/buurtstemming/internal/model"
	"github.com/hard-gainer/buurtstemming/internal/service"
)

func voterRoll() model.VoterRoll {
	return model.DefaultVoterRoll()
}

func newServeCmd() *cobra.Command {
	var addr string
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the poll server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewConfig()
			if addr != "" {
				cfg.HTTPAddr = addr
			}
			return serve(cmd.Context(), cfg)
		},
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides HTTP_ADDR)")
	return serveCmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger.InitLogger(cfg.LogLevel)
	slog.Info("Starting neighbourhood poll...")

	slog.Info("Config loaded",
		"http_addr", cfg.HTTPAddr,
		"mattermost_enabled", cfg.MattermostConfig.Enabled(),
		"mattermost_url", cfg.MattermostBotURL,
		"smtp_host", cfg.SMTPHost,
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	viewers := hub.New()
	go viewers.Run(ctx)

	engine := ballot.NewEngine(voterRoll())
	pollService := service.NewService(engine, viewers, export.NewMailer(cfg.SMTPConfig))
	// seed the live feed so the first viewer gets the empty tally
	pollService.PublishResults(ctx)

	httpHandler := api.NewHTTPHandler(cfg.HTTPConfig, pollService, viewers)

	if cfg.MattermostConfig.Enabled() {
		slog.Info("Connecting to Mattermost...")

		mmClient, err := mattermost.NewClient(cfg.MattermostConfig, pollService)
		if err != nil {
			slog.Error("Failed to connect to Mattermost", "error", err)
			return err
		}

		if err := mmClient.RegisterCommands(cfg.MattermostConfig); err != nil {
			slog.Error("Failed to register commands", "error", err)
			return err
		}

		pollService.SetNotifier(mmClient, cfg.MattermostChannelID)
		httpHandler.SetCommandHandler(mmClient)
		slog.Info("Connected to Mattermost successfully")
	} else {
		slog.Warn("MATTERMOST_TOKEN not set, messaging export runs without a bot")
	}

	httpHandler.Start()

	slog.Info("Poll is open. Press CTRL+C to exit.", "voter_roll", engine.Roll().String())
	<-ctx.Done()

	slog.Info("Shutting down poll...", "total_votes", engine.Tally().Total())
	if err := httpHandler.Stop(); err != nil {
		slog.Error("Failed to stop HTTP handler", "error", err)
	}
	return nil
}
