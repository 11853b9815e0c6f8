package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/casewise/intake/internal/session"
	"github.com/casewise/intake/internal/webhook"
)

var listenAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Messenger webhook server",
	Long: `Serve exposes the intake interview over a Messenger webhook.

Endpoints:
  GET  /webhook   platform subscription verification
  POST /webhook   signed message events
  GET  /health    liveness and session count

Each sender gets their own interview session; idle sessions expire.

Example:
  intake serve
  intake serve --listen :9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if listenAddr != "" {
		cfg.Webhook.ListenAddr = listenAddr
	}
	if cfg.Webhook.VerifyToken == "" || cfg.Webhook.PageToken == "" {
		return fmt.Errorf("webhook verify_token and page_token must be configured")
	}

	eng, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	registry := session.NewRegistry(eng.newMachine,
		cfg.Session.IdleTimeout, cfg.Session.CleanupInterval, logger)

	sender := webhook.NewClient(cfg.Webhook.GraphURL, cfg.Webhook.PageToken,
		cfg.Webhook.SendRate, cfg.Webhook.SendBurst, logger)

	server := webhook.NewServer(cfg.Webhook, registry, sender, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting webhook server", zap.String("addr", cfg.Webhook.ListenAddr))
	return server.ListenAndServe(ctx)
}
