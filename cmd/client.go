package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/investipet/investipet/internal/api"
	"github.com/investipet/investipet/internal/auth"
	"github.com/investipet/investipet/internal/config"
	"github.com/investipet/investipet/internal/logger"
)

// buildClient wires config, credentials and logging into an API client.
// The returned cleanup flushes the logger and must be called on exit.
func buildClient(cmd *cobra.Command) (*api.Client, auth.Store, *zap.Logger, func(), error) {
	cfg := config.FromEnv()
	if u, _ := cmd.Flags().GetString("api"); u != "" {
		cfg.APIBaseURL = u
	}

	log, err := logger.New(cfg.LogFile)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("open log file: %w", err)
	}
	cleanup := func() { _ = log.Sync() }

	credPath, err := auth.DefaultPath()
	if err != nil {
		cleanup()
		return nil, nil, nil, nil, fmt.Errorf("resolve credentials path: %w", err)
	}
	creds, err := auth.NewFileStore(credPath)
	if err != nil {
		cleanup()
		return nil, nil, nil, nil, fmt.Errorf("open credentials store: %w", err)
	}

	client := api.New(cfg.APIBaseURL, creds,
		api.WithLogger(log),
		api.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	)
	return client, creds, log, cleanup, nil
}
