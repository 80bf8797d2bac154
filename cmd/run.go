package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/investipet/investipet/internal/app"
	"github.com/investipet/investipet/internal/cache"
	"github.com/investipet/investipet/internal/config"
	"github.com/investipet/investipet/internal/store"
	"github.com/investipet/investipet/internal/submit"
)

// runApp wires the services together and launches the TUI.
func runApp(cmd *cobra.Command) error {
	client, creds, log, cleanup, err := buildClient(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := config.FromEnv()
	profiles := cache.New(client, cfg.PageSize, cache.WithLogger(log))

	coordinatorOpts := []submit.Option{submit.WithLogger(log)}
	deps := app.Deps{
		Client:   client,
		Creds:    creds,
		Profiles: profiles,
	}

	// The history database is a convenience; the app still works without it.
	dbPath, err := resolveDBPath(cmd)
	if err == nil {
		st, err := store.Open(dbPath)
		if err == nil {
			defer st.Close()
			deps.Attempts = st.AttemptRepo()
			coordinatorOpts = append(coordinatorOpts, submit.WithHistory(deps.Attempts))
		} else {
			fmt.Fprintln(os.Stderr, "History database unavailable:", err)
		}
	}

	deps.Coordinator = submit.New(client, profiles, coordinatorOpts...)

	return app.Run(deps)
}
