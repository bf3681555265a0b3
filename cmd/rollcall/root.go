package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/microsoft/rollcall/internal/console"
	"github.com/microsoft/rollcall/internal/projectconfig"
	"github.com/microsoft/rollcall/internal/roster"
	"github.com/microsoft/rollcall/internal/storage"
	"github.com/spf13/cobra"
)

var version = "dev"

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	debug   bool
	dataDir string
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "rollcall",
		Short: "Rollcall - console attendance tracker",
		Long: `Rollcall registers students, marks attendance for lecture sessions,
and summarizes attendance from the recorded session files.

Run without a subcommand to open the interactive menu.`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, opts)
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "Directory holding the roster and session data (overrides .rollcall.yaml)")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if opts.debug {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newMenuCommand(opts))
	cmd.AddCommand(newRegisterCommand(opts))
	cmd.AddCommand(newStudentsCommand(opts))
	cmd.AddCommand(newMarkCommand(opts))
	cmd.AddCommand(newReportCommand(opts))
	cmd.AddCommand(newSessionsCommand(opts))

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

// app bundles what every command needs: config, an open store and the
// roster loaded from it.
type app struct {
	cfg    *projectconfig.ProjectConfig
	store  storage.Store
	roster *roster.Roster
}

func openApp(opts *globalOptions) (*app, error) {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return nil, err
	}

	storeOpts := cfg.StorageOptions()
	if opts.dataDir != "" {
		dataDir, err := filepath.Abs(opts.dataDir)
		if err != nil {
			return nil, fmt.Errorf("resolving data directory: %w", err)
		}
		storeOpts["dir"] = dataDir
	}
	slog.Debug("Opening store", "backend", cfg.Storage.Backend, "dir", storeOpts["dir"], "base", cfg.Dir)

	store, err := storage.Open(cfg.Storage.Backend, storeOpts, cfg.Dir)
	if err != nil {
		return nil, err
	}

	r, err := roster.Load(store, roster.Options{RejectDuplicates: *cfg.Roster.RejectDuplicates})
	if err != nil {
		return nil, errors.Join(err, store.Close())
	}

	return &app{cfg: cfg, store: store, roster: r}, nil
}

func (a *app) Close() error {
	if err := a.store.Close(); err != nil {
		return fmt.Errorf("closing store: %w", err)
	}
	return nil
}

// withApp opens the app, runs fn, and closes the store, joining any close
// error onto fn's.
func withApp(opts *globalOptions, fn func(a *app) error) (err error) {
	a, err := openApp(opts)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, a.Close())
	}()
	return fn(a)
}

func runMenu(cmd *cobra.Command, opts *globalOptions) error {
	return withApp(opts, func(a *app) error {
		m := console.New(a.roster, a.store, cmd.InOrStdin(), cmd.OutOrStdout(), console.Options{
			ShowSessions: *a.cfg.Report.ShowSessions,
		})
		return m.Run()
	})
}

func newMenuCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Open the interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, opts)
		},
	}
}
