package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jbweber/homelab/stagerad/internal/config"
	"github.com/jbweber/homelab/stagerad/internal/migrations"
	"github.com/jbweber/homelab/stagerad/internal/server"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "stagerad",
		Short:        "Radiology internship record service",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a YAML or TOML configuration file")

	cmd.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newTokenCmd(opts),
	)
	return cmd
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv, err := server.New(ctx, cfg)
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and print the schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			ds, err := cfg.InitializeDatabase(ctx)
			if err != nil {
				return err
			}
			defer ds.Close()

			return printSchemaVersion(cmd, migrations.NewMigrator(ds))
		},
	}
	cmd.AddCommand(newMigrateDownCmd(opts))
	return cmd
}

func newMigrateDownCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Revert the most recent migration and print the schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			ds, err := cfg.OpenDatabase(ctx)
			if err != nil {
				return err
			}
			defer ds.Close()

			migrator := migrations.NewDefaultMigrator(ds)
			if err := migrator.Rollback(ctx); err != nil {
				return fmt.Errorf("failed to roll back migration: %w", err)
			}
			return printSchemaVersion(cmd, migrator)
		},
	}
}

func printSchemaVersion(cmd *cobra.Command, migrator *migrations.Migrator) error {
	version, err := migrator.GetCurrentVersion(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
	return err
}
