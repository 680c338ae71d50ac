package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"agri-match/internal/app"
	"agri-match/internal/database/migration"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			r := migration.Runner{Dir: c.Config.Database.MigrationsDir, Logger: c.Logger}
			return r.Run(ctx, c.DB.SQLDB())
		})
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "List migrations and whether they are applied",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			r := migration.Runner{Dir: c.Config.Database.MigrationsDir, Logger: c.Logger}
			items, err := r.List(ctx, c.DB.SQLDB())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "VERSION\tNAME\tAPPLIED")
			for _, it := range items {
				fmt.Fprintf(w, "%d\t%s\t%t\n", it.Version, it.Name, it.Applied)
			}
			return w.Flush()
		})
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd)
}
