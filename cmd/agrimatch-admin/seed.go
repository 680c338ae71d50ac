package main

import (
	"context"

	"agri-match/internal/app"
	"agri-match/internal/database/seeder"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo farms, candidates and job postings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			r := seeder.Runner{Seeders: seeder.Defaults(), Logger: c.Logger}
			return r.Run(ctx, c.DB)
		})
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
