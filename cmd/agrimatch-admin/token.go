package main

import (
	"fmt"
	"strings"

	"agri-match/internal/database/seeder"
	"agri-match/internal/domain/profile"
	"agri-match/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	tokenUser string
	tokenDemo string
	tokenRole string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token for local testing",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		userID, err := resolveTokenUser(tokenUser, tokenDemo)
		if err != nil {
			return err
		}
		role := profile.Role(strings.ToLower(strings.TrimSpace(tokenRole)))
		if !role.Valid() {
			return fmt.Errorf("unknown role %q", tokenRole)
		}

		svc := jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn)
		tok, err := svc.GenerateAccessToken(userID, string(role))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

// resolveTokenUser accepts either an explicit id or a seeded demo key such
// as "farm:asante-cocoa".
func resolveTokenUser(user, demo string) (uuid.UUID, error) {
	switch {
	case user != "" && demo != "":
		return uuid.Nil, fmt.Errorf("use either --user or --demo")
	case demo != "":
		return seeder.DemoID(demo), nil
	case user != "":
		return parseIDFlag("user", user)
	default:
		return uuid.Nil, fmt.Errorf("--user or --demo is required")
	}
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "profile id to issue the token for")
	tokenCmd.Flags().StringVar(&tokenDemo, "demo", "", "seeded demo account key, e.g. candidate:ama")
	tokenCmd.Flags().StringVar(&tokenRole, "role", "", "profile role carried by the token")
	_ = tokenCmd.MarkFlagRequired("role")

	rootCmd.AddCommand(tokenCmd)
}
