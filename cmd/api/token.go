package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"Content_Service/internal/pkg"
)

var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Mint a bearer token for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Auth.JWTSecret == "" {
			return errors.New("auth.jwt_secret (JWT_SECRET) is not set")
		}
		token, err := pkg.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.TokenLifetime()).Generate(args[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
		return err
	},
}
