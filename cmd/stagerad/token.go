package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jbweber/homelab/stagerad/internal/auth"
	"github.com/jbweber/homelab/stagerad/internal/config"
	"github.com/jbweber/homelab/stagerad/internal/domain"
)

func newTokenCmd(opts *rootOptions) *cobra.Command {
	var (
		login string
		roles []string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for development and testing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			ttl, err := cfg.TokenTTL()
			if err != nil {
				return err
			}

			tokens := auth.NewJWTService(auth.JWTConfig{
				SecretKey:   cfg.Auth.Secret,
				TokenTTL:    ttl,
				TokenIssuer: cfg.Auth.Issuer,
			})
			token, err := tokens.GenerateToken(login, roles)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&login, "login", "", "login carried in the token subject")
	cmd.Flags().StringSliceVar(&roles, "role", []string{domain.AuthorityUser}, "authority granted to the caller (repeatable)")
	_ = cmd.MarkFlagRequired("login")
	return cmd
}
