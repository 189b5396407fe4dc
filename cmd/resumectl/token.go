package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/artem13815/hr/ingest/pkg/security/jwt"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a development JWT for the API",
	Long:  `Signs a token with JWT_SECRET and JWT_ISSUER from the service configuration. Meant for local testing; production tokens come from the identity service.`,
	Args:  cobra.NoArgs,
	RunE:  runToken,
}

var (
	tokenSubject string
	tokenAdmin   bool
	tokenTTL     time.Duration
)

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "sub", "", "User id (UUID); a random one when empty")
	tokenCmd.Flags().BoolVar(&tokenAdmin, "admin", false, "Grant admin access")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime (defaults to JWT_TTL_MINUTES)")
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sub := uuid.New()
	if tokenSubject != "" {
		if sub, err = uuid.Parse(tokenSubject); err != nil {
			return fmt.Errorf("--sub: %w", err)
		}
	}
	ttl := tokenTTL
	if ttl <= 0 {
		ttl = time.Duration(cfg.JWTTTLMinutes) * time.Minute
	}
	token, err := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, ttl).Generate(cmd.Context(), sub, tokenAdmin)
	if err != nil {
		return err
	}
	logger.Info().Str("sub", sub.String()).Bool("admin", tokenAdmin).Msg("resumectl.token.issued")
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
