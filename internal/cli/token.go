package cli

import (
	"fmt"

	"github.com/sangkips/aluworks-api/internal/config"
	"github.com/sangkips/aluworks-api/pkg/utils"
	"github.com/spf13/cobra"
)

// TokenCmd mints a bearer token signed with the configured secret, for
// local development against the API
func TokenCmd(load func() *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			subject, _ := cmd.Flags().GetString("subject")
			email, _ := cmd.Flags().GetString("email")
			role, _ := cmd.Flags().GetString("role")

			cfg := load().JWT
			token, err := utils.NewJWTManager(cfg.Secret, cfg.Issuer, cfg.Audience, cfg.Expiry).
				GenerateToken(subject, email, role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().String("subject", "dev-operator", "token subject")
	cmd.Flags().String("email", "", "email claim")
	cmd.Flags().String("role", "authenticated", "role claim")
	return cmd
}
