package main

import (
	"github.com/spf13/cobra"

	"courseops/internal/api"
	"courseops/internal/config"
)

func newAdminCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative commands",
	}

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Manage API tokens for the local server",
	}
	tokenCmd.AddCommand(
		newAdminTokenAddCmd(cfg, jsonOutput),
		newAdminTokenListCmd(cfg, jsonOutput),
		newAdminTokenRevokeCmd(cfg),
	)

	cmd.AddCommand(tokenCmd)
	return cmd
}

func newAdminTokenAddCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Mint a named API token",
		Args:  requireExactlyArgs(1, "token name is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLocalBackend(cfg, "admin token"); err != nil {
				return err
			}
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.CreateToken(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				if err := writePlain("name: %s\n", resp.Name); err != nil {
					return err
				}
				if err := writePlain("token: %s\n", resp.Token); err != nil {
					return err
				}
				return writePlain("store this token now; it is not shown again\n")
			})
		},
	}
}

func newAdminTokenListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List API tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLocalBackend(cfg, "admin token"); err != nil {
				return err
			}
			return withClient(cfg, func(client *api.Client) error {
				tokens, err := client.ListTokens(cmd.Context())
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(tokens)
				}
				for _, tok := range tokens {
					status := "active"
					if !tok.Active {
						status = "revoked"
					}
					if err := writePlain("%s %s created %s\n", tok.Name, status, formatTime(tok.CreatedAt)); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newAdminTokenRevokeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <name>",
		Short: "Revoke an API token",
		Args:  requireExactlyArgs(1, "token name is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLocalBackend(cfg, "admin token"); err != nil {
				return err
			}
			return withClient(cfg, func(client *api.Client) error {
				if err := client.RevokeToken(cmd.Context(), args[0]); err != nil {
					return err
				}
				return writePlain("revoked %s\n", args[0])
			})
		},
	}
}
