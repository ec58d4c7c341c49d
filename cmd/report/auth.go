package main

import (
	"fmt"
	"time"

	"github.com/alokyadav9045/travellr-sub002/internal/domain"
	"github.com/alokyadav9045/travellr-sub002/internal/usecases/authenticating"
	"github.com/spf13/cobra"
)

type tokenCmd struct {
	app      *app
	userID   int
	name     string
	email    string
	role     int
	vendorID string
	ttl      time.Duration
}

func newTokenCmd(a *app) *cobra.Command {
	tc := &tokenCmd{app: a}
	cmd := &cobra.Command{
		Use:     "token",
		Short:   "Emite um JWT assinado com AUTH_SECRET_KEY",
		PreRunE: a.load,
		RunE:    tc.run,
	}

	cmd.Flags().IntVar(&tc.userID, "user-id", 1, "ID do usuário")
	cmd.Flags().StringVar(&tc.name, "name", "", "Nome do usuário")
	cmd.Flags().StringVar(&tc.email, "email", "", "Email do usuário")
	cmd.Flags().IntVar(&tc.role, "role", domain.RoleAdmin, "Role (1=admin, 2=staff, 3=vendor)")
	cmd.Flags().StringVar(&tc.vendorID, "vendor", "", "Fornecedor do usuário (role vendor)")
	cmd.Flags().DurationVar(&tc.ttl, "ttl", 24*time.Hour, "Validade do token")

	return cmd
}

func (tc *tokenCmd) run(cmd *cobra.Command, _ []string) error {
	if tc.role == domain.RoleVendor && tc.vendorID == "" {
		return fmt.Errorf("--vendor é obrigatório para a role vendor")
	}

	token, err := authenticating.NewService(tc.app.cfg.Auth).GenerateToken(domain.Claims{
		UserID:     tc.userID,
		UserName:   tc.name,
		UserEmail:  tc.email,
		UserRoleID: tc.role,
		VendorID:   tc.vendorID,
	}, tc.ttl)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

func newHashKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-key <api-key>",
		Short: "Gera o hash bcrypt para AUTH_SERVICE_API_KEY_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := authenticating.HashAPIKey(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
