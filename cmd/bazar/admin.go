package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/bazar/internal/models"
)

const commandTimeout = 2 * time.Minute

// withApp runs fn with a connected app and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)
	return fn(ctx, a)
}

func makeAdminCmd() *cobra.Command {
	var (
		email     string
		moderator bool
	)
	cmd := &cobra.Command{
		Use:   "make-admin",
		Short: "Grant the admin (or moderator) role to a user",
		Long: `Grant a role without going through the API. Useful to create the first admin.

Examples:
  bazar make-admin --email owner@bazar.com
  bazar make-admin --email helper@bazar.com --moderator`,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := models.RoleAdmin
			if moderator {
				target = models.RoleModerator
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				res, err := a.users.Elevate(ctx, email, target)
				if err != nil {
					return err
				}
				if res.ModifiedCount == 0 && res.UpsertedCount == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%s already has role %s or higher\n", email, target)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", email, target)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "user email")
	cmd.Flags().BoolVar(&moderator, "moderator", false, "grant moderator instead of admin")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func issueTokenCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "issue-token",
		Short: "Print a bearer token for an email",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				tok, exp, err := a.tokens.Sign(map[string]any{"email": email})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), tok)
				fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", exp.Format(time.RFC3339))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func reconcilePaymentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile-payments",
		Short: "Mark orders paid when a payment for them is recorded",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				rep, err := a.payments.Reconcile(ctx)
				fmt.Fprintf(cmd.OutOrStdout(), "scanned=%d repaired=%d missing_orders=%d\n", rep.Scanned, rep.Repaired, rep.Missing)
				return err
			})
		},
	}
}

func reindexProductsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reindex-products",
		Short: "Push every stored product into the search index",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if a.index == nil {
					return errors.New("ES_URL is not set")
				}
				n, err := a.catalog.ReindexAll(ctx)
				fmt.Fprintf(cmd.OutOrStdout(), "indexed=%d\n", n)
				return err
			})
		},
	}
}
