package storectl

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Apurer/henri-storefront/internal/app/api"
	"github.com/Apurer/henri-storefront/internal/app/seed"
	"github.com/Apurer/henri-storefront/internal/domains/catalog/adapters/export"
	"github.com/Apurer/henri-storefront/internal/platform/migrations"
	platformpostgres "github.com/Apurer/henri-storefront/internal/platform/postgres"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the storefront tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := api.LoadConfig()
			if err != nil {
				return err
			}
			if cfg.PostgresDSN == "" {
				return errDSNRequired
			}
			ctx := cmd.Context()
			db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
			if err != nil {
				return fmt.Errorf("connect postgres: %w", err)
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			if err := migrations.Run(db.WithContext(ctx)); err != nil {
				return fmt.Errorf("apply migrations: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func newSeedCommand(cli *CLI) *cobra.Command {
	var admin seed.AdminAccount
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the default catalog and admin account",
		Long: `seed inserts the default products when the catalog is empty, fills in
missing descriptions and demo prices on existing products, and makes sure
the admin account exists.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.withServices(cmd.Context(), func(services *api.Services) error {
				result, err := seed.New(services.Products, services.Users, seed.WithLogger(cli.Logger), seed.WithAdmin(admin)).Run(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "products created: %d\n", result.ProductsCreated)
				fmt.Fprintf(out, "products backfilled: %d\n", result.ProductsBackfill)
				fmt.Fprintf(out, "admin: %s\n", result.AdminEmail)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&admin.Email, "admin-email", seed.DefaultAdminEmail, "admin account email")
	cmd.Flags().StringVar(&admin.Password, "admin-password", seed.DefaultAdminPassword, "admin account password, used only when the account is created")
	cmd.Flags().StringVar(&admin.Name, "admin-name", seed.DefaultAdminName, "admin display name")
	return cmd
}

func newCreateAdminCommand(cli *CLI) *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account or promote an existing customer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.withServices(cmd.Context(), func(services *api.Services) error {
				user, err := services.Users.EnsureAdmin(cmd.Context(), email, password, name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "admin %s ready (id %d)\n", user.Email, user.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.Flags().StringVar(&name, "name", seed.DefaultAdminName, "admin display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newExportProductsCommand(cli *CLI) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export-products",
		Short: "Write every product to an xlsx workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.withServices(cmd.Context(), func(services *api.Services) error {
				products, err := services.Catalog.ListAll(cmd.Context())
				if err != nil {
					return err
				}
				file, err := os.Create(out)
				if err != nil {
					return err
				}
				if err := export.WriteProducts(file, products); err != nil {
					file.Close()
					return fmt.Errorf("write %s: %w", out, err)
				}
				if err := file.Close(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exported %d products to %s\n", len(products), out)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "products.xlsx", "output file")
	return cmd
}

func newPurgeSessionsCommand(cli *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "purge-sessions",
		Short: "Delete expired sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.withServices(cmd.Context(), func(services *api.Services) error {
				removed, err := services.Sessions.PurgeExpired(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired sessions\n", removed)
				return nil
			})
		},
	}
}
