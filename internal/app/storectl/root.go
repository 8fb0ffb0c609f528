// Package storectl implements the storefront operations CLI.
package storectl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Apurer/henri-storefront/internal/app/api"
	platformobservability "github.com/Apurer/henri-storefront/internal/platform/observability"
)

// ServicesBuilder opens the storefront services for one command run.
type ServicesBuilder func(ctx context.Context, cfg api.Config, logger *slog.Logger) (*api.Services, func(), error)

// CLI holds what the commands share. Zero fields fall back to the process defaults.
type CLI struct {
	Out     io.Writer
	Logger  *slog.Logger
	Build   ServicesBuilder
	LoadEnv bool
}

// DefaultBuilder connects repositories from cfg and wraps them in services.
func DefaultBuilder(ctx context.Context, cfg api.Config, logger *slog.Logger) (*api.Services, func(), error) {
	repos, cleanup, err := api.BuildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, func() {}, err
	}
	services, err := api.BuildServices(cfg, repos, &platformobservability.Instruments{Logger: logger})
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return services, cleanup, nil
}

// NewRootCommand assembles storectl and its subcommands.
func NewRootCommand(cli CLI) *cobra.Command {
	if cli.Out == nil {
		cli.Out = os.Stdout
	}
	if cli.Logger == nil {
		cli.Logger = platformobservability.NewLogger(os.Stderr, "text", platformobservability.ParseLevel(os.Getenv("LOG_LEVEL")))
	}
	if cli.Build == nil {
		cli.Build = DefaultBuilder
	}

	root := &cobra.Command{
		Use:   "storectl",
		Short: "Operate the Henri storefront",
		Long: `storectl runs maintenance tasks against the storefront database.

It reads the same environment as the API (POSTGRES_DSN, SESSION_TTL_HOURS, ...)
and loads .env from the working directory when present.`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if cli.LoadEnv {
				return api.LoadDotEnv()
			}
			return nil
		},
	}
	root.SetOut(cli.Out)
	root.AddCommand(
		newMigrateCommand(),
		newSeedCommand(&cli),
		newCreateAdminCommand(&cli),
		newExportProductsCommand(&cli),
		newPurgeSessionsCommand(&cli),
	)
	return root
}

// Execute runs storectl against the process environment.
func Execute() {
	if err := NewRootCommand(CLI{LoadEnv: true}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withServices loads config, builds the services and runs fn with them.
func (cli *CLI) withServices(ctx context.Context, fn func(*api.Services) error) error {
	cfg, err := api.LoadConfig()
	if err != nil {
		return err
	}
	services, cleanup, err := cli.Build(ctx, cfg, cli.Logger)
	if err != nil {
		return err
	}
	defer cleanup()
	if !services.PostgresReady {
		cli.Logger.Warn("running against in-memory repositories, changes will not persist")
	}
	return fn(services)
}

var errDSNRequired = errors.New("POSTGRES_DSN is required")
