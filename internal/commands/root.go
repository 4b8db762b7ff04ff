package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/gl_backoffice/internal/core/ports/services"
	"github.com/SscSPs/gl_backoffice/internal/core/services"
	"github.com/SscSPs/gl_backoffice/internal/platform/config"
	"github.com/SscSPs/gl_backoffice/internal/repositories/database/pgsql"
	"github.com/SscSPs/gl_backoffice/pkg/database"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// App carries the collaborators subcommands need. Tests replace Connect and Migrate.
type App struct {
	LoadConfig func() (*config.Config, error)
	Connect    func(ctx context.Context, cfg *config.Config) (*portssvc.ServiceContainer, func(), error)
	Migrate    func(logger *slog.Logger, databaseURL, migrationsPath string) (bool, error)
}

// DefaultApp wires the CLI to Postgres the same way the server does.
func DefaultApp() *App {
	return &App{
		LoadConfig: config.LoadConfig,
		Connect: func(ctx context.Context, cfg *config.Config) (*portssvc.ServiceContainer, func(), error) {
			pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
			if err != nil {
				return nil, nil, err
			}
			container := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool))
			return container, func() { database.ClosePgxPool(pool) }, nil
		},
		Migrate: database.RunMigrations,
	}
}

type globalOptions struct {
	tenantID string
	output   string
	debug    bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand(app *App) *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "glctl",
		Short: "Operator tooling for the general ledger",
		Long: `glctl runs ledger maintenance and reports against the configured database.

Example:
  glctl migrate
  glctl trial-balance --tenant 7f1c... --as-of 2024-03-31
  glctl lock-period --tenant 7f1c... --date 2024-03-31 --reason "Q1 closed"`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logLevel := slog.LevelInfo
			if opts.debug {
				logLevel = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: logLevel,
			}))
			slog.SetDefault(logger)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.tenantID, "tenant", os.Getenv("GL_TENANT_ID"), "tenant id (default $GL_TENANT_ID)")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "json", "output format: json or yaml")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newMigrateCommand(app),
		newTrialBalanceCommand(app, opts),
		newTieOutCommand(app, opts),
		newIssueNumberCommand(app, opts),
		newLockPeriodCommand(app, opts),
		newSequenceGapsCommand(app, opts),
		newTokenCommand(app),
	)

	return rootCmd
}

// withServices loads config, connects and runs fn with the tenant from the global flags.
func withServices(cmd *cobra.Command, app *App, opts *globalOptions, fn func(ctx context.Context, svc *portssvc.ServiceContainer, tenantID string) error) error {
	if _, err := uuid.Parse(opts.tenantID); err != nil {
		return fmt.Errorf("--tenant must be a uuid, got %q", opts.tenantID)
	}
	cfg, err := app.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	svc, closeFn, err := app.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	if closeFn != nil {
		defer closeFn()
	}
	return fn(ctx, svc, opts.tenantID)
}

func printResult(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(toPlain(v)); err != nil {
			return err
		}
		return enc.Close()
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// toPlain round-trips v through JSON so YAML output uses the same field names as the API.
func toPlain(v any) any {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}

// parseDate reads a YYYY-MM-DD flag value, defaulting to today.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return domain.DateOnly(time.Now()), nil
	}
	d, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", value)
	}
	return d, nil
}
