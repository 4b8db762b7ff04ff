package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/gl_backoffice/internal/core/ports/services"
	"github.com/SscSPs/gl_backoffice/internal/dto"
	"github.com/SscSPs/gl_backoffice/internal/utils"
	"github.com/spf13/cobra"
)

// ErrNotTied is returned by tie-out when a control account differs from its sub-ledger.
var ErrNotTied = errors.New("control accounts do not tie out")

const operatorUser = "glctl"

func newMigrateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			applied, err := app.Migrate(slog.Default(), cfg.DatabaseURL, cfg.MigrationsPath)
			if err != nil {
				return err
			}
			if applied {
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "no new migrations")
			}
			return nil
		},
	}
}

func newTrialBalanceCommand(app *App, opts *globalOptions) *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Print the trial balance as of a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate(asOf)
			if err != nil {
				return err
			}
			return withServices(cmd, app, opts, func(ctx context.Context, svc *portssvc.ServiceContainer, tenantID string) error {
				tb, err := svc.Reconciler.TrialBalance(ctx, tenantID, date)
				if err != nil {
					return err
				}
				if !tb.Balanced {
					slog.Warn("Trial balance is out of balance",
						slog.String("debit", tb.TotalDebit.StringFixed(2)),
						slog.String("credit", tb.TotalCredit.StringFixed(2)))
				}
				return printResult(cmd.OutOrStdout(), opts.output, tb)
			})
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "report date YYYY-MM-DD (default today)")
	return cmd
}

func newTieOutCommand(app *App, opts *globalOptions) *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "tie-out",
		Short: "Compare AR and AP control accounts with open documents",
		Long:  "Compares control account balances with sub-ledger totals. Exits non-zero when a difference exceeds 0.01.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate(asOf)
			if err != nil {
				return err
			}
			return withServices(cmd, app, opts, func(ctx context.Context, svc *portssvc.ServiceContainer, tenantID string) error {
				results, err := svc.Reconciler.TieOut(ctx, tenantID, date)
				if err != nil {
					return err
				}
				if err := printResult(cmd.OutOrStdout(), opts.output, results); err != nil {
					return err
				}
				for _, r := range results {
					if !r.WithinTolerance {
						return fmt.Errorf("%w: %s differs by %s", ErrNotTied, r.Ledger, r.Difference.StringFixed(2))
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "report date YYYY-MM-DD (default today)")
	return cmd
}

func newIssueNumberCommand(app *App, opts *globalOptions) *cobra.Command {
	var req dto.IssueNumberRequest
	var docType string

	cmd := &cobra.Command{
		Use:   "issue-number",
		Short: "Issue the next document number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, app, opts, func(ctx context.Context, svc *portssvc.ServiceContainer, tenantID string) error {
				number, err := svc.Sequence.Issue(ctx, tenantID, docType, req)
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), opts.output, dto.IssueNumberResponse{DocType: docType, Number: number})
			})
		},
	}

	cmd.Flags().StringVar(&docType, "doc-type", "", "document type, e.g. invoice (required)")
	_ = cmd.MarkFlagRequired("doc-type")
	cmd.Flags().StringVar(&req.Prefix, "prefix", "", "number prefix, may contain {YYYY}, {YY}, {MM} or {PERIOD} (needs --period)")
	cmd.Flags().IntVar(&req.Pad, "pad", 0, "zero padding width (default 4)")
	cmd.Flags().StringVar(&req.PeriodKey, "period", "", "period key YYYYMM")
	return cmd
}

func newLockPeriodCommand(app *App, opts *globalOptions) *cobra.Command {
	var req dto.LockPeriodRequest

	cmd := &cobra.Command{
		Use:   "lock-period",
		Short: "Lock every date on or before --date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := time.Parse(time.DateOnly, req.LockDate); err != nil {
				return fmt.Errorf("invalid --date %q, use YYYY-MM-DD", req.LockDate)
			}
			return withServices(cmd, app, opts, func(ctx context.Context, svc *portssvc.ServiceContainer, tenantID string) error {
				lock, err := svc.Period.LockPeriod(ctx, tenantID, operatorUser, req)
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), opts.output, dto.ToPeriodLockResponse(*lock))
			})
		},
	}

	cmd.Flags().StringVar(&req.LockDate, "date", "", "lock date YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("date")
	cmd.Flags().StringVar(&req.Reason, "reason", "", "why the period is closed (required)")
	_ = cmd.MarkFlagRequired("reason")
	return cmd
}

func newSequenceGapsCommand(app *App, opts *globalOptions) *cobra.Command {
	var docType, periodKey string

	cmd := &cobra.Command{
		Use:   "sequence-gaps",
		Short: "List issued document numbers that no saved document carries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, app, opts, func(ctx context.Context, svc *portssvc.ServiceContainer, tenantID string) error {
				report, err := svc.Reconciler.SequenceGaps(ctx, tenantID, docType, periodKey)
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), opts.output, report)
			})
		},
	}

	cmd.Flags().StringVar(&docType, "doc-type", "", "document type (required)")
	_ = cmd.MarkFlagRequired("doc-type")
	cmd.Flags().StringVar(&periodKey, "period", "", "period key YYYYMM")
	return cmd
}

func newTokenCommand(app *App) *cobra.Command {
	var subject string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for scripted API calls",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			token, err := utils.IssueToken(subject, cfg.JWTSecret, ttl, cfg.JWTIssuer)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "user", operatorUser, "user id placed in the token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
