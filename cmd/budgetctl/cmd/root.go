// Package cmd implements the budgetctl command tree. Every command loads the
// configured snapshot, applies its change and waits for the write to finish.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dafibh/zerobudget/internal/config"
	"github.com/dafibh/zerobudget/internal/repository"
	"github.com/dafibh/zerobudget/internal/service"
	"github.com/dafibh/zerobudget/internal/store"
	"github.com/dafibh/zerobudget/internal/util"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// closeTimeout bounds the final snapshot write
const closeTimeout = 30 * time.Second

// app holds the services shared by every subcommand
type app struct {
	output     string
	verbose    bool
	configPath string

	store   *store.Store
	release func()

	categories   *service.CategoryService
	templates    *service.RecurringTemplateService
	months       *service.MonthService
	transactions *service.TransactionService
	summaries    *service.SummaryService
	budget       *service.BudgetService
}

// Execute runs budgetctl with the process arguments
func Execute() error {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) error {
	a := &app{}
	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if cerr := a.close(); cerr != nil {
		fmt.Fprintf(stderr, "Error: %v\n", cerr)
		err = errors.Join(err, cerr)
	}
	return err
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "budgetctl",
		Short: "Manage a zero-based monthly budget from the command line",
		Long: `budgetctl works on the same budget document as the API server.

Storage is selected with the same environment variables (STORAGE_BACKEND,
DATA_FILE, DATABASE_URL, S3_*). Typical workflow:
  budgetctl category add Groceries --limit 400
  budgetctl recurring add Rent --amount 1200 --category <id>
  budgetctl month open 2024-03 --income 3000
  budgetctl tx add 2024-03 --category <id> --amount 42.50
  budgetctl month summary 2024-03`,
		SilenceUsage:      true,
		PersistentPreRunE: a.open,
	}

	root.PersistentFlags().StringVarP(&a.output, "output", "o", outputTable, "output format (table, json, yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "settings file overriding the storage environment")

	root.AddCommand(
		newCategoryCommand(a),
		newRecurringCommand(a),
		newMonthCommand(a),
		newTxCommand(a),
		newResetCommand(a),
	)
	return root
}

func (a *app) open(cmd *cobra.Command, _ []string) error {
	var p *profile
	if a.configPath != "" {
		var err error
		if p, err = loadProfile(a.configPath); err != nil {
			return err
		}
		if !cmd.Flags().Changed("output") {
			a.output = p.Output
		}
	}
	if err := validateOutput(a.output); err != nil {
		return err
	}

	level := zerolog.WarnLevel
	if a.verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).Level(level).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if p != nil {
		p.apply(cfg)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
	}

	repo, release, err := repository.Open(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	st, err := store.Open(cmd.Context(), repo, log.Logger)
	if err != nil {
		release()
		return err
	}

	a.store = st
	a.release = release

	uuids := util.UUIDGenerator{}
	ulids := util.NewULIDGenerator()
	a.categories = service.NewCategoryService(st, uuids)
	a.templates = service.NewRecurringTemplateService(st, uuids)
	a.months = service.NewMonthService(st, ulids)
	a.transactions = service.NewTransactionService(st, ulids)
	a.summaries = service.NewSummaryService(st)
	a.budget = service.NewBudgetService(st)
	return nil
}

// close flushes the last snapshot and releases the storage backend
func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	err := a.store.Close(ctx)
	a.release()
	a.store = nil
	if err != nil {
		return fmt.Errorf("save budget: %w", err)
	}
	return nil
}
