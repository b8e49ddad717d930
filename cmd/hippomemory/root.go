package main

import (
	"context"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vytor/hippomemory/internal/config"
	"github.com/vytor/hippomemory/internal/errors"
	"github.com/vytor/hippomemory/internal/db"
	"github.com/vytor/hippomemory/internal/logger"
	"github.com/vytor/hippomemory/internal/puzzle"
	"github.com/vytor/hippomemory/internal/repository"
	kvbadger "github.com/vytor/hippomemory/internal/repository/badger"
	"github.com/vytor/hippomemory/internal/repository/memory"
	"github.com/vytor/hippomemory/internal/repository/sqlite"
	"github.com/vytor/hippomemory/internal/services"
)

// app carries the configuration shared by every subcommand. Flags write
// into cfg before PersistentPreRunE validates it.
type app struct {
	cfg config.Config
	now func() time.Time
}

func newRootCommand(cfg config.Config) *cobra.Command {
	a := &app{cfg: cfg, now: time.Now}

	root := &cobra.Command{
		Use:          "hippomemory",
		Short:        "Daily memory-matching puzzle",
		Long:         "Memorize a grid of tiles, then put every item back where it was. One puzzle per day.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			log := logger.New(
				logger.WithOutput(cmd.ErrOrStderr()),
				logger.WithLevel(logger.ParseLevel(a.cfg.LogLevel)),
				logger.WithColors(!a.cfg.Production()),
				logger.WithJSON(a.cfg.Production()),
			)
			logger.SetDefault(log)
			cmd.SetContext(logger.NewContext(cmd.Context(), log))
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.StoreDriver, "store", cfg.StoreDriver, "progress store driver: sqlite, badger or memory")
	flags.StringVar(&a.cfg.StorePath, "store-path", cfg.StorePath, "sqlite file or badger directory")
	flags.StringVar(&a.cfg.PuzzlesPath, "puzzles", cfg.PuzzlesPath, "authored puzzle file (JSON or YAML)")
	flags.StringVar(&a.cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")

	root.AddCommand(
		a.serveCommand(),
		a.playCommand(),
		a.statsCommand(),
		a.shareCommand(),
		a.reviewCommand(),
		a.resetCommand(),
		a.puzzleCommand(),
	)
	return root
}

// runtime is the opened storage and puzzle source for one command.
type runtime struct {
	provider *puzzle.Provider
	store    repository.KeyValueStore
	progress services.ProgressService
}

func (r *runtime) Close() error {
	return r.store.Close()
}

func (r *runtime) today(now time.Time) int {
	return r.provider.Calendar().DayNumberForDate(now)
}

func (a *app) open(ctx context.Context) (*runtime, error) {
	provider, err := a.provider(ctx)
	if err != nil {
		return nil, err
	}
	store, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	return &runtime{
		provider: provider,
		store:    store,
		progress: services.NewProgressService(store, provider.Calendar()),
	}, nil
}

// openStore opens the configured progress backend.
func (a *app) openStore(ctx context.Context) (repository.KeyValueStore, error) {
	log := logger.FromContext(ctx).WithPrefix("store")
	log.Debug("opening %s store at %s", a.cfg.StoreDriver, a.cfg.StorePath)

	switch a.cfg.StoreDriver {
	case config.DriverMemory:
		return memory.NewKeyValueStore(), nil
	case config.DriverBadger:
		return kvbadger.Open(a.cfg.StorePath)
	default:
		database, err := db.Open(a.cfg.StorePath)
		if err != nil {
			return nil, err
		}
		return sqlite.NewKeyValueStore(database.DB), nil
	}
}

func (a *app) provider(ctx context.Context) (*puzzle.Provider, error) {
	loc, err := a.cfg.Location()
	if err != nil {
		return nil, err
	}
	cal, err := puzzle.NewCalendar(a.cfg.EpochDate, loc)
	if err != nil {
		return nil, err
	}

	var opts []puzzle.ProviderOption
	if a.cfg.PuzzlesPath != "" {
		authored, err := puzzle.LoadFile(a.cfg.PuzzlesPath)
		if err != nil {
			return nil, err
		}
		logger.FromContext(ctx).WithPrefix("puzzle").Info("loaded %d authored puzzles from %s", len(authored), a.cfg.PuzzlesPath)
		opts = append(opts, puzzle.WithAuthored(authored))
	}
	return puzzle.NewProvider(cal, opts...), nil
}

// dayArg reads an optional day number argument, defaulting to today.
func dayArg(args []string, today int) (int, error) {
	if len(args) == 0 {
		return today, nil
	}
	day, err := strconv.Atoi(args[0])
	if err != nil || day < 1 {
		return 0, errors.NewValidationError("day", "must be a positive day number")
	}
	return day, nil
}
