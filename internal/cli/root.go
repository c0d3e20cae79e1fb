package cli

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nagrohan579/todo-list/internal/config"
	"github.com/nagrohan579/todo-list/internal/optimistic"
	"github.com/nagrohan579/todo-list/internal/storage"
	"github.com/nagrohan579/todo-list/internal/ui"
)

// App carries the wiring every subcommand shares: resolved config and the
// logger. The store itself is opened lazily through storage.Default so
// one-shot commands and the TUI share one handle.
type App struct {
	ConfigPath string

	cfg config.Config
	log zerolog.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "todo",
		Short:        "Single-list todo manager with optimistic persistence",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive list
  todo

  # Scriptable commands
  todo add "buy milk"
  todo list
  todo move 3f1c... 0
  todo clear
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.HasSubCommands() && len(args) == 0 {
				return app.runTUI()
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "config file (default: user config dir)")
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup()
	}

	cmd.AddCommand(
		newAddCmd(app),
		newListCmd(app),
		newToggleCmd(app),
		newDeleteCmd(app),
		newClearCmd(app),
		newMoveCmd(app),
	)
	return cmd
}

func (app *App) setup() error {
	path := app.ConfigPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return err
	}
	app.cfg = cfg

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	app.log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	var opts []storage.Option
	if !cfg.AtomicReorder {
		opts = append(opts, storage.WithoutAtomicReorder())
	}
	storage.SetDefaultPath(cfg.DBPath, opts...)
	return nil
}

// controller opens the default store and wraps it in a sync controller. The
// caller must Wait before exiting so dispatched writes drain.
func (app *App) controller() (*optimistic.Controller, error) {
	store, err := storage.Default()
	if err != nil {
		return nil, err
	}
	return optimistic.New(store, optimistic.WithLogger(app.log)), nil
}

func (app *App) runTUI() error {
	ctrl, err := app.controller()
	if err != nil {
		return err
	}
	return ui.Run(ctrl, app.cfg)
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
