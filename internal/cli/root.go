// Package cli is the checklist command line. With no subcommand it opens
// the full-screen view; subcommands operate on the same state for scripts.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/checklist/internal/calendar"
	"github.com/idilsaglam/checklist/internal/checklist"
	"github.com/idilsaglam/checklist/internal/config"
	"github.com/idilsaglam/checklist/internal/logging"
	"github.com/idilsaglam/checklist/internal/model"
	"github.com/idilsaglam/checklist/internal/store"
	"github.com/idilsaglam/checklist/internal/tui"
	"github.com/idilsaglam/checklist/internal/ui"
)

// Version is set at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

const logFileName = "checklist.log"

// App carries flag values and the resources opened for one invocation.
type App struct {
	ConfigDir string
	Tab       string
	Backend   string
	DataDir   string
	Color     string
	Theme     string
	LogLevel  string

	now func() time.Time

	cfg      *config.Config
	log      *log.Logger
	closeLog func() error
	kv       store.KV
	cal      *calendar.Calendar
	store    *checklist.Store
	sess     *checklist.Session
}

// Run executes the command line in args and returns the process exit code:
// 0 on success, 1 on runtime errors, 2 on usage errors.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := &App{now: time.Now}
	return app.run(ctx, args, stdout, stderr)
}

func (a *App) run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	a.close()
	if err != nil {
		ui.Fail(stderr, err.Error())
		var ue usageError
		if errors.As(err, &ue) && ue.hint != "" {
			fmt.Fprintln(stderr, ui.Current().Muted.Render(ue.hint))
		}
	}
	return exitCode(err)
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{now: time.Now})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "checklist",
		Short:         "Daily opening and closing checklists",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Open the interactive view
  checklist

  # Scriptable commands
  checklist add "Turn on fryers"
  checklist --tab closed ls --group
  checklist done 2
  checklist date prev
`),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return withHint(fmt.Errorf("unknown command %q", args[0]), "run `checklist --help` for the list of commands")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runTUI(cmd)
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withHint(err, "run `checklist --help` for usage")
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.Tab, "tab", string(model.TabOpen), "checklist to operate on (open|closed)")
	pf.StringVar(&app.ConfigDir, "config-dir", "", "configuration directory (default: $"+config.EnvConfigDir+" or the platform config dir)")
	pf.StringVar(&app.Backend, "backend", config.BackendJSON, "storage backend (json|sqlite|postgres|s3|memory)")
	pf.StringVar(&app.DataDir, "data-dir", "", "data directory for the json and sqlite backends")
	pf.StringVar(&app.Color, "color", "auto", "color output (auto|always|never)")
	pf.StringVar(&app.Theme, "theme", "classic", "output theme (classic|neon|mono)")
	pf.StringVar(&app.LogLevel, "log-level", "warn", "log level (debug|info|warn|error)")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newCopyCmd(app))
	cmd.AddCommand(newDateCmd(app))
	cmd.AddCommand(newTUICmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// setup loads configuration and applies output settings. Storage is
// opened lazily by session so that version and help never touch it.
func (a *App) setup(cmd *cobra.Command) error {
	dir, err := config.ResolveConfigDir(a.ConfigDir)
	if err != nil {
		return fmt.Errorf("config dir: %w", err)
	}
	cfg, err := config.Load(dir, cmd.Flags())
	if err != nil {
		if errors.Is(err, config.ErrUnknownBackend) {
			return withHint(err, "")
		}
		return err
	}
	a.cfg = cfg
	if err := ui.SetColorMode(cfg.Color); err != nil {
		return withHint(err, "")
	}
	if err := ui.SetTheme(cfg.Theme); err != nil {
		return withHint(err, "")
	}
	return nil
}

// session opens the backend and returns a session on the --tab checklist.
// Logs go to stderr, or to a file under the data dir when interactive.
func (a *App) session(cmd *cobra.Command, interactive bool) (*checklist.Session, error) {
	if a.sess != nil {
		return a.sess, nil
	}
	tab, err := model.ParseTab(a.Tab)
	if err != nil {
		return nil, withHint(err, "")
	}

	if interactive {
		l, closeFn, err := logging.OpenFile(a.cfg.DataDir, logFileName, a.cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		a.log, a.closeLog = l, closeFn
	} else {
		l, err := logging.New(cmd.ErrOrStderr(), a.cfg.LogLevel)
		if err != nil {
			return nil, withHint(err, "")
		}
		a.log = l
	}

	ctx := cmd.Context()
	kv, err := openKV(ctx, a.cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", a.cfg.Backend, err)
	}
	a.kv = kv
	a.log.Debug("backend opened", "backend", a.cfg.Backend, "data_dir", a.cfg.DataDir)

	a.cal = calendar.New(calendar.WithClock(a.now))
	a.store = checklist.Open(ctx, kv, a.cal,
		checklist.WithLogger(a.log),
		checklist.WithDebounce(a.cfg.Debounce),
		checklist.WithWriteTimeout(a.cfg.WriteTimeout),
	)
	a.sess = checklist.NewSession(a.store, a.cal, nil)
	a.sess.SwitchCollection(tab)
	return a.sess, nil
}

// close flushes pending writes and releases the backend.
func (a *App) close() {
	if a.store != nil {
		a.store.Close()
	}
	if a.kv != nil {
		if err := a.kv.Close(); err != nil && a.log != nil {
			a.log.Warn("close backend", "err", err)
		}
	}
	if a.closeLog != nil {
		_ = a.closeLog()
	}
	a.store, a.kv, a.sess, a.closeLog = nil, nil, nil, nil
}

func (a *App) runTUI(cmd *cobra.Command) error {
	sess, err := a.session(cmd, true)
	if err != nil {
		return err
	}
	return tui.Run(cmd.Context(), sess)
}

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive checklist view",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runTUI(cmd)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the checklist version",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "checklist", Version)
		},
	}
}
