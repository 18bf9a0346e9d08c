// Package cli wires configuration, storage, geocoding and the session
// controller behind the wegive command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Makepad-fr/wegive/internal/app"
	"github.com/Makepad-fr/wegive/internal/config"
	"github.com/Makepad-fr/wegive/internal/logging"
	"github.com/Makepad-fr/wegive/internal/ui"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// usageError marks bad invocations; they exit with ExitUsage.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// env is the state shared by every command of one invocation.
type env struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	out     io.Writer
	errOut  io.Writer
	now     func() time.Time

	logCloser io.Closer
	sentry    bool
}

// Execute runs the command line and returns the process exit code
// (0 ok, 1 runtime error, 2 usage or user-facing failure).
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	e := &env{v: config.New(), out: stdout, errOut: stderr, now: time.Now}
	root := newRootCmd(e)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	defer e.close()
	if err == nil {
		return ExitOK
	}
	return e.report(err)
}

// report prints err and picks the exit code. Unexpected errors go to sentry.
func (e *env) report(err error) int {
	var ue usageError
	switch {
	case errors.As(err, &ue), strings.HasPrefix(err.Error(), "unknown command"):
		ui.Fail(e.errOut, err.Error())
		fmt.Fprintln(e.errOut, ui.C(ui.Dim, "Hint: run `wegive --help` for usage"))
		return ExitUsage
	case app.IsUserFailure(err):
		n, _ := app.NoticeFor(err)
		ui.Fail(e.errOut, n.Text)
		return ExitUsage
	}

	ui.Fail(e.errOut, err.Error())
	log.WithField("prefix", "cli").WithError(err).Error("command failed")
	if e.sentry {
		sentry.CaptureException(err)
	}
	return ExitError
}

// setup runs before every command: config, theme, logging and sentry.
func (e *env) setup() error {
	cfg, err := config.Load(e.v, e.cfgFile)
	if err != nil {
		return usageError{err}
	}
	e.cfg = cfg

	ui.SetTheme(cfg.UI.Theme)
	if cfg.UI.Theme != "mono" {
		ui.SetColorMode(cfg.UI.Color)
	}

	closer, err := logging.Init(cfg.Log.Level, cfg.Log.File, cfg.Data.Dir)
	if err != nil {
		return err
	}
	e.logCloser = closer

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			AttachStacktrace: true,
			Environment:      cfg.Sentry.Environment,
		}); err != nil {
			log.WithField("prefix", "init").Error(err)
		} else {
			e.sentry = true
			log.WithField("prefix", "init").Info("Initialized sentry")
		}
	}
	return nil
}

func (e *env) close() {
	if e.sentry {
		sentry.Flush(2 * time.Second)
	}
	if e.logCloser != nil {
		_ = e.logCloser.Close()
	}
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "wegive",
		Short: "List, claim and track surplus food donations",
		Long: `wegive connects food donors with the NGOs that collect surplus.

Run without a subcommand to open the interactive app.

Examples:
  wegive submit --description "Nasi lemak" --quantity 40 --address "1 Raffles Place"
  wegive ls --group
  wegive accept 2
  wegive report --out ./reports`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          usageArgs(cobra.NoArgs),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.setup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.runUI(cmd.Context())
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })

	pf := root.PersistentFlags()
	pf.StringVar(&e.cfgFile, "config", "", "config file (default ./wegive.yaml or ~/.config/wegive/wegive.yaml)")
	pf.String("data-dir", "", "directory holding the catalog and log file")
	pf.String("store", "", "catalog store driver: json or sqlite")
	pf.String("theme", "", "output theme: classic, neon or mono")
	_ = e.v.BindPFlag(config.Key("data", "dir"), pf.Lookup("data-dir"))
	_ = e.v.BindPFlag(config.Key("store", "driver"), pf.Lookup("store"))
	_ = e.v.BindPFlag(config.Key("ui", "theme"), pf.Lookup("theme"))

	root.AddCommand(
		newUICmd(e),
		newSubmitCmd(e),
		newListCmd(e),
		newAcceptCmd(e),
		newCollectCmd(e),
		newEstimateCmd(e),
		newReportCmd(e),
		newConfigCmd(e),
	)
	return root
}
