package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/soyuz43/jsast-go/internal/config"
	"github.com/soyuz43/jsast-go/internal/jsparser"
	"github.com/soyuz43/jsast-go/internal/session"
	"github.com/soyuz43/jsast-go/internal/utils"
)

// Color definitions

var (
	cyan  = utils.Cyan
	green = utils.Green
	red   = utils.Red
	bold  = utils.Bold
	faint = utils.Faint
)

// Persistent flag values.
var (
	configPath string
	backend    string
	logLevel   string
	logFile    string
)

// app is the state shared by every command once flags are parsed.
type app struct {
	cfg    *config.Config
	logger *logrus.Logger
	closer io.Closer
}

var current = &app{}

// Root command
var rootCmd = &cobra.Command{
	Use:   "jsast",
	Short: "jsast: explore the abstract syntax tree of JavaScript code.",
	Long: `jsast parses JavaScript source and shows its abstract syntax tree as a
collapsible outline and as formatted JSON. Run without arguments in a terminal
to open the interactive editor.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  loadConfig,
	PersistentPostRunE: closeLogs,
	RunE:               runRootCommand,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/jsast/config.yaml)")
	flags.StringVar(&backend, "backend", "", "parser backend: auto, tree-sitter, goja or none")
	flags.StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn or error")
	flags.StringVar(&logFile, "log-file", "", "write logs to this file")
}

// Execute executes the root command.
// Interrupts cancel the command context, which stops serve and parse --watch.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		utils.PrintError(os.Stderr, "%v", err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return err
	}
	current.cfg = cfg
	return nil
}

func closeLogs(_ *cobra.Command, _ []string) error {
	if current.closer == nil {
		return nil
	}
	err := current.closer.Close()
	current.closer = nil
	return err
}

// initLogging creates the logger. Without a configured log file, output goes
// to fallback, or nowhere when fallback is nil.
func (a *app) initLogging(fallback io.Writer) error {
	logger, closer, err := utils.NewLogger(a.cfg.Log.Level, a.cfg.Log.File, fallback)
	if err != nil {
		return err
	}
	a.logger, a.closer = logger, closer
	return nil
}

func (a *app) log(component string) *logrus.Entry {
	if a.logger == nil {
		a.logger = logrus.New()
		a.logger.SetOutput(io.Discard)
	}
	return utils.Component(a.logger, component)
}

// selectParser probes the configured backend. A missing parser is not an
// error here: it yields a nil parser, and the session reports it per action.
func (a *app) selectParser() (jsparser.JsParser, error) {
	parser, err := jsparser.Select(a.cfg.Parser.Backend, a.cfg.ParserOptions(), a.log("jsparser"))
	if errors.Is(err, jsparser.ErrMissingParser) {
		a.log("jsparser").WithError(err).Warn("No parser backend available")
		return nil, nil
	}
	return parser, err
}

func (a *app) newSession(opts ...session.Option) (*session.Session, error) {
	parser, err := a.selectParser()
	if err != nil {
		return nil, err
	}
	opts = append([]session.Option{session.WithLogger(a.log("session"))}, opts...)
	return session.New(parser, opts...), nil
}
