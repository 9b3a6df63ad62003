package cmd

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/soyuz43/jsast-go/internal/session"
	"github.com/soyuz43/jsast-go/internal/tui"
)

// runRootCommand opens the interactive editor, or prints usage when stdout is
// not a terminal.
func runRootCommand(cmd *cobra.Command, args []string) error {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return cmd.Help()
	}

	// The UI owns the terminal, so logs only go to a configured file.
	if err := current.initLogging(nil); err != nil {
		return err
	}

	var opts []session.Option
	if current.cfg.UI.ExampleOnStart {
		opts = append(opts, session.WithSource(session.ExampleSource))
	}
	sess, err := current.newSession(opts...)
	if err != nil {
		return err
	}

	current.log("tui").WithField("backend", sess.Backend()).Info("Starting interactive editor")
	return tui.Run(cmd.Context(), sess)
}
