// cmd/parse.go

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/soyuz43/jsast-go/internal/outline"
	"github.com/soyuz43/jsast-go/internal/session"
	"github.com/soyuz43/jsast-go/internal/utils"
	"github.com/soyuz43/jsast-go/internal/watcher"
)

const (
	formatTree = "tree"
	formatJSON = "json"
	formatBoth = "both"
)

var (
	parseFormat   string
	parseOut      string
	parseWatch    bool
	parseMaxDepth int
	parseASCII    bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file|-]",
	Short: "Parse a JavaScript file and print its AST.",
	Long: `Parses a JavaScript file, or standard input when the file is "-" or
omitted, and prints the AST as an outline, as JSON, or both.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	flags := parseCmd.Flags()
	flags.StringVarP(&parseFormat, "format", "f", formatTree, "output format: tree, json or both")
	flags.StringVarP(&parseOut, "out", "o", "", "also save the JSON AST to this file (.json is added when missing)")
	flags.BoolVarP(&parseWatch, "watch", "w", false, "parse again whenever the file changes")
	flags.IntVar(&parseMaxDepth, "max-depth", 0, "limit the outline depth (0 prints everything)")
	flags.BoolVar(&parseASCII, "ascii", false, "draw the outline with ASCII guides")
	flags.Bool("locations", false, "include line/column loc objects in the AST")
	flags.Bool("ranges", false, "include [start, end] range arrays in the AST")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	switch parseFormat {
	case formatTree, formatJSON, formatBoth:
	default:
		return errors.Errorf("invalid --format %q (must be tree, json or both)", parseFormat)
	}

	path := "-"
	if len(args) == 1 {
		path = args[0]
	}
	if parseWatch && path == "-" {
		return errors.New("--watch needs a file argument")
	}

	if err := current.initLogging(os.Stderr); err != nil {
		return err
	}
	sess, err := current.newSession()
	if err != nil {
		return err
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if err := parseAndPrint(cmd.Context(), sess, path, out, errOut); err != nil && !parseWatch {
		return err
	} else if err != nil {
		utils.PrintError(errOut, "%v", err)
	}
	if !parseWatch {
		return nil
	}

	w, err := watcher.New(path, 0, current.log("watcher"))
	if err != nil {
		return err
	}
	utils.PrintInfo(errOut, "Watching %s for changes (Ctrl+C to stop)", w.Path())
	return w.Run(cmd.Context(), func(changed string) {
		fmt.Fprintln(out)
		if err := parseAndPrint(cmd.Context(), sess, changed, out, errOut); err != nil {
			utils.PrintError(errOut, "%v", err)
		}
	})
}

// parseAndPrint loads path into the session, parses it and writes the
// requested views. Empty input only prints the informational prompt.
func parseAndPrint(ctx context.Context, sess *session.Session, path string, out, errOut io.Writer) error {
	if err := sess.OpenFile(path); err != nil {
		return err
	}

	err := sess.Parse(ctx)
	switch {
	case session.IsInformational(err):
		utils.PrintInfo(errOut, "%v", err)
		return nil
	case errors.Is(err, session.ErrMissingParser):
		return errors.Errorf("%v\n\n%s", err, session.InstallHelpText())
	case err != nil:
		return err
	}

	if parseFormat == formatTree || parseFormat == formatBoth {
		opts := outline.RenderOptions{MaxDepth: parseMaxDepth, ASCII: parseASCII}
		if err := outline.Render(out, sess.Outline(), opts); err != nil {
			return errors.Wrap(err, "failed to print outline")
		}
	}
	if parseFormat == formatBoth {
		fmt.Fprintln(out)
	}
	if parseFormat == formatJSON || parseFormat == formatBoth {
		fmt.Fprintln(out, sess.JSON())
	}

	if parseOut != "" {
		written, err := sess.SaveAST(parseOut)
		if err != nil {
			return err
		}
		utils.PrintSuccess(errOut, "AST saved: %s", written)
	}
	return nil
}
