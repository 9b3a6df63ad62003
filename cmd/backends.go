// cmd/backends.go

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soyuz43/jsast-go/internal/jsparser"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List parser backends and whether they work in this build.",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if err := current.initLogging(cmd.ErrOrStderr()); err != nil {
			return err
		}

		fmt.Fprintln(out, bold("Parser backends (probe order):"))
		for _, r := range jsparser.Probe(current.cfg.ParserOptions()) {
			state := green("available")
			if !r.Available() {
				state = red("unavailable: " + r.Err.Error())
			}
			fmt.Fprintf(out, "   %-12s %s\n   %-12s %s\n", cyan(r.Name), r.Description, "", state)
		}

		selected := jsparser.NoBackend
		parser, err := current.selectParser()
		if err != nil {
			return err
		}
		if parser != nil {
			selected = parser.Name()
		}
		fmt.Fprintf(out, "\n%s %s %s\n", bold("Selected:"), selected,
			faint(fmt.Sprintf("(preference: %s)", current.cfg.Parser.Backend)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backendsCmd)
}
