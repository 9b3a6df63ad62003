package utils

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	Cyan    = color.New(color.FgCyan).SprintFunc()
	Green   = color.New(color.FgGreen).SprintFunc()
	Yellow  = color.New(color.FgYellow).SprintFunc()
	Red     = color.New(color.FgRed).SprintFunc()
	Magenta = color.New(color.FgMagenta).SprintFunc()
	Bold    = color.New(color.Bold).SprintFunc()
	Faint   = color.New(color.Faint).SprintFunc()
)

// PrintError writes a red "[Error]" line to w.
func PrintError(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", Red("[Error]"), fmt.Sprintf(format, args...))
}

// PrintInfo writes a cyan "[Info]" line to w.
func PrintInfo(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", Cyan("[Info]"), fmt.Sprintf(format, args...))
}

// PrintSuccess writes a green "[OK]" line to w.
func PrintSuccess(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", Green("[OK]"), fmt.Sprintf(format, args...))
}
