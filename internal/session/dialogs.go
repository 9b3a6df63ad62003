package session

import (
	"fmt"
	"strings"

	"github.com/soyuz43/jsast-go/internal/jsparser"
)

// Dialog is the text of an informational window.
type Dialog struct {
	Title string
	Body  string
}

// About describes the tool and the active parser backend.
func (s *Session) About() Dialog {
	return Dialog{
		Title: "About JavaScript AST Parser",
		Body: "JavaScript AST Parser\n\n" +
			"Parses JavaScript code and shows its abstract syntax tree (AST).\n\n" +
			"Using: " + s.Backend(),
	}
}

// InstallHelp explains how to get a working parser backend.
func (s *Session) InstallHelp() Dialog {
	return Dialog{Title: "Parser backends", Body: InstallHelpText()}
}

// MissingParserWarning is shown once at startup when no backend is available.
func MissingParserWarning() Dialog {
	return Dialog{
		Title: "Missing parser",
		Body: "No JavaScript parser library found!\n\n" +
			InstallHelpText() + "\n\n" +
			"The program starts anyway, but parsing will not work.",
	}
}

// InstallHelpText lists the backends and what each one needs.
func InstallHelpText() string {
	var sb strings.Builder
	sb.WriteString("jsast needs one of the following parser backends:\n\n")
	for i, b := range jsparser.Backends() {
		fmt.Fprintf(&sb, "%d. %s\n   %s\n", i+1, b.Name, b.Description)
	}
	sb.WriteString("\ntree-sitter requires a build with CGO_ENABLED=1 and a C toolchain.\n")
	sb.WriteString("goja is pure Go and works in every build.\n")
	sb.WriteString("Choose one with --backend or parser.backend in config.yaml.")
	return sb.String()
}
