package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/HBTGmbH/gosaxlex"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("xmltokens", flag.ContinueOnError)
	fs.SetOutput(stderr)
	skipWS := fs.Bool("skip-ws", false, "drop whitespace-only text tokens")
	resolve := fs.Bool("resolve", false, "resolve element and attribute names against namespace declarations")
	encode := fs.Bool("encode", false, "re-encode the token stream instead of listing it")
	verbose := fs.Bool("v", false, "log debug information to stderr")
	var usageErr error
	fs.Usage = func() {
		usageErr = errors.Join(
			usageErr,
			writef(stderr, "Usage: %s [options] [document.xml]\n\n", fs.Name()),
			writeln(stderr, "Lists the tokens of an XML document, reading stdin without a file argument."),
			writeln(stderr),
			writeln(stderr, "Options:"),
		)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 1 {
		if err := writeln(stderr, "error: at most one XML file argument is allowed"); err != nil {
			return 1
		}
		fs.Usage()
		if usageErr != nil {
			return 1
		}
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	input, name, err := readInput(fs.Args(), stdin)
	if err != nil {
		logger.Error("reading input", "err", err)
		return 1
	}
	logger.Debug("lexing", "input", name, "bytes", len(input))

	lex := gosaxlex.NewLexer(input,
		gosaxlex.WithSkipWhitespaceOnlyText(*skipWS),
		gosaxlex.WithLogger(logger))
	var scope *gosaxlex.NamespaceScope
	if *resolve {
		scope = gosaxlex.NewNamespaceScope()
	}
	var enc *gosaxlex.Encoder
	if *encode {
		enc = gosaxlex.NewEncoder(stdout)
	}

	for t, err := range lex.All() {
		if err != nil {
			logger.Error("lexing failed", "input", name, "err", err)
			return 1
		}
		if err := handleToken(t, scope, enc, stdout); err != nil {
			logger.Error("processing token failed", "input", name, "kind", t.Kind.String(), "err", err)
			return 1
		}
	}
	if scope != nil && scope.Depth() > 0 {
		logger.Error("unclosed elements at end of input", "input", name, "depth", scope.Depth())
		return 1
	}
	return 0
}

func handleToken(t gosaxlex.Token, scope *gosaxlex.NamespaceScope, enc *gosaxlex.Encoder, stdout io.Writer) error {
	t = t.Decoded()
	var resolved string
	if scope != nil {
		switch t.Kind {
		case gosaxlex.TokenTypeElement:
			el, err := scope.Enter(t)
			if err != nil {
				return err
			}
			resolved = formatElement(el)
		case gosaxlex.TokenTypeClosingTag:
			if err := scope.Leave(t); err != nil {
				return err
			}
		}
	}
	if enc != nil {
		return enc.EncodeToken(t)
	}
	line := formatToken(t)
	if resolved != "" {
		line += " => " + resolved
	}
	return writeln(stdout, line)
}

func formatToken(t gosaxlex.Token) string {
	var b strings.Builder
	b.WriteString(t.Kind.String())
	switch t.Kind {
	case gosaxlex.TokenTypeDeclaration:
		fmt.Fprintf(&b, " version=%q encoding=%q standalone=%q", t.Version, t.Encoding, t.Standalone)
	case gosaxlex.TokenTypeDocType:
		fmt.Fprintf(&b, " name=%q public=%q system=%q", t.Name, t.PublicID, t.SystemID)
	case gosaxlex.TokenTypeElement:
		fmt.Fprintf(&b, " name=%q", t.Name)
		for _, a := range t.Attr {
			fmt.Fprintf(&b, " %s=%q", a.Name, a.Value)
		}
		if t.SelfClosing {
			b.WriteString(" /")
		}
	case gosaxlex.TokenTypeClosingTag:
		fmt.Fprintf(&b, " name=%q", t.Name)
	case gosaxlex.TokenTypeProcInst:
		fmt.Fprintf(&b, " target=%q data=%q", t.Target, t.Data)
	default:
		fmt.Fprintf(&b, " data=%q", t.Data)
	}
	return b.String()
}

func formatElement(el gosaxlex.Element) string {
	var b strings.Builder
	b.WriteString(expanded(el.Name))
	for _, a := range el.Attr {
		b.WriteString(" ")
		b.WriteString(expanded(a.Name))
	}
	return b.String()
}

func expanded(n gosaxlex.NameInfo) string {
	if n.Namespace == "" {
		return n.LocalName
	}
	return "{" + n.Namespace + "}" + n.LocalName
}

func readInput(args []string, stdin io.Reader) (string, string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), args[0], nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
