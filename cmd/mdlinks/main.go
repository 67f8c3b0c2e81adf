package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mdlinks/cmd/mdlinks/commands"
	"git.home.luguber.info/inful/mdlinks/internal/errors"
	"git.home.luguber.info/inful/mdlinks/internal/logging"
	"git.home.luguber.info/inful/mdlinks/internal/version"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Exit)
	cancel()
	os.Exit(code)
}

// run parses args, executes the selected command and returns the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, exit func(int)) int {
	var cli commands.CLI
	g := &commands.Global{Context: ctx, Stdout: stdout, Stderr: stderr}

	parser, err := kong.New(&cli,
		kong.Name("mdlinks"),
		kong.Description("Detect broken links in Markdown files"),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(g, &cli),
		kong.Writers(stdout, stderr),
		kong.Exit(exit),
	)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return errors.ExitInternal
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return reportError(g, err, true)
	}

	if err := kctx.Run(); err != nil {
		return reportError(g, err, false)
	}
	return errors.ExitOK
}

// reportError prints err and maps it to an exit code. Findings were already
// printed by the report, so only their exit code is returned.
func reportError(g *commands.Global, err error, parsing bool) int {
	var findings *commands.FindingsError
	if stderrors.As(err, &findings) {
		return errors.ExitFindings
	}
	if stderrors.Is(err, context.Canceled) {
		return errors.ExitOK
	}

	if _, ok := errors.AsClassified(err); !ok {
		if parsing {
			fmt.Fprintf(g.Stderr, "Error: %v\n", err)
			return errors.ExitValidation
		}
		err = errors.WrapError(err, errors.CategoryInternal, "unexpected failure").Build()
	}

	logger := g.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(g.Stderr, nil))
	}
	verbose := g.Verbosity == logging.VerbosityVerbose || g.Verbosity == logging.VerbosityTrace
	adapter := errors.NewCLIErrorAdapter(verbose, logger)
	if !g.Verbosity.IsSilent() {
		fmt.Fprintln(g.Stderr, adapter.FormatError(err))
	}
	adapter.LogError(err)
	return adapter.ExitCodeFor(err)
}
