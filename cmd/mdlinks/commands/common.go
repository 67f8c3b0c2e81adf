package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/mdlinks/internal/config"
	"git.home.luguber.info/inful/mdlinks/internal/logfields"
	"git.home.luguber.info/inful/mdlinks/internal/logging"
)

// Global carries process-wide state into commands. The streams and context
// are supplied by main; the rest is filled in by CLI.AfterApply.
type Global struct {
	Context context.Context
	Stdout  io.Writer
	Stderr  io.Writer

	Logger     *slog.Logger
	Config     *config.Config
	ConfigPath string
	Verbosity  logging.Verbosity
	RunID      string
}

// CLI definition & global flags.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path (default: ./.mdlinks.yaml when present)"`
	Verbosity   string           `short:"v" help:"Verbosity level (silent, errors, warn, info, verbose, trace)"`
	LogFormat   string           `name:"log-format" help:"Log output format (text, json)"`
	VersionFlag kong.VersionFlag `name:"version" help:"Show version and exit"`

	Check   CheckCmd   `cmd:"" default:"withargs" help:"Check a Markdown file or directory for broken links (default command)"`
	Watch   WatchCmd   `cmd:"" help:"Re-check whenever Markdown files change"`
	Slug    SlugCmd    `cmd:"" help:"Print the anchor slug for heading text or for every heading of a file"`
	Init    InitCmd    `cmd:"" help:"Write an example configuration file"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// AfterApply runs after flag parsing; loads configuration and sets up logging once.
func (c *CLI) AfterApply(kctx *kong.Context, g *Global) error {
	cfg := config.Default()
	if !strings.HasPrefix(kctx.Command(), "init") {
		loaded, used, err := config.Resolve(c.Config)
		if err != nil {
			return err
		}
		cfg, g.ConfigPath = loaded, used
	}
	cfg.ApplyFlags(config.Overrides{Verbosity: c.Verbosity, LogFormat: c.LogFormat})
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Validate guarantees the verbosity parses.
	verbosity, _ := logging.ParseVerbosity(cfg.Logging.Verbosity)
	if g.Stderr == nil {
		g.Stderr = os.Stderr
	}
	if g.Stdout == nil {
		g.Stdout = os.Stdout
	}
	if g.Context == nil {
		g.Context = context.Background()
	}

	g.RunID = uuid.NewString()
	g.Verbosity = verbosity
	g.Config = cfg
	g.Logger = logging.New(g.Stderr, verbosity, logging.ParseFormat(cfg.Logging.Format)).
		With(logfields.RunID(g.RunID))
	slog.SetDefault(g.Logger)

	if g.ConfigPath != "" {
		g.Logger.Debug("Loaded configuration", logfields.Path(g.ConfigPath))
	}
	return nil
}
