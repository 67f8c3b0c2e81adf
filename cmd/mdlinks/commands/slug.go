package commands

import (
	"fmt"
	"os"
	"strings"

	"git.home.luguber.info/inful/mdlinks/internal/errors"
	"git.home.luguber.info/inful/mdlinks/internal/markdown"
	"git.home.luguber.info/inful/mdlinks/internal/slug"
)

// SlugCmd implements the 'slug' command.
type SlugCmd struct {
	Text []string `arg:"" optional:"" help:"Heading text"`
	File string   `short:"f" help:"Print every heading of a Markdown file with its anchor"`
}

func (s *SlugCmd) Run(g *Global) error {
	if s.File == "" {
		if len(s.Text) == 0 {
			return errors.ValidationError("heading text or --file is required").Build()
		}
		_, err := fmt.Fprintln(g.Stdout, slug.Slugify(strings.Join(s.Text, " ")))
		return err
	}

	// #nosec G304 -- path is supplied by the user on the command line
	src, err := os.ReadFile(s.File)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NotFoundError("input path not found").WithContext("path", s.File).Build()
		}
		return errors.WrapError(err, errors.CategoryFileSystem, "cannot read document").
			WithContext("path", s.File).
			Fatal().
			Build()
	}
	for _, h := range markdown.ExtractHeadings(src) {
		if _, err := fmt.Fprintf(g.Stdout, "%d\t%s %s\t#%s\n", h.Line, strings.Repeat("#", h.Level), h.Text, h.Slug); err != nil {
			return err
		}
	}
	return nil
}
