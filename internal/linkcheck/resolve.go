package linkcheck

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/mdlinks/internal/errors"
	"git.home.luguber.info/inful/mdlinks/internal/frontmatter"
	"git.home.luguber.info/inful/mdlinks/internal/logfields"
	"git.home.luguber.info/inful/mdlinks/internal/logging"
	"git.home.luguber.info/inful/mdlinks/internal/markdown"
)

// checkFile validates every link of one source document.
func (c *Checker) checkFile(ctx context.Context, file string) (fileResult, error) {
	if err := ctx.Err(); err != nil {
		return fileResult{}, err
	}

	c.logger.Info("Analyzing", logfields.File(file))
	// #nosec G304 -- file comes from the entry path or the directory walk
	src, err := os.ReadFile(file)
	if err != nil {
		return fileResult{}, errors.WrapError(err, errors.CategoryFileSystem, "cannot read document").
			WithContext("path", file).
			Fatal().
			Build()
	}
	c.recorder.IncFilesChecked()
	c.logger.Log(ctx, logging.LevelTrace, "Read document", logfields.File(file), slog.Int("bytes", len(src)))
	c.checkFrontMatter(file, src)

	var res fileResult
	for _, link := range markdown.ExtractLinks(src, markdown.Options{IncludeImages: c.opts.IncludeImages}) {
		if link.External {
			c.logger.Log(ctx, logging.LevelTrace, "Skipping external link",
				logfields.File(file), logfields.Line(link.Line), logfields.Target(link.Raw))
			continue
		}
		res.links++
		c.recorder.IncLinksChecked(string(link.Kind))

		finding, ok := c.checkLink(file, link)
		if !ok {
			c.logger.Log(ctx, logging.LevelTrace, "Valid link",
				logfields.File(file), logfields.Line(link.Line), logfields.Target(link.String()))
			continue
		}
		c.recorder.IncFinding(string(finding.Kind))
		c.logFinding(ctx, finding)
		res.findings = append(res.findings, finding)
	}
	return res, nil
}

// checkLink resolves one link. It returns false when the link is valid.
func (c *Checker) checkLink(file string, link markdown.LinkReference) (Finding, bool) {
	if link.Undefined {
		return c.finding(file, link, KindMissingTarget, "",
			fmt.Sprintf("missing target for link '%s'", link.String())), true
	}

	checkFragment := link.HasFragment && link.Fragment != "" && !c.opts.IgnoreHeaderLinks

	if link.SelfReference() {
		if !checkFragment {
			return Finding{}, false
		}
		return c.checkHeading(file, link, file)
	}

	target := resolveTarget(file, link.Path)
	info, err := os.Stat(target)
	if err != nil {
		return c.finding(file, link, KindMissingFile, target,
			fmt.Sprintf("broken link: path '%s' does not exist", target)), true
	}

	if info.IsDir() {
		if checkFragment {
			return c.finding(file, link, KindInvalidHeaderLink, target,
				fmt.Sprintf("invalid header link: path '%s' exists but is not a file", target)), true
		}
		if c.opts.DisallowDirLinks {
			return c.finding(file, link, KindDirectoryLink, target,
				fmt.Sprintf("link to directory '%s' is not allowed", target)), true
		}
		return Finding{}, false
	}

	if !checkFragment {
		return Finding{}, false
	}
	return c.checkHeading(file, link, target)
}

// checkHeading looks the fragment up in the target's slug set. A target
// that cannot be read is reported as a missing file.
func (c *Checker) checkHeading(file string, link markdown.LinkReference, target string) (Finding, bool) {
	set, err := c.cache.Get(target)
	if err != nil {
		c.logger.Debug("Cannot read link target",
			logfields.File(file), logfields.Target(target), logfields.Error(err))
		return c.finding(file, link, KindMissingFile, target,
			fmt.Sprintf("broken link: cannot read '%s'", target)), true
	}
	if set.Has(link.Fragment) {
		return Finding{}, false
	}
	return c.finding(file, link, KindMissingHeading, target,
		fmt.Sprintf("broken link: header '%s' not found in '%s'", link.Fragment, target)), true
}

func (c *Checker) finding(file string, link markdown.LinkReference, kind FindingKind, target, msg string) Finding {
	sev := SeverityError
	if c.opts.NoError {
		sev = SeverityWarning
	}
	return Finding{
		SourceFile: file,
		Line:       link.Line,
		Column:     link.Column,
		Link:       link.String(),
		Kind:       kind,
		Target:     target,
		Fragment:   link.Fragment,
		Severity:   sev,
		Message:    msg,
	}
}

// resolveTarget joins a link path with the directory of the source file.
// Absolute link paths are taken as filesystem paths.
func resolveTarget(file, linkPath string) string {
	p := filepath.FromSlash(linkPath)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(filepath.Dir(file), p)
}

func (c *Checker) checkFrontMatter(file string, src []byte) {
	block, err := frontmatter.Split(src)
	if err != nil {
		c.logger.Warn("Front matter is not closed", logfields.File(file), logfields.Error(err))
		return
	}
	if !block.Present {
		return
	}
	if _, err := block.Fields(); err != nil {
		c.logger.Warn("Invalid YAML front matter", logfields.File(file), logfields.Error(err))
	}
}

func (c *Checker) logFinding(ctx context.Context, f Finding) {
	c.logger.LogAttrs(ctx, slog.LevelDebug, f.Message,
		logfields.File(f.SourceFile),
		logfields.Line(f.Line),
		logfields.Kind(string(f.Kind)),
		logfields.Target(f.Link),
		slog.String("severity", string(f.Severity)))
}
