package scaffold

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/roach88/blockbind/internal/config"
	"github.com/roach88/blockbind/internal/manifest"
)

var (
	qaPython = regexp.MustCompile(`^qa.+py$`)
	qaCxx    = regexp.MustCompile(`^qa.+\.cc$`)
)

// Disabler comments out every manifest entry whose file name matches
// Pattern. Files stay on disk. An empty pattern matches everything.
type Disabler struct {
	Config   *config.Config
	Pattern  string
	Prompter Prompter
	Tracker  Tracker
	Logger   *slog.Logger
}

// Validate checks the pattern and configuration like Run does.
func (d *Disabler) Validate() error {
	_, err := checkRun(d.Pattern, ".", d.Config, d.Prompter)
	return err
}

// Run walks the manifests of the lib, include, python and grc directories
// in that order. A directory without a manifest is skipped.
func (d *Disabler) Run(ctx context.Context) (*Report, error) {
	re, err := checkRun(d.Pattern, ".", d.Config, d.Prompter)
	if err != nil {
		return nil, err
	}
	s := newSession(d.Config, d.Prompter, d.Tracker, d.Logger)
	cfg := s.cfg

	report := newReport("disable")
	for _, sub := range []string{cfg.Layout.Lib, cfg.Layout.Include, cfg.Layout.Python, cfg.Layout.GRC} {
		if sub == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}
		quit, err := d.disableIn(ctx, s, sub, re, report)
		if err != nil {
			return report, err
		}
		if quit {
			return report, nil
		}
	}
	s.logger.Warn("dependencies between blocks are not resolved, check the remaining code still builds")
	return report, nil
}

func (d *Disabler) disableIn(ctx context.Context, s *session, sub string, re *regexp.Regexp, report *Report) (bool, error) {
	mpath := s.cfg.SubdirManifest(sub)
	buf, err := s.loadManifest(mpath)
	if err != nil {
		return false, err
	}
	if buf == nil {
		s.logger.Debug("no manifest, skipping", "dir", sub)
		return false, nil
	}
	s.logger.Info("traversing", "dir", sub)

	names, err := buf.FindFilenamesMatch(re.String())
	if err != nil {
		return false, err
	}
	for _, name := range names {
		res := Result{Source: path.Join(filepath.ToSlash(sub), name)}
		ok, err := s.prompter.Confirm(fmt.Sprintf("Really disable %s?", res.Source), true)
		if errors.Is(err, ErrQuit) {
			return true, s.save(ctx, buf)
		}
		if err != nil {
			return false, err
		}
		if !ok {
			res.State = StateDeclined
			report.add(res)
			continue
		}

		handled, err := d.special(ctx, s, sub, buf, name)
		if err != nil {
			return false, err
		}
		res.State = StateDisabled
		if handled {
			res.Reason = "test registration commented out"
		}
		if !handled && buf.DisableFile(name) == 0 {
			res.State = StateSkipped
			res.Reason = "no live entry"
		}
		report.add(res)
	}
	return false, s.save(ctx, buf)
}

// special applies the treatments test and python sources need. It reports
// whether the file is fully handled, so the plain DisableFile is skipped.
func (d *Disabler) special(ctx context.Context, s *session, sub string, buf *manifest.Buffer, name string) (bool, error) {
	cfg := s.cfg
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	switch {
	case sub == cfg.Layout.Python && qaPython.MatchString(name):
		_, err := buf.CommentOutLines(`GR_ADD_TEST\(.*`+regexp.QuoteMeta(name), manifest.CommentMarker)
		return true, err

	case sub == cfg.Layout.Python && strings.HasSuffix(name, ".py") && name != initPy:
		return false, d.commentImports(ctx, s, stem)

	case sub == cfg.Layout.Lib && qaCxx.MatchString(name):
		if _, err := buf.CommentOutLines(`\$\{CMAKE_CURRENT_SOURCE_DIR\}/`+regexp.QuoteMeta(name), manifest.CommentMarker); err != nil {
			return true, err
		}
		_, err := buf.CommentOutLines(`GR_ADD_TEST.*\b`+regexp.QuoteMeta(stem)+`\b`, manifest.CommentMarker)
		return true, err
	}
	return false, nil
}

// commentImports comments out the python package imports of module stem.
func (d *Disabler) commentImports(ctx context.Context, s *session, stem string) error {
	buf, err := s.loadManifest(s.cfg.Path(s.cfg.Layout.Python, initPy))
	if err != nil {
		return err
	}
	if buf == nil {
		s.logger.Warn("no package init file, imports not disabled", "module", stem)
		return nil
	}
	if _, err := buf.CommentOutLines(importPattern(stem), manifest.CommentMarker); err != nil {
		return err
	}
	return s.save(ctx, buf)
}

const initPy = "__init__.py"

// importPattern matches a python import line naming module stem.
func importPattern(stem string) string {
	q := regexp.QuoteMeta(stem)
	return `^\s*(?:from\s+\.?` + q + `\s+import\b|import\s+\.?` + q + `\b)`
}
