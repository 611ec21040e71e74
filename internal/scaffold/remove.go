package scaffold

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/roach88/blockbind/internal/config"
	"github.com/roach88/blockbind/internal/manifest"
)

// Remover deletes the files whose names match Pattern and strips them from
// the listing statements of their directory manifest. An empty pattern
// matches everything, so every deletion is confirmed unless Config.Yes.
type Remover struct {
	Config   *config.Config
	Pattern  string
	Prompter Prompter
	Tracker  Tracker
	Logger   *slog.Logger
}

// removeTarget describes one layout directory.
type removeTarget struct {
	dir   string
	globs []string
	// stmts are the statements that list the directory's files.
	stmts []string
	// unlist runs after the plain statement edits for each removed file.
	unlist func(buf *manifest.Buffer, fname string) error
}

func (r *Remover) targets(cfg *config.Config) []removeTarget {
	return []removeTarget{
		{
			dir:    cfg.Layout.Lib,
			globs:  []string{"*.cc", "*.h"},
			stmts:  []string{"add_library", "list"},
			unlist: libTestSources(cfg.Module),
		},
		{
			dir:   cfg.Layout.Include,
			globs: []string{"*.h"},
			stmts: []string{"install"},
		},
		{
			dir:    cfg.Layout.Python,
			globs:  []string{"*.py"},
			stmts:  []string{"GR_PYTHON_INSTALL"},
			unlist: pythonTests,
		},
		{
			dir:   cfg.Layout.GRC,
			globs: []string{"*.yml", "*.xml"},
			stmts: []string{"install"},
		},
	}
}

// Validate checks the pattern and configuration like Run does.
func (r *Remover) Validate() error {
	_, err := checkRun(r.Pattern, ".", r.Config, r.Prompter)
	return err
}

// Run processes the lib, include, python and grc directories in that order.
func (r *Remover) Run(ctx context.Context) (*Report, error) {
	re, err := checkRun(r.Pattern, ".", r.Config, r.Prompter)
	if err != nil {
		return nil, err
	}
	s := newSession(r.Config, r.Prompter, r.Tracker, r.Logger)

	report := newReport("rm")
	for _, t := range r.targets(s.cfg) {
		if t.dir == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}
		removed, err := r.removeIn(ctx, s, t, re, report)
		if t.dir == s.cfg.Layout.Python && len(removed) > 0 {
			if ierr := r.dropImports(ctx, s, removed); ierr != nil && err == nil {
				err = ierr
			}
		}
		if errors.Is(err, ErrQuit) {
			return report, nil
		}
		if err != nil {
			return report, err
		}
	}
	return report, nil
}

// removeIn deletes the matching files of one directory and returns their
// base names. Once a file is gone its manifest edits are written, whether the
// loop finishes, the operator quits or a later step fails.
func (r *Remover) removeIn(ctx context.Context, s *session, t removeTarget, re *regexp.Regexp, report *Report) (removed []string, err error) {
	files, err := Discover(s.cfg.Path(t.dir), re, t.globs...)
	if err != nil {
		return nil, err
	}
	files = withoutInit(files)
	if len(files) == 0 {
		s.logger.Info("no matching files", "dir", t.dir)
		return nil, nil
	}

	buf, err := s.loadManifest(s.cfg.SubdirManifest(t.dir))
	if err != nil {
		return nil, err
	}
	if buf == nil {
		s.logger.Warn("no manifest, files are deleted but not unlisted", "dir", t.dir)
	}
	defer func() {
		if serr := s.save(ctx, buf); serr != nil {
			err = errors.Join(err, serr)
		}
	}()

	for _, f := range files {
		res := Result{Source: s.rel(f)}
		ok, err := s.prompter.Confirm(fmt.Sprintf("Really delete %s?", res.Source), true)
		if err != nil {
			return removed, err
		}
		if !ok {
			res.State = StateDeclined
			report.add(res)
			continue
		}

		if err := os.Remove(f); err != nil {
			return removed, &FileError{Path: res.Source, Err: err}
		}
		base := filepath.Base(f)
		removed = append(removed, base)
		res.State = StateRemoved
		report.add(res)

		if err := unlistFile(buf, t, base); err != nil {
			return removed, err
		}
		if err := s.tracker.RemoveFiles(ctx, f); err != nil {
			return removed, err
		}
	}
	return removed, nil
}

// unlistFile strips fname from every listing statement of t in buf.
func unlistFile(buf *manifest.Buffer, t removeTarget, fname string) error {
	if buf == nil {
		return nil
	}
	for _, stmt := range t.stmts {
		if _, err := buf.RemoveValue(stmt, fname, manifest.Anchors{}); err != nil {
			return err
		}
	}
	if t.unlist != nil {
		return t.unlist(buf, fname)
	}
	return nil
}

// dropImports deletes the package imports of removed python modules.
func (r *Remover) dropImports(ctx context.Context, s *session, removed []string) error {
	buf, err := s.loadManifest(s.cfg.Path(s.cfg.Layout.Python, initPy))
	if err != nil || buf == nil {
		return err
	}
	for _, name := range removed {
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if _, err := buf.DeleteLines(importPattern(stem)); err != nil {
			return err
		}
	}
	return s.save(ctx, buf)
}

// libTestSources drops C++ test sources from the module's test source list.
func libTestSources(module string) func(*manifest.Buffer, string) error {
	anchors := manifest.Anchors{Prefix: "APPEND\\s+test_" + regexp.QuoteMeta(module) + "_sources"}
	return func(buf *manifest.Buffer, fname string) error {
		if !qaCxx.MatchString(fname) {
			return nil
		}
		_, err := buf.RemoveValue("list", "${CMAKE_CURRENT_SOURCE_DIR}/"+fname, anchors)
		return err
	}
}

// pythonTests deletes the test registration of a python test module.
func pythonTests(buf *manifest.Buffer, fname string) error {
	if !qaPython.MatchString(fname) {
		return nil
	}
	stem := strings.TrimSuffix(fname, filepath.Ext(fname))
	if _, err := buf.DeleteEntry("GR_ADD_TEST", `\b`+regexp.QuoteMeta(stem)+`\b`); err != nil {
		return err
	}
	buf.RemoveDoubleNewlines()
	return nil
}

func withoutInit(files []string) []string {
	out := files[:0]
	for _, f := range files {
		if filepath.Base(f) != initPy {
			out = append(out, f)
		}
	}
	return out
}
