package scaffold

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/blockbind/internal/binding"
	"github.com/roach88/blockbind/internal/config"
	"github.com/roach88/blockbind/internal/introspect"
	"github.com/roach88/blockbind/internal/ir"
	"github.com/roach88/blockbind/internal/manifest"
)

// installAnchors keep a registered descriptor ahead of the DESTINATION clause.
var installAnchors = manifest.Anchors{Suffix: "DESTINATION[^()]+"}

// Binder generates descriptors for every block source matching Pattern.
type Binder struct {
	Config   *config.Config
	Pattern  string
	Prompter Prompter
	Tracker  Tracker
	Logger   *slog.Logger
}

// Validate reports a blank or invalid pattern, or a missing configuration,
// as a *ConfigurationError without touching the tree.
func (b *Binder) Validate() error {
	_, err := checkRun(b.Pattern, "", b.Config, b.Prompter)
	return err
}

// Run processes the discovered sources in order.
//
// Input problems are returned as *ConfigurationError before any file is read.
// A source that cannot be read or parsed aborts the run with a *FileError,
// unless Config.KeepGoing is set, in which case it is logged once, recorded
// as StateFailed and the run continues. Declined overwrites never abort.
func (b *Binder) Run(ctx context.Context) (*Report, error) {
	re, err := checkRun(b.Pattern, "", b.Config, b.Prompter)
	if err != nil {
		return nil, err
	}
	s := newSession(b.Config, b.Prompter, b.Tracker, b.Logger)

	libDir := b.Config.Path(b.Config.Layout.Lib)
	files, err := Glob(libDir, b.Config.Descriptor.Glob)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("discovered block sources", "dir", libDir, "count", len(files))

	report := newReport("bind")
	for _, src := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		base := filepath.Base(src)
		switch {
		case strings.HasPrefix(base, "qa"):
			report.add(Result{Source: s.rel(src), State: StateSkipped, Reason: "test source"})
			continue
		case !re.MatchString(base):
			report.add(Result{Source: s.rel(src), State: StateSkipped, Reason: "name does not match pattern"})
			continue
		}

		res := b.bindOne(ctx, s, src)
		report.add(res)
		if errors.Is(res.Err, ErrQuit) {
			return report, nil
		}
		if res.State != StateFailed {
			continue
		}
		if !b.Config.KeepGoing {
			return report, res.Err
		}
		s.logger.Error("block failed", "source", res.Source, "error", res.Err)
	}
	return report, nil
}

func (b *Binder) bindOne(ctx context.Context, s *session, src string) Result {
	cfg := s.cfg
	res := Result{Source: s.rel(src), State: StateDiscovered}
	fail := func(err error) Result {
		res.State = StateFailed
		res.Err = &FileError{Path: res.Source, Err: err}
		return res
	}

	block, header := introspect.BlockName(src, cfg.Module)
	res.Block = block
	s.logger.Info("making bindings", "source", res.Source, "block", block)

	d, err := introspect.ExtractDescriptor(cfg.Module, block, src, cfg.Path(cfg.Layout.Include, header))
	if err != nil {
		return fail(err)
	}
	res.State = StateParsed
	if res.Fingerprint, err = ir.Fingerprint(d); err != nil {
		return fail(err)
	}

	format := cfg.Format()
	data, err := binding.Generate(d, format)
	if err != nil {
		return fail(err)
	}
	fname := binding.FileName(d, format)
	target := cfg.Path(cfg.Layout.GRC, fname)
	res.Descriptor = s.rel(target)

	existing, readErr := os.ReadFile(target)
	exists := readErr == nil
	switch {
	case exists && bytes.Equal(existing, data):
		res.State = StateUnchanged
	case exists:
		ok, err := s.prompter.Confirm(fmt.Sprintf("Overwrite existing descriptor %s?", res.Descriptor), false)
		if errors.Is(err, ErrQuit) {
			res.State = StateDeclined
			res.Reason = "quit"
			res.Err = err
			return res
		}
		if err != nil {
			return fail(err)
		}
		if !ok {
			res.State = StateDeclined
			return res
		}
		if cfg.Yes {
			s.logger.Warn("overwriting existing descriptor", "path", res.Descriptor)
		}
		if err := binding.Save(target, data); err != nil {
			return fail(err)
		}
		if err := s.tracker.MarkUpdated(ctx, target); err != nil {
			return fail(err)
		}
		res.State = StateGenerated
	default:
		if err := binding.Save(target, data); err != nil {
			return fail(err)
		}
		if err := s.tracker.AddFiles(ctx, target); err != nil {
			return fail(err)
		}
		res.State = StateGenerated
	}

	registered, err := b.register(ctx, s, fname, format)
	if err != nil {
		return fail(err)
	}
	if registered && res.State == StateGenerated {
		res.State = StateRegistered
	}
	return res
}

// register lists fname in the grc manifest unless it is already listed or
// picked up by a glob. Returns whether the manifest was changed.
func (b *Binder) register(ctx context.Context, s *session, fname string, format binding.Format) (bool, error) {
	path := s.cfg.SubdirManifest(s.cfg.Layout.GRC)
	buf, err := s.loadManifest(path)
	if err != nil {
		return false, err
	}
	if buf == nil {
		s.logger.Warn("no grc manifest, descriptor not registered", "path", s.rel(path))
		return false, nil
	}

	if buf.Mentions(fname) || buf.CheckForGlob("*"+format.Ext()) || buf.CheckForGlob("*"+filepath.Ext(fname)) {
		return false, nil
	}

	n, err := buf.AppendValue("install", fname, installAnchors)
	if err != nil {
		return false, err
	}
	if manifest.Classify(n) == manifest.NoMatch {
		s.logger.Warn("no install() statement to register the descriptor in, check it manually",
			"path", s.rel(path), "file", fname)
		return false, nil
	}

	s.logger.Info("registering descriptor", "path", s.rel(path), "file", fname)
	if err := s.save(ctx, buf); err != nil {
		return false, err
	}
	return true, nil
}
