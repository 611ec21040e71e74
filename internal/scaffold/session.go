package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"regexp"

	"github.com/roach88/blockbind/internal/config"
	"github.com/roach88/blockbind/internal/manifest"
)

// session carries the collaborators shared by one run of a front end.
type session struct {
	cfg      *config.Config
	prompter Prompter
	tracker  Tracker
	logger   *slog.Logger
}

func newSession(cfg *config.Config, p Prompter, t Tracker, l *slog.Logger) *session {
	s := &session{cfg: cfg, prompter: p, tracker: t, logger: l}
	if cfg.Yes || s.prompter == nil {
		s.prompter = AssumeYes{}
	}
	if s.tracker == nil {
		s.tracker = Nop{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// checkRun compiles the pattern and validates the run inputs.
func checkRun(pattern, fallback string, cfg *config.Config, p Prompter) (*regexp.Regexp, error) {
	re, err := compilePattern(pattern, fallback)
	if err != nil {
		return nil, err
	}
	if err := validateRun(cfg, p); err != nil {
		return nil, err
	}
	return re, nil
}

// validateRun checks what every front end needs before touching the tree.
func validateRun(cfg *config.Config, p Prompter) error {
	if err := cfg.Validate(); err != nil {
		return &ConfigurationError{Field: "config", Message: err.Error()}
	}
	if p == nil && !cfg.Yes {
		return &ConfigurationError{Field: "prompter", Message: "interactive runs need a prompter"}
	}
	return nil
}

func (s *session) rel(path string) string {
	if r, err := filepath.Rel(s.cfg.Dir, path); err == nil {
		return filepath.ToSlash(r)
	}
	return path
}

// loadManifest opens a manifest. A missing file yields (nil, nil).
func (s *session) loadManifest(path string) (*manifest.Buffer, error) {
	buf, err := manifest.Load(path, manifest.WithLogger(s.logger))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return buf, err
}

// save writes buf when it changed and reports it as updated.
func (s *session) save(ctx context.Context, buf *manifest.Buffer) error {
	if buf == nil || !buf.Modified() {
		return nil
	}
	if err := buf.Write(); err != nil {
		return err
	}
	if err := s.tracker.MarkUpdated(ctx, buf.Path()); err != nil {
		return fmt.Errorf("track %s: %w", s.rel(buf.Path()), err)
	}
	return nil
}
