package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/blockbind/internal/config"
	"github.com/roach88/blockbind/internal/journal"
	"github.com/roach88/blockbind/internal/scaffold"
)

// session is the per-invocation state shared by the scaffolding commands.
type session struct {
	opts      *RootOptions
	cfg       *config.Config
	logger    *slog.Logger
	formatter *OutputFormatter
}

func newSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	cfg, err := config.Load(config.LoadOptions{Dir: opts.Dir, File: opts.ConfigFile})
	if err != nil {
		_ = formatter.Error(ErrorCode(err), err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "failed to load configuration", err)
	}
	if opts.Yes {
		cfg.Yes = true
	}
	if opts.Verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		_ = formatter.Error(CodeConfiguration, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Log.Level)
	slog.SetDefault(logger)
	formatter.VerboseLog("Module %s at %s", cfg.Module, cfg.Dir)

	return &session{opts: opts, cfg: cfg, logger: logger, formatter: formatter}, nil
}

// newLogger builds the text handler every command logs through.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func (s *session) prompter(cmd *cobra.Command) scaffold.Prompter {
	if s.opts.Prompter != nil {
		return s.opts.Prompter
	}
	return scaffold.NewLinePrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
}

// recording is a journal run in progress. It is handed to a front end as its
// tracker before the run starts. The zero value records nothing.
type recording struct {
	journal *journal.Journal
	tracker *journal.RunTracker
}

// startRecording opens the journal and begins a run into rec, unless the
// journal is disabled by configuration or flag.
func (s *session) startRecording(ctx context.Context, rec *recording, command, pattern string) error {
	if !s.cfg.Journal.Enabled || s.opts.NoJournal {
		return nil
	}

	var jopts []journal.Option
	if s.opts.IDGenerator != nil {
		jopts = append(jopts, journal.WithIDGenerator(s.opts.IDGenerator))
	}
	path := s.cfg.JournalPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		_ = s.formatter.Error(CodeWriteFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to create journal directory", err)
	}
	j, err := journal.Open(path, jopts...)
	if err != nil {
		_ = s.formatter.Error(CodeWriteFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}

	runID, err := j.BeginRun(ctx, journal.RunInfo{Command: command, Module: s.cfg.Module, Pattern: pattern})
	if err != nil {
		_ = j.Close()
		_ = s.formatter.Error(CodeWriteFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to begin run", err)
	}
	s.logger.Debug("journal run started", "run_id", runID, "path", path)
	rec.journal = j
	rec.tracker = journal.NewRunTracker(j, runID)
	return nil
}

func (r *recording) sink() scaffold.Tracker {
	if r.tracker == nil {
		return scaffold.Nop{}
	}
	return r.tracker
}

func (r *recording) AddFiles(ctx context.Context, paths ...string) error {
	return r.sink().AddFiles(ctx, paths...)
}

func (r *recording) MarkUpdated(ctx context.Context, paths ...string) error {
	return r.sink().MarkUpdated(ctx, paths...)
}

func (r *recording) RemoveFiles(ctx context.Context, paths ...string) error {
	return r.sink().RemoveFiles(ctx, paths...)
}

func (r *recording) RunID() string {
	if r.tracker == nil {
		return ""
	}
	return r.tracker.RunID()
}

// finish stamps the run status and closes the journal.
func (r *recording) finish(ctx context.Context, failed bool) {
	if r.journal == nil {
		return
	}
	status := journal.StatusSucceeded
	if failed {
		status = journal.StatusFailed
	}
	if err := r.journal.FinishRun(context.WithoutCancel(ctx), r.RunID(), status); err != nil {
		slog.Error("error finishing journal run", "error", err)
	}
	if err := r.journal.Close(); err != nil {
		slog.Error("error closing journal", "error", err)
	}
}

// frontEnd is implemented by scaffold.Binder, Disabler and Remover.
type frontEnd interface {
	Validate() error
	Run(ctx context.Context) (*scaffold.Report, error)
}

// run validates fe, then records and executes it. fe must track into rec.
// Invalid input is reported before the journal is opened.
func (s *session) run(ctx context.Context, command, pattern string, rec *recording, fe frontEnd) error {
	if err := fe.Validate(); err != nil {
		_ = s.formatter.Error(ErrorCode(err), err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid input", err)
	}
	if err := s.startRecording(ctx, rec, command, pattern); err != nil {
		return err
	}
	return s.execute(ctx, rec, fe)
}

// execute runs fe and reports the outcome. A run-level error is a command
// error when it is a configuration problem and a failure otherwise; per-file
// failures of a keep-going run are failures too.
func (s *session) execute(ctx context.Context, rec *recording, fe frontEnd) error {
	report, err := fe.Run(ctx)
	failed := err != nil || (report != nil && len(report.Failures()) > 0)
	rec.finish(ctx, failed)

	if err != nil {
		var cfgErr *scaffold.ConfigurationError
		code := ExitFailure
		if errors.As(err, &cfgErr) {
			code = ExitCommandError
		}
		_ = s.formatter.Error(ErrorCode(err), err.Error(), reportDetails(report))
		return WrapExitError(code, "run aborted", err)
	}

	if err := s.outputReport(report, rec.RunID()); err != nil {
		return err
	}
	if n := len(report.Failures()); n > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d file(s) failed", n))
	}
	return nil
}

// ReportOutput is the JSON payload of a scaffolding command.
type ReportOutput struct {
	Command  string            `json:"command"`
	Results  []scaffold.Result `json:"results"`
	Summary  map[string]int    `json:"summary"`
	Failures []FailureOutput   `json:"failures,omitempty"`
}

// FailureOutput is one failed file.
type FailureOutput struct {
	Source string `json:"source"`
	Code   string `json:"code"`
	Error  string `json:"error"`
}

func reportDetails(report *scaffold.Report) interface{} {
	if report == nil || len(report.Results) == 0 {
		return nil
	}
	return newReportOutput(report)
}

func newReportOutput(report *scaffold.Report) ReportOutput {
	out := ReportOutput{
		Command: report.Command,
		Results: report.Results,
		Summary: report.Summary(),
	}
	for _, f := range report.Failures() {
		out.Failures = append(out.Failures, FailureOutput{Source: f.Source, Code: ErrorCode(f.Err), Error: f.Err.Error()})
	}
	return out
}

func (s *session) outputReport(report *scaffold.Report, runID string) error {
	if s.formatter.Format == "json" {
		return s.formatter.SuccessWithRun(runID, newReportOutput(report))
	}

	w := s.formatter.Writer
	for _, res := range report.Results {
		if res.State == scaffold.StateSkipped && !s.opts.Verbose {
			continue
		}
		mark := "✓"
		switch res.State {
		case scaffold.StateFailed:
			mark = "✗"
		case scaffold.StateSkipped, scaffold.StateDeclined, scaffold.StateUnchanged:
			mark = "-"
		}
		line := fmt.Sprintf("%s %-10s %s", mark, res.State, res.Source)
		if res.Descriptor != "" {
			line += " -> " + res.Descriptor
		}
		if res.Err != nil {
			line += ": " + res.Err.Error()
		} else if res.Reason != "" {
			line += " (" + res.Reason + ")"
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, summaryLine(report))
	if runID != "" {
		s.formatter.VerboseLog("Recorded as run %s", runID)
	}
	return nil
}

// summaryLine renders the state counts in a stable order.
func summaryLine(report *scaffold.Report) string {
	counts := report.Summary()
	if len(counts) == 0 {
		return "Nothing to do"
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%d %s", counts[name], name))
	}
	return strings.Join(parts, ", ")
}
