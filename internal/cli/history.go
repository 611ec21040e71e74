package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/blockbind/internal/journal"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int
	RunID string
	File  string
}

// HistoryResult is the JSON payload of the history command.
type HistoryResult struct {
	Runs   []journal.Run   `json:"runs,omitempty"`
	Events []journal.Event `json:"events,omitempty"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded runs and the files they touched",
		Long: `Show the runs recorded in the module journal, newest first.

With --run, list the files one run added, updated or removed.
With --file, list every recorded change to one file.

Examples:
  blockbind history
  blockbind history --run 0190a6c4-7d2e-7c1a-8f00-3b5d9e2a1c44
  blockbind history --file grc/howto_square_ff.block.yml --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "maximum number of runs (0 for all)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "show the file events of one run")
	cmd.Flags().StringVar(&opts.File, "file", "", "show the recorded changes to one file")
	cmd.MarkFlagsMutuallyExclusive("run", "file")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	s, err := newSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}

	path := s.cfg.JournalPath()
	if _, err := os.Stat(path); err != nil {
		_ = s.formatter.Error(CodeNotFound, fmt.Sprintf("no journal at %s", path), nil)
		return WrapExitError(ExitCommandError, "journal not found", err)
	}
	j, err := journal.Open(path)
	if err != nil {
		_ = s.formatter.Error(ErrorCode(err), err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer func() {
		if closeErr := j.Close(); closeErr != nil {
			s.logger.Error("error closing journal", "error", closeErr)
		}
	}()

	ctx := cmd.Context()
	var result HistoryResult
	switch {
	case opts.RunID != "":
		result.Events, err = j.Events(ctx, opts.RunID)
	case opts.File != "":
		file := opts.File
		if !filepath.IsAbs(file) {
			file = s.cfg.Path(file)
		}
		result.Events, err = j.History(ctx, file)
	default:
		result.Runs, err = j.Runs(ctx, opts.Limit)
	}
	if err != nil {
		_ = s.formatter.Error(CodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to query journal", err)
	}

	if s.formatter.Format == "json" {
		return s.formatter.Success(result)
	}
	if result.Runs != nil {
		s.printRuns(result.Runs)
	} else {
		s.printEvents(result.Events)
	}
	return nil
}

func (s *session) printRuns(runs []journal.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(s.formatter.Writer, "No runs recorded")
		return
	}
	tw := tabwriter.NewWriter(s.formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tCOMMAND\tPATTERN\tSTATUS\tSTARTED")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Command, r.Pattern, r.Status, r.StartedAt.Local().Format(time.DateTime))
	}
	_ = tw.Flush()
}

func (s *session) printEvents(events []journal.Event) {
	if len(events) == 0 {
		fmt.Fprintln(s.formatter.Writer, "No file events recorded")
		return
	}
	tw := tabwriter.NewWriter(s.formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSEQ\tKIND\tPATH\tHASH")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", e.RunID, e.Seq, e.Kind, s.rel(e.Path), shortHash(e.ContentHash))
	}
	_ = tw.Flush()
}

func (s *session) rel(path string) string {
	if r, err := filepath.Rel(s.cfg.Dir, path); err == nil {
		return filepath.ToSlash(r)
	}
	return path
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
