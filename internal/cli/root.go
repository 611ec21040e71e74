package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/blockbind/internal/journal"
	"github.com/roach88/blockbind/internal/scaffold"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	Dir        string
	ConfigFile string
	Yes        bool
	NoJournal  bool

	// IDGenerator overrides journal run IDs (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDGenerator journal.IDGenerator

	// Prompter overrides the interactive prompter (for testing).
	// If nil, a LinePrompter on the command's stdin/stdout is used.
	Prompter scaffold.Prompter
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the blockbind CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blockbind",
		Short: "blockbind - GNU Radio out-of-tree module scaffolding",
		Long: `Generate visual-tool block descriptors from the C++ sources of a
GNU Radio out-of-tree module and keep its CMake manifests in step.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.Dir, "dir", "C", "", "module root (default: working directory)")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default: <dir>/.blockbind.yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Yes, "yes", "y", false, "answer yes to every question")
	cmd.PersistentFlags().BoolVar(&opts.NoJournal, "no-journal", false, "do not record the run in the journal")

	// Add subcommands
	cmd.AddCommand(NewBindCommand(opts))
	cmd.AddCommand(NewDisableCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
