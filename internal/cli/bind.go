package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/blockbind/internal/binding"
	"github.com/roach88/blockbind/internal/scaffold"
)

// BindOptions holds flags for the bind command.
type BindOptions struct {
	*RootOptions
	DescriptorFormat string // empty keeps the configured one
	KeepGoing        bool
}

// NewBindCommand creates the bind command.
func NewBindCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BindOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:     "bind <pattern>",
		Aliases: []string{"makeyaml", "makexml"},
		Short:   "Generate block descriptors from C++ sources",
		Long: `Generate a block descriptor for every block implementation in lib/
whose file name matches <pattern>, and register it in grc/CMakeLists.txt.

Existing descriptors are only replaced after confirmation (or with --yes).
Invoked as makexml, the legacy XML format is written.

Examples:
  blockbind bind square
  blockbind bind '^square_ff$' --yes
  blockbind makexml square --keep-going --format json
  blockbind bind square --descriptor-format xml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.DescriptorFormat == "" {
				switch cmd.CalledAs() {
				case "makexml":
					opts.DescriptorFormat = string(binding.FormatXML)
				case "makeyaml":
					opts.DescriptorFormat = string(binding.FormatYAML)
				}
			}
			return runBind(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DescriptorFormat, "descriptor-format", "", "descriptor format (yaml|xml)")
	cmd.Flags().BoolVar(&opts.KeepGoing, "keep-going", false, "record failing blocks and continue")

	return cmd
}

func runBind(opts *BindOptions, pattern string, cmd *cobra.Command) error {
	s, err := newSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	if opts.DescriptorFormat != "" {
		if _, err := binding.ParseFormat(opts.DescriptorFormat); err != nil {
			_ = s.formatter.Error(CodeConfiguration, err.Error(), nil)
			return WrapExitError(ExitCommandError, "invalid descriptor format", err)
		}
		s.cfg.Descriptor.Format = opts.DescriptorFormat
	}
	if opts.KeepGoing {
		s.cfg.KeepGoing = true
	}

	rec := &recording{}
	return s.run(cmd.Context(), "bind", pattern, rec, &scaffold.Binder{
		Config:   s.cfg,
		Pattern:  pattern,
		Prompter: s.prompter(cmd),
		Tracker:  rec,
		Logger:   s.logger,
	})
}
