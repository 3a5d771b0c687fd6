package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-fieldgroup/pkg/dom"
	"github.com/goliatone/go-fieldgroup/pkg/toggle"
)

type bindingFlags struct {
	control string
	fields  string
	muted   string
}

func (f *bindingFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.control, "control", "", "id of the controlling checkbox (default from config)")
	cmd.Flags().StringVar(&f.fields, "fields", "", "class marking dependent fields (default from config)")
	cmd.Flags().StringVar(&f.muted, "muted", "", "class applied to disabled fields (default from config)")
}

// apply layers the flags over the configured binding and validates the result.
func (f bindingFlags) apply(binding toggle.Binding) (toggle.Binding, error) {
	if f.control != "" {
		binding.ControlID = f.control
	}
	if f.fields != "" {
		binding.FieldClass = f.fields
	}
	if f.muted != "" {
		binding.MutedClass = f.muted
	}
	binding = binding.Normalize()
	if err := binding.Validate(); err != nil {
		return toggle.Binding{}, err
	}
	return binding, nil
}

func syncCmd(a *app) *cobra.Command {
	var (
		binding bindingFlags
		output  string
		pretty  bool
	)

	cmd := &cobra.Command{
		Use:   "sync [file]",
		Short: "Apply the control state to an HTML page",
		Long: `Parse an HTML page (a file, or stdin when omitted), disable and mute the
dependent fields when the control is unchecked, enable them otherwise, and
write the page back out.

Examples:
  fieldgroup sync contact.html
  fieldgroup sync --control partner-checkbox --fields partner-field < page.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open input: %w", err)
				}
				defer f.Close()
				in = f
			}

			doc, err := dom.Parse(in)
			if err != nil {
				return err
			}

			resolved, err := binding.apply(a.cfg.Binding)
			if err != nil {
				return err
			}
			result := toggle.New(
				toggle.WithBinding(resolved),
				toggle.WithLogger(a.logger),
			).Sync(doc)

			a.logger.Info("fieldgroup: synced page",
				zap.String("control", resolved.ControlID),
				zap.Bool("found", result.Found),
				zap.Bool("enabled", result.Enabled),
				zap.Int("fields", result.Fields),
			)

			markup := doc.String()
			if pretty {
				markup = doc.Format()
			}
			return writeOutput(cmd.OutOrStdout(), output, markup)
		},
	}

	binding.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the resulting HTML")

	return cmd
}

func writeOutput(stdout io.Writer, path, content string) error {
	if path == "" {
		if !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		_, err := io.WriteString(stdout, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
