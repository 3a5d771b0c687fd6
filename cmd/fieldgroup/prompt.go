package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-fieldgroup/pkg/orchestrator"
	"github.com/goliatone/go-fieldgroup/pkg/render"
	"github.com/goliatone/go-fieldgroup/pkg/renderers/tui"
)

func promptCmd(a *app) *cobra.Command {
	var (
		group  groupFlags
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill in a field group from the terminal",
		Long: `Ask for the control first, then prompt only for the fields it enables.
Fields left disabled are reported and skipped. The collected values are
printed as JSON (or form/pretty with --format).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, opts, err := group.request(a)
			if err != nil {
				return err
			}

			renderer, err := tui.New(
				tui.WithPromptDriver(tui.NewSurveyDriver(cmd.ErrOrStderr())),
				tui.WithOutputFormat(tui.OutputFormat(format)),
				tui.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			registry := render.NewRegistry()
			registry.MustRegister(renderer)

			opts = append(opts, orchestrator.WithRegistry(registry), orchestrator.WithLogger(a.logger))
			req.Renderer = renderer.Name()

			out, err := orchestrator.New(opts...).Generate(context.Background(), req)
			if errors.Is(err, tui.ErrAborted) {
				a.logger.Info("fieldgroup: prompt aborted")
				return nil
			}
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, string(out))
		},
	}

	group.register(cmd)
	cmd.Flags().StringVar(&format, "format", string(tui.OutputFormatJSON), "output format: json, form or pretty")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}
