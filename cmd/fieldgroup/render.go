package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-fieldgroup/pkg/model"
	pkgopenapi "github.com/goliatone/go-fieldgroup/pkg/openapi"
	"github.com/goliatone/go-fieldgroup/pkg/orchestrator"
	"github.com/goliatone/go-fieldgroup/pkg/render"
	"github.com/goliatone/go-fieldgroup/pkg/renderers/vanilla"
)

type groupFlags struct {
	source string
	schema string
	preset string
}

func (f *groupFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.source, "source", "", "OpenAPI document declaring the group (built-in VIP group if empty)")
	cmd.Flags().StringVar(&f.schema, "schema", "", "component schema holding the group")
	cmd.Flags().StringVar(&f.preset, "preset", "", "YAML or JSON preset applied to the group")
}

// request builds the orchestrator request and options for the selected group.
func (f groupFlags) request(a *app) (orchestrator.Request, []orchestrator.Option, error) {
	var opts []orchestrator.Option
	if f.preset != "" {
		t, err := orchestrator.NewPresetTransformerFromFS(os.DirFS(filepath.Dir(f.preset)), filepath.Base(f.preset))
		if err != nil {
			return orchestrator.Request{}, nil, err
		}
		opts = append(opts, orchestrator.WithTransformer(t))
	}

	if f.source == "" {
		group := model.VIPGroup()
		binding := a.cfg.Binding
		group.Control.ID = binding.ControlID
		group.FieldClass = binding.FieldClass
		group.MutedClass = binding.MutedClass
		return orchestrator.Request{Group: &group}, opts, nil
	}
	return orchestrator.Request{
		Source: pkgopenapi.SourceFromFile(f.source),
		Schema: f.schema,
	}, opts, nil
}

func renderCmd(a *app) *cobra.Command {
	var (
		group   groupFlags
		checked bool
		runtime bool
		url       string
		output    string
		templates string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a field group as HTML",
		Long: `Render the control and its dependent fields with the fields already in the
state the control implies.

Examples:
  fieldgroup render --checked
  fieldgroup render --source api.yaml --schema Contact --runtime`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, opts, err := group.request(a)
			if err != nil {
				return err
			}

			renderer, err := vanilla.New(
				vanilla.WithTemplatesDir(templates),
				vanilla.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			registry := render.NewRegistry()
			registry.MustRegister(renderer)

			opts = append(opts, orchestrator.WithRegistry(registry), orchestrator.WithLogger(a.logger))
			req.Renderer = renderer.Name()
			req.RenderOptions = render.RenderOptions{
				IncludeRuntime: runtime || url != "",
				RuntimeURL:     url,
			}
			if checked {
				req.RenderOptions.Values = map[string]string{controlName(req): "on"}
			}

			out, err := orchestrator.New(opts...).Generate(context.Background(), req)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, string(out))
		},
	}

	group.register(cmd)
	cmd.Flags().BoolVar(&checked, "checked", false, "render with the control checked")
	cmd.Flags().BoolVar(&runtime, "runtime", false, "inline the browser runtime")
	cmd.Flags().StringVar(&url, "runtime-url", "", "reference the browser runtime at this URL instead of inlining it")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&templates, "templates", "", "directory holding templates/group.tmpl (embedded templates if empty)")

	return cmd
}

// controlName returns the submission key of the control, loading the group
// when it comes from a document.
func controlName(req orchestrator.Request) string {
	if req.Group != nil {
		if req.Group.Control.Name != "" {
			return req.Group.Control.Name
		}
		return req.Group.Control.ID
	}
	group, err := orchestrator.New().Group(context.Background(), req)
	if err != nil || group.Control.Name == "" {
		return group.Control.ID
	}
	return group.Control.Name
}
