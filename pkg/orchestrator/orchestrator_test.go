package orchestrator_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fieldgroup/pkg/dom"
	"github.com/goliatone/go-fieldgroup/pkg/model"
	pkgopenapi "github.com/goliatone/go-fieldgroup/pkg/openapi"
	"github.com/goliatone/go-fieldgroup/pkg/orchestrator"
	"github.com/goliatone/go-fieldgroup/pkg/render"
	"github.com/goliatone/go-fieldgroup/pkg/renderers/tui"
	"github.com/goliatone/go-fieldgroup/pkg/renderers/vanilla"
	"github.com/goliatone/go-fieldgroup/pkg/testsupport"
	"github.com/goliatone/go-fieldgroup/pkg/toggle"
)

type declineDriver struct{}

func (declineDriver) Input(context.Context, tui.InputConfig) (string, error) {
	return "", errors.New("unexpected input prompt")
}
func (declineDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) { return false, nil }
func (declineDriver) TextArea(context.Context, tui.TextAreaConfig) (string, error) {
	return "", errors.New("unexpected textarea prompt")
}
func (declineDriver) Info(context.Context, string) error { return nil }

func TestOrchestrator_Integration_MultiRenderer(t *testing.T) {
	ctx := testsupport.Context()
	source := pkgopenapi.SourceFromFile(filepath.Join("testdata", "contacts.yaml"))

	registry := render.NewRegistry()
	registry.MustRegister(mustVanilla(t))
	registry.MustRegister(mustTUI(t))

	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer("vanilla"),
	)

	html, err := orch.Generate(ctx, orchestrator.Request{Source: source, Schema: "Contact"})
	if err != nil {
		t.Fatalf("generate html: %v", err)
	}
	if !strings.Contains(string(html), `data-fieldgroup-control="vip-checkbox"`) {
		t.Fatalf("unexpected html output:\n%s", html)
	}

	output, err := orch.Generate(ctx, orchestrator.Request{Source: source, Schema: "Contact", Renderer: "tui"})
	if err != nil {
		t.Fatalf("generate tui: %v", err)
	}
	goldenPath := filepath.Join("testdata", "contact_tui.golden.json")
	if testsupport.WriteMaybeGolden(t, goldenPath, output) {
		return
	}
	want := testsupport.MustReadGolden(t, goldenPath)
	if diff := testsupport.CompareGolden(string(want), string(output)); diff != "" {
		t.Fatalf("golden mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_DefaultsAndPresets(t *testing.T) {
	preset, err := orchestrator.NewPresetTransformerFromFS(os.DirFS("testdata"), "key_account.yaml")
	if err != nil {
		t.Fatalf("preset: %v", err)
	}

	var results []toggle.Result
	orch := orchestrator.New(
		orchestrator.WithTransformer(preset),
		orchestrator.WithObserver(func(r toggle.Result) { results = append(results, r) }),
	)

	doc := testsupport.LoadDocument(t, filepath.Join("testdata", "contacts.yaml"))
	out, err := orch.Generate(testsupport.Context(), orchestrator.Request{Document: &doc, Schema: "Contact"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	html := string(out)
	for _, needle := range []string{"<legend>Key account</legend>", "Key account contact", "Notes", "Visible to the account team only.", "opacity-50"} {
		if !strings.Contains(html, needle) {
			t.Fatalf("output missing %q:\n%s", needle, html)
		}
	}
	if strings.Contains(html, toggle.DefaultMutedClass) {
		t.Fatalf("preset muted class should replace the default")
	}
	if len(results) != 1 || !results[0].Disabled() {
		t.Fatalf("expected one disabled sync, got %+v", results)
	}
}

func TestOrchestrator_GroupRequest(t *testing.T) {
	group := model.VIPGroup()
	rename := orchestrator.TransformerFunc(func(_ context.Context, g *model.Group) error {
		g.Legend = "Renamed"
		return nil
	})
	orch := orchestrator.New(orchestrator.WithTransformer(rename))

	got, err := orch.Group(testsupport.Context(), orchestrator.Request{Group: &group})
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	if got.Legend != "Renamed" || group.Legend != "VIP details" {
		t.Fatalf("transformers should act on a copy: got %q, original %q", got.Legend, group.Legend)
	}
}

func TestOrchestrator_GroupFixtureWithMultiTokenMuted(t *testing.T) {
	group := testsupport.MustLoadGroup(t, filepath.Join("testdata", "newsletter_group.json"))

	out, err := orchestrator.New().Generate(testsupport.Context(), orchestrator.Request{Group: &group})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	doc, err := dom.ParseString(string(out))
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}

	fields := doc.ElementsByClass("newsletter-field")
	if len(fields) != 2 {
		t.Fatalf("expected 2 newsletter fields, got %d", len(fields))
	}
	for _, f := range fields {
		if diff := cmp.Diff([]string{"newsletter-field", "bg-gray-100", "cursor-not-allowed"}, f.Classes()); diff != "" {
			t.Fatalf("field %s classes (-want +got):\n%s", f.ID(), diff)
		}
	}
	if !strings.Contains(string(out), `data-fieldgroup-muted="bg-gray-100 cursor-not-allowed"`) {
		t.Fatalf("muted list should be normalized in the binding attribute:\n%s", out)
	}

	before := doc.String()
	toggle.New(toggle.WithBinding(group.Binding())).Sync(doc)
	if doc.String() != before {
		t.Fatalf("rendered group should already be in sync")
	}
}

func TestOrchestrator_Errors(t *testing.T) {
	orch := orchestrator.New()
	ctx := testsupport.Context()

	if _, err := orch.Generate(ctx, orchestrator.Request{}); err == nil {
		t.Fatalf("expected schema error")
	}
	if _, err := orch.Generate(ctx, orchestrator.Request{Schema: "Contact"}); err == nil {
		t.Fatalf("expected missing source error")
	}
	source := pkgopenapi.SourceFromFile(filepath.Join("testdata", "contacts.yaml"))
	if _, err := orch.Generate(ctx, orchestrator.Request{Source: source, Schema: "NoControl"}); !errors.Is(err, pkgopenapi.ErrNoControl) {
		t.Fatalf("expected ErrNoControl, got %v", err)
	}
	group := model.VIPGroup()
	if _, err := orch.Generate(ctx, orchestrator.Request{Group: &group, Renderer: "preact"}); !errors.Is(err, render.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	failing := orchestrator.New(orchestrator.WithTransformer(orchestrator.TransformerFunc(func(context.Context, *model.Group) error {
		return errors.New("boom")
	})))
	if _, err := failing.Generate(ctx, orchestrator.Request{Group: &group}); err == nil || !strings.Contains(err.Error(), "transform group") {
		t.Fatalf("expected transformer error, got %v", err)
	}

	if _, err := orchestrator.NewPresetTransformer([]byte("fields:\n  missing:\n    label: x\n")); err != nil {
		t.Fatalf("preset parse: %v", err)
	}
	bad, _ := orchestrator.NewPresetTransformer([]byte("fields:\n  missing:\n    label: x\n"))
	if err := bad.Transform(ctx, &group); err == nil {
		t.Fatalf("expected unknown field error")
	}
	if _, err := orchestrator.NewPresetTransformer([]byte("  ")); err == nil {
		t.Fatalf("expected empty document error")
	}
}

func mustVanilla(t *testing.T) render.Renderer {
	t.Helper()

	r, err := vanilla.New()
	if err != nil {
		t.Fatalf("vanilla renderer: %v", err)
	}
	return r
}

func mustTUI(t *testing.T) render.Renderer {
	t.Helper()

	r, err := tui.New(tui.WithPromptDriver(declineDriver{}))
	if err != nil {
		t.Fatalf("tui renderer: %v", err)
	}
	return r
}
