package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-fieldgroup/pkg/toggle"
)

func execute(t *testing.T, stdin string, args ...string) string {
	t.Helper()

	out, err := run(stdin, args...)
	if err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return out
}

func run(stdin string, args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestSyncCommand_Stdin(t *testing.T) {
	page := `<input type="checkbox" id="vip-checkbox"><input class="vip-field" name="last_met">`
	out := execute(t, page, "sync")

	if !strings.Contains(out, `class="vip-field bg-gray-100"`) || !strings.Contains(out, "disabled") {
		t.Fatalf("expected disabled, muted field:\n%s", out)
	}
}

func TestSyncCommand_CustomBindingAndFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "page.html")
	page := `<input type="checkbox" id="partner" checked><input class="partner-field opacity-50" disabled>`
	if err := os.WriteFile(in, []byte(page), 0o644); err != nil {
		t.Fatalf("write page: %v", err)
	}
	outPath := filepath.Join(dir, "out.html")

	execute(t, "", "sync", in, "--control", "partner", "--fields", "partner-field", "--muted", "opacity-50", "-o", outPath)

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if strings.Contains(string(data), "disabled") || strings.Contains(string(data), "opacity-50") {
		t.Fatalf("checked control should enable the field:\n%s", data)
	}
}

func TestSyncCommand_ConfigBinding(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "fieldgroup.yaml")
	cfg := "binding:\n  control: partner\n  fields: partner-field\n  muted: opacity-50\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out := execute(t, `<input type="checkbox" id="partner"><input class="partner-field">`, "--config", cfgPath, "sync")
	if !strings.Contains(out, `class="partner-field opacity-50"`) {
		t.Fatalf("expected config binding to apply:\n%s", out)
	}
}

func TestSyncCommand_MultiTokenMuted(t *testing.T) {
	page := `<input type="checkbox" id="vip-checkbox"><input class="vip-field">`
	out := execute(t, page, "sync", "--muted", "bg-gray-100 cursor-not-allowed")
	if !strings.Contains(out, `class="vip-field bg-gray-100 cursor-not-allowed"`) {
		t.Fatalf("expected every muted token once:\n%s", out)
	}

	again := execute(t, out, "sync", "--muted", "bg-gray-100 cursor-not-allowed")
	if strings.Count(again, "bg-gray-100") != 1 || strings.Count(again, "cursor-not-allowed") != 1 {
		t.Fatalf("second sync duplicated muted tokens:\n%s", again)
	}
}

func TestSyncCommand_RejectsMarkerWithSpaces(t *testing.T) {
	_, err := run(`<input type="checkbox" id="vip-checkbox">`, "sync", "--fields", "vip-field extra")
	if !errors.Is(err, toggle.ErrInvalidFieldClass) {
		t.Fatalf("expected ErrInvalidFieldClass, got %v", err)
	}
}

func TestRenderCommand_TemplatesDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	tmpl := `<div id="custom">{% for field in fields %}[{{ field.name }}{% if field.disabled %}:off{% endif %}]{% endfor %}</div>`
	if err := os.WriteFile(filepath.Join(dir, "templates", "group.tmpl"), []byte(tmpl), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	out := execute(t, "", "render", "--templates", dir)
	want := `<div id="custom">[last_met:off][last_contacted:off][last_update:off][status:off]</div>`
	if strings.TrimSpace(out) != want {
		t.Fatalf("unexpected custom render:\n got: %s\nwant: %s", out, want)
	}
}

func TestRenderCommand(t *testing.T) {
	out := execute(t, "", "render")
	if !strings.Contains(out, `data-fieldgroup-control="vip-checkbox"`) || !strings.Contains(out, "disabled") {
		t.Fatalf("unexpected render output:\n%s", out)
	}

	checked := execute(t, "", "render", "--checked", "--runtime-url", "/runtime/fieldgroup.js")
	if strings.Contains(checked, " disabled") {
		t.Fatalf("checked render should not disable fields:\n%s", checked)
	}
	if !strings.Contains(checked, `src="/runtime/fieldgroup.js"`) {
		t.Fatalf("expected runtime script tag:\n%s", checked)
	}

	source := filepath.Join("..", "..", "pkg", "openapi", "testdata", "contacts.yaml")
	fromDoc := execute(t, "", "render", "--source", source, "--schema", "Partner")
	if !strings.Contains(fromDoc, `data-fieldgroup-control="partner-checkbox"`) {
		t.Fatalf("expected partner group:\n%s", fromDoc)
	}
}

func TestVersionCommand(t *testing.T) {
	if out := execute(t, "", "version", "--short"); strings.TrimSpace(out) != version {
		t.Fatalf("unexpected version output %q", out)
	}
}
