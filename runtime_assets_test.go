package fieldgroup

import (
	"bytes"
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	pkgopenapi "github.com/goliatone/go-fieldgroup/pkg/openapi"
	"github.com/goliatone/go-fieldgroup/pkg/toggle"
)

func TestRuntimeAssetsFSContainsRuntime(t *testing.T) {
	data, err := fs.ReadFile(RuntimeAssetsFS(), "fieldgroup.js")
	if err != nil {
		t.Fatalf("expected runtime to be readable: %v", err)
	}
	if !strings.Contains(string(data), "window.FieldGroup") {
		t.Fatalf("expected runtime to expose window.FieldGroup")
	}
}

func TestEmbeddedTemplatesContainGroupTemplate(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "templates/group.tmpl"); err != nil {
		t.Fatalf("expected group template: %v", err)
	}
}

func TestSyncHTML(t *testing.T) {
	page := `<form><input type="checkbox" id="vip-checkbox" checked>` +
		`<input id="a" class="vip-field bg-gray-100" disabled>` +
		`<textarea id="b" class="vip-field"></textarea></form>`

	var out bytes.Buffer
	result, err := SyncHTML(strings.NewReader(page), &out)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if !result.Found || !result.Enabled || result.Fields != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
	if strings.Contains(out.String(), "disabled") || strings.Contains(out.String(), "bg-gray-100") {
		t.Fatalf("checked control should enable every field:\n%s", out.String())
	}

	out.Reset()
	result, err = SyncHTML(strings.NewReader(`<p class="vip-field">x</p>`), &out, toggle.WithMutedClass("opacity-50"))
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if result.Found || strings.Contains(out.String(), "opacity-50") {
		t.Fatalf("missing control must leave the page untouched: %+v\n%s", result, out.String())
	}
}

func TestGenerateHTML(t *testing.T) {
	source := pkgopenapi.SourceFromFile(filepath.Join("pkg", "openapi", "testdata", "contacts.yaml"))
	out, err := GenerateHTML(context.Background(), source, "Contact", RenderOptions{Values: map[string]string{"vip": "on"}})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), `id="vip-checkbox" name="vip" checked`) {
		t.Fatalf("expected checked control:\n%s", out)
	}
}
