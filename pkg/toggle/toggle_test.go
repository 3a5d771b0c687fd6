package toggle_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-fieldgroup/pkg/toggle"
)

type fakeField struct {
	disabled bool
	classes  []string
}

func (f *fakeField) SetDisabled(disabled bool) { f.disabled = disabled }

func (f *fakeField) AddClass(token string) {
	for _, existing := range f.classes {
		if existing == token {
			return
		}
	}
	f.classes = append(f.classes, token)
}

func (f *fakeField) RemoveClass(token string) {
	out := f.classes[:0]
	for _, existing := range f.classes {
		if existing != token {
			out = append(out, existing)
		}
	}
	f.classes = out
}

func (f *fakeField) hasClass(token string) bool {
	for _, existing := range f.classes {
		if existing == token {
			return true
		}
	}
	return false
}

type fieldState struct {
	Disabled bool
	Classes  []string
}

func snapshot(fields []*fakeField) []fieldState {
	out := make([]fieldState, 0, len(fields))
	for _, f := range fields {
		out = append(out, fieldState{Disabled: f.disabled, Classes: append([]string{}, f.classes...)})
	}
	return out
}

func asFields(fields []*fakeField) []toggle.Field {
	out := make([]toggle.Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, f)
	}
	return out
}

func newFields(n int, classes ...string) []*fakeField {
	out := make([]*fakeField, n)
	for i := range out {
		out[i] = &fakeField{classes: append([]string{}, classes...)}
	}
	return out
}

type stubResolver struct {
	controls map[string]toggle.Control
	groups   map[string][]toggle.Field
}

func (s stubResolver) Control(id string) (toggle.Control, bool) {
	c, ok := s.controls[id]
	return c, ok
}

func (s stubResolver) Fields(marker string) []toggle.Field {
	return s.groups[marker]
}

func checked(v bool) toggle.Control {
	return toggle.ControlFunc(func() bool { return v })
}

func TestApply_UncheckedDisablesAndMutesAllFields(t *testing.T) {
	fields := newFields(3, "vip-field")

	result := toggle.Apply(checked(false), asFields(fields))

	if !result.Found || result.Enabled || result.Fields != 3 {
		t.Fatalf("unexpected result: %+v", result)
	}
	for i, f := range fields {
		if !f.disabled {
			t.Fatalf("field %d: expected disabled", i)
		}
		if !f.hasClass(toggle.DefaultMutedClass) {
			t.Fatalf("field %d: expected muted token, got %v", i, f.classes)
		}
	}
}

func TestApply_CheckedReenablesAndUnmutesFields(t *testing.T) {
	fields := newFields(3, "vip-field")
	toggle.Apply(checked(false), asFields(fields))

	result := toggle.Apply(checked(true), asFields(fields))

	if !result.Found || !result.Enabled || result.Fields != 3 {
		t.Fatalf("unexpected result: %+v", result)
	}
	want := []fieldState{
		{Classes: []string{"vip-field"}},
		{Classes: []string{"vip-field"}},
		{Classes: []string{"vip-field"}},
	}
	if diff := cmp.Diff(want, snapshot(fields)); diff != "" {
		t.Fatalf("field state mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_EmptyFieldSetIsNoop(t *testing.T) {
	result := toggle.Apply(checked(false), nil)
	if !result.Found || result.Fields != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestApply_IsIdempotent(t *testing.T) {
	for _, state := range []bool{true, false} {
		fields := newFields(4, "vip-field", "input")
		toggle.Apply(checked(state), asFields(fields))
		once := snapshot(fields)

		for i := 0; i < 3; i++ {
			toggle.Apply(checked(state), asFields(fields))
		}
		if diff := cmp.Diff(once, snapshot(fields)); diff != "" {
			t.Fatalf("checked=%v: repeated apply changed state (-once +repeated):\n%s", state, diff)
		}
	}
}

func TestApply_StyleTracksDisabled(t *testing.T) {
	fields := []*fakeField{
		{disabled: true},
		{classes: []string{toggle.DefaultMutedClass}},
		{disabled: false, classes: []string{"a", toggle.DefaultMutedClass, "b"}},
	}
	for _, state := range []bool{false, true, false} {
		toggle.Apply(checked(state), asFields(fields))
		for i, f := range fields {
			if f.disabled != !state {
				t.Fatalf("field %d: disabled=%v want %v", i, f.disabled, !state)
			}
			if f.hasClass(toggle.DefaultMutedClass) != f.disabled {
				t.Fatalf("field %d: muted token %v but disabled %v", i, f.classes, f.disabled)
			}
		}
	}
}

func TestApply_SkipsNilFieldsAndNilControl(t *testing.T) {
	field := &fakeField{}
	result := toggle.Apply(checked(false), []toggle.Field{nil, field, nil})
	if result.Fields != 1 || !field.disabled {
		t.Fatalf("expected single field update, got %+v", result)
	}

	untouched := &fakeField{}
	result = toggle.Apply(nil, []toggle.Field{untouched})
	if result.Found || untouched.disabled || len(untouched.classes) != 0 {
		t.Fatalf("nil control must not touch fields: %+v %+v", result, untouched)
	}
}

func TestToggler_WithMutedClass(t *testing.T) {
	field := &fakeField{}
	tg := toggle.New(toggle.WithMutedClass("opacity-50"))

	tg.Apply(checked(false), []toggle.Field{field})
	if diff := cmp.Diff([]string{"opacity-50"}, field.classes); diff != "" {
		t.Fatalf("classes mismatch (-want +got):\n%s", diff)
	}
}

func TestToggler_SyncResolvesThroughBinding(t *testing.T) {
	fields := newFields(2)
	other := newFields(1)
	resolver := stubResolver{
		controls: map[string]toggle.Control{"newsletter": checked(false)},
		groups: map[string][]toggle.Field{
			"newsletter-field": asFields(fields),
			"vip-field":        asFields(other),
		},
	}

	tg := toggle.New(toggle.WithBinding(toggle.Binding{
		ControlID:  "newsletter",
		FieldClass: "newsletter-field",
	}))
	result := tg.Sync(resolver)

	if !result.Disabled() || result.Fields != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if other[0].disabled {
		t.Fatalf("fields outside the group must not change")
	}
	if got := tg.Binding().MutedClass; got != toggle.DefaultMutedClass {
		t.Fatalf("expected default muted token, got %q", got)
	}
}

func TestToggler_SyncMissingControlIsSilent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	fields := newFields(2)
	resolver := stubResolver{groups: map[string][]toggle.Field{"vip-field": asFields(fields)}}

	var observed []toggle.Result
	tg := toggle.New(
		toggle.WithLogger(zap.New(core)),
		toggle.WithObserver(func(r toggle.Result) { observed = append(observed, r) }),
	)

	result := tg.Sync(resolver)
	if result.Found || result.Fields != 0 {
		t.Fatalf("expected no-op result, got %+v", result)
	}
	for i, f := range fields {
		if f.disabled || len(f.classes) != 0 {
			t.Fatalf("field %d changed despite missing control", i)
		}
	}
	if logs.FilterMessage("fieldgroup: control not found; skipping sync").Len() != 1 {
		t.Fatalf("expected debug log for missing control, got %v", logs.All())
	}
	if diff := cmp.Diff([]toggle.Result{{}}, observed); diff != "" {
		t.Fatalf("observer mismatch (-want +got):\n%s", diff)
	}
}

func TestToggler_SyncNilResolver(t *testing.T) {
	if result := toggle.Sync(nil); result.Found {
		t.Fatalf("nil resolver must be a no-op, got %+v", result)
	}
}

func TestToggler_ScenarioSequence(t *testing.T) {
	fields := newFields(3)
	state := false
	resolver := stubResolver{
		controls: map[string]toggle.Control{toggle.DefaultControlID: toggle.ControlFunc(func() bool { return state })},
		groups:   map[string][]toggle.Field{toggle.DefaultFieldClass: asFields(fields)},
	}
	tg := toggle.New()

	tg.Sync(resolver)
	disabled := snapshot(fields)
	for i, s := range disabled {
		if !s.Disabled || len(s.Classes) != 1 {
			t.Fatalf("field %d: expected disabled+muted, got %+v", i, s)
		}
	}

	state = true
	tg.Sync(resolver)
	first := snapshot(fields)
	tg.Sync(resolver)
	if diff := cmp.Diff(first, snapshot(fields)); diff != "" {
		t.Fatalf("second sync changed state (-first +second):\n%s", diff)
	}
	for i, s := range first {
		if s.Disabled || len(s.Classes) != 0 {
			t.Fatalf("field %d: expected enabled without token, got %+v", i, s)
		}
	}
}

func TestBinding_Normalize(t *testing.T) {
	got := toggle.Binding{ControlID: "  opt-in ", MutedClass: " "}.Normalize()
	want := toggle.Binding{ControlID: "opt-in", FieldClass: toggle.DefaultFieldClass, MutedClass: toggle.DefaultMutedClass}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("normalize mismatch (-want +got):\n%s", diff)
	}

	multi := toggle.Binding{MutedClass: " opacity-50 \n  cursor-not-allowed"}.Normalize()
	if multi.MutedClass != "opacity-50 cursor-not-allowed" {
		t.Fatalf("expected collapsed muted list, got %q", multi.MutedClass)
	}
	if diff := cmp.Diff([]string{"opacity-50", "cursor-not-allowed"}, multi.MutedTokens()); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestToggler_MultiTokenMutedClass(t *testing.T) {
	fields := newFields(2, "vip-field")
	state := false
	control := toggle.ControlFunc(func() bool { return state })
	tg := toggle.New(toggle.WithMutedClass("  bg-gray-100\tcursor-not-allowed "))

	tg.Apply(control, asFields(fields))
	first := snapshot(fields)
	tg.Apply(control, asFields(fields))
	if diff := cmp.Diff(first, snapshot(fields)); diff != "" {
		t.Fatalf("second pass changed state (-first +second):\n%s", diff)
	}
	want := []fieldState{
		{Disabled: true, Classes: []string{"vip-field", "bg-gray-100", "cursor-not-allowed"}},
		{Disabled: true, Classes: []string{"vip-field", "bg-gray-100", "cursor-not-allowed"}},
	}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Fatalf("disabled state mismatch (-want +got):\n%s", diff)
	}

	state = true
	tg.Apply(control, asFields(fields))
	for i, f := range fields {
		if f.disabled || f.hasClass("bg-gray-100") || f.hasClass("cursor-not-allowed") {
			t.Fatalf("field %d should be enabled without muted tokens: %+v", i, f)
		}
	}
	if got := tg.Binding().MutedClass; got != "bg-gray-100 cursor-not-allowed" {
		t.Fatalf("muted class not collapsed: %q", got)
	}
}

func TestBinding_Validate(t *testing.T) {
	if err := toggle.DefaultBinding().Validate(); err != nil {
		t.Fatalf("default binding should be valid: %v", err)
	}
	if err := (toggle.Binding{ControlID: "vip checkbox"}).Validate(); !errors.Is(err, toggle.ErrInvalidControlID) {
		t.Fatalf("expected ErrInvalidControlID, got %v", err)
	}
	if err := (toggle.Binding{ControlID: "vip", FieldClass: "vip-field extra"}).Validate(); !errors.Is(err, toggle.ErrInvalidFieldClass) {
		t.Fatalf("expected ErrInvalidFieldClass, got %v", err)
	}
}

func TestToggler_SyncInvalidMarkerIsSkipped(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	fields := newFields(1)
	resolver := stubResolver{
		controls: map[string]toggle.Control{toggle.DefaultControlID: checked(false)},
		groups:   map[string][]toggle.Field{"vip-field extra": asFields(fields)},
	}

	tg := toggle.New(
		toggle.WithBinding(toggle.Binding{FieldClass: "vip-field extra"}),
		toggle.WithLogger(zap.New(core)),
	)
	if result := tg.Sync(resolver); result.Found {
		t.Fatalf("invalid marker must not sync, got %+v", result)
	}
	if fields[0].disabled {
		t.Fatalf("field changed despite invalid marker")
	}
	if logs.FilterMessage("fieldgroup: invalid binding; skipping sync").Len() != 1 {
		t.Fatalf("expected warning, got %v", logs.All())
	}
}
