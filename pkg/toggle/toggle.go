package toggle

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

const (
	// DefaultControlID identifies the checkbox governing the group.
	DefaultControlID = "vip-checkbox"
	// DefaultFieldClass marks the dependent fields.
	DefaultFieldClass = "vip-field"
	// DefaultMutedClass is the muted background token applied to disabled fields.
	DefaultMutedClass = "bg-gray-100"
)

// Control is a boolean UI element whose checked state drives the group. The
// toggler only reads it.
type Control interface {
	Checked() bool
}

// ControlFunc adapts a function into a Control.
type ControlFunc func() bool

// Checked delegates to the underlying function.
func (fn ControlFunc) Checked() bool {
	return fn()
}

// Field is a dependent element whose enabled state and style follow the
// control.
type Field interface {
	SetDisabled(disabled bool)
	AddClass(token string)
	RemoveClass(token string)
}

// Resolver locates the control and the dependent fields for a binding. It
// replaces direct lookups against a page so the toggler works on any tree
// (parsed HTML, form models, test doubles).
type Resolver interface {
	Control(id string) (Control, bool)
	Fields(marker string) []Field
}

// Binding names the control, the group marker and the muted class list.
// MutedClass may hold several space-separated tokens
// ("bg-gray-100 cursor-not-allowed"); each is added and removed on its own.
type Binding struct {
	ControlID  string `json:"control" yaml:"control" mapstructure:"control"`
	FieldClass string `json:"fields" yaml:"fields" mapstructure:"fields"`
	MutedClass string `json:"muted" yaml:"muted" mapstructure:"muted"`
}

var (
	// ErrInvalidControlID is returned for a control id containing whitespace.
	ErrInvalidControlID = errors.New("toggle: control id must be a single token")
	// ErrInvalidFieldClass is returned for a group marker containing whitespace.
	ErrInvalidFieldClass = errors.New("toggle: field class must be a single class token")
)

// DefaultBinding returns the stock vip-checkbox/vip-field binding.
func DefaultBinding() Binding {
	return Binding{
		ControlID:  DefaultControlID,
		FieldClass: DefaultFieldClass,
		MutedClass: DefaultMutedClass,
	}
}

// Normalize trims every value, collapses the muted class list to single
// spaces and fills blanks with defaults.
func (b Binding) Normalize() Binding {
	out := Binding{
		ControlID:  strings.TrimSpace(b.ControlID),
		FieldClass: strings.TrimSpace(b.FieldClass),
		MutedClass: joinTokens(b.MutedClass),
	}
	if out.ControlID == "" {
		out.ControlID = DefaultControlID
	}
	if out.FieldClass == "" {
		out.FieldClass = DefaultFieldClass
	}
	if out.MutedClass == "" {
		out.MutedClass = DefaultMutedClass
	}
	return out
}

// Validate rejects a control id or marker that cannot match a single
// element id or class token.
func (b Binding) Validate() error {
	if hasSpace(b.ControlID) {
		return fmt.Errorf("%w: %q", ErrInvalidControlID, b.ControlID)
	}
	if hasSpace(b.FieldClass) {
		return fmt.Errorf("%w: %q", ErrInvalidFieldClass, b.FieldClass)
	}
	return nil
}

// MutedTokens splits the muted class list.
func (b Binding) MutedTokens() []string {
	return strings.Fields(b.MutedClass)
}

func joinTokens(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

func hasSpace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}

// Result describes one synchronization pass.
type Result struct {
	// Found reports whether a control was available. When false nothing was
	// touched.
	Found bool
	// Enabled mirrors the control's checked state.
	Enabled bool
	// Fields counts the fields that were updated.
	Fields int
}

// Disabled reports whether the pass left the fields disabled.
func (r Result) Disabled() bool {
	return r.Found && !r.Enabled
}

// Observer receives the result of every pass.
type Observer func(Result)

// Option configures a Toggler.
type Option func(*Toggler)

// WithBinding replaces the binding used by Sync.
func WithBinding(binding Binding) Option {
	return func(t *Toggler) {
		t.binding = binding.Normalize()
	}
}

// WithMutedClass overrides the muted background token.
func WithMutedClass(token string) Option {
	return func(t *Toggler) {
		if joined := joinTokens(token); joined != "" {
			t.binding.MutedClass = joined
		}
	}
}

// WithLogger attaches a logger. Nil keeps the no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Toggler) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithObserver registers a hook invoked after every pass.
func WithObserver(observer Observer) Option {
	return func(t *Toggler) {
		if observer != nil {
			t.observers = append(t.observers, observer)
		}
	}
}

// Toggler projects a control's checked state onto a group of fields. It holds
// configuration only and is safe to reuse.
type Toggler struct {
	binding   Binding
	logger    *zap.Logger
	observers []Observer
}

// New constructs a Toggler with the default binding.
func New(options ...Option) *Toggler {
	t := &Toggler{
		binding: DefaultBinding(),
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}
	return t
}

// Binding returns the normalized binding.
func (t *Toggler) Binding() Binding {
	if t == nil {
		return DefaultBinding()
	}
	return t.binding
}

// Sync resolves the control and fields through r and applies the projection.
// A missing control is a silent no-op.
func (t *Toggler) Sync(r Resolver) Result {
	if t == nil {
		t = New()
	}
	if r == nil {
		t.logger.Debug("fieldgroup: resolver is nil; skipping sync",
			zap.String("control", t.binding.ControlID))
		return t.notify(Result{})
	}

	if err := t.binding.Validate(); err != nil {
		t.logger.Warn("fieldgroup: invalid binding; skipping sync", zap.Error(err))
		return t.notify(Result{})
	}

	control, ok := r.Control(t.binding.ControlID)
	if !ok || control == nil {
		t.logger.Debug("fieldgroup: control not found; skipping sync",
			zap.String("control", t.binding.ControlID),
			zap.String("fields", t.binding.FieldClass))
		return t.notify(Result{})
	}
	return t.Apply(control, r.Fields(t.binding.FieldClass))
}

// Apply sets disabled = !control.Checked() on every field and keeps the muted
// token present exactly when the field is disabled.
func (t *Toggler) Apply(control Control, fields []Field) Result {
	if t == nil {
		t = New()
	}
	if control == nil {
		t.logger.Debug("fieldgroup: control is nil; skipping sync")
		return t.notify(Result{})
	}

	enabled := control.Checked()
	muted := t.binding.MutedTokens()
	result := Result{Found: true, Enabled: enabled}

	for _, field := range fields {
		if field == nil {
			continue
		}
		field.SetDisabled(!enabled)
		for _, token := range muted {
			if enabled {
				field.RemoveClass(token)
			} else {
				field.AddClass(token)
			}
		}
		result.Fields++
	}

	t.logger.Debug("fieldgroup: synced",
		zap.String("control", t.binding.ControlID),
		zap.Bool("enabled", enabled),
		zap.Int("fields", result.Fields))
	return t.notify(result)
}

func (t *Toggler) notify(result Result) Result {
	for _, observer := range t.observers {
		observer(result)
	}
	return result
}

// Apply runs the projection with the default muted token.
func Apply(control Control, fields []Field) Result {
	return New().Apply(control, fields)
}

// Sync runs the projection with the default binding.
func Sync(r Resolver) Result {
	return New().Sync(r)
}
