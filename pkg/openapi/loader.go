package openapi

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Loader reads documents from disk or from an fs.FS.
type Loader struct {
	fs fs.FS
}

// LoaderOption mutates the Loader during construction.
type LoaderOption func(*Loader)

// WithFileSystem enables SourceKindFS lookups against files.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(l *Loader) {
		l.fs = files
	}
}

// NewLoader constructs a Loader.
func NewLoader(options ...LoaderOption) *Loader {
	l := &Loader{}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Load fetches a document from the provided source and wraps it in a Document.
func (l *Loader) Load(ctx context.Context, src Source) (Document, error) {
	if src == nil {
		return Document{}, errors.New("openapi loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = loadFile(src.Location())
	case SourceKindFS:
		data, err = l.loadFromFS(src.Location())
	default:
		err = fmt.Errorf("openapi loader: cannot load %s sources; use NewDocument", src.Kind())
	}
	if err != nil {
		return Document{}, err
	}
	return NewDocument(src, data)
}

func loadFile(path string) ([]byte, error) {
	if path == "" || path == "." {
		return nil, errors.New("openapi loader: file path is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: %w", err)
	}
	return data, nil
}

func (l *Loader) loadFromFS(name string) ([]byte, error) {
	if l.fs == nil {
		return nil, errors.New("openapi loader: filesystem is not configured")
	}
	if name == "" {
		return nil, errors.New("openapi loader: fs path is required")
	}
	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: %w", err)
	}
	return data, nil
}
