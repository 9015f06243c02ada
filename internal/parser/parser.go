// Package parser turns SVG sources into svg.Documents. Two backends
// are normalized behind one interface: a vector-graphics library
// (oksvg) and a generic XML tree walk used as fallback when the
// primary cannot load the file.
package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/ivlev/svgmotion/internal/svg"
)

// Backend is one parsing strategy producing the common document shape.
type Backend interface {
	Name() string
	Parse(r io.Reader) (*svg.Document, error)
}

// ParseError reports an SVG input that could not be parsed by any backend.
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse error: %s", e.Reason)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewBackend creates a parsing backend by variant name.
func NewBackend(variant string) (Backend, error) {
	switch variant {
	case "vector":
		return &VectorBackend{}, nil
	case "tree":
		return &TreeBackend{}, nil
	default:
		return nil, fmt.Errorf("unknown parser variant: %s", variant)
	}
}

// Parse runs the backend selection policy on an in-memory document:
// the vector backend first, the tree walk when the primary fails at
// load time. This is feature detection, not a retry.
func Parse(data []byte, name string) (*svg.Document, error) {
	primary := &VectorBackend{}
	doc, primaryErr := primary.Parse(bytes.NewReader(data))
	if primaryErr == nil {
		doc.Backend = primary.Name()
		return doc, nil
	}

	fallback := &TreeBackend{}
	doc, err := fallback.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Path: name, Reason: err.Error(), Err: err}
	}
	doc.Backend = fallback.Name()
	return doc, nil
}

// ParseFile reads and parses the named SVG file.
func ParseFile(path string) (*svg.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data, path)
}

// ParseWith parses using one explicitly selected backend, without
// the fallback policy.
func ParseWith(b Backend, data []byte, name string) (*svg.Document, error) {
	doc, err := b.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Path: name, Reason: err.Error(), Err: err}
	}
	doc.Backend = b.Name()
	return doc, nil
}
