// Package parser splits front matter from the Markdown body of a pin source file.
package parser

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// Result holds the output of parsing a pin source file.
type Result struct {
	// Attributes is the decoded front matter; empty (never nil) when the
	// document has none.
	Attributes map[string]any
	Body       []byte
}

// Parse extracts front matter and body from raw file bytes. YAML (---),
// TOML (+++) and JSON ({ }) front matter blocks are recognised.
func Parse(data []byte) (*Result, error) {
	var attrs map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(data), &attrs)
	if err != nil {
		return nil, fmt.Errorf("parser: front matter: %w", err)
	}
	if attrs == nil {
		attrs = map[string]any{}
	}
	return &Result{
		Attributes: attrs,
		Body:       body,
	}, nil
}

// Lookup returns the attribute stored under key. A key holding a null value
// is reported as absent.
func (r *Result) Lookup(key string) (any, bool) {
	v, ok := r.Attributes[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}
