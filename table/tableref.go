package table

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidTableRef = errors.New("invalid table reference")

// TableRef is a structured (schema, name) table identifier. Identifiers on
// chain are canonically upper-cased; Uppercase produces the canonical form
// without mutating the original.
type TableRef struct {
	Schema string
	Name   string
}

// ParseTableRef parses a "SCHEMA.NAME" identifier.
func ParseTableRef(id string) (TableRef, error) {
	parts := strings.Split(id, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return TableRef{}, fmt.Errorf("%w: %q", ErrInvalidTableRef, id)
	}
	return TableRef{Schema: parts[0], Name: parts[1]}, nil
}

func (t TableRef) String() string {
	return t.Schema + "." + t.Name
}

func (t TableRef) Uppercase() TableRef {
	return TableRef{
		Schema: strings.ToUpper(t.Schema),
		Name:   strings.ToUpper(t.Name),
	}
}
