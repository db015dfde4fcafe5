package loadingpaper

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/zubbicodes/adsonsLab/internal/entity"
)

// Parse errors. Handlers match with errors.Is.
var (
	ErrBadSyntax    = errors.New("invalid JSON")
	ErrEmptyDataset = errors.New("no rows found in JSON")
)

// ParsedInput is the raw row collection straight out of the upload, before any
// coercion. First is the designated header source (rows[0]).
type ParsedInput struct {
	Rows  []entity.RawRow
	First entity.RawRow
}

// rowsSchema enforces the minimal upload shape: a top-level object whose Rows
// member is a non-empty array. Field-level coercion stays permissive, so row
// elements are not constrained here.
var rowsSchema = jsonschema.MustCompileString("dc.schema.json", `{
	"type": "object",
	"properties": {
		"Rows": {"type": "array", "minItems": 1}
	},
	"required": ["Rows"]
}`)

// Parse parses raw DC JSON into the intermediate row representation. It is a
// pure function over its input: syntactically invalid text yields ErrBadSyntax,
// a missing/empty/non-array Rows collection yields ErrEmptyDataset.
func Parse(raw []byte) (*ParsedInput, error) {
	var payload any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSyntax, err)
	}
	// Decode stops at the first complete value; anything after it makes the
	// text as a whole invalid.
	if err := dec.Decode(new(any)); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after JSON value", ErrBadSyntax)
	}

	if err := rowsSchema.Validate(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyDataset, err)
	}

	rawRows := payload.(map[string]any)["Rows"].([]any)
	rows := make([]entity.RawRow, len(rawRows))
	for i, r := range rawRows {
		if m, ok := r.(map[string]any); ok {
			rows[i] = entity.RawRow(m)
		} else {
			// Non-object elements carry no readable fields; normalize as blanks.
			rows[i] = entity.RawRow{}
		}
	}

	return &ParsedInput{Rows: rows, First: rows[0]}, nil
}
