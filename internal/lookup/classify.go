package lookup

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/rzvngherman/OneDrive-REST-API/internal/graph"
)

// Kind is the shape of an upstream body.
type Kind int

const (
	// KindParseFailure: the body is not a JSON object.
	KindParseFailure Kind = iota
	// KindSuccess: a JSON object carrying the @odata.context annotation.
	KindSuccess
	// KindFailure: any other JSON object, expected to hold an error envelope.
	KindFailure
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindFailure:
		return "failure"
	default:
		return "parse_failure"
	}
}

// Document is a parsed top-level JSON object. Values stay raw until a field
// is asked for.
type Document struct {
	fields map[string]json.RawMessage
}

// Has reports whether the named top-level key is present, whatever its value.
func (d Document) Has(name string) bool {
	_, ok := d.fields[name]
	return ok
}

// Field returns the named top-level field as a string. Strings come back
// unquoted; numbers and booleans as their literal text. Absent fields, null,
// objects and arrays report false.
func (d Document) Field(name string) (string, bool) {
	raw, ok := d.fields[name]
	if !ok {
		return "", false
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}

		return s, true
	case '{', '[', 'n':
		return "", false
	default:
		return string(raw), true
	}
}

// Classification is a body parsed exactly once.
type Classification struct {
	Kind Kind
	Doc  Document
	// Err is the decode error for KindParseFailure.
	Err error
}

// Classify parses raw and decides whether it is a success payload, an error
// payload, or not a JSON object at all. It never panics.
func Classify(raw []byte) Classification {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Classification{Kind: KindParseFailure, Err: err}
	}

	// "null" decodes into a nil map without error.
	if fields == nil {
		return Classification{Kind: KindParseFailure, Err: errNullBody}
	}

	doc := Document{fields: fields}
	if doc.Has(graph.ContextKey) {
		return Classification{Kind: KindSuccess, Doc: doc}
	}

	return Classification{Kind: KindFailure, Doc: doc}
}

var errNullBody = errors.New("lookup: body is JSON null")
