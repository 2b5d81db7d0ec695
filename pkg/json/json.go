// Package json is the JSON engine behind every encoder and decoder in pkgjson.
//
// It is backed by goccy/go-json. HTML escaping is disabled on output so that
// values such as "tsc && node dist/index.js" are written back exactly as a
// person would type them instead of as &&.
package json

import (
	"bytes"

	gojson "github.com/goccy/go-json"
)

// RawMessage is a raw encoded JSON value.
type RawMessage = gojson.RawMessage

// Marshal returns the compact JSON encoding of v.
func Marshal(v any) ([]byte, error) {
	return gojson.MarshalWithOption(v, gojson.DisableHTMLEscape())
}

// MarshalIndent is like Marshal but applies Indent to format the output.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return gojson.MarshalIndentWithOption(v, prefix, indent, gojson.DisableHTMLEscape())
}

// Unmarshal parses the JSON-encoded data and stores the result in v.
func Unmarshal(data []byte, v any) error {
	return gojson.Unmarshal(data, v)
}

// Valid reports whether data is a valid JSON encoding. The compaction pass
// rejects a stray closing bracket after the value, which the stream-based
// check alone accepts.
func Valid(data []byte) bool {
	if !gojson.Valid(data) {
		return false
	}
	var buf bytes.Buffer
	return gojson.Compact(&buf, data) == nil
}

// Compact appends to dst the JSON-encoded src with insignificant space
// characters elided.
func Compact(dst *bytes.Buffer, src []byte) error {
	return gojson.Compact(dst, src)
}

// Indent appends to dst an indented form of the JSON-encoded src.
func Indent(dst *bytes.Buffer, src []byte, prefix, indent string) error {
	return gojson.Indent(dst, src, prefix, indent)
}

// CompactRaw returns a compacted copy of src. Two values that differ only in
// insignificant whitespace compact to the same bytes.
func CompactRaw(src []byte) (RawMessage, error) {
	var buf bytes.Buffer
	if err := Compact(&buf, src); err != nil {
		return nil, err
	}
	return RawMessage(buf.Bytes()), nil
}

// IsNull reports whether raw is the JSON literal null.
func IsNull(raw []byte) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
