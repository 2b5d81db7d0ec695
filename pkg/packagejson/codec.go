package packagejson

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/buger/jsonparser"

	"github.com/matzehuels/pkgjson/pkg/errors"
	"github.com/matzehuels/pkgjson/pkg/json"
)

// Format selects how Encode lays out its output.
type Format int

const (
	// Pretty writes one key per line, indented.
	Pretty Format = iota
	// Compact writes the whole document on a single line.
	Compact
)

// DefaultIndent is the indentation used by Pretty when none is given.
const DefaultIndent = "  "

func (f Format) String() string {
	if f == Compact {
		return "compact"
	}
	return "pretty"
}

// ParseFormat parses "pretty" or "compact".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pretty":
		return Pretty, nil
	case "compact":
		return Compact, nil
	}
	return Pretty, errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want pretty or compact)", s)
}

// WriteOptions controls the layout of encoded documents.
type WriteOptions struct {
	Format Format
	Indent string // used by Pretty; DefaultIndent when empty
}

// DefaultWriteOptions returns pretty output with two-space indentation.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{Format: Pretty, Indent: DefaultIndent}
}

func (o WriteOptions) indent() string {
	if o.Indent == "" {
		return DefaultIndent
	}
	return o.Indent
}

// Decode parses a package.json document.
//
// Errors carry one of these codes:
//   - INVALID_SYNTAX: data is not valid JSON
//   - INVALID_DOCUMENT: the top-level value is not an object
//   - INVALID_FIELD: a known attribute has the wrong shape
//   - MISSING_FIELD: name or version is missing or null
func Decode(data []byte) (*Descriptor, error) {
	if !json.Valid(data) {
		return nil, errors.Wrap(errors.ErrCodeInvalidSyntax, syntaxError(data), "parse package.json")
	}
	if kindOf(data) != ShapeRecord {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "package.json must contain a JSON object")
	}

	d := New()
	seen := make(map[string]bool, 2)

	err := jsonparser.ObjectEach(data, func(key, value []byte, typ jsonparser.ValueType, offset int) error {
		raw := value
		if typ == jsonparser.String {
			// ObjectEach strips the quotes; take the encoded string as written.
			raw = data[offset-len(value)-2 : offset]
		}
		name := string(key)

		f, ok := lookupField(name)
		if !ok {
			compacted, err := json.CompactRaw(raw)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidSyntax, err, "value of %q", name)
			}
			d.Unknowns.Set(name, compacted)
			return nil
		}

		if typ == jsonparser.Null {
			if f.reset != nil {
				f.reset(d)
			} else {
				delete(seen, name)
			}
			return nil
		}
		if err := f.decode(d, raw); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidField, err, "field %q", name)
		}
		seen[name] = true
		return nil
	})
	if err != nil {
		var coded *errors.Error
		if stderrors.As(err, &coded) {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidSyntax, err, "parse package.json")
	}

	for _, key := range []string{"name", "version"} {
		if !seen[key] {
			return nil, errors.New(errors.ErrCodeMissingField, "missing required field %q", key)
		}
	}
	return d, nil
}

// syntaxError recovers the parser's description of why data is invalid.
func syntaxError(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return fmt.Errorf("invalid JSON")
}

// Encode renders d as a package.json document: declared attributes in their
// fixed order, then unknown keys in insertion order. An unknown key that
// shadows a declared attribute is skipped so every key appears once.
func Encode(d *Descriptor, opts WriteOptions) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	n := 0
	writeMember := func(key string, value []byte) error {
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		if n > 0 {
			buf.WriteByte(',')
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(value)
		n++
		return nil
	}

	for i := range fields {
		f := &fields[i]
		v, ok := f.value(d)
		if !ok {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidField, err, "encode field %q", f.key)
		}
		if err := writeMember(f.key, raw); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode key %q", f.key)
		}
	}

	if d.Unknowns != nil {
		for pair := d.Unknowns.Oldest(); pair != nil; pair = pair.Next() {
			if IsDeclared(pair.Key) {
				continue
			}
			raw, err := json.CompactRaw(pair.Value)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidField, err, "encode unknown field %q", pair.Key)
			}
			if err := writeMember(pair.Key, raw); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode key %q", pair.Key)
			}
		}
	}
	buf.WriteByte('}')

	if opts.Format == Compact {
		return buf.Bytes(), nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", opts.indent()); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "indent package.json")
	}
	return out.Bytes(), nil
}
