package packagejson

import (
	"github.com/matzehuels/pkgjson/pkg/errors"
	"github.com/matzehuels/pkgjson/pkg/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Get returns the encoded value of a top-level key, declared or unknown.
// A key that would not be written fails with NOT_FOUND.
func (d *Descriptor) Get(key string) (json.RawMessage, error) {
	if f, ok := lookupField(key); ok {
		v, present := f.value(d)
		if !present {
			return nil, errors.New(errors.ErrCodeNotFound, "%q is not set", key)
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidField, err, "encode field %q", key)
		}
		return raw, nil
	}
	if d.Unknowns != nil {
		if raw, ok := d.Unknowns.Get(key); ok {
			return raw, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "%q is not set", key)
}

// Set assigns the JSON value raw to a top-level key. Declared attributes go
// through the same decoder as Decode, so a value of the wrong shape fails
// with INVALID_FIELD and leaves d unchanged. null resets a declared attribute
// to absent. Any other key is stored in Unknowns.
func (d *Descriptor) Set(key string, raw []byte) error {
	if !json.Valid(raw) {
		return errors.New(errors.ErrCodeInvalidSyntax, "value for %q is not valid JSON", key)
	}

	f, ok := lookupField(key)
	if !ok {
		compacted, err := json.CompactRaw(raw)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSyntax, err, "value for %q", key)
		}
		if d.Unknowns == nil {
			d.Unknowns = orderedmap.New[string, json.RawMessage]()
		}
		d.Unknowns.Set(key, compacted)
		return nil
	}

	if json.IsNull(raw) {
		if f.reset == nil {
			return errRequired(key)
		}
		f.reset(d)
		return nil
	}
	if err := f.decode(d, raw); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidField, err, "field %q", key)
	}
	if key == "scripts" {
		d.scriptsExplicit = true
	}
	return nil
}

// Unset returns a declared attribute to its absent or default state, or
// removes an unknown key. name and version cannot be unset. A key that
// Encode would not write fails with NOT_FOUND.
func (d *Descriptor) Unset(key string) error {
	if f, ok := lookupField(key); ok {
		if f.reset == nil {
			return errRequired(key)
		}
		if _, present := f.value(d); !present {
			return errors.New(errors.ErrCodeNotFound, "%q is not set", key)
		}
		f.reset(d)
		return nil
	}
	if d.Unknowns == nil {
		return errors.New(errors.ErrCodeNotFound, "%q is not set", key)
	}
	if _, ok := d.Unknowns.Delete(key); !ok {
		return errors.New(errors.ErrCodeNotFound, "%q is not set", key)
	}
	return nil
}

func errRequired(key string) error {
	return errors.New(errors.ErrCodeInvalidInput, "%q is required and cannot be unset", key)
}

// Keys returns the top-level keys Encode would write, in the same order.
func (d *Descriptor) Keys() []string {
	keys := make([]string, 0, len(fields))
	for i := range fields {
		if _, ok := fields[i].value(d); ok {
			keys = append(keys, fields[i].key)
		}
	}
	if d.Unknowns != nil {
		for pair := d.Unknowns.Oldest(); pair != nil; pair = pair.Next() {
			if !IsDeclared(pair.Key) {
				keys = append(keys, pair.Key)
			}
		}
	}
	return keys
}
