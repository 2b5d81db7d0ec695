package packagejson

import (
	"github.com/matzehuels/pkgjson/pkg/json"
)

// field binds one top-level key to its attribute on Descriptor.
type field struct {
	key string

	// decode parses a non-null raw value into the attribute. It leaves d
	// untouched on failure.
	decode func(d *Descriptor, raw []byte) error

	// value returns the attribute to marshal and whether it is written.
	value func(d *Descriptor) (any, bool)

	// reset returns the attribute to its absent or default state. Nil for
	// required attributes, which have no absent state.
	reset func(d *Descriptor)
}

// fields lists the attributes in the order they are written.
var fields = []field{
	required("name", func(d *Descriptor) *string { return &d.Name }),
	required("version", func(d *Descriptor) *string { return &d.Version }),
	optional("description", func(d *Descriptor) **string { return &d.Description }),
	list("keywords", func(d *Descriptor) *[]string { return &d.Keywords }),
	optional("homepage", func(d *Descriptor) **string { return &d.Homepage }),
	optional("bugs", func(d *Descriptor) **Bugs { return &d.Bugs }),
	optional("license", func(d *Descriptor) **string { return &d.License }),
	optional("author", func(d *Descriptor) **Person { return &d.Author }),
	list("contributors", func(d *Descriptor) *[]Person { return &d.Contributors }),
	list("maintainers", func(d *Descriptor) *[]Person { return &d.Maintainers }),
	optional("funding", func(d *Descriptor) **Funding { return &d.Funding }),
	list("files", func(d *Descriptor) *[]string { return &d.Files }),
	defaulted("main", DefaultMain, func(d *Descriptor) *string { return &d.Main }),
	optional("browser", func(d *Descriptor) **string { return &d.Browser }),
	optional("bin", func(d *Descriptor) **Bin { return &d.Bin }),
	optional("man", func(d *Descriptor) **Man { return &d.Man }),
	optional("directories", func(d *Descriptor) **Directories { return &d.Directories }),
	optional("repository", func(d *Descriptor) **Repository { return &d.Repository }),
	scriptsField(),
	rawMapping("config", func(d *Descriptor) *map[string]json.RawMessage { return &d.Config }),
	mapping("dependencies", func(d *Descriptor) *map[string]string { return &d.Dependencies }),
	mapping("devDependencies", func(d *Descriptor) *map[string]string { return &d.DevDependencies }),
	mapping("peerDependencies", func(d *Descriptor) *map[string]string { return &d.PeerDependencies }),
	mapping("peerDependenciesMeta", func(d *Descriptor) *map[string]map[string]bool { return &d.PeerDependenciesMeta }),
	list("bundledDependencies", func(d *Descriptor) *[]string { return &d.BundledDependencies }),
	mapping("optionalDependencies", func(d *Descriptor) *map[string]string { return &d.OptionalDependencies }),
	rawMapping("overrides", func(d *Descriptor) *map[string]json.RawMessage { return &d.Overrides }),
	mapping("engines", func(d *Descriptor) *map[string]string { return &d.Engines }),
	list("os", func(d *Descriptor) *[]string { return &d.OS }),
	list("cpu", func(d *Descriptor) *[]string { return &d.CPU }),
	optional("private", func(d *Descriptor) **bool { return &d.Private }),
	rawMapping("publishConfig", func(d *Descriptor) *map[string]json.RawMessage { return &d.PublishConfig }),
	list("workspaces", func(d *Descriptor) *[]string { return &d.Workspaces }),
	defaulted("type", DefaultType, func(d *Descriptor) *string { return &d.Type }),
	optional("types", func(d *Descriptor) **string { return &d.Types }),
	optional("typings", func(d *Descriptor) **string { return &d.Typings }),
}

var fieldIndex = func() map[string]*field {
	m := make(map[string]*field, len(fields))
	for i := range fields {
		m[fields[i].key] = &fields[i]
	}
	return m
}()

// lookupField returns the declared attribute for key.
func lookupField(key string) (*field, bool) {
	f, ok := fieldIndex[key]
	return f, ok
}

// IsDeclared reports whether key is a modelled attribute rather than an
// unknown.
func IsDeclared(key string) bool {
	_, ok := fieldIndex[key]
	return ok
}

// DeclaredKeys returns the modelled attribute keys in canonical order.
func DeclaredKeys() []string {
	keys := make([]string, len(fields))
	for i := range fields {
		keys[i] = fields[i].key
	}
	return keys
}

func required(key string, ptr func(*Descriptor) *string) field {
	return field{
		key: key,
		decode: func(d *Descriptor, raw []byte) error {
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return err
			}
			*ptr(d) = s
			return nil
		},
		value: func(d *Descriptor) (any, bool) { return *ptr(d), true },
	}
}

func defaulted(key, def string, ptr func(*Descriptor) *string) field {
	f := required(key, ptr)
	f.reset = func(d *Descriptor) { *ptr(d) = def }
	return f
}

func optional[T any](key string, ptr func(*Descriptor) **T) field {
	return field{
		key: key,
		decode: func(d *Descriptor, raw []byte) error {
			v := new(T)
			if err := json.Unmarshal(raw, v); err != nil {
				return err
			}
			*ptr(d) = v
			return nil
		},
		value: func(d *Descriptor) (any, bool) {
			p := *ptr(d)
			return p, p != nil
		},
		reset: func(d *Descriptor) { *ptr(d) = nil },
	}
}

func list[T any](key string, ptr func(*Descriptor) *[]T) field {
	return field{
		key: key,
		decode: func(d *Descriptor, raw []byte) error {
			var v []T
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			if v == nil {
				v = []T{}
			}
			*ptr(d) = v
			return nil
		},
		value: func(d *Descriptor) (any, bool) {
			v := *ptr(d)
			return v, v != nil
		},
		reset: func(d *Descriptor) { *ptr(d) = nil },
	}
}

func mapping[V any](key string, ptr func(*Descriptor) *map[string]V) field {
	return field{
		key: key,
		decode: func(d *Descriptor, raw []byte) error {
			var v map[string]V
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			if v == nil {
				v = map[string]V{}
			}
			*ptr(d) = v
			return nil
		},
		value: func(d *Descriptor) (any, bool) {
			v := *ptr(d)
			return v, v != nil
		},
		reset: func(d *Descriptor) { *ptr(d) = nil },
	}
}

// rawMapping holds free-form values. They are stored compacted so that
// documents differing only in whitespace decode to equal values.
func rawMapping(key string, ptr func(*Descriptor) *map[string]json.RawMessage) field {
	f := mapping(key, ptr)
	f.decode = func(d *Descriptor, raw []byte) error {
		var v map[string]json.RawMessage
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		m := make(map[string]json.RawMessage, len(v))
		for k, val := range v {
			c, err := json.CompactRaw(val)
			if err != nil {
				return err
			}
			m[k] = c
		}
		*ptr(d) = m
		return nil
	}
	return f
}

// scriptsField is written when the document had scripts, when scripts was
// set explicitly, or when an entry has been added since.
func scriptsField() field {
	f := mapping("scripts", func(d *Descriptor) *map[string]string { return &d.Scripts })
	decode := f.decode
	f.decode = func(d *Descriptor, raw []byte) error {
		if err := decode(d, raw); err != nil {
			return err
		}
		d.scriptsExplicit = true
		return nil
	}
	f.value = func(d *Descriptor) (any, bool) {
		if !d.scriptsExplicit && len(d.Scripts) == 0 {
			return nil, false
		}
		if d.Scripts == nil {
			return map[string]string{}, true
		}
		return d.Scripts, true
	}
	f.reset = func(d *Descriptor) {
		d.Scripts = map[string]string{}
		d.scriptsExplicit = false
	}
	return f
}
