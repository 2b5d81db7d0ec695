package packagejson

import (
	"bytes"
	"strings"

	"github.com/buger/jsonparser"

	"github.com/matzehuels/pkgjson/pkg/errors"
	"github.com/matzehuels/pkgjson/pkg/json"
)

// Shape identifies which JSON alternative a polymorphic attribute holds.
type Shape int

const (
	// ShapeUnset is the zero value. Encoding a value with no shape fails.
	ShapeUnset Shape = iota
	ShapeString
	ShapeRecord
	ShapeList
)

func (s Shape) String() string {
	switch s {
	case ShapeString:
		return "string"
	case ShapeRecord:
		return "record"
	case ShapeList:
		return "list"
	}
	return "unset"
}

// kindOf reports the shape a raw JSON value could decode as, judged by its
// first significant byte.
func kindOf(raw []byte) Shape {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ShapeUnset
	}
	switch raw[0] {
	case '"':
		return ShapeString
	case '{':
		return ShapeRecord
	case '[':
		return ShapeList
	}
	return ShapeUnset
}

// alternative is one candidate shape of a polymorphic attribute. decode
// assigns the receiver only when it succeeds.
type alternative struct {
	shape  Shape
	decode func(raw []byte) error
}

// alt builds an alternative that unmarshals into T, checks the required
// record keys and hands the value to set.
func alt[T any](shape Shape, set func(T), required ...string) alternative {
	return alternative{shape: shape, decode: func(raw []byte) error {
		if err := requireKeys(raw, required...); err != nil {
			return err
		}
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		set(v)
		return nil
	}}
}

// decodeFirst tries the alternatives in the given order and stops at the
// first one that decodes. Callers list them list, record, string.
func decodeFirst(raw []byte, what string, alts ...alternative) error {
	kind := kindOf(raw)
	var cause error
	for _, a := range alts {
		if a.shape != kind {
			continue
		}
		err := a.decode(raw)
		if err == nil {
			return nil
		}
		cause = err
	}

	names := make([]string, len(alts))
	for i, a := range alts {
		names[i] = a.shape.String()
	}
	msg := "%s must be a " + strings.Join(names, " or ")
	if cause != nil {
		return errors.Wrap(errors.ErrCodeInvalidField, cause, msg, what)
	}
	return errors.New(errors.ErrCodeInvalidField, msg, what)
}

// requireKeys checks that the record raw has a non-null value for each key.
func requireKeys(raw []byte, keys ...string) error {
	for _, key := range keys {
		_, typ, _, err := jsonparser.Get(raw, key)
		if err != nil || typ == jsonparser.Null {
			return errors.New(errors.ErrCodeMissingField, "record is missing %q", key)
		}
	}
	return nil
}

// requireAnyKey checks that the record raw has a non-null value for at least
// one of keys.
func requireAnyKey(raw []byte, keys ...string) error {
	for _, key := range keys {
		if _, typ, _, err := jsonparser.Get(raw, key); err == nil && typ != jsonparser.Null {
			return nil
		}
	}
	return errors.New(errors.ErrCodeMissingField, "record needs one of %q", keys)
}

func errUnsetShape(what string) error {
	return errors.New(errors.ErrCodeInvalidField, "%s has no shape set", what)
}

// Bugs is where issues are reported: a tracker URL or a {url, email} record.
type Bugs struct {
	Shape  Shape
	URL    string
	Record BugsRecord
}

// BugsRecord is the record form of [Bugs].
type BugsRecord struct {
	URL   string `json:"url,omitempty"`
	Email string `json:"email,omitempty"`
}

// NewBugsURL returns a Bugs holding a tracker URL.
func NewBugsURL(url string) *Bugs {
	return &Bugs{Shape: ShapeString, URL: url}
}

// NewBugsRecord returns a Bugs holding a record.
func NewBugsRecord(r BugsRecord) *Bugs {
	return &Bugs{Shape: ShapeRecord, Record: r}
}

func (b Bugs) MarshalJSON() ([]byte, error) {
	switch b.Shape {
	case ShapeString:
		return json.Marshal(b.URL)
	case ShapeRecord:
		return json.Marshal(b.Record)
	}
	return nil, errUnsetShape("bugs")
}

func (b *Bugs) UnmarshalJSON(data []byte) error {
	record := alt(ShapeRecord, func(r BugsRecord) { *b = Bugs{Shape: ShapeRecord, Record: r} })
	decodeRecord := record.decode
	record.decode = func(raw []byte) error {
		if err := requireAnyKey(raw, "url", "email"); err != nil {
			return err
		}
		return decodeRecord(raw)
	}
	return decodeFirst(data, "bugs",
		record,
		alt(ShapeString, func(s string) { *b = Bugs{Shape: ShapeString, URL: s} }),
	)
}

// Person is an author, contributor or maintainer: either the npm shorthand
// string "Name <email> (url)" kept as written, or a record.
type Person struct {
	Shape   Shape
	Literal string
	Record  PersonRecord
}

// PersonRecord is the record form of [Person]. Name is required.
type PersonRecord struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	URL   string `json:"url,omitempty"`
}

// NewPerson returns a Person holding the shorthand string form.
func NewPerson(literal string) *Person {
	return &Person{Shape: ShapeString, Literal: literal}
}

// NewPersonRecord returns a Person holding a record.
func NewPersonRecord(r PersonRecord) *Person {
	return &Person{Shape: ShapeRecord, Record: r}
}

// DisplayName returns the literal or the record name.
func (p Person) DisplayName() string {
	if p.Shape == ShapeRecord {
		return p.Record.Name
	}
	return p.Literal
}

func (p Person) MarshalJSON() ([]byte, error) {
	switch p.Shape {
	case ShapeString:
		return json.Marshal(p.Literal)
	case ShapeRecord:
		return json.Marshal(p.Record)
	}
	return nil, errUnsetShape("person")
}

func (p *Person) UnmarshalJSON(data []byte) error {
	return decodeFirst(data, "person",
		alt(ShapeRecord, func(r PersonRecord) { *p = Person{Shape: ShapeRecord, Record: r} }, "name"),
		alt(ShapeString, func(s string) { *p = Person{Shape: ShapeString, Literal: s} }),
	)
}

// Funding points at ways to fund the package: a URL, a {type, url} record or
// a list of records.
type Funding struct {
	Shape  Shape
	URL    string
	Record FundingRecord
	List   []FundingRecord
}

// FundingRecord is one funding source. URL is required.
type FundingRecord struct {
	Type string `json:"type,omitempty"`
	URL  string `json:"url"`
}

// NewFundingURL returns a Funding holding a single URL.
func NewFundingURL(url string) *Funding {
	return &Funding{Shape: ShapeString, URL: url}
}

// NewFundingRecord returns a Funding holding one record.
func NewFundingRecord(r FundingRecord) *Funding {
	return &Funding{Shape: ShapeRecord, Record: r}
}

// NewFundingList returns a Funding holding a list of records.
func NewFundingList(list ...FundingRecord) *Funding {
	if list == nil {
		list = []FundingRecord{}
	}
	return &Funding{Shape: ShapeList, List: list}
}

func (f Funding) MarshalJSON() ([]byte, error) {
	switch f.Shape {
	case ShapeString:
		return json.Marshal(f.URL)
	case ShapeRecord:
		return json.Marshal(f.Record)
	case ShapeList:
		if f.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(f.List)
	}
	return nil, errUnsetShape("funding")
}

func (f *Funding) UnmarshalJSON(data []byte) error {
	list := alternative{shape: ShapeList, decode: func(raw []byte) error {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return err
		}
		records := make([]FundingRecord, 0, len(items))
		for _, item := range items {
			if kindOf(item) != ShapeRecord {
				return errors.New(errors.ErrCodeInvalidField, "funding list entries must be records")
			}
			if err := requireKeys(item, "url"); err != nil {
				return err
			}
			var r FundingRecord
			if err := json.Unmarshal(item, &r); err != nil {
				return err
			}
			records = append(records, r)
		}
		*f = Funding{Shape: ShapeList, List: records}
		return nil
	}}

	return decodeFirst(data, "funding",
		list,
		alt(ShapeRecord, func(r FundingRecord) { *f = Funding{Shape: ShapeRecord, Record: r} }, "url"),
		alt(ShapeString, func(s string) { *f = Funding{Shape: ShapeString, URL: s} }),
	)
}

// Bin names the executables a package installs: one path (installed under
// the package name) or a command-name to path mapping.
type Bin struct {
	Shape    Shape
	Path     string
	Commands map[string]string
}

// NewBinPath returns a Bin holding a single path.
func NewBinPath(path string) *Bin {
	return &Bin{Shape: ShapeString, Path: path}
}

// NewBinCommands returns a Bin holding a command mapping.
func NewBinCommands(commands map[string]string) *Bin {
	if commands == nil {
		commands = map[string]string{}
	}
	return &Bin{Shape: ShapeRecord, Commands: commands}
}

func (b Bin) MarshalJSON() ([]byte, error) {
	switch b.Shape {
	case ShapeString:
		return json.Marshal(b.Path)
	case ShapeRecord:
		if b.Commands == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(b.Commands)
	}
	return nil, errUnsetShape("bin")
}

func (b *Bin) UnmarshalJSON(data []byte) error {
	return decodeFirst(data, "bin",
		alt(ShapeRecord, func(m map[string]string) {
			if m == nil {
				m = map[string]string{}
			}
			*b = Bin{Shape: ShapeRecord, Commands: m}
		}),
		alt(ShapeString, func(s string) { *b = Bin{Shape: ShapeString, Path: s} }),
	)
}

// Man lists manual pages: one path or a list of paths.
type Man struct {
	Shape Shape
	Path  string
	Paths []string
}

// NewManPath returns a Man holding a single path.
func NewManPath(path string) *Man {
	return &Man{Shape: ShapeString, Path: path}
}

// NewManPaths returns a Man holding a list of paths.
func NewManPaths(paths ...string) *Man {
	if paths == nil {
		paths = []string{}
	}
	return &Man{Shape: ShapeList, Paths: paths}
}

func (m Man) MarshalJSON() ([]byte, error) {
	switch m.Shape {
	case ShapeString:
		return json.Marshal(m.Path)
	case ShapeList:
		if m.Paths == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(m.Paths)
	}
	return nil, errUnsetShape("man")
}

func (m *Man) UnmarshalJSON(data []byte) error {
	return decodeFirst(data, "man",
		alt(ShapeList, func(paths []string) {
			if paths == nil {
				paths = []string{}
			}
			*m = Man{Shape: ShapeList, Paths: paths}
		}),
		alt(ShapeString, func(s string) { *m = Man{Shape: ShapeString, Path: s} }),
	)
}

// Repository is where the source lives: a URL or npm shorthand such as
// "github:user/repo", or a {type, url, directory} record.
type Repository struct {
	Shape  Shape
	URL    string
	Record RepositoryRecord
}

// RepositoryRecord is the record form of [Repository]. URL is required;
// Directory locates the package inside a monorepo.
type RepositoryRecord struct {
	Type      string `json:"type,omitempty"`
	URL       string `json:"url"`
	Directory string `json:"directory,omitempty"`
}

// NewRepositoryURL returns a Repository holding a URL or shorthand.
func NewRepositoryURL(url string) *Repository {
	return &Repository{Shape: ShapeString, URL: url}
}

// NewRepositoryRecord returns a Repository holding a record.
func NewRepositoryRecord(r RepositoryRecord) *Repository {
	return &Repository{Shape: ShapeRecord, Record: r}
}

func (r Repository) MarshalJSON() ([]byte, error) {
	switch r.Shape {
	case ShapeString:
		return json.Marshal(r.URL)
	case ShapeRecord:
		return json.Marshal(r.Record)
	}
	return nil, errUnsetShape("repository")
}

func (r *Repository) UnmarshalJSON(data []byte) error {
	return decodeFirst(data, "repository",
		alt(ShapeRecord, func(rec RepositoryRecord) { *r = Repository{Shape: ShapeRecord, Record: rec} }, "url"),
		alt(ShapeString, func(s string) { *r = Repository{Shape: ShapeString, URL: s} }),
	)
}
