// Package packagejson models the package.json descriptor of a JavaScript
// package and converts it to and from JSON without losing information.
//
// # Overview
//
// A [Descriptor] holds every attribute npm documents for package.json. Two
// attributes are required (name and version); the rest are optional and
// decode to an explicit absent state (nil pointer, nil slice or nil map) when
// the document does not contain them. Three attributes carry document-level
// defaults instead:
//
//   - main defaults to [DefaultMain]
//   - type defaults to [DefaultType]
//   - scripts defaults to an empty mapping that is only written back once an
//     entry has been added or the source document had a scripts key
//
// Keys the model does not know are kept in [Descriptor.Unknowns] in their
// original order and are written back verbatim, so a decode/encode round trip
// never drops data.
//
// # Polymorphic fields
//
// Several attributes accept more than one JSON shape. Each is represented by
// a small tagged type whose [Shape] records the alternative it holds:
//
//	bugs         string | {url, email}
//	author       string | {name, email?, url?}      (also contributors and maintainers)
//	funding      string | {type, url} | [{type, url}]
//	bin          string | {command: path}
//	man          string | [path]
//	repository   string | {type, url, directory?}
//
// The shape is inferred from the JSON value alone; no discriminator key is
// used. Alternatives are tried list first, then record, then string. A value
// that matches none of them fails the whole decode.
//
// # Encoding
//
//	d, err := packagejson.Decode(data)
//	if err != nil {
//	    return err
//	}
//	d.Scripts["test"] = "vitest"
//	out, err := packagejson.Encode(d, packagejson.DefaultWriteOptions())
//
// Declared attributes are written in a fixed order, followed by unknown keys
// in the order they were read.
package packagejson
