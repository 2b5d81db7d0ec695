// Package pkg provides the libraries behind pkgjson, a reader and editor for
// npm package.json files.
//
// # Overview
//
// The pkg directory is organized by layer:
//
//  1. [packagejson] - The descriptor model, its codec, keyed access and schema
//  2. [locate] - Upward search for the closest package.json
//  3. [manager] - Locate, read, modify and write one document
//  4. [fsys], [json], [errors] - File-system access, the JSON engine and coded errors
//
// # Architecture
//
// The typical data flow through pkgjson:
//
//	working directory
//	         ↓
//	    [locate] package (walk up to the closest package.json)
//	         ↓
//	    [manager] package (read through [fsys])
//	         ↓
//	    [packagejson] package (decode, edit, encode)
//	         ↓
//	    package.json on disk
//
// # Quick Start
//
// Bump a field in the package.json closest to the working directory:
//
//	import (
//	    "github.com/matzehuels/pkgjson/pkg/manager"
//	)
//
//	m := manager.New()
//	if _, ok := m.Locate(); !ok {
//	    return errors.New("no package.json")
//	}
//	d, err := m.Read()
//	if err != nil {
//	    return err
//	}
//	d.Description = &desc
//	return m.Write()
//
// Unknown top-level fields are kept in their original order and written back
// after the known ones.
package pkg
