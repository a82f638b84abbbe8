// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates configuration data against embedded CUE schemas.
//
// Two inputs are supported. CUE source files (the app config) go through
// ParseAndDecode. Data that was already decoded from another format, such as
// the tables of games.toml, goes through DecodeValue, which encodes the Go
// value into CUE before unifying it with the schema:
//
//	//go:embed catalog_schema.cue
//	var schema []byte
//
//	raw, err := cueutil.DecodeValue[rawCatalog](schema, tables, "#Catalog",
//	    cueutil.WithFilename("games.toml"))
//
// Errors carry the file name and a JSON-style path to the offending field.
package cueutil
