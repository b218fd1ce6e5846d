package main

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"unicode"
)

//go:embed embed/version.txt
var embeddedVersion string

//go:embed embed/sql
var embeddedSQLFS embed.FS

// embedParameters are the files built into the server.
type embedParameters struct {
	version string
	sqlFS   fs.FS
}

// newEmbedParameters checks the version and unembeds the sql files.
func newEmbedParameters(version string, sqlFS fs.FS) (*embedParameters, error) {
	version = strings.TrimSpace(version)
	if len(version) == 0 {
		return nil, fmt.Errorf("version required")
	}
	for i, r := range version {
		if !unicode.In(r, unicode.Letter, unicode.Digit) && r != '.' {
			return nil, fmt.Errorf("only letters, digits, and periods are allowed in version: invalid rune at index %v of '%v': '%v'", i, version, string(r))
		}
	}
	sqlFS, err := unembedFS(sqlFS, "sql")
	if err != nil {
		return nil, fmt.Errorf("unembedding sql files: %w", err)
	}
	e := embedParameters{
		version: version,
		sqlFS:   sqlFS,
	}
	return &e, nil
}

// unembedFS returns the embed/subdirectory subdirectory of the file system.
func unembedFS(fsys fs.FS, subdirectory string) (fs.FS, error) {
	if fsys == nil {
		return nil, fmt.Errorf("file system required")
	}
	dir := filepath.Join("embed", subdirectory)
	return fs.Sub(fsys, dir)
}
