// Copyright 2024 The allocator Authors. All rights reserved.

package discovery

import (
	"github.com/pkg/errors"

	"github.com/xvendor/allocator"
)

// FormatVersionMajor and FormatVersionMinor bound the driver config
// file format this package understands. A config file's major version
// must match exactly; its minor version must be no greater than
// FormatVersionMinor, so that files written for the same or an older
// minor revision of the format are accepted and files naming a newer
// minor revision are rejected.
const (
	FormatVersionMajor = 1
	FormatVersionMinor = 0
)

// ErrFormatVersion is returned when a config file's format_version
// field is missing, malformed, or names a format this package cannot
// read.
var ErrFormatVersion = errors.New("discovery: unsupported driver config format version")

// ErrMissingField is returned when a config file lacks a field this
// package requires.
var ErrMissingField = errors.New("discovery: driver config missing required field")

// Record is one driver advertised by a configuration file.
type Record struct {
	// Path is the configuration file's own path, kept for diagnostics.
	Path string
	// Name is the driver's advertised name, matched against Driver.Name
	// once loaded.
	Name string
	// Vendor is the driver's advertised vendor namespace.
	Vendor allocator.VendorID
	// LibraryPath is the path to the driver's implementation, exactly
	// as written in the configuration file (relative paths are left
	// unresolved; callers decide how to interpret them).
	LibraryPath string
}

// rawConfig mirrors the on-disk JSON schema:
//
//	{
//	  "format_version": "1.0",
//	  "driver": {
//	    "name": "example",
//	    "vendor": 4318,
//	    "library_path": "/usr/lib/allocator/libexample.so"
//	  }
//	}
type rawConfig struct {
	FormatVersion string `json:"format_version"`
	Driver        struct {
		Name        string `json:"name"`
		Vendor      uint32 `json:"vendor"`
		LibraryPath string `json:"library_path"`
	} `json:"driver"`
}

func (c *rawConfig) toRecord(path string) (Record, error) {
	if err := checkFormatVersion(c.FormatVersion); err != nil {
		return Record{}, err
	}
	if c.Driver.Name == "" {
		return Record{}, errors.Wrap(ErrMissingField, "driver.name")
	}
	if c.Driver.LibraryPath == "" {
		return Record{}, errors.Wrap(ErrMissingField, "driver.library_path")
	}
	return Record{
		Path:        path,
		Name:        c.Driver.Name,
		Vendor:      allocator.VendorID(c.Driver.Vendor),
		LibraryPath: c.Driver.LibraryPath,
	}, nil
}
