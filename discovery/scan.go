// Copyright 2024 The allocator Authors. All rights reserved.

package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// fs is the filesystem scanned for driver configuration files. Tests
// swap it for an in-memory afero.Fs to avoid touching the real
// filesystem.
var fs = afero.NewOsFs()

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ScanDir reads every *.json file directly inside dir and parses it as
// a driver configuration record. Files are processed in byte-wise
// filename order (strings.Compare, never locale-dependent), so driver
// precedence is reproducible across machines. A missing directory is
// not an error: it yields zero records, matching a system with no
// configuration for this particular location.
func ScanDir(dir string) ([]Record, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "discovery: read directory %s", dir)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	records := make([]Record, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		rec, err := readRecord(path)
		if err != nil {
			return nil, errors.Wrapf(err, "discovery: load config %s", path)
		}
		records = append(records, rec)
	}
	return records, nil
}

// ScanDirs scans each directory in dirs, in order, and returns their
// records concatenated, earlier directories' records first. When a
// caller registers drivers in the returned order, drivers with distinct
// names from earlier directories come first in the registry and are
// tried first by device.Create; a record whose name repeats an earlier
// one replaces that driver in place (device.Register replaces by name),
// so for a repeated name the later directory's record wins.
func ScanDirs(dirs []string) ([]Record, error) {
	var all []Record
	for _, dir := range dirs {
		records, err := ScanDir(dir)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			continue
		}
		logrus.Printf("discovery: found %d driver config(s) in %s", len(records), dir)
		all = append(all, records...)
	}
	return all, nil
}

func readRecord(path string) (Record, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Record{}, errors.Wrap(err, "read file")
	}

	var cfg rawConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Record{}, errors.Wrap(err, "parse JSON")
	}

	return cfg.toRecord(path)
}
