// Copyright 2024 The allocator Authors. All rights reserved.

package discovery

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/xvendor/allocator/device"
)

// Factory constructs a device.Driver for a Record naming the driver
// this factory handles. libraryPath is passed through verbatim from
// the config file, for backends that use it to locate auxiliary data
// (firmware blobs, ioctl shims) rather than a loadable library.
type Factory func(libraryPath string) (device.Driver, error)

// RegisterFactory registers f as the constructor for drivers named
// name. Backend packages call this from their own init function,
// alongside (or instead of) registering a static device.Driver
// directly with device.Register, so that Load can bring them up from a
// scanned configuration record instead of requiring the host binary to
// import every backend unconditionally.
func RegisterFactory(name string, f Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[name] = f
}

// Load matches each record against the factories registered so far and
// registers the resulting driver with the device package. Records
// naming an unknown driver are logged and skipped; a factory that
// fails to construct its driver aborts the whole call, since a
// misconfigured driver file is a configuration error the host should
// see immediately rather than silently run short a driver.
func Load(records []Record) error {
	for _, r := range records {
		f, ok := lookupFactory(r.Name)
		if !ok {
			logrus.Printf("discovery: no factory registered for driver %q (from %s), skipping", r.Name, r.Path)
			continue
		}
		drv, err := f(r.LibraryPath)
		if err != nil {
			return errors.Wrapf(err, "discovery: construct driver %q", r.Name)
		}
		device.Register(drv)
	}
	return nil
}

func lookupFactory(name string) (Factory, bool) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	f, ok := factories[name]
	return f, ok
}

var (
	factoriesMu sync.Mutex
	factories   = make(map[string]Factory)
)
