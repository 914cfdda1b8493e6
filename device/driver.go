// Copyright 2024 The allocator Authors. All rights reserved.

package device

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Driver is the interface a vendor backend implements to participate in
// device discovery. A Driver does not itself negotiate capabilities; it
// only decides whether it can service a given file descriptor and, if
// so, opens a Backend for it.
type Driver interface {
	// Name returns the driver's name. It must not cause the driver to
	// open anything, and must be stable for the lifetime of the
	// process.
	Name() string

	// IsFDSupported reports whether fd names a device this driver can
	// service. Implementations typically fstat fd and check its
	// major/minor number or node type.
	IsFDSupported(fd int) bool

	// Open opens a Backend for fd. It is only called after
	// IsFDSupported has returned true for the same fd.
	Open(fd int) (Backend, error)
}

// Register registers drv for consideration by Create. Driver
// implementations are expected to call Register exactly once, from an
// init function, after importing this package. If a driver with the
// same name has already been registered, it is replaced.
func Register(drv Driver) {
	mu.Lock()
	defer mu.Unlock()
	for i := range drivers {
		if drivers[i].Name() == drv.Name() {
			drivers[i] = drv
			logrus.Printf("device: driver %q replaced", drv.Name())
			return
		}
	}
	drivers = append(drivers, drv)
	logrus.Printf("device: driver %q registered", drv.Name())
}

// Drivers returns the currently registered drivers, in registration
// order.
func Drivers() []Driver {
	mu.Lock()
	defer mu.Unlock()
	drv := make([]Driver, len(drivers))
	copy(drv, drivers)
	return drv
}

var (
	mu      sync.Mutex
	drivers []Driver = make([]Driver, 0, 1)
)
