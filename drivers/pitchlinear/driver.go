// Copyright 2024 The allocator Authors. All rights reserved.

package pitchlinear

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/xvendor/allocator"
	"github.com/xvendor/allocator/device"
)

// properties are the per-device layout parameters this backend exposes
// as constraints. A real driver would read these from the underlying
// hardware; this one uses the single hardcoded profile defaultProperties
// for every device it opens. It does not query the chipset, so the
// pitch alignment is always 128.
type properties struct {
	addressAlignment uint64
	pitchAlignment   uint32
	maxPitch         uint32
	maxDimensions    uint32
}

var defaultProperties = properties{
	addressAlignment: 4096,
	pitchAlignment:   128,
	maxPitch:         maxPitch32,
	maxDimensions:    16384,
}

const maxPitch32 = 1<<31 - 1

type driver struct{}

func init() {
	device.Register(&driver{})
}

func (d *driver) Name() string { return "pitchlinear" }

// IsFDSupported reports whether fd refers to a character device, in
// place of the DRM node-type check a real driver would perform
// (drmGetNodeTypeFromFd restricted to the primary, control and render
// node types). This backend does not otherwise distinguish device
// nodes from one another.
func (d *driver) IsFDSupported(fd int) bool {
	var stat unix.Stat_t
	if err := unix.Fstat(fd, &stat); err != nil {
		return false
	}
	return stat.Mode&unix.S_IFMT == unix.S_IFCHR
}

func (d *driver) Open(fd int) (device.Backend, error) {
	if !d.IsFDSupported(fd) {
		return nil, errors.Wrapf(allocator.ErrUnknownDevice, "pitchlinear: fd %d is not a supported device node", fd)
	}
	return &backend{fd: fd, props: defaultProperties}, nil
}
