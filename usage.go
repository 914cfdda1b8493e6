// Copyright 2024 The allocator Authors. All rights reserved.

package allocator

// FormatToken is an application- or platform-defined pixel format
// identifier. SPEC_FULL.md §9 leaves the canonical representation of
// pixel formats as an open question the source never resolved; this
// package treats it as an opaque token and never interprets its value.
type FormatToken uint32

// Standard usage names understood by every implementation.
const (
	// UsageBaseTexture requests support for sampling a 2D image through
	// a GPU's texture units. It is binary: it carries no payload.
	UsageBaseTexture uint16 = 0x0000
	// UsageBaseDisplay requests support for displaying a 2D image,
	// optionally rotated and/or mirrored. Its payload is a
	// RotationMask.
	UsageBaseDisplay uint16 = 0x0001
)

// RotationMask describes the rotation (and optional mirroring) a display
// usage requires.
type RotationMask uint32

// Rotation values for UsageBaseDisplay. Rotation0-Rotation270 are
// mutually exclusive (they occupy the low two bits); Mirror is an
// independent flag.
const (
	Rotation0   RotationMask = 0x0
	Rotation90  RotationMask = 0x1
	Rotation180 RotationMask = 0x2
	Rotation270 RotationMask = 0x3
	Mirror      RotationMask = 0x4
)

// Usage is a single application-declared intended use of a buffer, such
// as "sampled as a texture" or "displayed at a given rotation". Dev is
// opaque to this package; a nil Dev means the usage applies to every
// device participating in the allocation. Concrete device handles are
// defined by the device subpackage, which this package deliberately does
// not import.
type Usage struct {
	Dev     any
	Header  Header
	Payload []uint32
}

// TextureUsage returns the binary UsageBaseTexture usage, scoped to dev
// (nil for every device).
func TextureUsage(dev any) Usage {
	return Usage{
		Dev:    dev,
		Header: Header{Vendor: VendorBase, Name: UsageBaseTexture, LengthInWords: 0},
	}
}

// DisplayUsage returns the UsageBaseDisplay usage for the given rotation,
// scoped to dev (nil for every device).
func DisplayUsage(dev any, rotation RotationMask) Usage {
	return Usage{
		Dev:     dev,
		Header:  Header{Vendor: VendorBase, Name: UsageBaseDisplay, LengthInWords: 1},
		Payload: []uint32{uint32(rotation)},
	}
}

// Rotation returns the rotation payload of a UsageBaseDisplay usage. It
// is meaningless for any other usage.
func (u Usage) Rotation() RotationMask {
	if len(u.Payload) == 0 {
		return Rotation0
	}
	return RotationMask(u.Payload[0])
}

// AppliesTo reports whether u applies to dev: either u.Dev is nil (every
// device) or it equals dev.
func (u Usage) AppliesTo(dev any) bool {
	return u.Dev == nil || u.Dev == dev
}

// Assertion carries the required geometric and format properties of a
// surface. Assertions are immutable once presented to the engine and,
// unlike Usage, are not meant to be retried against varying values — an
// application that wants to discover workable values first should query
// GetAssertionHints.
type Assertion struct {
	Width, Height uint32
	Format        *FormatToken
	Ext           any
}

// AssertionHint is read-only advisory guidance a device gives back for a
// declared usage, so an application can pick a workable Assertion before
// requesting capabilities.
type AssertionHint struct {
	MaxWidth, MaxHeight uint32
	Formats             []FormatToken
}
