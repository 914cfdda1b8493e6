// Copyright 2024 The allocator Authors. All rights reserved.

package allocator

import "fmt"

// VendorID partitions the constraint/capability/usage name space between
// the cross-vendor base namespace and per-vendor extensions.
type VendorID uint32

// Vendor namespaces understood by this package. Other values denote
// private namespaces; implementations may read and interpret names from
// other vendors' namespaces, but applications should not rely on such
// interoperation in general.
const (
	// VendorBase is the cross-vendor namespace understood by every
	// implementation.
	VendorBase VendorID = 0x00000000
	// VendorNVIDIA is NVIDIA's private namespace.
	VendorNVIDIA VendorID = 0x000010DE
	// VendorARM is Arm's private namespace.
	VendorARM VendorID = 0x000013B5
	// VendorIntel is Intel's private namespace.
	VendorIntel VendorID = 0x00008086
)

// String returns a human-readable vendor name for well-known vendors, or
// the numeric ID in hex for anything else.
func (v VendorID) String() string {
	switch v {
	case VendorBase:
		return "base"
	case VendorNVIDIA:
		return "nvidia"
	case VendorARM:
		return "arm"
	case VendorIntel:
		return "intel"
	default:
		return fmt.Sprintf("vendor(0x%08x)", uint32(v))
	}
}
