// Copyright 2024 The allocator Authors. All rights reserved.

// Package allocator negotiates how a buffer should be laid out when it
// will be shared between multiple hardware devices (GPUs, display
// controllers, video codecs, cameras).
//
// Each device advertises layout constraints (address/pitch alignment,
// maximum pitch) and layout capabilities (pitch-linear representation,
// tiling modes, vendor-private features) as a CapabilitySet. Given an
// application-declared Assertion and a list of Usage atoms, a device
// backend (see the device subpackage) returns one or more capability
// sets it can honor. An application folds the capability-set lists
// returned by every participating device through DeriveCapabilities to
// find the sets every device can honor simultaneously, then hands one
// surviving set back to a device to realize an allocation.
//
// This package implements the vendor-neutral core: the constraint and
// capability data model, the merge/intersect/derive set algebra, and
// the wire codec used to ship a chosen capability set to a peer
// process alongside a buffer handle. It does not load drivers, own
// physical memory, or interpret pixel formats; see the device and
// discovery subpackages for those concerns.
package allocator
