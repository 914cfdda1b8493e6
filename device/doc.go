// Copyright 2024 The allocator Authors. All rights reserved.

// Package device is the driver-facing façade: it routes
// GetCapabilities, GetAssertionHints, CreateAllocation,
// DestroyAllocation and GetAllocationHandle to whichever Driver backend
// accepted a given device descriptor, and maintains the process-wide
// registry of available drivers.
//
// The façade itself performs no negotiation; it is a thin pass-through
// to the selected Backend. The negotiation primitives
// (allocator.MergeConstraints, allocator.IntersectCapabilities,
// allocator.DeriveCapabilities) live in the parent package and operate
// on plain data, independent of any device.
package device
