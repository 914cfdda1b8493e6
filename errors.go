// Copyright 2024 The allocator Authors. All rights reserved.

package allocator

import "github.com/pkg/errors"

// Sentinel errors reported by the negotiation core. Some call sites wrap
// these with errors.Wrap or errors.Wrapf to attach context and others
// return them bare; callers should match on the sentinel with errors.Is
// rather than on the message.
var (
	// ErrUnknownConstraint is returned when a constraint list carries a
	// name no registered merge function recognizes.
	ErrUnknownConstraint = errors.New("allocator: unknown constraint name")

	// ErrIncompatible is returned when two capability lists cannot be
	// reconciled (a required capability would be dropped, or the two
	// primary capabilities differ).
	ErrIncompatible = errors.New("allocator: incompatible capability sets")

	// ErrEmptyCapabilities is returned when IntersectCapabilities is
	// given an empty input list; every capability set must carry at
	// least a primary capability.
	ErrEmptyCapabilities = errors.New("allocator: capability list is empty")

	// ErrInvalidSet is returned when a CapabilitySet violates one of its
	// structural invariants (duplicate constraint name, duplicate
	// capability, no primary capability).
	ErrInvalidSet = errors.New("allocator: invalid capability set")

	// ErrTruncated is returned by Deserialize when the input is shorter
	// than the structure it claims to encode.
	ErrTruncated = errors.New("allocator: truncated capability set data")

	// ErrUnknownDevice is returned when no registered driver accepts a
	// candidate device descriptor.
	ErrUnknownDevice = errors.New("allocator: no driver accepted this device")
)
