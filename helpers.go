// Copyright 2024 The allocator Authors. All rights reserved.

package allocator

// lcmUint64 returns the least common multiple of two byte alignments.
// Alignments are always powers of two, so LCM reduces to the larger of
// the two values; the general GCD-based formula is kept so the
// precondition can be relaxed without revisiting call sites.
func lcmUint64(a, b uint64) uint64 {
	if a == 0 {
		return b
	}
	if b == 0 {
		return a
	}
	return a / gcdUint64(a, b) * b
}

func lcmUint32(a, b uint32) uint32 {
	return uint32(lcmUint64(uint64(a), uint64(b)))
}

func gcdUint64(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func minUint32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

// IsPowerOfTwo reports whether v is a power of two. Zero is not a power
// of two.
func IsPowerOfTwo(v uint64) bool {
	return v != 0 && v&(v-1) == 0
}

// AlignUp rounds size up to the next multiple of align. align must be a
// power of two; for any other align greater than 1 the mask arithmetic
// yields a value that is not in general a multiple of align (for
// example AlignUp(1, 100) is 4). AlignUp never panics. An align of 0 or
// 1 returns size unchanged.
func AlignUp(size, align int64) int64 {
	if align <= 1 {
		return size
	}
	return (size + align - 1) &^ (align - 1)
}

// NextPowerOfTwo returns the smallest power of two that is >= v, or 1 if
// v is 0.
func NextPowerOfTwo(v int64) int64 {
	if v <= 1 {
		return 1
	}
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	return v + 1
}

// FindConstraint returns the constraint named name in list, and whether
// it was present.
func FindConstraint(list []Constraint, name ConstraintName) (Constraint, bool) {
	for _, c := range list {
		if c.Name == name {
			return c, true
		}
	}
	return Constraint{}, false
}

// FindCapability returns the capability identified by (vendor, name) in
// list, and whether it was present.
func FindCapability(list []Capability, vendor VendorID, name uint16) (Capability, bool) {
	for _, c := range list {
		if c.Header.Vendor == vendor && c.Header.Name == name {
			return c, true
		}
	}
	return Capability{}, false
}

// DupConstraints returns an independent copy of list.
func DupConstraints(list []Constraint) []Constraint {
	out := make([]Constraint, len(list))
	copy(out, list)
	return out
}

// DupCapability returns an independent copy of c, including its payload.
func DupCapability(c Capability) Capability {
	dup := c
	if len(c.Payload) > 0 {
		dup.Payload = make([]uint32, len(c.Payload))
		copy(dup.Payload, c.Payload)
	}
	return dup
}

// DupCapabilities returns an independent deep copy of list.
func DupCapabilities(list []Capability) []Capability {
	out := make([]Capability, len(list))
	for i, c := range list {
		out[i] = DupCapability(c)
	}
	return out
}
