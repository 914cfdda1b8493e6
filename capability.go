// Copyright 2024 The allocator Authors. All rights reserved.

package allocator

// Capability describes a single layout feature a device can provide
// (pitch-linear representation, a tiling mode, vendor-private placement
// hints). A capability is binary when Payload is empty: its mere
// presence in a set conveys the whole meaning, as with CapBasePitchLinear.
//
// Required controls what happens to this capability during
// IntersectCapabilities: if true, dropping it because the peer set has
// no equivalent capability invalidates the whole intersection.
type Capability struct {
	Header   Header
	Required bool
	Payload  []uint32
}

// CapBasePitchLinear is the base-namespace capability denoting 2D images
// laid out as pitch x height. It is binary (no payload) and is
// conventionally the primary (first) capability of any pitch-linear
// capability set.
const CapBasePitchLinear uint16 = 0x0000

// Equal reports whether c and other are equivalent: same LengthInWords,
// same (Vendor, Name), and bytewise-equal Payload. Required is
// deliberately excluded from equivalence, per SPEC_FULL.md §9's resolved
// open question — the same layout feature can be "required" in one
// producer's set and merely "offered" in another's, and the two
// descriptors are still the same capability.
func (c Capability) Equal(other Capability) bool {
	if c.Header.LengthInWords != other.Header.LengthInWords {
		return false
	}
	if c.Header.Vendor != other.Header.Vendor || c.Header.Name != other.Header.Name {
		return false
	}
	if len(c.Payload) != len(other.Payload) {
		return false
	}
	for i := range c.Payload {
		if c.Payload[i] != other.Payload[i] {
			return false
		}
	}
	return true
}

// IsBinary reports whether c carries no payload words.
func (c Capability) IsBinary() bool {
	return c.Header.LengthInWords == 0
}

// IntersectCapabilities computes the set of capabilities both a and b can
// honor simultaneously, per SPEC_FULL.md §4.3.
//
// The first (primary) capability of each list must be equivalent to the
// other's, or the intersection fails outright: the two lists describe
// incompatible layouts. For every other element of a, an equivalent
// element of b is sought; if found, the output carries a copy with
// Required set to the logical OR of both sides. If a required capability
// of a has no equivalent in b, or a required capability of b was never
// matched by anything in a, the whole intersection fails. The result
// always contains at least the primary and is never empty on success.
func IntersectCapabilities(a, b []Capability) ([]Capability, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyCapabilities
	}

	if !a[0].Equal(b[0]) {
		return nil, ErrIncompatible
	}

	matchedB := make([]bool, len(b))
	matchedB[0] = true

	out := make([]Capability, 0, minInt(len(a), len(b)))
	primary := DupCapability(a[0])
	primary.Required = a[0].Required || b[0].Required
	out = append(out, primary)

	for i := 1; i < len(a); i++ {
		found := -1
		for j := 1; j < len(b); j++ {
			if matchedB[j] {
				continue
			}
			if a[i].Equal(b[j]) {
				found = j
				break
			}
		}
		if found >= 0 {
			matchedB[found] = true
			capVal := DupCapability(a[i])
			capVal.Required = a[i].Required || b[found].Required
			out = append(out, capVal)
		} else if a[i].Required {
			return nil, ErrIncompatible
		}
	}

	for j := 1; j < len(b); j++ {
		if !matchedB[j] && b[j].Required {
			return nil, ErrIncompatible
		}
	}

	return out, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
