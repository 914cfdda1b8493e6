// Copyright 2024 The allocator Authors. All rights reserved.

package allocator

// CapabilitySet is an immutable bundle of capabilities plus the
// constraints they imply. It owns its Constraints and Capabilities
// slices: callers that want to retain a set past the lifetime of the
// call that produced it should Clone it first.
//
// Invariants (checked by Validate, and preserved by MergeConstraints,
// IntersectCapabilities and DeriveCapabilities when their inputs satisfy
// them; Deserialize does not check them and returns whatever set was
// encoded):
//   - each constraint name appears at most once;
//   - each (vendor, name) capability pair appears at most once;
//   - there is at least one capability, and the first (the primary) is
//     conventionally a layout descriptor such as CapBasePitchLinear.
type CapabilitySet struct {
	Constraints  []Constraint
	Capabilities []Capability
}

// Validate checks the structural invariants listed on CapabilitySet.
func (s CapabilitySet) Validate() error {
	if len(s.Capabilities) == 0 {
		return ErrInvalidSet
	}
	seenC := make(map[ConstraintName]bool, len(s.Constraints))
	for _, c := range s.Constraints {
		if seenC[c.Name] {
			return ErrInvalidSet
		}
		seenC[c.Name] = true
	}
	type capKey struct {
		vendor VendorID
		name   uint16
	}
	seenCap := make(map[capKey]bool, len(s.Capabilities))
	for _, c := range s.Capabilities {
		k := capKey{c.Header.Vendor, c.Header.Name}
		if seenCap[k] {
			return ErrInvalidSet
		}
		seenCap[k] = true
	}
	return nil
}

// Clone returns a deep, independent copy of s.
func (s CapabilitySet) Clone() CapabilitySet {
	return CapabilitySet{
		Constraints:  DupConstraints(s.Constraints),
		Capabilities: DupCapabilities(s.Capabilities),
	}
}

// Primary returns the set's primary (first) capability: the layout
// descriptor that cannot be dropped during intersection.
func (s CapabilitySet) Primary() Capability {
	return s.Capabilities[0]
}

// mergeSets combines the constraints and intersects the capabilities of
// two sets, producing the single CapabilitySet that satisfies both, or
// an error if either primitive fails.
func mergeSets(a, b CapabilitySet) (CapabilitySet, error) {
	constraints, err := MergeConstraints(a.Constraints, b.Constraints)
	if err != nil {
		return CapabilitySet{}, err
	}
	capabilities, err := IntersectCapabilities(a.Capabilities, b.Capabilities)
	if err != nil {
		return CapabilitySet{}, err
	}
	return CapabilitySet{Constraints: constraints, Capabilities: capabilities}, nil
}

// DeriveCapabilities computes, for every pair (s0, s1) in the cross
// product of l0 and l1, the capability set that satisfies both — by
// merging constraints and intersecting capabilities — and returns every
// pair that succeeded. A pair that fails (incompatible constraints or
// capabilities) is simply skipped, never failing the call as a whole:
// DeriveCapabilities' purpose is to discover which pairs compose, and a
// result with zero sets and a nil error means "nothing in common."
//
// The output has at most len(l0)*len(l1) sets, is commutative up to
// element order (SPEC_FULL.md §8 property 6), and in
// DeriveCapabilities(l, l) each diagonal pair (s, s) reproduces s
// (property 5, "derive identity"), since every set trivially composes
// with itself. Off-diagonal pairs of l that compose are emitted as well.
func DeriveCapabilities(l0, l1 []CapabilitySet) ([]CapabilitySet, error) {
	out := make([]CapabilitySet, 0, len(l0)*len(l1))
	for _, s0 := range l0 {
		for _, s1 := range l1 {
			merged, err := mergeSets(s0, s1)
			if err != nil {
				continue
			}
			out = append(out, merged)
		}
	}
	return out, nil
}
