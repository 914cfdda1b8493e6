// Copyright 2024 The allocator Authors. All rights reserved.

package allocator

import "github.com/pkg/errors"

// ConstraintName identifies the kind of value a Constraint carries.
// Unlike the original C union, which dispatched merge functions through a
// flat array indexed by this value (and could run off the end of the
// array for an out-of-range name), merging here is a switch on the name:
// an unrecognized name simply falls to the default case instead of
// reading past a table.
type ConstraintName uint32

// Standard constraint names understood by every implementation.
const (
	// AddressAlignment is the required byte alignment of the
	// allocation's base address. Value is a full 64-bit byte count.
	AddressAlignment ConstraintName = 0
	// PitchAlignment is the required byte alignment of the row stride.
	// Value is a 32-bit byte count stored in the low 32 bits.
	PitchAlignment ConstraintName = 1
	// MaxPitch is the maximum allowed byte pitch. Value is a 32-bit byte
	// count stored in the low 32 bits.
	MaxPitch ConstraintName = 2
)

// Constraint is a single named numeric restriction a device places on any
// allocation satisfying one of its capability sets. All constraints
// currently defined are scalar, so Value holds the constraint's value
// directly; PitchAlignment and MaxPitch use only the low 32 bits.
type Constraint struct {
	Name  ConstraintName
	Value uint64
}

// Uint32 returns Value truncated to 32 bits, for constraints whose wire
// representation is a u32 (PitchAlignment, MaxPitch).
func (c Constraint) Uint32() uint32 { return uint32(c.Value) }

// mergeConstraint combines two constraints of the same name into one
// whose value satisfies both, per the per-name algebra in SPEC_FULL.md
// §4.1: alignments merge by LCM (both inputs are powers of two by
// precondition, so LCM reduces to max), MaxPitch merges by minimum.
func mergeConstraint(a, b Constraint) (Constraint, error) {
	if a.Name != b.Name {
		return Constraint{}, errors.Errorf("allocator: mismatched constraint names %d and %d", a.Name, b.Name)
	}
	switch a.Name {
	case AddressAlignment:
		return Constraint{Name: AddressAlignment, Value: lcmUint64(a.Value, b.Value)}, nil
	case PitchAlignment:
		return Constraint{Name: PitchAlignment, Value: uint64(lcmUint32(a.Uint32(), b.Uint32()))}, nil
	case MaxPitch:
		return Constraint{Name: MaxPitch, Value: uint64(minUint32(a.Uint32(), b.Uint32()))}, nil
	default:
		return Constraint{}, errors.Wrapf(ErrUnknownConstraint, "name %d", a.Name)
	}
}

// MergeConstraints combines two constraint lists into one whose names are
// the union of both inputs. Names present in both lists are combined via
// mergeConstraint; names present in only one list are copied verbatim.
// The merge is commutative and associative, and merging a list with
// itself (after normalizing order) reproduces the list unchanged, as
// required by SPEC_FULL.md §8 properties 1-2.
//
// An unrecognized constraint name, or a per-name merge failure, fails the
// whole operation: mergers never leave a partial result.
func MergeConstraints(a, b []Constraint) ([]Constraint, error) {
	merged := make([]Constraint, 0, len(a)+len(b))
	usedB := make([]bool, len(b))

	for _, ca := range a {
		found := false
		for j, cb := range b {
			if ca.Name != cb.Name {
				continue
			}
			m, err := mergeConstraint(ca, cb)
			if err != nil {
				return nil, err
			}
			merged = append(merged, m)
			usedB[j] = true
			found = true
			break
		}
		if !found {
			if ca.Name > MaxPitch {
				return nil, errors.Wrapf(ErrUnknownConstraint, "name %d", ca.Name)
			}
			merged = append(merged, ca)
		}
	}

	for j, cb := range b {
		if !usedB[j] {
			if cb.Name > MaxPitch {
				return nil, errors.Wrapf(ErrUnknownConstraint, "name %d", cb.Name)
			}
			merged = append(merged, cb)
		}
	}

	return merged, nil
}
