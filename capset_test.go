// Copyright 2024 The allocator Authors. All rights reserved.

package allocator

import (
	"errors"
	"testing"
)

func primaryCap(required bool) Capability {
	return Capability{Header: Header{Vendor: VendorBase, Name: CapBasePitchLinear}, Required: required}
}

func vidMemCap(required bool) Capability {
	return Capability{Header: Header{Vendor: VendorNVIDIA, Name: 0xF000}, Required: required}
}

func TestCapabilitySetValidateRejectsEmpty(t *testing.T) {
	s := CapabilitySet{}
	if !errors.Is(s.Validate(), ErrInvalidSet) {
		t.Error("Validate: a set with no capabilities must be invalid")
	}
}

func TestCapabilitySetValidateRejectsDuplicateConstraint(t *testing.T) {
	s := CapabilitySet{
		Constraints:  []Constraint{{Name: AddressAlignment, Value: 1}, {Name: AddressAlignment, Value: 2}},
		Capabilities: []Capability{primaryCap(true)},
	}
	if !errors.Is(s.Validate(), ErrInvalidSet) {
		t.Error("Validate: duplicate constraint names must be invalid")
	}
}

func TestCapabilitySetValidateRejectsDuplicateCapability(t *testing.T) {
	s := CapabilitySet{
		Capabilities: []Capability{primaryCap(true), primaryCap(false)},
	}
	if !errors.Is(s.Validate(), ErrInvalidSet) {
		t.Error("Validate: duplicate (vendor, name) capability pairs must be invalid")
	}
}

func TestCapabilitySetValidateAcceptsWellFormed(t *testing.T) {
	s := CapabilitySet{
		Constraints:  []Constraint{{Name: AddressAlignment, Value: 4096}},
		Capabilities: []Capability{primaryCap(true), vidMemCap(false)},
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate: unexpected error on well-formed set: %v", err)
	}
}

func TestCapabilitySetCloneIsIndependent(t *testing.T) {
	s := CapabilitySet{
		Constraints:  []Constraint{{Name: AddressAlignment, Value: 4096}},
		Capabilities: []Capability{{Header: Header{LengthInWords: 1}, Payload: []uint32{7}}},
	}
	clone := s.Clone()
	clone.Constraints[0].Value = 1
	clone.Capabilities[0].Payload[0] = 99

	if s.Constraints[0].Value != 4096 {
		t.Error("Clone: mutating the clone's constraints must not affect the original")
	}
	if s.Capabilities[0].Payload[0] != 7 {
		t.Error("Clone: mutating the clone's capability payload must not affect the original")
	}
}

func TestCapabilitySetPrimary(t *testing.T) {
	s := CapabilitySet{Capabilities: []Capability{primaryCap(true), vidMemCap(false)}}
	if !s.Primary().Equal(primaryCap(true)) {
		t.Error("Primary: must return the first capability in the set")
	}
}

func TestDeriveCapabilitiesUpperBound(t *testing.T) {
	l0 := []CapabilitySet{
		{Capabilities: []Capability{primaryCap(true)}},
		{Capabilities: []Capability{primaryCap(true), vidMemCap(false)}},
	}
	l1 := []CapabilitySet{
		{Capabilities: []Capability{primaryCap(true)}},
		{Capabilities: []Capability{primaryCap(true)}},
		{Capabilities: []Capability{{Header: Header{Vendor: VendorBase, Name: 0x0001}}}}, // incompatible primary
	}
	got, err := DeriveCapabilities(l0, l1)
	if err != nil {
		t.Fatalf("DeriveCapabilities: unexpected error: %v", err)
	}
	if len(got) > len(l0)*len(l1) {
		t.Fatalf("DeriveCapabilities: got %d sets, exceeds upper bound %d (SPEC_FULL.md §8 property 5)", len(got), len(l0)*len(l1))
	}
	if len(got) == 0 {
		t.Error("DeriveCapabilities: expected at least one compatible pair")
	}
}

// TestDeriveCapabilitiesSelfIdentity verifies SPEC_FULL.md §8's "derive
// identity" property: every set trivially composes with itself, so
// DeriveCapabilities(l, l) reproduces l element-wise along the diagonal.
func TestDeriveCapabilitiesSelfIdentity(t *testing.T) {
	l := []CapabilitySet{
		{
			Constraints:  []Constraint{{Name: AddressAlignment, Value: 4096}},
			Capabilities: []Capability{primaryCap(true), vidMemCap(false)},
		},
	}
	got, err := DeriveCapabilities(l, l)
	if err != nil {
		t.Fatalf("DeriveCapabilities: unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("DeriveCapabilities(l, l): got %d sets, want 1", len(got))
	}
	addr, ok := FindConstraint(got[0].Constraints, AddressAlignment)
	if !ok || addr.Value != 4096 {
		t.Errorf("DeriveCapabilities(l, l): AddressAlignment constraint not preserved, got %+v", addr)
	}
}

func TestDeriveCapabilitiesSkipsIncompatiblePairs(t *testing.T) {
	l0 := []CapabilitySet{{Capabilities: []Capability{primaryCap(true)}}}
	l1 := []CapabilitySet{{Capabilities: []Capability{{Header: Header{Vendor: VendorBase, Name: 0x0001}}}}}
	got, err := DeriveCapabilities(l0, l1)
	if err != nil {
		t.Fatalf("DeriveCapabilities: unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("DeriveCapabilities: got %d sets, want 0 (incompatible primaries never compose)", len(got))
	}
}
