// Copyright 2024 The allocator Authors. All rights reserved.

package allocator

import (
	"errors"
	"testing"
)

func sampleSet() CapabilitySet {
	return CapabilitySet{
		Constraints: []Constraint{
			{Name: AddressAlignment, Value: 4096},
			{Name: PitchAlignment, Value: 128},
		},
		Capabilities: []Capability{
			{Header: Header{Vendor: VendorBase, Name: CapBasePitchLinear}, Required: true},
			{
				Header:   Header{Vendor: VendorNVIDIA, Name: 0xF000, LengthInWords: 2},
				Required: false,
				Payload:  []uint32{0xdeadbeef, 0x1},
			},
		},
	}
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	want := sampleSet()
	data, err := Serialize(want)
	if err != nil {
		t.Fatalf("Serialize: unexpected error: %v", err)
	}
	got, err := Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize: unexpected error: %v", err)
	}

	if len(got.Constraints) != len(want.Constraints) {
		t.Fatalf("round trip: got %d constraints, want %d", len(got.Constraints), len(want.Constraints))
	}
	for i := range want.Constraints {
		if got.Constraints[i] != want.Constraints[i] {
			t.Errorf("round trip: constraint %d got %+v, want %+v", i, got.Constraints[i], want.Constraints[i])
		}
	}

	if len(got.Capabilities) != len(want.Capabilities) {
		t.Fatalf("round trip: got %d capabilities, want %d", len(got.Capabilities), len(want.Capabilities))
	}
	for i := range want.Capabilities {
		if !got.Capabilities[i].Equal(want.Capabilities[i]) {
			t.Errorf("round trip: capability %d got %+v, want %+v", i, got.Capabilities[i], want.Capabilities[i])
		}
		if got.Capabilities[i].Required != want.Capabilities[i].Required {
			t.Errorf("round trip: capability %d Required got %v, want %v", i, got.Capabilities[i].Required, want.Capabilities[i].Required)
		}
	}
}

func TestSerializeEmptySet(t *testing.T) {
	data, err := Serialize(CapabilitySet{})
	if err != nil {
		t.Fatalf("Serialize: unexpected error: %v", err)
	}
	got, err := Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize: unexpected error: %v", err)
	}
	if len(got.Constraints) != 0 || len(got.Capabilities) != 0 {
		t.Errorf("round trip of empty set: got %+v, want empty", got)
	}
}

func TestSerializeDeterministic(t *testing.T) {
	set := sampleSet()
	a, err := Serialize(set)
	if err != nil {
		t.Fatalf("Serialize: unexpected error: %v", err)
	}
	b, err := Serialize(set)
	if err != nil {
		t.Fatalf("Serialize: unexpected error: %v", err)
	}
	if string(a) != string(b) {
		t.Error("Serialize: encoding the same set twice produced different bytes")
	}
}

// TestDeserializeTruncatedEveryPosition verifies every prefix of a valid
// encoding shorter than the full message is rejected with ErrTruncated,
// never silently accepted as a shorter, well-formed set
// (SPEC_FULL.md §4.5).
func TestDeserializeTruncatedEveryPosition(t *testing.T) {
	full, err := Serialize(sampleSet())
	if err != nil {
		t.Fatalf("Serialize: unexpected error: %v", err)
	}
	for n := 0; n < len(full); n++ {
		_, err := Deserialize(full[:n])
		if !errors.Is(err, ErrTruncated) {
			t.Errorf("Deserialize(full[:%d]): got error %v, want ErrTruncated", n, err)
		}
	}
}

func TestDeserializeRejectsTruncatedCounts(t *testing.T) {
	_, err := Deserialize([]byte{1, 0})
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("Deserialize: got error %v, want ErrTruncated for a truncated header", err)
	}
}

// TestDeserializeRejectsOversizedCount guards against a peer declaring a
// count far larger than the remaining input can possibly hold: without
// a bounds check against r.Len() before the make, this would attempt a
// multi-gigabyte allocation and panic instead of returning ErrTruncated.
func TestDeserializeRejectsOversizedCount(t *testing.T) {
	// num_constraints=0, num_capabilities=0xFFFFFFFF, then nothing else.
	data := []byte{0, 0, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF}
	_, err := Deserialize(data)
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("Deserialize: got error %v, want ErrTruncated for an oversized num_capabilities", err)
	}
}

func TestDeserializeRejectsOversizedConstraintCount(t *testing.T) {
	// num_constraints=0xFFFFFFFF, num_capabilities=0, then nothing else.
	data := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 0}
	_, err := Deserialize(data)
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("Deserialize: got error %v, want ErrTruncated for an oversized num_constraints", err)
	}
}

func TestDeserializeRejectsClaimedCapabilitiesWithoutPayload(t *testing.T) {
	// num_constraints=0, num_capabilities=1, then nothing else.
	data := []byte{0, 0, 0, 0, 1, 0, 0, 0}
	_, err := Deserialize(data)
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("Deserialize: got error %v, want ErrTruncated when a claimed capability has no header bytes", err)
	}
}
