// Copyright 2024 The allocator Authors. All rights reserved.

package allocator

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
)

// Wire layout (little-endian, word-oriented; see SPEC_FULL.md §4.5):
//
//	u32  num_constraints
//	u32  num_capabilities
//	num_constraints * constraintWireSize   -- fixed-size records
//	for each capability:
//	    capHeaderWireSize bytes            -- header, required, zeroed pad
//	    length_in_words * 4 bytes          -- payload, verbatim
const (
	constraintWireSize = 4 + 8             // name (u32) + value (u64)
	capHeaderWireSize  = 4 + 2 + 2 + 1 + 3 // vendor, name, length_in_words, required, pad
)

// Serialize encodes a capability set into the stable wire format shipped
// alongside an exported allocation. The encoding is deterministic: two
// structurally equal sets always produce identical bytes, since padding
// in the capability header is always zeroed.
func Serialize(set CapabilitySet) ([]byte, error) {
	size := 8 + len(set.Constraints)*constraintWireSize
	for _, c := range set.Capabilities {
		size += capHeaderWireSize + len(c.Payload)*4
	}

	buf := bytes.NewBuffer(make([]byte, 0, size))

	var u32 [4]byte
	binary.LittleEndian.PutUint32(u32[:], uint32(len(set.Constraints)))
	buf.Write(u32[:])
	binary.LittleEndian.PutUint32(u32[:], uint32(len(set.Capabilities)))
	buf.Write(u32[:])

	for _, c := range set.Constraints {
		var rec [constraintWireSize]byte
		binary.LittleEndian.PutUint32(rec[0:4], uint32(c.Name))
		binary.LittleEndian.PutUint64(rec[4:12], c.Value)
		buf.Write(rec[:])
	}

	for _, c := range set.Capabilities {
		var hdr [capHeaderWireSize]byte
		binary.LittleEndian.PutUint32(hdr[0:4], uint32(c.Header.Vendor))
		binary.LittleEndian.PutUint16(hdr[4:6], c.Header.Name)
		binary.LittleEndian.PutUint16(hdr[6:8], c.Header.LengthInWords)
		if c.Required {
			hdr[8] = 1
		}
		// hdr[9:12] is padding, left zeroed.
		buf.Write(hdr[:])

		for _, w := range c.Payload {
			binary.LittleEndian.PutUint32(u32[:], w)
			buf.Write(u32[:])
		}
	}

	return buf.Bytes(), nil
}

// Deserialize decodes bytes produced by Serialize back into a
// CapabilitySet owned by the caller. Every field is bounds-checked
// against the remaining input; truncated or malformed input is always a
// hard error, never a silently shortened result (SPEC_FULL.md §4.5).
func Deserialize(data []byte) (CapabilitySet, error) {
	r := bytes.NewReader(data)

	numConstraints, err := readUint32(r)
	if err != nil {
		return CapabilitySet{}, err
	}
	numCapabilities, err := readUint32(r)
	if err != nil {
		return CapabilitySet{}, err
	}

	if int(numConstraints) > r.Len()/constraintWireSize {
		return CapabilitySet{}, errors.Wrap(ErrTruncated, "capability set data: num_constraints exceeds remaining input")
	}
	constraints := make([]Constraint, numConstraints)
	for i := range constraints {
		var rec [constraintWireSize]byte
		if _, err := readFull(r, rec[:]); err != nil {
			return CapabilitySet{}, err
		}
		constraints[i] = Constraint{
			Name:  ConstraintName(binary.LittleEndian.Uint32(rec[0:4])),
			Value: binary.LittleEndian.Uint64(rec[4:12]),
		}
	}

	if int(numCapabilities) > r.Len()/capHeaderWireSize {
		return CapabilitySet{}, errors.Wrap(ErrTruncated, "capability set data: num_capabilities exceeds remaining input")
	}
	capabilities := make([]Capability, numCapabilities)
	for i := range capabilities {
		var hdr [capHeaderWireSize]byte
		if _, err := readFull(r, hdr[:]); err != nil {
			return CapabilitySet{}, err
		}
		capVal := Capability{
			Header: Header{
				Vendor:        VendorID(binary.LittleEndian.Uint32(hdr[0:4])),
				Name:          binary.LittleEndian.Uint16(hdr[4:6]),
				LengthInWords: binary.LittleEndian.Uint16(hdr[6:8]),
			},
			Required: hdr[8] != 0,
		}
		if capVal.Header.LengthInWords > 0 {
			capVal.Payload = make([]uint32, capVal.Header.LengthInWords)
			for j := range capVal.Payload {
				w, err := readUint32(r)
				if err != nil {
					return CapabilitySet{}, err
				}
				capVal.Payload[j] = w
			}
		}
		capabilities[i] = capVal
	}

	return CapabilitySet{Constraints: constraints, Capabilities: capabilities}, nil
}

func readUint32(r *bytes.Reader) (uint32, error) {
	var b [4]byte
	if _, err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func readFull(r *bytes.Reader, b []byte) (int, error) {
	n, err := r.Read(b)
	if err != nil || n < len(b) {
		return n, errors.Wrap(ErrTruncated, "capability set data")
	}
	return n, nil
}
