// Copyright 2024 The allocator Authors. All rights reserved.

package pitchlinear

import (
	"github.com/pkg/errors"

	"github.com/xvendor/allocator"
	"github.com/xvendor/allocator/device"
)

// Vendor-private capability names. CapVidMemName and CapContiguousName live in
// allocator.VendorNVIDIA's namespace, following the nouveau driver this
// backend is modeled on; a different vendor backend would define its
// own names in its own namespace.
const (
	CapVidMemName     uint16 = 0xF000
	CapContiguousName uint16 = 0xF001
)

// bppAssumed is the bits-per-pixel this backend assumes for every
// allocation, since it does not enumerate pixel formats (matching the
// grounding source's own placeholder: "Should be based on
// assertion->format").
const bppAssumed = 32

type backend struct {
	fd    int
	props properties
}

func (b *backend) Destroy() {}

// GetCapabilities returns a single pitch-linear capability set: the
// required CapBasePitchLinear primary, an optional "video memory"
// capability, and, when any use applies to a display, a required
// "physically contiguous" capability. The device façade has already
// filtered uses down to the ones applicable to this device.
func (b *backend) GetCapabilities(assertion allocator.Assertion, uses []allocator.Usage) ([]allocator.CapabilitySet, error) {
	constraints := []allocator.Constraint{
		{Name: allocator.AddressAlignment, Value: b.props.addressAlignment},
		{Name: allocator.PitchAlignment, Value: uint64(b.props.pitchAlignment)},
		{Name: allocator.MaxPitch, Value: uint64(b.props.maxPitch)},
	}

	capabilities := []allocator.Capability{
		{
			Header:   allocator.Header{Vendor: allocator.VendorBase, Name: allocator.CapBasePitchLinear},
			Required: true,
		},
		{
			Header:   allocator.Header{Vendor: allocator.VendorNVIDIA, Name: CapVidMemName},
			Required: false,
		},
	}
	if usesDisplay(uses) {
		capabilities = append(capabilities, allocator.Capability{
			Header:   allocator.Header{Vendor: allocator.VendorNVIDIA, Name: CapContiguousName},
			Required: true,
		})
	}

	return []allocator.CapabilitySet{{Constraints: constraints, Capabilities: capabilities}}, nil
}

// GetAssertionHints returns a single hint bounding width and height to
// this device's maximum dimensions. Pixel format enumeration is not
// implemented, matching the grounding source's own unimplemented state
// (it returns zero formats, leaving the caller to assume a default).
func (b *backend) GetAssertionHints(uses []allocator.Usage) ([]allocator.AssertionHint, error) {
	return []allocator.AssertionHint{{
		MaxWidth:  b.props.maxDimensions,
		MaxHeight: b.props.maxDimensions,
	}}, nil
}

// CreateAllocation computes a pitch-linear allocation's size from
// assertion and the negotiated constraints in set. The pitch is rounded
// up to the device's pitch alignment, and the height is padded to the
// next power of two and a floor of 8 rows, to leave room for a tiled
// remapping of the same storage later on.
func (b *backend) CreateAllocation(assertion allocator.Assertion, set allocator.CapabilitySet) (any, int64, error) {
	pitchAlign := b.props.pitchAlignment
	if c, ok := allocator.FindConstraint(set.Constraints, allocator.PitchAlignment); ok {
		pitchAlign = c.Uint32()
	}

	pitch := allocator.AlignUp(int64(bppAssumed)*int64(assertion.Width)/8, int64(pitchAlign))
	height := assertion.Height
	if height < 8 {
		height = 8
	}
	paddedHeight := allocator.NextPowerOfTwo(int64(height))

	size := pitch * paddedHeight

	_, vidMem := allocator.FindCapability(set.Capabilities, allocator.VendorNVIDIA, CapVidMemName)
	_, contig := allocator.FindCapability(set.Capabilities, allocator.VendorNVIDIA, CapContiguousName)

	return &allocation{
		size:   size,
		vidMem: vidMem,
		contig: contig,
	}, size, nil
}

func (b *backend) DestroyAllocation(private any) error {
	if _, ok := private.(*allocation); !ok {
		return errors.Errorf("pitchlinear: DestroyAllocation called with foreign handle %T", private)
	}
	return nil
}

// GetAllocationHandle returns the allocation itself as the transport
// handle. A real driver would instead export a dma-buf file descriptor
// (as the nouveau source does via nouveau_bo_set_prime); this backend
// has no physical memory to export.
func (b *backend) GetAllocationHandle(private any) (device.TransportHandle, error) {
	a, ok := private.(*allocation)
	if !ok {
		return nil, errors.Errorf("pitchlinear: GetAllocationHandle called with foreign handle %T", private)
	}
	return a, nil
}

// allocation is the backend-private state behind a device.Allocation.
type allocation struct {
	size   int64
	vidMem bool
	contig bool
}

func usesDisplay(uses []allocator.Usage) bool {
	for _, u := range uses {
		if u.Header.Vendor == allocator.VendorBase && u.Header.Name == allocator.UsageBaseDisplay {
			return true
		}
	}
	return false
}
