// Copyright 2024 The allocator Authors. All rights reserved.

package device

import (
	"github.com/pkg/errors"

	"github.com/xvendor/allocator"
)

// TransportHandle is the backend-specific, opaque handle through which
// an exported allocation's backing memory is shared with another
// process (a dma-buf fd, a shared-memory segment id, and so on). This
// package never interprets it.
type TransportHandle any

// Backend is the interface a Driver's Open method returns: a live
// connection to one physical or virtual device, through which
// capabilities are queried and allocations are created.
type Backend interface {
	// Destroy releases resources held by the backend. Calling any other
	// method afterwards has undefined behavior.
	Destroy()

	// GetCapabilities returns, for each use declared in uses, the
	// capability sets the backend can offer an allocation satisfying
	// assertion. SPEC_FULL.md leaves the per-use grouping of the result
	// as a backend concern; callers combine results across uses with
	// allocator.DeriveCapabilities.
	GetCapabilities(assertion allocator.Assertion, uses []allocator.Usage) ([]allocator.CapabilitySet, error)

	// GetAssertionHints returns advisory geometry and format bounds for
	// the given uses, so a caller can pick a workable Assertion before
	// calling GetCapabilities.
	GetAssertionHints(uses []allocator.Usage) ([]allocator.AssertionHint, error)

	// CreateAllocation reserves backend-specific storage for an
	// allocation matching assertion and set (normally the result of
	// negotiating down a list returned by GetCapabilities). It returns
	// an opaque handle private to the backend and the allocation's
	// size in bytes.
	CreateAllocation(assertion allocator.Assertion, set allocator.CapabilitySet) (private any, size int64, err error)

	// DestroyAllocation releases the storage behind a handle returned
	// by CreateAllocation.
	DestroyAllocation(private any) error

	// GetAllocationHandle returns the TransportHandle for an allocation,
	// suitable for sharing with another process alongside its
	// serialized CapabilitySet.
	GetAllocationHandle(private any) (TransportHandle, error)
}

// Device is the façade through which an application negotiates and
// allocates buffers for one physical device, once a Driver has accepted
// its file descriptor. It performs no negotiation itself: Device only
// routes calls to the Backend obtained from the accepting Driver.
type Device struct {
	backend Backend
	driver  string
}

// Create opens a Device for fd by asking every registered Driver, in
// registration order, whether it supports fd. The first driver that
// accepts it is opened; if none do, Create returns
// allocator.ErrUnknownDevice.
func Create(fd int) (*Device, error) {
	for _, drv := range Drivers() {
		if !drv.IsFDSupported(fd) {
			continue
		}
		backend, err := drv.Open(fd)
		if err != nil {
			return nil, errors.Wrapf(err, "device: driver %q failed to open fd %d", drv.Name(), fd)
		}
		return &Device{backend: backend, driver: drv.Name()}, nil
	}
	return nil, allocator.ErrUnknownDevice
}

// Driver returns the name of the driver that accepted this Device.
func (d *Device) Driver() string { return d.driver }

// Destroy releases the underlying backend. A Device must not be used
// after Destroy returns.
func (d *Device) Destroy() { d.backend.Destroy() }

// GetCapabilities queries the capability sets the device can offer for
// assertion and uses. Only the uses that apply to d (Usage.Dev is nil
// or equal to d) are forwarded to the backend; a caller that declares
// no use applicable to d gets back a nil, nil result, never an error.
func (d *Device) GetCapabilities(assertion allocator.Assertion, uses []allocator.Usage) ([]allocator.CapabilitySet, error) {
	filtered := d.filterUses(uses)
	if len(filtered) == 0 {
		return nil, nil
	}
	return d.backend.GetCapabilities(assertion, filtered)
}

// GetAssertionHints queries advisory geometry and format bounds for the
// uses that apply to d.
func (d *Device) GetAssertionHints(uses []allocator.Usage) ([]allocator.AssertionHint, error) {
	filtered := d.filterUses(uses)
	if len(filtered) == 0 {
		return nil, nil
	}
	return d.backend.GetAssertionHints(filtered)
}

// filterUses returns the subset of uses that apply to d: those with a
// nil Dev (meaning "every device") and those whose Dev is d itself.
func (d *Device) filterUses(uses []allocator.Usage) []allocator.Usage {
	if len(uses) == 0 {
		return nil
	}
	filtered := make([]allocator.Usage, 0, len(uses))
	for _, u := range uses {
		if u.AppliesTo(d) {
			filtered = append(filtered, u)
		}
	}
	return filtered
}

// CreateAllocation reserves storage on the device for an allocation
// matching assertion and set. The returned Allocation owns its own copy
// of set; the caller's set may be reused or discarded afterwards.
func (d *Device) CreateAllocation(assertion allocator.Assertion, set allocator.CapabilitySet) (*Allocation, error) {
	private, size, err := d.backend.CreateAllocation(assertion, set)
	if err != nil {
		return nil, errors.Wrap(err, "device: create allocation")
	}
	return &Allocation{
		backend: d.backend,
		private: private,
		Set:     set.Clone(),
		Size:    size,
	}, nil
}

// DestroyAllocation releases the storage backing a.
func (d *Device) DestroyAllocation(a *Allocation) error {
	if err := d.backend.DestroyAllocation(a.private); err != nil {
		return errors.Wrap(err, "device: destroy allocation")
	}
	return nil
}

// Allocation is a single buffer allocated on a Device. Its Set and Size
// fields are safe to read directly; the underlying backend handle
// remains private to this package.
type Allocation struct {
	backend Backend
	private any

	// Set is the capability set the allocation was created to satisfy.
	Set allocator.CapabilitySet
	// Size is the allocation's size in bytes, as reported by the
	// backend at creation time.
	Size int64
}

// ExportAllocation produces everything needed to share a with another
// process: the serialized form of its CapabilitySet, the backend's
// TransportHandle for its storage, and its size. The receiving process
// reconstructs the CapabilitySet with allocator.Deserialize before
// interpreting the handle.
func ExportAllocation(a *Allocation) (metadata []byte, transport TransportHandle, size int64, err error) {
	metadata, err = allocator.Serialize(a.Set)
	if err != nil {
		return nil, nil, 0, errors.Wrap(err, "device: serialize allocation metadata")
	}
	transport, err = a.backend.GetAllocationHandle(a.private)
	if err != nil {
		return nil, nil, 0, errors.Wrap(err, "device: get allocation handle")
	}
	return metadata, transport, a.Size, nil
}
