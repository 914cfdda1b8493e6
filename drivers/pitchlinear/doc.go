// Copyright 2024 The allocator Authors. All rights reserved.

// Package pitchlinear is a reference device backend illustrating how a
// real vendor driver wires itself into the device package. It models a
// generic pitch-linear 2D allocator in the spirit of the open-source
// nouveau driver's allocator backend: buffers are laid out as
// pitch x height, with alignment and maximum-pitch constraints fixed
// per device and two vendor-private capabilities advertising whether
// the allocation lives in video memory and whether it is physically
// contiguous.
//
// It is not meant to back a real GPU; it exists so the device façade
// and the negotiation core have a concrete, self-registering backend to
// exercise in tests and examples.
package pitchlinear
