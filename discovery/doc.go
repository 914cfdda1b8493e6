// Copyright 2024 The allocator Authors. All rights reserved.

// Package discovery is a reference implementation of the external
// collaborator responsible for finding which driver libraries are
// installed on a system. It scans one or more configuration
// directories for JSON records describing a driver (a stable,
// versioned file format independent of the driver's own binary
// interface), and returns them in a deterministic order so that driver
// precedence never depends on filesystem iteration order or locale.
//
// Go has no portable, idiomatic equivalent to dlopen for turning a
// Record's LibraryPath into a running Driver, and loading arbitrary
// shared libraries is out of scope regardless (spec.md's own
// Non-goals exclude dynamic loading). Instead, a backend package
// registers a Factory under its driver name via RegisterFactory from
// its own init function; Load then matches each scanned Record against
// the factories known in-process and registers the resulting
// device.Driver. A Record naming a driver with no matching factory is
// skipped, not an error: it simply describes a driver this binary
// was not built with.
//
// This keeps driver discovery, an inherently platform-specific and
// filesystem-heavy concern, architecturally separate from the
// negotiation core: discovery never implements negotiation itself, and
// the core package never imports this one.
package discovery
