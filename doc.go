// Package ulog is an ultra-lightweight logging engine for
// resource-constrained targets: microcontrollers, bare-metal/RTOS
// builds, and hosted processes that still want a fixed-cost logging
// path.
//
// Almost everything about a log call — its severity, source location,
// format string, and the number and types of its arguments — is fixed
// the first time the call site executes. Only a dense numeric
// identifier plus the variable payload travels through the ring
// buffer and onto the wire; a host-side tool (not part of this
// package) reconstructs the full message from the identifier and the
// metadata region this package builds up as call sites register
// themselves.
//
// The package is organized around the pipeline described in its
// design document: call-site metadata registration (record.go),
// argument type-signature encoding and marshalling (trait.go,
// marshal.go), a bounded ring buffer with overrun accounting
// (queue.go), a byte-stuffing frame encoder (frame.go), and a
// transmit scheduler (transmit.go) driven by a small set of port
// contracts (ports.go) that keep the transport, critical section, and
// wake-up mechanism pluggable.
package ulog
