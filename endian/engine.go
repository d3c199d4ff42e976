// Package endian provides byte order utilities for binary encoding and decoding.
//
// This package extends Go's standard encoding/binary package by combining
// ByteOrder and AppendByteOrder interfaces into a unified EndianEngine interface.
// mzML binary data arrays are always declared little-endian by the format, but
// the widening step (reinterpreting a raw byte payload as a numeric-type array)
// still needs an explicit byte order rather than relying on host order, since a
// reader built on a big-endian host must not silently reinterpret bytes wrong.
//
// # Basic Usage
//
//	engine := endian.GetLittleEndianEngine()
//	v := engine.Uint64(buf)
package endian

import (
	"encoding/binary"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library, making it fully compatible with existing Go code while
// providing access to both read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
//
// mzML's binaryDataArray payloads are always little-endian; this is the engine
// every decode path in package binary uses.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine, kept for completeness;
// nothing in this module calls it.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
