// Package endian provides the byte orders used by qmedia's binary formats.
//
// The QOA and QOI codecs are big-endian throughout, while the YURI archive container stores
// its header and manifest little-endian. Both engines are plain encoding/binary byte orders
// combined with their append counterparts so that writers can build output with
// AppendUint32/AppendUint64 instead of staging through temporary slices:
//
//	buf = endian.Codec().AppendUint64(buf, frameHeader)
//	count := endian.Archive().Uint32(data[4:8])
//
// All functions in this package are safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Codec returns the byte order of QOA and QOI streams (big-endian).
func Codec() EndianEngine {
	return binary.BigEndian
}

// Archive returns the byte order of the YURI archive header and manifest (little-endian).
func Archive() EndianEngine {
	return binary.LittleEndian
}

// Uint24 reads a big-endian 24-bit unsigned integer from the first three bytes of b.
func Uint24(b []byte) uint32 {
	_ = b[2] // bounds check hint to compiler
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

// AppendUint24 appends the low 24 bits of v to b in big-endian order.
func AppendUint24(b []byte, v uint32) []byte {
	return append(b, byte(v>>16), byte(v>>8), byte(v))
}

// SignExtend16 interprets the low 16 bits of v as a two's complement value.
func SignExtend16(v uint64) int32 {
	return int32(int16(uint16(v)))
}
