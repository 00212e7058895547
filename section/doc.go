// Package section defines the fixed binary layouts of the QOA, QOI and YURI formats.
//
// Each type mirrors one on-disk structure and knows how to serialize itself (Bytes, Pack
// or Append) and how to be parsed back (Parse* functions). Parsing checks sizes and magic
// numbers only; semantic validation that depends on surrounding context, such as matching
// a frame against the stream's channel count, belongs to the qoa, qoi and archive packages.
//
// # QOA
//
//	file:   "qoaf" | samples/channel u32
//	frame:  channels u8 | rate u24 | samples u16 | size u16    (QOAFrameHeader.Pack)
//	        per channel: history 4x16 | weights 4x16          (AppendLMS / ParseLMS)
//	        per slice per channel: u64
//
// # QOI
//
//	"qoif" | width u32 | height u32 | channels u8 | colorspace u8 | ops... | 00x7 01
//
// # YURI
//
//	"YURI" | count u32le
//	count x (type u8 | flag u8 | size u32le | crc32 u32le | name length u16le | name)
//	blobs, concatenated in manifest order
//
// Bit packing is always done with explicit shifts on integers, never by overlaying structs
// on memory, so the layouts are independent of host byte order.
package section
