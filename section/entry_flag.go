package section

import (
	"github.com/yurikit/qmedia/errs"
	"github.com/yurikit/qmedia/format"
)

// EntryFlag is the per-entry flag byte of the archive manifest.
//
// Bit 7 marks a compressed payload. Bits 0-3 hold the format.CompressionType of a
// compressed payload and must be zero otherwise. Bits 4-6 are unassigned and must be zero.
type EntryFlag uint8

const (
	FlagCompressed      EntryFlag = 0x80
	FlagCompressionMask EntryFlag = 0x0F
	FlagReservedMask    EntryFlag = 0x70
)

// NewEntryFlag returns the flag for a payload stored with compression c.
// CompressionNone, and zero, produce an uncompressed flag.
func NewEntryFlag(c format.CompressionType) EntryFlag {
	if c == 0 || c == format.CompressionNone {
		return 0
	}

	return FlagCompressed | EntryFlag(c)&FlagCompressionMask
}

// IsCompressed reports whether the compressed bit is set.
func (f EntryFlag) IsCompressed() bool {
	return f&FlagCompressed != 0
}

// Compression returns the payload codec, CompressionNone for uncompressed entries.
//
// A compressed flag with an empty codec nibble is read as zstd.
func (f EntryFlag) Compression() format.CompressionType {
	if !f.IsCompressed() {
		return format.CompressionNone
	}

	c := format.CompressionType(f & FlagCompressionMask)
	if c == 0 {
		return format.CompressionZstd
	}

	return c
}

// Validate rejects reserved bits and unknown codecs.
func (f EntryFlag) Validate() error {
	if f&FlagReservedMask != 0 {
		return errs.ErrInvalidEntryFlags
	}
	if !f.IsCompressed() {
		if f&FlagCompressionMask != 0 {
			return errs.ErrInvalidEntryFlags
		}

		return nil
	}

	switch f.Compression() {
	case format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		return nil
	default:
		return errs.ErrInvalidEntryFlags
	}
}
