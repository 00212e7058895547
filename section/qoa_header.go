package section

import (
	"github.com/yurikit/qmedia/encoding"
	"github.com/yurikit/qmedia/endian"
	"github.com/yurikit/qmedia/errs"
)

// QOAFileHeader is the 8-byte stream header.
type QOAFileHeader struct {
	// Samples is the total number of samples per channel. Zero marks a streaming file.
	Samples uint32
}

// Bytes serializes the header, magic included.
func (h QOAFileHeader) Bytes() []byte {
	b := make([]byte, 0, QOAFileHeaderSize)
	b = endian.Codec().AppendUint32(b, QOAMagic)

	return endian.Codec().AppendUint32(b, h.Samples)
}

// ParseQOAFileHeader parses the stream header at the start of data.
//
// Returns:
//   - QOAFileHeader: parsed header
//   - error: ErrUnexpectedEOF if data is shorter than the header, ErrNotQOA on bad magic
func ParseQOAFileHeader(data []byte) (QOAFileHeader, error) {
	if len(data) < QOAFileHeaderSize {
		return QOAFileHeader{}, errs.ErrUnexpectedEOF
	}

	engine := endian.Codec()
	if engine.Uint32(data[0:4]) != QOAMagic {
		return QOAFileHeader{}, errs.ErrNotQOA
	}

	return QOAFileHeader{Samples: engine.Uint32(data[4:8])}, nil
}

// QOAFrameHeader is the packed 64-bit word that opens every frame.
type QOAFrameHeader struct {
	Channels   uint8
	SampleRate uint32 // 24 bits
	Samples    uint16 // samples per channel in this frame
	Size       uint16 // total frame size in bytes, header included
}

// Pack returns the header as one 64-bit word: channels(8) | rate(24) | samples(16) | size(16).
func (h QOAFrameHeader) Pack() uint64 {
	return uint64(h.Channels)<<56 |
		uint64(h.SampleRate&QOAMaxSampleRate)<<32 |
		uint64(h.Samples)<<16 |
		uint64(h.Size)
}

// UnpackQOAFrameHeader splits a packed frame header word into its fields.
func UnpackQOAFrameHeader(word uint64) QOAFrameHeader {
	return QOAFrameHeader{
		Channels:   uint8(word >> 56),
		SampleRate: uint32(word>>32) & QOAMaxSampleRate,
		Samples:    uint16(word >> 16),
		Size:       uint16(word),
	}
}

// PayloadSize returns the number of slice bytes implied by Size, or -1 when Size is too
// small to hold the header and the per-channel predictor snapshots.
func (h QOAFrameHeader) PayloadSize() int {
	n := int(h.Size) - QOAFrameHeaderSize - QOALMSSize*int(h.Channels)
	if n < 0 {
		return -1
	}

	return n
}

// Capacity returns the number of interleaved samples (all channels) the slices implied by
// Size can hold. It returns 0 when PayloadSize is negative.
func (h QOAFrameHeader) Capacity() int {
	n := h.PayloadSize()
	if n < 0 {
		return 0
	}

	return n / QOASliceSize * encoding.SliceLen
}

// QOAFrameSize returns the byte size of a frame with the given channel and per-channel
// slice counts.
func QOAFrameSize(channels, slices int) int {
	return QOAFrameHeaderSize + QOALMSSize*channels + QOASliceSize*slices*channels
}

// AppendLMS appends the 16-byte snapshot of lms to dst: history then weights, each value
// truncated to 16 bits.
func AppendLMS(dst []byte, lms encoding.LMS) []byte {
	var history, weights uint64
	for i := range encoding.LMSLen {
		history = history<<16 | uint64(lms.History[i])&0xFFFF
		weights = weights<<16 | uint64(lms.Weights[i])&0xFFFF
	}

	dst = endian.Codec().AppendUint64(dst, history)

	return endian.Codec().AppendUint64(dst, weights)
}

// ParseLMS reads a 16-byte predictor snapshot, sign-extending every field.
//
// Returns:
//   - encoding.LMS: restored predictor state
//   - error: ErrUnexpectedEOF if b holds fewer than QOALMSSize bytes
func ParseLMS(b []byte) (encoding.LMS, error) {
	if len(b) < QOALMSSize {
		return encoding.LMS{}, errs.ErrUnexpectedEOF
	}

	engine := endian.Codec()
	history := engine.Uint64(b[0:8])
	weights := engine.Uint64(b[8:16])

	var lms encoding.LMS
	for i := range encoding.LMSLen {
		shift := uint(48 - 16*i)
		lms.History[i] = endian.SignExtend16(history >> shift)
		lms.Weights[i] = endian.SignExtend16(weights >> shift)
	}

	return lms, nil
}
