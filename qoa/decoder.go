package qoa

import (
	"fmt"

	"github.com/yurikit/qmedia/encoding"
	"github.com/yurikit/qmedia/endian"
	"github.com/yurikit/qmedia/errs"
	"github.com/yurikit/qmedia/internal/options"
	"github.com/yurikit/qmedia/section"
)

// Decode decodes a complete QOA file.
//
// Parameters:
//   - data: the whole file
//   - opts: decoder options such as WithMaxSamples
//
// Returns:
//   - Audio: interleaved samples, channel count and sample rate
//   - error: errs.ErrUnexpectedEOF for short, truncated or oversized input,
//     errs.ErrNotQOA, errs.ErrUnsupportedStreaming, errs.ErrTooManyChannels,
//     errs.ErrHeaderMismatch, errs.ErrMalformedFrame, errs.ErrMemory
func Decode(data []byte, opts ...DecoderOption) (Audio, error) {
	cfg := &decoderConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return Audio{}, err
	}

	stream, err := parseStream(data)
	if err != nil {
		return Audio{}, err
	}

	total := uint64(stream.samples) * uint64(stream.channels)
	if cfg.maxSamples > 0 && total > cfg.maxSamples {
		return Audio{}, fmt.Errorf("%d samples exceed limit %d: %w", total, cfg.maxSamples, errs.ErrMemory)
	}

	// Each 8-byte slice holds at most 20 samples, so a declared length the input cannot
	// possibly cover is rejected before allocating for it.
	if total > uint64(len(data)-section.QOAFileHeaderSize)/section.QOASliceSize*encoding.SliceLen {
		return Audio{}, errs.ErrUnexpectedEOF
	}

	d := decoder{
		data:     data,
		offset:   section.QOAFileHeaderSize,
		channels: stream.channels,
		rate:     stream.rate,
		out:      make([]int16, total),
	}
	if err := d.decodeFrames(); err != nil {
		return Audio{}, err
	}

	return Audio{
		Samples:    d.out,
		Channels:   stream.channels,
		SampleRate: int(stream.rate),
	}, nil
}

type streamInfo struct {
	samples  uint32
	channels int
	rate     uint32
}

// parseStream validates the file header and peeks at the first frame header.
func parseStream(data []byte) (streamInfo, error) {
	if len(data) < section.QOAMinFileSize {
		return streamInfo{}, errs.ErrUnexpectedEOF
	}

	fh, err := section.ParseQOAFileHeader(data)
	if err != nil {
		return streamInfo{}, err
	}
	if fh.Samples == 0 {
		return streamInfo{}, errs.ErrUnsupportedStreaming
	}

	first := section.UnpackQOAFrameHeader(endian.Codec().Uint64(data[section.QOAFileHeaderSize:]))
	switch {
	case first.Channels > section.QOAMaxChannels:
		return streamInfo{}, fmt.Errorf("%d channels: %w", first.Channels, errs.ErrTooManyChannels)
	case first.Channels == 0:
		return streamInfo{}, fmt.Errorf("zero channels: %w", errs.ErrMalformedFrame)
	}

	return streamInfo{
		samples:  fh.Samples,
		channels: int(first.Channels),
		rate:     first.SampleRate,
	}, nil
}

type decoder struct {
	data     []byte
	offset   int
	channels int
	rate     uint32

	out     []int16
	written int
	lms     [section.QOAMaxChannels]encoding.LMS
}

func (d *decoder) decodeFrames() error {
	for d.offset < len(d.data) && d.written < len(d.out) {
		if len(d.data)-d.offset < section.QOAFrameHeaderSize {
			break
		}
		if err := d.decodeFrame(); err != nil {
			return err
		}
	}

	if d.written != len(d.out) || d.offset != len(d.data) {
		return errs.ErrUnexpectedEOF
	}

	return nil
}

func (d *decoder) decodeFrame() error {
	engine := endian.Codec()
	frameStart := d.offset
	header := section.UnpackQOAFrameHeader(engine.Uint64(d.data[frameStart:]))

	if header.Channels > section.QOAMaxChannels {
		return fmt.Errorf("frame at %d: %d channels: %w", frameStart, header.Channels, errs.ErrTooManyChannels)
	}
	if int(header.Channels) != d.channels || header.SampleRate != d.rate {
		return fmt.Errorf("frame at %d: %d ch %d Hz, stream %d ch %d Hz: %w",
			frameStart, header.Channels, header.SampleRate, d.channels, d.rate, errs.ErrHeaderMismatch)
	}

	payload := header.PayloadSize()
	frameSamples := int(header.Samples)
	slices := (frameSamples + encoding.SliceLen - 1) / encoding.SliceLen
	if payload < 0 || frameSamples*d.channels > header.Capacity() || slices*d.channels*section.QOASliceSize > payload {
		return fmt.Errorf("frame at %d: %d samples in %d bytes: %w", frameStart, frameSamples, header.Size, errs.ErrMalformedFrame)
	}
	if int(header.Size) > len(d.data)-frameStart {
		return errs.ErrUnexpectedEOF
	}
	if frameSamples*d.channels > len(d.out)-d.written {
		return errs.ErrUnexpectedEOF
	}

	pos := frameStart + section.QOAFrameHeaderSize
	for c := range d.channels {
		lms, err := section.ParseLMS(d.data[pos:])
		if err != nil {
			return err
		}
		d.lms[c] = lms
		pos += section.QOALMSSize
	}

	base := d.written
	for s := range slices {
		sliceStart := s * encoding.SliceLen
		n := min(encoding.SliceLen, frameSamples-sliceStart)
		for c := range d.channels {
			word := engine.Uint64(d.data[pos:])
			pos += section.QOASliceSize

			dst := d.out[base+sliceStart*d.channels+c:]
			encoding.DecodeSlice(&d.lms[c], word, n, dst, d.channels)
		}
	}

	d.written += frameSamples * d.channels
	d.offset = frameStart + int(header.Size)

	return nil
}
