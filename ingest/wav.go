package ingest

import (
	"fmt"
	"math"

	"github.com/yurikit/qmedia/endian"
	"github.com/yurikit/qmedia/errs"
	"github.com/yurikit/qmedia/qoa"
)

const (
	wavMagicRIFF = 'R' | 'I'<<8 | 'F'<<16 | 'F'<<24
	wavMagicWAVE = 'W' | 'A'<<8 | 'V'<<16 | 'E'<<24
	wavMagicFmt  = 'f' | 'm'<<8 | 't'<<16 | ' '<<24
	wavMagicData = 'd' | 'a'<<8 | 't'<<16 | 'a'<<24

	wavFormatPCM    = 1
	wavBitDepth     = 16
	wavRIFFHeader   = 12
	wavChunkHeader  = 8
	wavFmtSize      = 16
	wavFmtSizeExt   = 18
	wavHeaderLength = wavRIFFHeader + wavChunkHeader + wavFmtSize + wavChunkHeader
)

type wavFormat struct {
	format     uint16
	channels   uint16
	sampleRate uint32
	bitDepth   uint16
}

// ReadWAV parses a RIFF/WAVE file holding 16-bit PCM.
//
// Chunks other than "fmt " and "data" are skipped. Reading stops at the first "data" chunk;
// a trailing partial sample frame is dropped.
//
// Returns:
//   - qoa.Audio: interleaved samples, channel count and sample rate
//   - error: errs.ErrNotRIFF, errs.ErrNotWAVE, errs.ErrUnsupportedFormat for non-PCM or
//     malformed fmt chunks, errs.ErrUnsupportedBitDepth, errs.ErrMissingData, or
//     errs.ErrUnexpectedEOF
func ReadWAV(data []byte) (qoa.Audio, error) {
	engine := endian.Archive()

	if len(data) < wavRIFFHeader {
		return qoa.Audio{}, errs.ErrUnexpectedEOF
	}
	if engine.Uint32(data[0:4]) != wavMagicRIFF {
		return qoa.Audio{}, errs.ErrNotRIFF
	}
	if engine.Uint32(data[8:12]) != wavMagicWAVE {
		return qoa.Audio{}, errs.ErrNotWAVE
	}

	var (
		fmtChunk wavFormat
		pcm      []byte
	)

	pos := wavRIFFHeader
	for pos+wavChunkHeader <= len(data) {
		chunkType := engine.Uint32(data[pos:])
		chunkSize := engine.Uint32(data[pos+4:])
		pos += wavChunkHeader

		if uint64(chunkSize) > uint64(len(data)-pos) {
			return qoa.Audio{}, errs.ErrUnexpectedEOF
		}
		chunk := data[pos : pos+int(chunkSize)]

		if chunkType == wavMagicData {
			pcm = chunk
			break
		}
		if chunkType == wavMagicFmt {
			f, err := parseWAVFormat(chunk)
			if err != nil {
				return qoa.Audio{}, err
			}
			fmtChunk = f
		}

		// chunks are word aligned
		pos += len(chunk)
		if len(chunk)&1 == 1 && pos < len(data) {
			pos++
		}
	}

	if fmtChunk.format != wavFormatPCM {
		return qoa.Audio{}, fmt.Errorf("format tag %d: %w", fmtChunk.format, errs.ErrUnsupportedFormat)
	}
	if len(pcm) == 0 {
		return qoa.Audio{}, errs.ErrMissingData
	}
	if fmtChunk.bitDepth != wavBitDepth {
		return qoa.Audio{}, fmt.Errorf("%d bits: %w", fmtChunk.bitDepth, errs.ErrUnsupportedBitDepth)
	}
	if fmtChunk.channels == 0 {
		return qoa.Audio{}, fmt.Errorf("zero channels: %w", errs.ErrUnsupportedFormat)
	}

	channels := int(fmtChunk.channels)
	frames := len(pcm) / (2 * channels)
	samples := make([]int16, frames*channels)
	for i := range samples {
		samples[i] = int16(engine.Uint16(pcm[2*i:]))
	}

	return qoa.Audio{
		Samples:    samples,
		Channels:   channels,
		SampleRate: int(fmtChunk.sampleRate),
	}, nil
}

func parseWAVFormat(b []byte) (wavFormat, error) {
	if len(b) != wavFmtSize && len(b) != wavFmtSizeExt {
		return wavFormat{}, fmt.Errorf("fmt chunk of %d bytes: %w", len(b), errs.ErrUnsupportedFormat)
	}

	engine := endian.Archive()
	f := wavFormat{
		format:     engine.Uint16(b[0:2]),
		channels:   engine.Uint16(b[2:4]),
		sampleRate: engine.Uint32(b[4:8]),
		// byte rate and block align are derived values
		bitDepth: engine.Uint16(b[14:16]),
	}

	if len(b) == wavFmtSizeExt && engine.Uint16(b[16:18]) != 0 {
		return wavFormat{}, fmt.Errorf("fmt extension: %w", errs.ErrUnsupportedFormat)
	}

	return f, nil
}

// WriteWAV serializes a as a canonical 44-byte-header PCM WAVE file.
//
// Returns:
//   - []byte: the file
//   - error: errs.ErrInvalidArguments if a has no channels, more than 32767 channels, a
//     sample rate outside uint32, or a sample count that is not a multiple of the channels,
//     errs.ErrMemory if the data exceeds the 4 GiB RIFF limit
func WriteWAV(a qoa.Audio) ([]byte, error) {
	if a.Channels <= 0 || a.Channels > math.MaxUint16/2 || a.SampleRate <= 0 ||
		uint64(a.SampleRate) > math.MaxUint32 || len(a.Samples)%a.Channels != 0 {
		return nil, fmt.Errorf("%d channels at %d Hz: %w", a.Channels, a.SampleRate, errs.ErrInvalidArguments)
	}

	dataSize := uint64(len(a.Samples)) * 2
	if dataSize > math.MaxUint32-wavHeaderLength {
		return nil, fmt.Errorf("%d bytes of samples: %w", dataSize, errs.ErrMemory)
	}

	engine := endian.Archive()
	blockAlign := uint16(a.Channels * 2)

	b := make([]byte, 0, wavHeaderLength+int(dataSize))
	b = engine.AppendUint32(b, wavMagicRIFF)
	b = engine.AppendUint32(b, uint32(wavHeaderLength-8+dataSize))
	b = engine.AppendUint32(b, wavMagicWAVE)

	b = engine.AppendUint32(b, wavMagicFmt)
	b = engine.AppendUint32(b, wavFmtSize)
	b = engine.AppendUint16(b, wavFormatPCM)
	b = engine.AppendUint16(b, uint16(a.Channels))
	b = engine.AppendUint32(b, uint32(a.SampleRate))
	b = engine.AppendUint32(b, uint32(a.SampleRate)*uint32(blockAlign))
	b = engine.AppendUint16(b, blockAlign)
	b = engine.AppendUint16(b, wavBitDepth)

	b = engine.AppendUint32(b, wavMagicData)
	b = engine.AppendUint32(b, uint32(dataSize))
	for _, s := range a.Samples {
		b = engine.AppendUint16(b, uint16(s))
	}

	return b, nil
}
