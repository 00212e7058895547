// Package qmedia provides lossy audio (QOA) and lossless image (QOI) codecs and the YURI
// asset archive that stores them.
//
// # Core Features
//
//   - QOA: 16-bit PCM at 3.2 bits per sample, fixed 5120-sample frames, up to 8 channels
//   - QOI: RGBA images with run, index, diff and luma opcodes, bit-exact with the reference
//   - YURI archives: manifest with CRC-32 checksums and per-entry compression (Zstd, S2, LZ4)
//   - An asset registry that decodes on worker goroutines and collects unused assets
//
// # Basic Usage
//
// Encoding and decoding audio:
//
//	audio := qmedia.Audio{Samples: pcm, Channels: 2, SampleRate: 44100}
//	data, _ := qmedia.EncodeAudio(audio)
//	decoded, _ := qmedia.DecodeAudio(data)
//
// Encoding and decoding images:
//
//	data, _ := qmedia.EncodeImage(qoi.FromImage(src))
//	img, _ := qmedia.DecodeImage(data)
//	_ = png.Encode(w, img.NRGBA())
//
// # Package Structure
//
// The wrappers here cover the common cases. The qoa, qoi, archive, asset and packager
// packages expose options for the rest.
package qmedia

import (
	"github.com/yurikit/qmedia/format"
	"github.com/yurikit/qmedia/internal/hash"
	"github.com/yurikit/qmedia/qoa"
	"github.com/yurikit/qmedia/qoi"
)

type (
	// Audio is interleaved 16-bit PCM.
	Audio = qoa.Audio
	// Image is an RGBA image with 0xRRGGBBAA pixels.
	Image = qoi.Image
)

// EncodeAudio encodes interleaved PCM as a QOA file with the default frame layout.
//
// Returns an error for empty input, a sample count that is not a multiple of the channel
// count, an invalid sample rate or more than 8 channels.
func EncodeAudio(a Audio) ([]byte, error) {
	return qoa.Encode(a)
}

// DecodeAudio decodes a complete QOA file.
//
// Parameters:
//   - data: the whole file
//   - maxSamples: upper bound on interleaved samples, 0 for no limit
//
// Example:
//
//	audio, err := qmedia.DecodeAudio(data, 2*10*44100)
//	if errors.Is(err, errs.ErrMemory) {
//	    // more than ten seconds of 44.1kHz stereo
//	}
func DecodeAudio(data []byte, maxSamples uint64) (Audio, error) {
	return qoa.Decode(data, qoa.WithMaxSamples(maxSamples))
}

// EncodeImage encodes img as a QOI file tagged with 4 channels and sRGB.
func EncodeImage(img Image) ([]byte, error) {
	return qoi.Encode(img)
}

// DecodeImage decodes a complete QOI file.
//
// Parameters:
//   - data: the whole file
//   - maxPixels: upper bound on width*height, 0 for no limit
func DecodeImage(data []byte, maxPixels uint64) (Image, error) {
	return qoi.Decode(data, qoi.WithMaxPixels(maxPixels))
}

// AssetID returns the 64-bit xxHash identifier the archive reader and asset registry use
// to look up an asset by type and name.
func AssetID(t format.AssetType, name string) uint64 {
	return hash.AssetID(t, name)
}
