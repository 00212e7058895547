// Package compress provides the payload codecs used by YURI archives.
//
// Every archive entry may be stored compressed. The entry flag records which codec was
// used, so readers select the matching Decompressor per entry:
//   - None: stored as-is (default for QOA and QOI blobs, which are already compact)
//   - Zstd: best ratio, used for text-like assets such as scenes and scripts
//   - S2: balanced ratio and speed
//   - LZ4: fastest decompression, size-prefixed single block
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	stored, err := codec.Compress(payload)
//
// GetCodec returns shared instances that are safe for concurrent use. CreateCodec builds a
// fresh one and reports unknown types with the caller's description of the target.
//
// # Build tags
//
// Zstd uses github.com/klauspost/compress by default. Building with -tags gozstd on a cgo
// toolchain switches to github.com/valyala/gozstd. Both read and write standard zstd frames.
//
// Decompressors refuse to expand a payload beyond MaxDecodedSize.
package compress
