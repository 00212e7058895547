package compress

// ZstdCompressor compresses archive payloads with Zstandard.
//
// It gives the best ratio of the built-in codecs and suits text-like assets (scenes,
// scripts, models) that are read once at load time. QOA and QOI blobs are already
// entropy-dense and rarely shrink further.
//
// Two implementations exist: the pure Go klauspost/compress encoder (default) and the cgo
// binding to the reference library, selected with the gozstd build tag. Both produce
// standard zstd frames and can read each other's output.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
