package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4SizePrefix is the length of the little-endian uncompressed size written before each
// LZ4 block, since raw blocks do not record it.
const lz4SizePrefix = 4

// lz4StoredBit marks a payload the block compressor could not shrink; the bytes after the
// prefix are the original data.
const lz4StoredBit = 1 << 31

var errLZ4Size = errors.New("lz4 payload size mismatch")

// lz4CompressorPool pools lz4.Compressor instances, which keep a reusable hash table.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor compresses archive payloads as a single LZ4 block prefixed with the
// uncompressed size.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data using LZ4 compression.
//
// Returns:
//   - []byte: size prefix and compressed block (nil if input is empty)
//   - error: compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) > MaxDecodedSize {
		return nil, fmt.Errorf("lz4 payload of %d bytes exceeds %d", len(data), MaxDecodedSize)
	}

	dst := make([]byte, lz4SizePrefix+lz4.CompressBlockBound(len(data)))
	binary.LittleEndian.PutUint32(dst, uint32(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[lz4SizePrefix:])
	if err != nil {
		return nil, err
	}
	if n == 0 {
		binary.LittleEndian.PutUint32(dst, uint32(len(data))|lz4StoredBit)
		n = copy(dst[lz4SizePrefix:], data)
	}

	return dst[:lz4SizePrefix+n], nil
}

// Decompress decompresses the input data using LZ4 decompression.
//
// Returns:
//   - []byte: decompressed data (nil if input is empty)
//   - error: errLZ4Size if the block does not expand to the recorded size, or a
//     decompression error
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) < lz4SizePrefix {
		return nil, errLZ4Size
	}

	size := binary.LittleEndian.Uint32(data)
	if size&lz4StoredBit != 0 {
		size &^= lz4StoredBit
		if int(size) != len(data)-lz4SizePrefix {
			return nil, errLZ4Size
		}

		return append([]byte(nil), data[lz4SizePrefix:]...), nil
	}
	if size > MaxDecodedSize {
		return nil, fmt.Errorf("lz4 payload of %d bytes exceeds %d", size, MaxDecodedSize)
	}

	buf := make([]byte, size)
	n, err := lz4.UncompressBlock(data[lz4SizePrefix:], buf)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if n != int(size) {
		return nil, errLZ4Size
	}

	return buf, nil
}
