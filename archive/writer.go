package archive

import (
	"fmt"
	"hash/crc32"
	"io"
	"math"
	"os"

	"github.com/yurikit/qmedia/compress"
	"github.com/yurikit/qmedia/errs"
	"github.com/yurikit/qmedia/format"
	"github.com/yurikit/qmedia/internal/hash"
	"github.com/yurikit/qmedia/internal/options"
	"github.com/yurikit/qmedia/internal/pool"
	"github.com/yurikit/qmedia/section"
)

// Entry is one asset to be added to an archive.
type Entry struct {
	Type format.AssetType
	Name string
	Data []byte
	// Compression overrides the writer default for this entry when non-zero.
	Compression format.CompressionType
}

// Writer assembles an archive in memory.
//
// Entries are stored in the order they are added. A Writer is not safe for concurrent use.
type Writer struct {
	cfg      *writerConfig
	entries  []section.ManifestEntry
	payloads [][]byte
	ids      map[uint64]struct{}
}

// NewWriter creates an empty archive writer.
//
// Returns:
//   - *Writer: the writer
//   - error: errs.ErrInvalidArguments for an unknown compression option
func NewWriter(opts ...WriterOption) (*Writer, error) {
	cfg := newWriterConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Writer{
		cfg: cfg,
		ids: make(map[uint64]struct{}),
	}, nil
}

// Add compresses and appends one entry.
//
// Payloads that do not shrink under the selected codec are stored uncompressed. The checksum
// is computed over the stored bytes.
//
// Returns:
//   - error: errs.ErrArchiveLimit when the archive already holds ArchiveListLimit entries or
//     the payload exceeds 4 GiB, errs.ErrInvalidEntryName for empty, oversized or duplicate
//     names, errs.ErrUnknownAssetType for types outside 1..8, errs.ErrInvalidArguments for
//     an unknown compression
func (w *Writer) Add(e Entry) error {
	if len(w.entries) >= section.ArchiveListLimit {
		return fmt.Errorf("%q: %w", e.Name, errs.ErrArchiveLimit)
	}

	id := hash.AssetID(e.Type, e.Name)
	if _, ok := w.ids[id]; ok {
		return fmt.Errorf("duplicate %s %q: %w", e.Type, e.Name, errs.ErrInvalidEntryName)
	}

	c := e.Compression
	if c == 0 {
		c = w.cfg.compressionFor(e.Type)
	}
	if err := checkCompression(c); err != nil {
		return err
	}

	stored, c, err := storePayload(e.Data, c)
	if err != nil {
		return fmt.Errorf("%q: %w", e.Name, err)
	}
	if uint64(len(stored)) > math.MaxUint32 {
		return fmt.Errorf("%q: payload of %d bytes: %w", e.Name, len(stored), errs.ErrArchiveLimit)
	}

	me := section.ManifestEntry{
		Name:     e.Name,
		Size:     uint32(len(stored)),
		Checksum: crc32.ChecksumIEEE(stored),
		Type:     e.Type,
		Flag:     section.NewEntryFlag(c),
	}
	if err := me.Validate(); err != nil {
		return err
	}

	w.entries = append(w.entries, me)
	w.payloads = append(w.payloads, stored)
	w.ids[id] = struct{}{}

	return nil
}

func storePayload(data []byte, c format.CompressionType) ([]byte, format.CompressionType, error) {
	if c == format.CompressionNone || len(data) == 0 {
		return data, format.CompressionNone, nil
	}

	codec, err := compress.GetCodec(c)
	if err != nil {
		return nil, 0, err
	}

	compressed, err := codec.Compress(data)
	if err != nil {
		return nil, 0, err
	}
	if len(compressed) >= len(data) {
		return data, format.CompressionNone, nil
	}

	return compressed, c, nil
}

// Len returns the number of entries added so far.
func (w *Writer) Len() int {
	return len(w.entries)
}

// Entries returns a copy of the manifest built so far.
func (w *Writer) Entries() []section.ManifestEntry {
	out := make([]section.ManifestEntry, len(w.entries))
	copy(out, w.entries)

	return out
}

// Size returns the encoded archive size in bytes.
func (w *Writer) Size() int {
	size := section.ArchiveHeaderSize
	for i, e := range w.entries {
		size += e.EncodedSize() + len(w.payloads[i])
	}

	return size
}

func (w *Writer) appendTo(dst []byte) []byte {
	dst = append(dst, section.ArchiveHeader{Count: uint32(len(w.entries))}.Bytes()...)
	for _, e := range w.entries {
		dst = e.Append(dst)
	}
	for _, p := range w.payloads {
		dst = append(dst, p...)
	}

	return dst
}

// Bytes returns the encoded archive.
func (w *Writer) Bytes() []byte {
	return w.appendTo(make([]byte, 0, w.Size()))
}

// WriteTo writes the encoded archive to dst.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	bb := pool.GetArchiveBuffer()
	defer pool.PutArchiveBuffer(bb)

	bb.Grow(w.Size())
	bb.B = w.appendTo(bb.B)

	return bb.WriteTo(dst)
}

// WriteFile writes the encoded archive to path, replacing any existing file.
func (w *Writer) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := w.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
