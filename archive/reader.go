package archive

import (
	"errors"
	"fmt"
	"hash/crc32"
	"iter"
	"os"

	"github.com/yurikit/qmedia/compress"
	"github.com/yurikit/qmedia/errs"
	"github.com/yurikit/qmedia/format"
	"github.com/yurikit/qmedia/internal/hash"
	"github.com/yurikit/qmedia/section"
)

// Header is a parsed manifest entry together with the location of its payload.
type Header struct {
	section.ManifestEntry
	ID     uint64 // hash.AssetID of type and name
	Offset int    // payload offset from the start of the archive
}

// Reader provides access to the entries of a parsed archive.
type Reader struct {
	data    []byte
	headers []Header
	index   map[uint64]int
}

// NewReader parses the header and manifest of an archive held in memory.
//
// The Reader keeps data and returns sub-slices of it from Read; callers must not modify data
// afterwards. Bytes after the last payload are ignored.
//
// Returns:
//   - *Reader: the parsed archive
//   - error: errs.ErrNotArchive, errs.ErrArchiveLimit, errs.ErrUnknownAssetType,
//     errs.ErrInvalidEntryFlags, errs.ErrInvalidEntryName, or errs.ErrUnexpectedEOF when the
//     manifest or the payload region is cut short
func NewReader(data []byte) (*Reader, error) {
	h, err := section.ParseArchiveHeader(data)
	if err != nil {
		return nil, err
	}

	r := &Reader{
		data:    data,
		headers: make([]Header, 0, h.Count),
		index:   make(map[uint64]int, h.Count),
	}

	pos := section.ArchiveHeaderSize
	for i := range int(h.Count) {
		e, n, err := section.ParseManifestEntry(data[pos:])
		if err != nil {
			return nil, fmt.Errorf("manifest entry %d: %w", i, err)
		}
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("manifest entry %d: %w", i, err)
		}
		pos += n

		r.headers = append(r.headers, Header{
			ManifestEntry: e,
			ID:            hash.AssetID(e.Type, e.Name),
		})
	}

	// payloads follow the manifest in entry order
	offset := uint64(pos)
	for i := range r.headers {
		r.headers[i].Offset = int(offset)
		offset += uint64(r.headers[i].Size)
		if offset > uint64(len(data)) {
			return nil, fmt.Errorf("payload of %q: %w", r.headers[i].Name, errs.ErrUnexpectedEOF)
		}

		// first entry wins on duplicate names
		if _, ok := r.index[r.headers[i].ID]; !ok {
			r.index[r.headers[i].ID] = i
		}
	}

	return r, nil
}

// Open reads and parses the archive at path.
func Open(path string) (*Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	r, err := NewReader(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return r, nil
}

// Len returns the number of entries.
func (r *Reader) Len() int {
	return len(r.headers)
}

// Entries returns a copy of all entry headers in manifest order.
func (r *Reader) Entries() []Header {
	out := make([]Header, len(r.headers))
	copy(out, r.headers)

	return out
}

// All iterates over the entry headers in manifest order.
func (r *Reader) All() iter.Seq2[int, Header] {
	return func(yield func(int, Header) bool) {
		for i, h := range r.headers {
			if !yield(i, h) {
				return
			}
		}
	}
}

// Lookup finds an entry by type and name.
func (r *Reader) Lookup(t format.AssetType, name string) (Header, bool) {
	i, ok := r.index[hash.AssetID(t, name)]
	if !ok {
		return Header{}, false
	}

	// guard against a hash collision between different names
	h := r.headers[i]
	if h.Type != t || h.Name != name {
		return Header{}, false
	}

	return h, true
}

// Read returns the stored bytes of an entry after verifying its checksum.
//
// The result aliases the archive data and must not be modified.
//
// Returns:
//   - []byte: the stored, possibly compressed, payload
//   - error: errs.ErrChecksumMismatch, or errs.ErrEntryNotFound if h does not describe a
//     payload inside this archive
func (r *Reader) Read(h Header) ([]byte, error) {
	end := uint64(h.Offset) + uint64(h.Size)
	if h.Offset < 0 || end > uint64(len(r.data)) {
		return nil, fmt.Errorf("%q: %w", h.Name, errs.ErrEntryNotFound)
	}

	stored := r.data[h.Offset:end:end]
	if sum := crc32.ChecksumIEEE(stored); sum != h.Checksum {
		return nil, fmt.Errorf("%s %q: stored 0x%08x, computed 0x%08x: %w",
			h.Type, h.Name, h.Checksum, sum, errs.ErrChecksumMismatch)
	}

	return stored, nil
}

// Open returns the decompressed payload of an entry.
//
// Uncompressed payloads alias the archive data and must not be modified.
func (r *Reader) Open(h Header) ([]byte, error) {
	stored, err := r.Read(h)
	if err != nil {
		return nil, err
	}
	if !h.Flag.IsCompressed() {
		return stored, nil
	}

	codec, err := compress.GetCodec(h.Flag.Compression())
	if err != nil {
		return nil, fmt.Errorf("%q: %w", h.Name, errs.ErrInvalidEntryFlags)
	}

	payload, err := codec.Decompress(stored)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", h.Type, h.Name, err)
	}

	return payload, nil
}

// Verify checks the checksum of every entry and that every compressed payload decompresses.
// All failures are reported, joined.
func (r *Reader) Verify() error {
	var failures []error
	for _, h := range r.headers {
		if _, err := r.Open(h); err != nil {
			failures = append(failures, err)
		}
	}

	return errors.Join(failures...)
}
