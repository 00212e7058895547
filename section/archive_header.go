package section

import (
	"fmt"

	"github.com/yurikit/qmedia/endian"
	"github.com/yurikit/qmedia/errs"
	"github.com/yurikit/qmedia/format"
)

// ArchiveHeader is the 8-byte YURI header.
type ArchiveHeader struct {
	Count uint32 // number of manifest entries
}

// Bytes serializes the header, magic included.
func (h ArchiveHeader) Bytes() []byte {
	b := make([]byte, 0, ArchiveHeaderSize)
	b = endian.Archive().AppendUint32(b, ArchiveMagic)

	return endian.Archive().AppendUint32(b, h.Count)
}

// ParseArchiveHeader parses the YURI header at the start of data.
//
// Returns:
//   - ArchiveHeader: parsed header
//   - error: ErrUnexpectedEOF, ErrNotArchive on bad magic, ErrArchiveLimit if the entry count
//     exceeds ArchiveListLimit
func ParseArchiveHeader(data []byte) (ArchiveHeader, error) {
	if len(data) < ArchiveHeaderSize {
		return ArchiveHeader{}, errs.ErrUnexpectedEOF
	}

	engine := endian.Archive()
	if engine.Uint32(data[0:4]) != ArchiveMagic {
		return ArchiveHeader{}, errs.ErrNotArchive
	}

	h := ArchiveHeader{Count: engine.Uint32(data[4:8])}
	if h.Count > ArchiveListLimit {
		return ArchiveHeader{}, fmt.Errorf("%d entries: %w", h.Count, errs.ErrArchiveLimit)
	}

	return h, nil
}

// ManifestEntry describes one blob of the archive.
type ManifestEntry struct {
	Name     string
	Size     uint32 // stored (possibly compressed) byte length
	Checksum uint32 // crc32 (IEEE) of the stored bytes
	Type     format.AssetType
	Flag     EntryFlag
}

// EncodedSize returns the number of manifest bytes the entry occupies.
func (e ManifestEntry) EncodedSize() int {
	return ManifestEntryFixedSize + len(e.Name)
}

// Append appends the serialized entry to dst.
func (e ManifestEntry) Append(dst []byte) []byte {
	engine := endian.Archive()
	dst = append(dst, byte(e.Type), byte(e.Flag))
	dst = engine.AppendUint32(dst, e.Size)
	dst = engine.AppendUint32(dst, e.Checksum)
	dst = engine.AppendUint16(dst, uint16(len(e.Name)))

	return append(dst, e.Name...)
}

// Validate checks the type, flag and name of the entry.
func (e ManifestEntry) Validate() error {
	if !e.Type.Valid() {
		return fmt.Errorf("type %d: %w", e.Type, errs.ErrUnknownAssetType)
	}
	if err := e.Flag.Validate(); err != nil {
		return fmt.Errorf("%q: flag 0x%02x: %w", e.Name, uint8(e.Flag), err)
	}
	if len(e.Name) == 0 || len(e.Name) > ArchiveNameLimit {
		return fmt.Errorf("name length %d: %w", len(e.Name), errs.ErrInvalidEntryName)
	}

	return nil
}

// ParseManifestEntry parses one manifest entry at the start of data.
//
// Returns:
//   - ManifestEntry: parsed entry
//   - int: number of bytes consumed
//   - error: ErrUnexpectedEOF if the fixed part or the name is cut short, ErrUnknownAssetType
//     for types outside 1..8
func ParseManifestEntry(data []byte) (ManifestEntry, int, error) {
	if len(data) < ManifestEntryFixedSize {
		return ManifestEntry{}, 0, errs.ErrUnexpectedEOF
	}

	engine := endian.Archive()
	e := ManifestEntry{
		Type:     format.AssetType(data[0]),
		Flag:     EntryFlag(data[1]),
		Size:     engine.Uint32(data[2:6]),
		Checksum: engine.Uint32(data[6:10]),
	}
	nameLen := int(engine.Uint16(data[10:12]))

	if !e.Type.Valid() {
		return ManifestEntry{}, 0, fmt.Errorf("type %d: %w", e.Type, errs.ErrUnknownAssetType)
	}

	end := ManifestEntryFixedSize + nameLen
	if len(data) < end {
		return ManifestEntry{}, 0, errs.ErrUnexpectedEOF
	}
	e.Name = string(data[ManifestEntryFixedSize:end])

	return e, end, nil
}
