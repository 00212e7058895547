package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yurikit/qmedia/errs"
	"github.com/yurikit/qmedia/format"
)

func TestArchiveHeader(t *testing.T) {
	b := ArchiveHeader{Count: 3}.Bytes()
	require.Equal(t, []byte{'Y', 'U', 'R', 'I', 3, 0, 0, 0}, b)

	h, err := ParseArchiveHeader(b)
	require.NoError(t, err)
	require.Equal(t, uint32(3), h.Count)
}

func TestParseArchiveHeaderErrors(t *testing.T) {
	_, err := ParseArchiveHeader([]byte("YURI"))
	require.ErrorIs(t, err, errs.ErrUnexpectedEOF)

	_, err = ParseArchiveHeader([]byte{'Y', 'U', 'R', 'X', 0, 0, 0, 0})
	require.ErrorIs(t, err, errs.ErrNotArchive)

	_, err = ParseArchiveHeader(ArchiveHeader{Count: ArchiveListLimit + 1}.Bytes())
	require.ErrorIs(t, err, errs.ErrArchiveLimit)
}

func TestManifestEntry(t *testing.T) {
	e := ManifestEntry{
		Name:     "/images/logo",
		Size:     0x0102,
		Checksum: 0xAABBCCDD,
		Type:     format.AssetImage,
		Flag:     NewEntryFlag(format.CompressionLZ4),
	}
	require.NoError(t, e.Validate())

	b := e.Append(nil)
	require.Len(t, b, e.EncodedSize())
	require.Equal(t, []byte{0x04, 0x84, 0x02, 0x01, 0x00, 0x00, 0xDD, 0xCC, 0xBB, 0xAA, 12, 0}, b[:12])

	parsed, n, err := ParseManifestEntry(append(b, 0xEE))
	require.NoError(t, err)
	require.Equal(t, len(b), n)
	require.Equal(t, e, parsed)
}

func TestParseManifestEntryErrors(t *testing.T) {
	e := ManifestEntry{Name: "/a/b", Type: format.AssetScript}
	b := e.Append(nil)

	_, _, err := ParseManifestEntry(b[:11])
	require.ErrorIs(t, err, errs.ErrUnexpectedEOF)

	_, _, err = ParseManifestEntry(b[:len(b)-1])
	require.ErrorIs(t, err, errs.ErrUnexpectedEOF)

	b[0] = 9
	_, _, err = ParseManifestEntry(b)
	require.ErrorIs(t, err, errs.ErrUnknownAssetType)

	b[0] = 0
	_, _, err = ParseManifestEntry(b)
	require.ErrorIs(t, err, errs.ErrUnknownAssetType)
}

func TestManifestEntryValidate(t *testing.T) {
	long := make([]byte, ArchiveNameLimit+1)
	for i := range long {
		long[i] = 'a'
	}

	require.ErrorIs(t, ManifestEntry{Name: "", Type: format.AssetModel}.Validate(), errs.ErrInvalidEntryName)
	require.ErrorIs(t, ManifestEntry{Name: string(long), Type: format.AssetModel}.Validate(), errs.ErrInvalidEntryName)
	require.ErrorIs(t, ManifestEntry{Name: "/x/y", Type: 0}.Validate(), errs.ErrUnknownAssetType)
	require.ErrorIs(t, ManifestEntry{Name: "/x/y", Type: format.AssetModel, Flag: 0x40}.Validate(), errs.ErrInvalidEntryFlags)
}
