package section

// QOA audio layout. All fields are big-endian.
const (
	QOAMagic           = 0x716f6166 // "qoaf"
	QOAFileHeaderSize  = 8          // magic + total samples per channel
	QOAFrameHeaderSize = 8          // one packed 64-bit word
	QOALMSSize         = 16         // history and weights, 4x16 bits each
	QOASliceSize       = 8          // one packed 64-bit word
	QOAMinFileSize     = QOAFileHeaderSize + QOAFrameHeaderSize

	QOAMaxChannels     = 8
	QOASlicesPerFrame  = 256
	QOAFrameLen        = QOASlicesPerFrame * 20 // samples per channel in a full frame
	QOAMaxSampleRate   = 0xFFFFFF
	QOAMaxFrameSamples = 0xFFFF
)

// QOI image layout. All fields are big-endian.
const (
	QOIMagic        = 0x716f6966 // "qoif"
	QOIHeaderSize   = 14
	QOIFooterSize   = 8
	QOIMinSize      = QOIHeaderSize + QOIFooterSize
	QOIMaxDimension = 16384
)

// QOIFooter is the end marker appended to every image stream.
var QOIFooter = [QOIFooterSize]byte{0, 0, 0, 0, 0, 0, 0, 1}

// YURI archive layout. All fields are little-endian.
const (
	ArchiveMagic              = 'Y' | 'U'<<8 | 'R'<<16 | 'I'<<24
	ArchiveHeaderSize         = 8  // magic + entry count
	ManifestEntryFixedSize    = 12 // type, flag, size, checksum, name length
	ArchiveListLimit          = 256
	ArchiveNameLimit          = 1024
	ArchiveMaxMountedArchives = 32
)
