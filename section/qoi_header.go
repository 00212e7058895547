package section

import (
	"github.com/yurikit/qmedia/endian"
	"github.com/yurikit/qmedia/errs"
	"github.com/yurikit/qmedia/format"
)

// QOIHeader is the 14-byte image header.
type QOIHeader struct {
	Width      uint32
	Height     uint32
	Channels   uint8
	Colorspace uint8
}

// Bytes serializes the header, magic included.
func (h QOIHeader) Bytes() []byte {
	return h.Append(make([]byte, 0, QOIHeaderSize))
}

// Append appends the serialized header to dst.
func (h QOIHeader) Append(dst []byte) []byte {
	engine := endian.Codec()
	dst = engine.AppendUint32(dst, QOIMagic)
	dst = engine.AppendUint32(dst, h.Width)
	dst = engine.AppendUint32(dst, h.Height)

	return append(dst, h.Channels, h.Colorspace)
}

// Validate checks the fields a decoder relies on.
//
// Returns:
//   - error: ErrInvalidHeader for dimensions outside 1..QOIMaxDimension,
//     ErrInvalidColorspace for a channel tag other than 3 or 4 or a colorspace tag above 1
func (h QOIHeader) Validate() error {
	if h.Width == 0 || h.Width > QOIMaxDimension || h.Height == 0 || h.Height > QOIMaxDimension {
		return errs.ErrInvalidHeader
	}
	if h.Channels != format.ChannelsRGB && h.Channels != format.ChannelsRGBA {
		return errs.ErrInvalidColorspace
	}
	if h.Colorspace > format.ColorspaceLinear {
		return errs.ErrInvalidColorspace
	}

	return nil
}

// Pixels returns Width*Height.
func (h QOIHeader) Pixels() uint64 {
	return uint64(h.Width) * uint64(h.Height)
}

// ParseQOIHeader parses the image header at the start of data.
//
// Only the magic is checked here; call Validate for the remaining fields.
//
// Returns:
//   - QOIHeader: parsed header
//   - error: ErrUnexpectedEOF if data is shorter than the header, ErrNotQOI on bad magic
func ParseQOIHeader(data []byte) (QOIHeader, error) {
	if len(data) < QOIHeaderSize {
		return QOIHeader{}, errs.ErrUnexpectedEOF
	}

	engine := endian.Codec()
	if engine.Uint32(data[0:4]) != QOIMagic {
		return QOIHeader{}, errs.ErrNotQOI
	}

	return QOIHeader{
		Width:      engine.Uint32(data[4:8]),
		Height:     engine.Uint32(data[8:12]),
		Channels:   data[12],
		Colorspace: data[13],
	}, nil
}
