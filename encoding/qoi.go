package encoding

// QOI chunk tags. Two-bit tags are matched against the top bits of the op byte
// (TagMask); RGB and RGBA use the full byte and take precedence.
const (
	OpIndex = 0x00 // 00xxxxxx: pixel from the color cache
	OpDiff  = 0x40 // 01drdgdb: small per-channel delta, bias 2
	OpLuma  = 0x80 // 10dddddd: green delta (bias 32), then dr-dg and db-dg (bias 8)
	OpRun   = 0xC0 // 11rrrrrr: repeat previous pixel, run length bias 1
	OpRGB   = 0xFE
	OpRGBA  = 0xFF

	TagMask = 0xC0
)

const (
	// CacheSize is the number of slots in the running color cache.
	CacheSize = 64
	// MaxRun is the longest run a single run chunk can encode. Lengths 63 and 64 would
	// collide with the RGB and RGBA tags.
	MaxRun = 62
)

// Pixel is an RGBA color packed as 0xRRGGBBAA.
type Pixel uint32

// OpaqueBlack is the previous-pixel value both encoder and decoder start from.
const OpaqueBlack Pixel = 0x000000FF

// NewPixel packs four channel values.
func NewPixel(r, g, b, a uint8) Pixel {
	return Pixel(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

func (p Pixel) R() uint8 { return uint8(p >> 24) }
func (p Pixel) G() uint8 { return uint8(p >> 16) }
func (p Pixel) B() uint8 { return uint8(p >> 8) }
func (p Pixel) A() uint8 { return uint8(p) }

// WithAlpha returns p with its alpha channel replaced.
func (p Pixel) WithAlpha(a uint8) Pixel {
	return p&^0xFF | Pixel(a)
}

// Hash returns the color cache slot of p: (r*3 + g*5 + b*7 + a*11) % 64.
func (p Pixel) Hash() int {
	return (int(p.R())*3 + int(p.G())*5 + int(p.B())*7 + int(p.A())*11) % CacheSize
}
