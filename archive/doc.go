// Package archive reads and writes YURI asset archives.
//
// An archive is a flat container: an 8-byte header, a manifest describing every entry, then
// the entry payloads back to back in manifest order. All integers are little-endian.
//
//	"YURI" | count u32
//	count × { type u8 | flag u8 | size u32 | crc32 u32 | name_len u16 | name }
//	payload[0] | payload[1] | ...
//
// The checksum covers the stored bytes, so corruption is detected before any decompression
// or decoding. Payloads may be compressed individually; the entry flag names the codec.
//
// # Writing
//
//	w, err := archive.NewWriter(archive.WithCompression(format.CompressionZstd))
//	err = w.Add(archive.Entry{Type: format.AssetScene, Name: "/scenes/intro", Data: xml})
//	_, err = w.WriteTo(file)
//
// # Reading
//
//	r, err := archive.Open("game.yuri")
//	h, ok := r.Lookup(format.AssetScene, "/scenes/intro")
//	payload, err := r.Open(h)
//
// A Reader is immutable once parsed and safe for concurrent use.
package archive
