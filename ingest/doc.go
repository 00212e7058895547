// Package ingest reads and writes the uncompressed source formats of the asset pipeline.
//
// ReadWAV accepts 16-bit PCM RIFF/WAVE files and ReadBMP accepts 24 and 32 bits-per-pixel
// Windows bitmaps. Both parse every field explicitly in little-endian order and return the
// in-memory types of the codecs, qoa.Audio and qoi.Image, ready for encoding.
//
// WriteWAV and WriteBMP produce the same layouts and are used to export decoded assets.
package ingest
