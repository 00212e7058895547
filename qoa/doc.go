// Package qoa implements the Quite OK Audio format: lossy, fixed-rate (3.2 bits per
// sample) compression of 16-bit PCM with up to eight channels.
//
// A QOA file is an 8-byte header followed by frames of at most 256 slices per channel.
// Each frame stores a snapshot of every channel's LMS predictor, so frames are independently
// decodable once the stream's channel count and sample rate are known. Each slice packs
// 20 samples of one channel into a single 64-bit word.
//
// # Encoding
//
//	data, err := qoa.Encode(qoa.Audio{
//	    Samples:    pcm, // interleaved
//	    Channels:   2,
//	    SampleRate: 44100,
//	})
//
// The encoder tries all sixteen scale factors for every slice and keeps the one with the
// lowest reconstruction error, starting from the channel's previous choice so that most
// candidates are pruned early. Output is deterministic.
//
// # Decoding
//
//	audio, err := qoa.Decode(data, qoa.WithMaxSamples(1<<24))
//
// Decoding is strict: every frame header must match the stream's channel count and sample
// rate, and the input must be consumed exactly. Streaming files (total sample count zero)
// are rejected with errs.ErrUnsupportedStreaming.
//
// Encoders and decoders hold no shared state; independent calls may run concurrently.
package qoa
