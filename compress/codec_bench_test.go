package compress

import (
	"testing"
)

func BenchmarkCompress(b *testing.B) {
	for _, typ := range allCompressionTypes {
		codec, _ := GetCodec(typ)
		for name, payload := range testPayloads() {
			b.Run(typ.String()+"/"+name, func(b *testing.B) {
				b.SetBytes(int64(len(payload)))
				b.ReportAllocs()

				for b.Loop() {
					_, _ = codec.Compress(payload)
				}
			})
		}
	}
}

func BenchmarkDecompress(b *testing.B) {
	for _, typ := range allCompressionTypes {
		codec, _ := GetCodec(typ)
		for name, payload := range testPayloads() {
			compressed, err := codec.Compress(payload)
			if err != nil {
				b.Fatal(err)
			}

			b.Run(typ.String()+"/"+name, func(b *testing.B) {
				b.SetBytes(int64(len(payload)))
				b.ReportAllocs()

				for b.Loop() {
					_, _ = codec.Decompress(compressed)
				}
			})
		}
	}
}

func BenchmarkDecompressParallel(b *testing.B) {
	payload := testPayloads()["scene"]

	for _, typ := range allCompressionTypes {
		codec, _ := GetCodec(typ)
		compressed, err := codec.Compress(payload)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(typ.String(), func(b *testing.B) {
			b.SetBytes(int64(len(payload)))
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					_, _ = codec.Decompress(compressed)
				}
			})
		})
	}
}
