package format

import "strings"

type (
	AssetType       uint8
	CompressionType uint8
)

const (
	AssetEmbedded       AssetType = 0x1 // AssetEmbedded is an opaque binary blob.
	AssetShaderVertex   AssetType = 0x2 // AssetShaderVertex is a SPIR-V vertex shader.
	AssetShaderFragment AssetType = 0x3 // AssetShaderFragment is a SPIR-V fragment shader.
	AssetImage          AssetType = 0x4 // AssetImage is a QOI encoded image.
	AssetAudio          AssetType = 0x5 // AssetAudio is a QOA encoded sound.
	AssetModel          AssetType = 0x6 // AssetModel is a Wavefront OBJ model.
	AssetScene          AssetType = 0x7 // AssetScene is an XML scene description.
	AssetScript         AssetType = 0x8 // AssetScript is a Lua script.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// Image header tags. Only the RGBA/sRGB pair is ever written; the others are accepted on decode.
const (
	ChannelsRGB  uint8 = 3
	ChannelsRGBA uint8 = 4

	ColorspaceSRGB   uint8 = 0
	ColorspaceLinear uint8 = 1
)

// Valid reports whether t is one of the archive asset types.
func (t AssetType) Valid() bool {
	return t >= AssetEmbedded && t <= AssetScript
}

func (t AssetType) String() string {
	switch t {
	case AssetEmbedded:
		return "EMBEDDED"
	case AssetShaderVertex:
		return "SHADER-V"
	case AssetShaderFragment:
		return "SHADER-F"
	case AssetImage:
		return "IMAGE"
	case AssetAudio:
		return "AUDIO"
	case AssetModel:
		return "MODEL"
	case AssetScene:
		return "SCENE"
	case AssetScript:
		return "SCRIPT"
	default:
		return "N/A"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompression maps a configuration name (none, zstd, s2, lz4) to its CompressionType.
// The second result is false for unknown names.
func ParseCompression(name string) (CompressionType, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
