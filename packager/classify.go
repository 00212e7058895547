package packager

import (
	"strings"

	"github.com/yurikit/qmedia/format"
)

type conversion uint8

const (
	convertNone conversion = iota
	convertBMP
	convertWAV
	checkQOI
	checkQOA
)

type rule struct {
	suffix  string
	typ     format.AssetType
	convert conversion
}

var rules = []rule{
	{".bin", format.AssetEmbedded, convertNone},
	{".vert.spv", format.AssetShaderVertex, convertNone},
	{".frag.spv", format.AssetShaderFragment, convertNone},
	{".bmp", format.AssetImage, convertBMP},
	{".qoi", format.AssetImage, checkQOI},
	{".wav", format.AssetAudio, convertWAV},
	{".qoa", format.AssetAudio, checkQOA},
	{".obj", format.AssetModel, convertNone},
	{".xml", format.AssetScene, convertNone},
	{".lua", format.AssetScript, convertNone},
}

// Classify returns the asset type of a source file name, and false for files the packager
// skips.
func Classify(filename string) (format.AssetType, bool) {
	r, ok := classify(filename)

	return r.typ, ok
}

func classify(filename string) (rule, bool) {
	for _, r := range rules {
		if strings.HasSuffix(filename, r.suffix) {
			return r, true
		}
	}

	return rule{}, false
}

// AssetName returns the archive name of file inside the top-level directory dir.
func AssetName(dir, file string) string {
	if i := strings.IndexByte(file, '.'); i >= 0 {
		file = file[:i]
	}

	return "/" + dir + "/" + file
}

// Extension returns the suffix the packager stores t from without conversion, so an
// extracted tree packs back into the same archive.
func Extension(t format.AssetType) string {
	for _, r := range rules {
		if r.typ == t && r.convert != convertBMP && r.convert != convertWAV {
			return r.suffix
		}
	}

	return ".bin"
}
