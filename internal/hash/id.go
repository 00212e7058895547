// Package hash derives the 64-bit identifiers used to index archive entries and assets.
package hash

import (
	"github.com/cespare/xxhash/v2"

	"github.com/yurikit/qmedia/format"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// AssetID identifies an asset by type and name. Two assets may share a name when their
// types differ, so the type byte is hashed ahead of the name.
func AssetID(t format.AssetType, name string) uint64 {
	d := xxhash.New()
	_, _ = d.Write([]byte{byte(t)})
	_, _ = d.WriteString(name)

	return d.Sum64()
}
