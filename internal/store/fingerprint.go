package store

import (
	"github.com/cespare/xxhash/v2"
	jsoniter "github.com/json-iterator/go"
)

// Fingerprint hashes the serialized form of v. Stations compare
// fingerprints of the watched subset to skip redundant change
// notifications when a reload returned identical content.
func Fingerprint(v any) uint64 {
	b, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(v)
	if err != nil {
		return 0
	}
	return xxhash.Sum64(b)
}
