package structdiff

import (
	"encoding/hex"
	"hash"
	"hash/fnv"
)

// NewHash returns a new hash interface, wrapped in a function for easy
// hash algorithm switching, package consumers can override NewHash
// with their own desired hash.Hash implementation if the value space is
// particularly large. default is 64-bit FNV 1 for fast, cheap,
// (non-cryptographic) hashing
var NewHash = func() hash.Hash {
	return fnv.New64()
}

// hashStr converts a hash sum to a string using hex encoding
// localized here for easy encoding swapping
func hashStr(sum []byte) string {
	return hex.EncodeToString(sum)
}

// Hash returns a hash of the canonical encoding of v. Values that are Equal
// produce the same hash
func (v Value) Hash() []byte {
	h := NewHash()
	h.Write(v.canonical())
	return h.Sum(nil)
}

// canonical is a JSON encoding with sorted mapping keys. numbers that JSON
// can't express fall back to their go formatting, only hashing uses this
func (v Value) canonical() []byte {
	data, err := v.appendJSON(nil, true)
	if err != nil {
		return []byte(v.kind.String() + ":" + err.Error())
	}
	return data
}

// hashKeys produces one comparison key per value, suitable for the
// library-assisted sequence matcher
func hashKeys(vs []Value) []string {
	keys := make([]string, len(vs))
	for i, v := range vs {
		keys[i] = hashStr(v.Hash())
	}
	return keys
}
