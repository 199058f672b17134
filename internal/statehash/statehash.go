// Package statehash computes structural digests of decoded query state.
package statehash

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
)

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map keys
// and shortest forms, so equal state always produces identical bytes. Nil
// slices and maps encode as empty containers so they never collide with null.
var encMode cbor.EncMode

func init() {
	opts := cbor.CoreDetEncOptions()
	opts.NilContainers = cbor.NilContainerAsEmpty
	var err error
	encMode, err = opts.EncMode()
	if err != nil {
		panic("statehash: CBOR encoder initialization failed: " + err.Error())
	}
}

// Undefined encodes as the CBOR "undefined" simple value, keeping it distinct
// from null.
var Undefined = cbor.RawMessage{0xf7}

// Sum returns the BLAKE3 digest of the deterministic CBOR encoding of state.
func Sum(state map[string]any) ([32]byte, error) {
	b, err := encMode.Marshal(state)
	if err != nil {
		return [32]byte{}, err
	}
	return blake3.Sum256(b), nil
}
