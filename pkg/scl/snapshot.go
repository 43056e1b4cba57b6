package scl

import (
	"bytes"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// snapEncMode produces deterministic bytes for equal trees.
var snapEncMode cbor.EncMode

var snapDecMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	snapEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create snapshot CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}
	snapDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create snapshot CBOR decoder mode: %v", err))
	}
}

// Snapshot returns the canonical CBOR encoding of a document or subtree.
// Arena indices and privates are not part of the encoding, so two trees
// with the same content have identical snapshots.
func Snapshot(v any) ([]byte, error) {
	return snapEncMode.Marshal(v)
}

// SameContent reports whether a and b encode to the same snapshot.
func SameContent(a, b any) bool {
	sa, err := Snapshot(a)
	if err != nil {
		return false
	}
	sb, err := Snapshot(b)
	if err != nil {
		return false
	}
	return bytes.Equal(sa, sb)
}

// Clone returns a deep copy of src. The copy and all its descendants are
// unregistered.
func Clone[T any](src *T) (*T, error) {
	data, err := Snapshot(src)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	dst := new(T)
	if err := snapDecMode.Unmarshal(data, dst); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return dst, nil
}
