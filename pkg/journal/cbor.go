package journal

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// A journal file is a CBOR sequence (RFC 8742): events are written back
// to back with no framing, so appending never rewrites earlier bytes.
//
// Events are encoded with sorted integer keys and definite lengths.
// Timestamps are tagged RFC 3339 strings with nanoseconds, so exported
// journals sort the same as they were written. Decoding ignores unknown
// keys so newer event fields do not break older readers, and rejects
// duplicate keys, which only a corrupt or hand-edited file contains.
var (
	encMode = mustEncMode(cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
		Time:        cbor.TimeRFC3339Nano,
		TimeTag:     cbor.EncTagRequired,
	})
	decMode = mustDecMode(cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		IndefLength:       cbor.IndefLengthForbidden,
		TimeTag:           cbor.DecTagOptional,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	})
)

func mustEncMode(opts cbor.EncOptions) cbor.EncMode {
	em, err := opts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("journal CBOR encoder options: %v", err))
	}
	return em
}

func mustDecMode(opts cbor.DecOptions) cbor.DecMode {
	dm, err := opts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("journal CBOR decoder options: %v", err))
	}
	return dm
}

// EncodeEvent returns the journal encoding of one event.
func EncodeEvent(event Event) ([]byte, error) {
	return encMode.Marshal(event)
}

// DecodeEvent decodes exactly one event. Trailing bytes are an error.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := decMode.Unmarshal(data, &event); err != nil {
		return Event{}, fmt.Errorf("decoding event: %w", err)
	}
	return event, nil
}

// NewEncoder returns an encoder appending events to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder returns a decoder reading a sequence of events from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return decMode.NewDecoder(r)
}
