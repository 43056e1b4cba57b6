package journal

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Filter selects journal events. Zero-valued fields match everything.
type Filter struct {
	SessionID string
	Category  *Category
	Op        *Op
	IED       string

	// TargetPrefix keeps events whose target XPath starts with this prefix.
	TargetPrefix string

	// TimeStart is inclusive, TimeEnd exclusive.
	TimeStart *time.Time
	TimeEnd   *time.Time
}

// Matches reports whether event satisfies every criterion of f.
func (f Filter) Matches(event Event) bool {
	switch {
	case f.SessionID != "" && event.SessionID != f.SessionID,
		f.Category != nil && event.Category != *f.Category,
		f.Op != nil && event.Op != *f.Op,
		f.IED != "" && event.IED != f.IED,
		!strings.HasPrefix(event.Target, f.TargetPrefix):
		return false
	case f.TimeStart != nil && event.Timestamp.Before(*f.TimeStart),
		f.TimeEnd != nil && !event.Timestamp.Before(*f.TimeEnd):
		return false
	}
	return true
}

// Reader streams events from a journal file.
type Reader struct {
	src     io.ReadCloser
	decoder *cbor.Decoder
	filter  Filter
	read    int
}

// NewReader opens the journal at path for reading every event.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader opens the journal at path for reading the events
// matching filter.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	return &Reader{src: f, decoder: NewDecoder(f), filter: filter}, nil
}

// Next returns the next matching event, or io.EOF at the end of the
// journal. A truncated trailing event is reported as an error.
func (r *Reader) Next() (Event, error) {
	for {
		var event Event
		err := r.decoder.Decode(&event)
		if errors.Is(err, io.EOF) {
			return Event{}, io.EOF
		}
		if err != nil {
			return Event{}, fmt.Errorf("decoding event %d: %w", r.read, err)
		}
		r.read++
		if r.filter.Matches(event) {
			return event, nil
		}
	}
}

// All yields the remaining matching events. Iteration stops after the
// first error.
func (r *Reader) All() iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		for {
			event, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(event, err) || err != nil {
				return
			}
		}
	}
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.src.Close()
}

// ReadAll returns the events of the journal at path matching filter.
func ReadAll(path string, filter Filter) ([]Event, error) {
	r, err := NewFilteredReader(path, filter)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var events []Event
	for event, err := range r.All() {
		if err != nil {
			return events, err
		}
		events = append(events, event)
	}
	return events, nil
}
