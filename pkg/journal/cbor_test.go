package journal

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRoundTrip(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 30, 0, 123456789, time.UTC)

	tests := []struct {
		name  string
		event Event
	}{
		{
			name: "dai update",
			event: Event{
				Timestamp: ts,
				SessionID: "s-1",
				Op:        OpUpdateDAI,
				Target:    `SCL/IED[@name="IED1"]`,
				IED:       "IED1",
				DAI: &DAIChange{
					LN: "MMXU1", DO: "Mod", DA: "ctlModel", FC: "CF",
					Old:     []ValueRecord{{Text: "status-only"}},
					New:     []ValueRecord{{Text: "direct-with-normal-security"}},
					Created: 2,
				},
			},
		},
		{
			name: "extref update",
			event: Event{
				Timestamp: ts,
				Op:        OpUpdateExtRefs,
				ExtRef: &ExtRefChange{
					LDInst: "LD1", LN: "LLN0", Created: 1,
					Bindings: []BindingRecord{{IntAddr: "in1", IEDName: "IED2", LNClass: "XCBR", LNInst: "1"}},
				},
			},
		},
		{
			name: "import",
			event: Event{
				Timestamp: ts,
				Op:        OpImportIED,
				Import:    &ImportChange{Source: "doc-2", TypesAdded: 3, Renamed: map[string]string{"A": "IED2_A"}},
			},
		},
		{
			name: "rejected",
			event: Event{
				Timestamp: ts,
				Category:  CategoryRejected,
				Op:        OpAddIED,
				Error:     &ErrorData{Message: "already exists", Kind: "already exists"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeEvent(tt.event)
			require.NoError(t, err)

			got, err := DecodeEvent(data)
			require.NoError(t, err)
			assert.True(t, tt.event.Timestamp.Equal(got.Timestamp))
			got.Timestamp = tt.event.Timestamp
			assert.Equal(t, tt.event, got)
		})
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	e := Event{
		Op:     OpImportIED,
		Import: &ImportChange{Renamed: map[string]string{"b": "x_b", "a": "x_a", "c": "x_c"}},
	}
	first, err := EncodeEvent(e)
	require.NoError(t, err)
	for range 10 {
		again, err := EncodeEvent(e)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestStreamEncoding(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for _, op := range Ops() {
		require.NoError(t, enc.Encode(Event{Op: op}))
	}

	dec := NewDecoder(&buf)
	for _, op := range Ops() {
		var e Event
		require.NoError(t, dec.Decode(&e))
		assert.Equal(t, op, e.Op)
	}
}

func TestDecodeGarbage(t *testing.T) {
	_, err := DecodeEvent([]byte{0xff, 0x00})
	assert.Error(t, err)
}

func TestTimestampIsTagged(t *testing.T) {
	data, err := EncodeEvent(Event{Timestamp: time.Date(2026, 3, 1, 0, 0, 0, 5, time.UTC), SessionID: "s"})
	require.NoError(t, err)
	require.Greater(t, len(data), 3)
	assert.Equal(t, byte(0x01), data[1], "timestamp key first")
	assert.Equal(t, byte(0xc0), data[2], "RFC 3339 string tag")
}

func TestDecodeRejectsTrailingBytes(t *testing.T) {
	data, err := EncodeEvent(Event{Op: OpAddIED})
	require.NoError(t, err)
	_, err = DecodeEvent(append(data, data...))
	assert.Error(t, err)
}

func TestDecodeRejectsDuplicateKeys(t *testing.T) {
	// {2: "a", 2: "b"}
	_, err := DecodeEvent([]byte{0xa2, 0x02, 0x61, 'a', 0x02, 0x61, 'b'})
	assert.Error(t, err)
}

func TestDecodeIgnoresUnknownKeys(t *testing.T) {
	// {2: "s", 99: 1}
	e, err := DecodeEvent([]byte{0xa2, 0x02, 0x61, 's', 0x18, 0x63, 0x01})
	require.NoError(t, err)
	assert.Equal(t, "s", e.SessionID)
}
