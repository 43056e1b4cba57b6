package journal

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logJSON(t *testing.T, level slog.Level, event Event) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: level})
	NewSlogAdapter(slog.New(handler)).Log(event)
	if buf.Len() == 0 {
		return nil
	}
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestSlogAdapterDAI(t *testing.T) {
	entry := logJSON(t, slog.LevelDebug, Event{
		SessionID: "s-1",
		Op:        OpUpdateDAI,
		IED:       "IED1",
		DAI: &DAIChange{
			LN: "MMXU1", DO: "Mod", DA: "ctlModel",
			New:     []ValueRecord{{Text: "a"}, {Text: "b"}},
			Created: 3,
		},
	})
	require.NotNil(t, entry)

	assert.Equal(t, "edit", entry["msg"])
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "s-1", entry["session"])
	assert.Equal(t, "UPDATE_DAI", entry["op"])
	assert.Equal(t, "APPLIED", entry["category"])
	assert.Equal(t, "IED1", entry["ied"])
	assert.Equal(t, "MMXU1", entry["ln"])
	assert.Equal(t, float64(2), entry["values"])
	assert.Equal(t, float64(3), entry["created"])
}

func TestSlogAdapterRejectedIsWarn(t *testing.T) {
	entry := logJSON(t, slog.LevelWarn, Event{
		Category: CategoryRejected,
		Op:       OpUpdateDAI,
		Error:    &ErrorData{Message: "boom", Kind: "not updatable"},
	})
	require.NotNil(t, entry)

	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "not updatable", entry["error_kind"])
}

func TestSlogAdapterAppliedBelowLevel(t *testing.T) {
	entry := logJSON(t, slog.LevelInfo, Event{Op: OpAddIED, Structure: &StructureChange{Element: "IED", Name: "IED1"}})
	assert.Nil(t, entry, "debug events are filtered at info level")
}

func TestSlogAdapterPayloads(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		key   string
		want  any
	}{
		{name: "extref", event: Event{ExtRef: &ExtRefChange{LDInst: "LD1", Updated: 2}}, key: "updated", want: float64(2)},
		{name: "import", event: Event{Import: &ImportChange{Source: "doc", Renamed: map[string]string{"a": "b"}}}, key: "types_renamed", want: float64(1)},
		{name: "structure", event: Event{Structure: &StructureChange{Element: "SubNetwork", Name: "WAN"}}, key: "name", want: "WAN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := logJSON(t, slog.LevelDebug, tt.event)
			require.NotNil(t, entry)
			assert.Equal(t, tt.want, entry[tt.key])
		})
	}
}
