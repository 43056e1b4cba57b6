package journal

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOpString(t *testing.T) {
	seen := map[string]bool{}
	for _, op := range Ops() {
		s := op.String()
		assert.NotEqual(t, "UNKNOWN", s, "op %d", op)
		assert.False(t, seen[s], "duplicate name %s", s)
		seen[s] = true
	}
	assert.Equal(t, "UNKNOWN", Op(200).String())
	assert.Equal(t, "UPDATE_DAI", OpUpdateDAI.String())
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "APPLIED", CategoryApplied.String())
	assert.Equal(t, "REJECTED", CategoryRejected.String())
	assert.Equal(t, "UNKNOWN", Category(9).String())
}

func TestNewSessionID(t *testing.T) {
	a, b := NewSessionID(), NewSessionID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}
