package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator(t *testing.T) {
	v := New()
	assert.True(t, v.Valid())

	v.Check(true, "title", "title must be provided")
	assert.True(t, v.Valid())

	v.Check(false, "interval", "must be positive")
	v.Check(false, "interval", "second message")
	assert.False(t, v.Valid())
	assert.Equal(t, map[string]string{"interval": "must be positive"}, v.Errors)
}

func TestIn(t *testing.T) {
	assert.True(t, In("week", "day", "week"))
	assert.False(t, In("fortnight", "day", "week"))
	assert.False(t, In("day"))
}

func TestUnique(t *testing.T) {
	assert.True(t, Unique(nil))
	assert.True(t, Unique([]string{"mon", "wed"}))
	assert.False(t, Unique([]string{"mon", "wed", "mon"}))
}
