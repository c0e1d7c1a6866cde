package dbtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceValue(t *testing.T) {
	v, err := coerceValue(3, TypeInt)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), v)

	v, err = coerceValue(int64(3), TypeFloat)
	assert.NoError(t, err)
	assert.Equal(t, float64(3), v)

	_, err = coerceValue("nope", TypeInt)
	assert.Error(t, err)
}

func TestValuesEqual(t *testing.T) {
	assert.True(t, valuesEqual(int64(1), int64(1)))
	assert.False(t, valuesEqual(int64(1), int64(2)))
	assert.False(t, valuesEqual(int64(1), "1"))
	assert.True(t, valuesEqual("a", "a"))
	assert.False(t, valuesEqual(nil, nil)) // no tri-value NULL logic; nil never compares equal
}

func TestZeroValue(t *testing.T) {
	assert.Equal(t, int64(0), zeroValue(TypeInt))
	assert.Equal(t, 0.0, zeroValue(TypeFloat))
	assert.Equal(t, "", zeroValue(TypeString))
}
