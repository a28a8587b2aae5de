package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONBStringArray_RoundTrip(t *testing.T) {
	arr := JSONBStringArray{"eggs", "flour"}
	value, err := arr.Value()
	require.NoError(t, err)

	var scanned JSONBStringArray
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, arr, scanned)
}

func TestJSONBStringArray_EmptyAndNil(t *testing.T) {
	value, err := JSONBStringArray{}.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", value)

	var scanned JSONBStringArray
	require.NoError(t, scanned.Scan(nil))
	assert.Empty(t, scanned)
}

func TestJSONBStringMap_RoundTrip(t *testing.T) {
	m := JSONBStringMap{"tofu": "chicken"}
	value, err := m.Value()
	require.NoError(t, err)

	var scanned JSONBStringMap
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, m, scanned)
}

func TestJSONBStringMap_Empty(t *testing.T) {
	value, err := JSONBStringMap{}.Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", value)
}
