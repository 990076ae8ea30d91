package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaybe_UnknownIsNotZero(t *testing.T) {
	zero := Known(0.0)
	unknown := Unknown[float64]()

	v, ok := zero.Get()
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)

	_, ok = unknown.Get()
	assert.False(t, ok)
}

func TestMaybe_JSON(t *testing.T) {
	type row struct {
		Distance Maybe[float64] `json:"distance_km"`
		Price    Maybe[float64] `json:"price"`
	}
	out, err := json.Marshal(row{Distance: Unknown[float64](), Price: Known(90000.0)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"distance_km":null,"price":90000}`, string(out))

	var back row
	require.NoError(t, json.Unmarshal(out, &back))
	assert.False(t, back.Distance.Known)
	assert.Equal(t, Known(90000.0), back.Price)
}
