package pricing

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentalpromo/internal/modules/catalog"
	"rentalpromo/internal/types"
)

func TestPrice(t *testing.T) {
	base := types.Known(100000.0)

	tests := []struct {
		name string
		base Amount
		rule *Rule
		want Amount
	}{
		{"fixed replaces price", base, &Rule{Type: DiscountFixed, Value: 80000}, types.Known(80000.0)},
		{"fixed above base still replaces", base, &Rule{Type: DiscountFixed, Value: 120000}, types.Known(120000.0)},
		{"negative fixed clamps to zero", base, &Rule{Type: DiscountFixed, Value: -5}, types.Known(0.0)},
		{"percentage", base, &Rule{Type: DiscountPercentage, Value: 20}, types.Known(80000.0)},
		{"percentage above 100 clamps", base, &Rule{Type: DiscountPercentage, Value: 150}, types.Known(0.0)},
		{"negative percentage clamps", base, &Rule{Type: DiscountPercentage, Value: -10}, types.Known(100000.0)},
		{"no rule keeps base", base, nil, base},
		{"unknown base with rule", types.Unknown[float64](), &Rule{Type: DiscountFixed, Value: 1}, types.Unknown[float64]()},
		{"unknown base without rule", types.Unknown[float64](), nil, types.Unknown[float64]()},
		{"half rounds to even down", types.Known(5.0), &Rule{Type: DiscountPercentage, Value: 50}, types.Known(2.0)},
		{"half rounds to even up", types.Known(7.0), &Rule{Type: DiscountPercentage, Value: 50}, types.Known(4.0)},
		{"NaN base", types.Known(math.NaN()), &Rule{Type: DiscountPercentage, Value: 10}, types.Unknown[float64]()},
		{"infinite base without rule", types.Known(math.Inf(1)), nil, types.Unknown[float64]()},
		{"infinite fixed value", base, &Rule{Type: DiscountFixed, Value: math.Inf(1)}, types.Unknown[float64]()},
		{"NaN percentage value", base, &Rule{Type: DiscountPercentage, Value: math.NaN()}, types.Unknown[float64]()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Price(tt.base, tt.rule))
		})
	}
}

func TestPrice_Deterministic(t *testing.T) {
	rule := &Rule{Type: DiscountPercentage, Value: 33.3}
	first := Price(types.Known(123457.0), rule)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Price(types.Known(123457.0), rule))
	}
}

func TestParseDiscountType(t *testing.T) {
	dt, ok := ParseDiscountType(" Percent ")
	assert.True(t, ok)
	assert.Equal(t, DiscountPercentage, dt)

	_, ok = ParseDiscountType("bogo")
	assert.False(t, ok)
}

func TestService_Preview(t *testing.T) {
	store := catalog.NewMemoryStore()
	store.Put(catalog.CollectionVehicleModels, catalog.Record{ID: "m1", Data: map[string]any{"name": "Vision", "pricePerDay": 150000}})
	s := NewService(store)
	ctx := context.Background()

	base := 100000.0
	got, err := s.Preview(ctx, PreviewRequest{BasePrice: &base, DiscountType: "percentage", DiscountValue: 10})
	require.NoError(t, err)
	assert.Equal(t, types.Known(90000.0), got.FinalPrice)
	assert.Equal(t, types.Known(10000.0), got.Savings)

	got, err = s.Preview(ctx, PreviewRequest{ModelID: "m1", DiscountType: "fixed", DiscountValue: 99000})
	require.NoError(t, err)
	assert.Equal(t, types.Known(150000.0), got.BasePrice)
	assert.Equal(t, types.Known(99000.0), got.FinalPrice)

	got, err = s.Preview(ctx, PreviewRequest{ModelID: "missing", DiscountType: "fixed", DiscountValue: 1})
	require.NoError(t, err)
	assert.False(t, got.FinalPrice.Known)

	store.Put(catalog.CollectionVehicleModels, catalog.Record{ID: "m2", Data: map[string]any{"name": "Legacy", "pricePerDay": "NaN"}})
	got, err = s.Preview(ctx, PreviewRequest{ModelID: "m2", DiscountType: "percentage", DiscountValue: 10})
	require.NoError(t, err)
	assert.False(t, got.BasePrice.Known)
	assert.False(t, got.FinalPrice.Known)
	_, err = json.Marshal(got)
	assert.NoError(t, err)

	_, err = s.Preview(ctx, PreviewRequest{BasePrice: &base, DiscountType: "bogo"})
	assert.ErrorIs(t, err, ErrInvalidDiscountType)

	_, err = s.Preview(ctx, PreviewRequest{DiscountType: "fixed"})
	assert.ErrorIs(t, err, ErrMissingBase)
}
