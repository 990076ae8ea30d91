// README: Pricing service backing the live price preview.
package pricing

import (
	"context"
	"errors"

	"github.com/rotisserie/eris"

	"rentalpromo/internal/modules/catalog"
	"rentalpromo/internal/types"
)

var (
	ErrInvalidDiscountType = errors.New("pricing: unknown discount type")
	ErrMissingBase         = errors.New("pricing: base price or model id required")
)

type Service struct {
	store catalog.Store
}

// NewService wires the catalog used to resolve a model's base price. store
// may be nil when callers always pass a base price.
func NewService(store catalog.Store) *Service {
	return &Service{store: store}
}

// Preview prices a discount rule being edited. An unavailable or unknown
// model yields an Unknown base rather than an error.
func (s *Service) Preview(ctx context.Context, req PreviewRequest) (PreviewResult, error) {
	dt, ok := ParseDiscountType(req.DiscountType)
	if !ok {
		return PreviewResult{}, eris.Wrapf(ErrInvalidDiscountType, "%q", req.DiscountType)
	}
	rule := &Rule{Type: dt, Value: req.DiscountValue}

	var base Amount
	switch {
	case req.BasePrice != nil:
		base = types.Known(*req.BasePrice)
	case req.ModelID != "":
		base = s.modelBase(ctx, req.ModelID)
	default:
		return PreviewResult{}, ErrMissingBase
	}

	final := Price(base, rule)
	return PreviewResult{
		BasePrice:  base,
		FinalPrice: final,
		Savings:    Savings(base, final),
	}, nil
}

func (s *Service) modelBase(ctx context.Context, modelID string) Amount {
	if s.store == nil {
		return types.Unknown[float64]()
	}
	recs, err := s.store.GetByIDs(ctx, catalog.CollectionVehicleModels, []string{modelID})
	if err != nil || len(recs) == 0 {
		return types.Unknown[float64]()
	}
	return catalog.DecodeVehicleModel(recs[0]).PricePerDay
}
