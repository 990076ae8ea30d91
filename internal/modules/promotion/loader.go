package promotion

import (
	"context"
	"time"

	"rentalpromo/internal/modules/catalog"
)

// Usable keeps active programs that carry at least one model discount;
// a program without discounts can never yield an offering.
func Usable(recs []catalog.Record, now time.Time) []Program {
	out := make([]Program, 0, len(recs))
	for _, r := range recs {
		p := Decode(r)
		if len(p.ModelDiscounts) == 0 || !Active(p, now) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// LoadActive scans the programs collection and returns Usable programs.
func LoadActive(ctx context.Context, store catalog.Store, now time.Time) ([]Program, error) {
	recs, err := store.ListAll(ctx, catalog.CollectionPrograms)
	if err != nil {
		return nil, err
	}
	return Usable(recs, now), nil
}
