// README: Composite ordering and filter predicates over offering rows.
package offering

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"rentalpromo/internal/types"
)

// cases.Caser is stateful; build one per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

// compareUnknownLast orders known values with cmpKnown and puts Unknown
// after every known value.
func compareUnknownLast(a, b types.Maybe[float64], cmpKnown func(x, y float64) int) int {
	switch {
	case a.Known && b.Known:
		return cmpKnown(a.Value, b.Value)
	case a.Known:
		return -1
	case b.Known:
		return 1
	}
	return 0
}

func ascending(x, y float64) int  { return cmp.Compare(x, y) }
func descending(x, y float64) int { return cmp.Compare(y, x) }

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	}
	return 1
}

func compareText(a, b string) int {
	return cmp.Compare(fold(a), fold(b))
}

// SortNearby orders by promotion first, then nearest (Unknown last), owner
// name, service point name and id.
func SortNearby(rows []Row) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		if c := compareBool(a.HasPromotion, b.HasPromotion); c != 0 {
			return c
		}
		if c := compareUnknownLast(a.DistanceKm, b.DistanceKm, ascending); c != 0 {
			return c
		}
		sa, sb := a.ServicePoint, b.ServicePoint
		if sa != nil && sb != nil {
			if c := compareText(sa.OwnerDisplayName, sb.OwnerDisplayName); c != 0 {
				return c
			}
			if c := compareText(sa.Name, sb.Name); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.ServicePointID, b.ServicePointID)
	})
}

// SortJoined orders by discount magnitude (Unknown last), then model name,
// program id and model id.
func SortJoined(rows []Row) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		if c := compareUnknownLast(a.discount(), b.discount(), descending); c != 0 {
			return c
		}
		if a.Model != nil && b.Model != nil {
			if c := compareText(a.Model.Name, b.Model.Name); c != 0 {
				return c
			}
		}
		if c := cmp.Compare(a.ProgramID, b.ProgramID); c != 0 {
			return c
		}
		return cmp.Compare(modelID(a), modelID(b))
	})
}

func modelID(r Row) string {
	if r.Model == nil {
		return ""
	}
	return r.Model.ID
}

// WithinDistance applies the max-distance bound.
func WithinDistance(r Row, f Filters) bool {
	bound, bounded := f.MaxKm.Get()
	if !bounded {
		return true
	}
	d, known := r.DistanceKm.Get()
	if !known {
		return f.IncludeUnknownDistance
	}
	return d <= bound
}

// MatchesQuery is a case-insensitive substring match against any of the
// row's text fields.
func MatchesQuery(r Row, query string) bool {
	q := fold(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range searchFields(r) {
		if field != "" && strings.Contains(fold(field), q) {
			return true
		}
	}
	return false
}

func searchFields(r Row) []string {
	var fields []string
	if sp := r.ServicePoint; sp != nil {
		fields = append(fields, sp.OwnerDisplayName, sp.Name, sp.DisplayAddress)
	}
	if m := r.Model; m != nil {
		fields = append(fields, m.Name, m.Brand)
	}
	if r.ProgramName != "" {
		fields = append(fields, r.ProgramName)
	}
	return fields
}

// Filter keeps rows passing both predicates, preserving order.
func Filter(rows []Row, f Filters) []Row {
	out := rows[:0:0]
	for _, r := range rows {
		if WithinDistance(r, f) && MatchesQuery(r, f.Query) {
			out = append(out, r)
		}
	}
	return out
}

// Page slices rows by offset and limit; limit <= 0 means no limit.
func Page(rows []Row, offset, limit int) []Row {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) {
		return []Row{}
	}
	end := len(rows)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return rows[offset:end]
}
