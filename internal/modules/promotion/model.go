// README: Promotional program model decoded from the programs collection.
package promotion

import (
	"sort"
	"strings"
	"time"

	"rentalpromo/internal/modules/catalog"
	"rentalpromo/internal/modules/pricing"
)

type Type string

const (
	TypeRental Type = "rental_program"
	TypeAgent  Type = "agent_program"
)

type ModelDiscount struct {
	ModelID string       `json:"model_id"`
	Rule    pricing.Rule `json:"rule"`
}

// Program is a time-bounded offer. A zero StartDate or EndDate leaves that
// side unbounded; empty StationTargets means every station of CompanyID.
type Program struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	CompanyID      string          `json:"company_id,omitempty"`
	Type           Type            `json:"type"`
	IsActive       bool            `json:"is_active"`
	StartDate      time.Time       `json:"start_date,omitzero"`
	EndDate        time.Time       `json:"end_date,omitzero"`
	StationTargets []string        `json:"station_targets"`
	ModelDiscounts []ModelDiscount `json:"model_discounts"`

	// badWindow marks a start or end date that is present but unreadable.
	badWindow bool
}

// Decode reads a programs record. Discount entries with an unknown type or
// no numeric value are dropped; repeated model ids keep the last entry.
func Decode(r catalog.Record) Program {
	p := Program{
		ID:        r.ID,
		Name:      r.String("name", "title"),
		CompanyID: r.String("companyId", "ownerId"),
		Type:      Type(r.String("type", "programType")),
		IsActive:  r.Bool("isActive", true),
	}
	var okStart, okEnd bool
	p.StartDate, okStart = windowBound(r, "startDate")
	p.EndDate, okEnd = windowBound(r, "endDate")
	p.badWindow = !okStart || !okEnd
	p.StationTargets = decodeTargets(r.List("stationTargets"))
	p.ModelDiscounts = decodeDiscounts(r.Raw("modelDiscounts"))
	return p
}

// windowBound reads a date bound. A missing or blank value is an open bound;
// any other value that does not parse reports false.
func windowBound(r catalog.Record, key string) (time.Time, bool) {
	if t, ok := r.Time(key); ok {
		return t, true
	}
	switch v := r.Raw(key).(type) {
	case nil, time.Time, *time.Time:
		return time.Time{}, true
	case string:
		return time.Time{}, strings.TrimSpace(v) == ""
	}
	return time.Time{}, false
}

func decodeTargets(raw []any) []string {
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		var id string
		switch t := v.(type) {
		case string:
			id = t
		case map[string]any:
			id = catalog.Record{Data: t}.String("stationId", "id")
		}
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}

// decodeDiscounts accepts either a list of {modelId, discountType,
// discountValue} or a map keyed by model id.
func decodeDiscounts(raw any) []ModelDiscount {
	var entries []catalog.Record
	switch t := raw.(type) {
	case []any:
		for _, v := range t {
			if m, ok := v.(map[string]any); ok {
				entries = append(entries, catalog.Record{ID: catalog.Record{Data: m}.String("modelId"), Data: m})
			}
		}
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if m, ok := t[k].(map[string]any); ok {
				entries = append(entries, catalog.Record{ID: k, Data: m})
			}
		}
	}

	pos := make(map[string]int, len(entries))
	var out []ModelDiscount
	for _, e := range entries {
		if e.ID == "" {
			continue
		}
		dt, ok := pricing.ParseDiscountType(e.String("discountType", "type"))
		if !ok {
			continue
		}
		v, ok := e.Float("discountValue", "value")
		if !ok {
			continue
		}
		d := ModelDiscount{ModelID: e.ID, Rule: pricing.Rule{Type: dt, Value: v}}
		if i, dup := pos[e.ID]; dup {
			out[i] = d
			continue
		}
		pos[e.ID] = len(out)
		out = append(out, d)
	}
	return out
}
