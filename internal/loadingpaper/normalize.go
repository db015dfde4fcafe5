package loadingpaper

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/zubbicodes/adsonsLab/internal/entity"
)

// Normalize builds a loading paper document from parsed rows: header from the
// first row, coerced line items with per-item PO/DC defaulting, a stable
// numeric-aware sort by DC number, dense 1-based serials in sorted order, and
// aggregate totals. Output length always equals input length.
func Normalize(rows []entity.RawRow) *entity.Document {
	first := entity.RawRow{}
	if len(rows) > 0 {
		first = rows[0]
	}

	header := entity.DocumentHeader{
		DCNo:       coerceString(first["DcNo"]),
		PONo:       coerceString(first["PoNo"]),
		Date:       coerceString(first["Date"]),
		AccName:    coerceString(first["AccName"]),
		AccAddress: coerceString(first["AccAddress"]),
		Remarks:    coerceString(first["Remarks"]),
	}

	items := make([]entity.LineItem, len(rows))
	for i, r := range rows {
		items[i] = entity.LineItem{
			SR:         i + 1,
			DetailName: coerceString(r["DetailName"]),
			Unit:       coerceString(r["DetailUnit"]),
			JobNo:      coerceString(r["JobNo"]),
			Pack:       coerceNumber(r["Pack"]),
			Qty:        coerceNumber(r["Qty"]),
			Weight:     coerceNumber(r["Weight"]),
			PONo:       stringOrDefault(r, "PoNo", header.PONo),
			DCNo:       stringOrDefault(r, "DcNo", header.DCNo),
			// Remarks start empty regardless of input; the uploaded Remarks
			// field only feeds the header.
		}
	}

	// Numeric DC numbers order numerically, everything else falls back to a
	// case-sensitive string compare. Ties keep input order.
	sort.SliceStable(items, func(i, j int) bool {
		return compareDCNo(items[i].DCNo, items[j].DCNo) < 0
	})

	// Post-sort serials are authoritative.
	for i := range items {
		items[i].SR = i + 1
	}

	return &entity.Document{
		Header: header,
		Items:  items,
		Totals: ComputeTotals(items),
	}
}

// ComputeTotals folds pack/qty/weight over the items. Non-finite values count
// as zero for the sum only; stored item fields are left untouched.
func ComputeTotals(items []entity.LineItem) entity.Totals {
	var t entity.Totals
	for i := range items {
		t.Pack += finiteOrZero(items[i].Pack)
		t.Qty += finiteOrZero(items[i].Qty)
		t.Weight += finiteOrZero(items[i].Weight)
	}
	return t
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func compareDCNo(a, b string) int {
	an, aok := sortNumber(a)
	bn, bok := sortNumber(b)
	if aok && bok {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

// sortNumber is the permissive numeric read used for ordering: blank strings
// count as zero, anything unparsable is non-numeric.
func sortNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// coerceString renders any decoded JSON value as a string. Absent values
// become the empty string.
func coerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// coerceNumber is the permissive numeric parse: absent, blank, or non-numeric
// input yields 0. Out-of-range literals keep their infinite value so that the
// totals fold can treat them as zero without altering the stored field.
func coerceNumber(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return t
	case json.Number:
		return parseNumeric(t.String())
	case string:
		return parseNumeric(t)
	case bool:
		if t {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func parseNumeric(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return f
		}
		return 0
	}
	return f
}

// stringOrDefault reads a string field from the row, falling back to the
// header-derived value when the field is absent or null. An explicitly empty
// string on the row stays empty.
func stringOrDefault(r entity.RawRow, key, def string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return def
	}
	return coerceString(v)
}
