package loadingpaper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zubbicodes/adsonsLab/internal/entity"
)

func row(fields map[string]any) entity.RawRow {
	return entity.RawRow(fields)
}

func TestNormalizeHeaderFromFirstRow(t *testing.T) {
	doc := Normalize([]entity.RawRow{
		row(map[string]any{
			"DcNo":       "123",
			"PoNo":       "57216",
			"Date":       "2025-10-21",
			"AccName":    "ACME Textiles",
			"AccAddress": "Faisalabad",
			"Remarks":    "Via truck",
		}),
		row(map[string]any{"DcNo": "124"}),
	})

	assert.Equal(t, "123", doc.Header.DCNo)
	assert.Equal(t, "57216", doc.Header.PONo)
	assert.Equal(t, "2025-10-21", doc.Header.Date)
	assert.Equal(t, "ACME Textiles", doc.Header.AccName)
	assert.Equal(t, "Faisalabad", doc.Header.AccAddress)
	assert.Equal(t, "Via truck", doc.Header.Remarks)
	assert.Empty(t, doc.Header.HeaderNote)
}

func TestNormalizeSerialDensity(t *testing.T) {
	rows := []entity.RawRow{
		row(map[string]any{"DcNo": "30"}),
		row(map[string]any{"DcNo": "10"}),
		row(map[string]any{"DcNo": "20"}),
		row(map[string]any{"DcNo": "5"}),
	}
	doc := Normalize(rows)

	require.Len(t, doc.Items, len(rows))
	for i, it := range doc.Items {
		assert.Equal(t, i+1, it.SR)
	}
}

func TestNormalizeNumericAwareSort(t *testing.T) {
	doc := Normalize([]entity.RawRow{
		row(map[string]any{"DcNo": "10"}),
		row(map[string]any{"DcNo": "2"}),
		row(map[string]any{"DcNo": "abc"}),
	})

	got := make([]string, len(doc.Items))
	for i, it := range doc.Items {
		got[i] = it.DCNo
	}
	assert.Equal(t, []string{"2", "10", "abc"}, got)
}

func TestNormalizeSortIsStable(t *testing.T) {
	doc := Normalize([]entity.RawRow{
		row(map[string]any{"DcNo": "7", "JobNo": "first"}),
		row(map[string]any{"DcNo": "7", "JobNo": "second"}),
		row(map[string]any{"DcNo": "7", "JobNo": "third"}),
	})

	assert.Equal(t, "first", doc.Items[0].JobNo)
	assert.Equal(t, "second", doc.Items[1].JobNo)
	assert.Equal(t, "third", doc.Items[2].JobNo)
}

func TestNormalizeCoercion(t *testing.T) {
	doc := Normalize([]entity.RawRow{
		row(map[string]any{
			"DetailName": "Black Elastic 45MM",
			"DetailUnit": "MTR",
			"Pack":       "12",
			"Qty":        float64(1440),
			"Weight":     "abc",
		}),
	})

	it := doc.Items[0]
	assert.Equal(t, "Black Elastic 45MM", it.DetailName)
	assert.Equal(t, "MTR", it.Unit)
	assert.InDelta(t, 12, it.Pack, 0)
	assert.InDelta(t, 1440, it.Qty, 0)
	assert.Zero(t, it.Weight, "non-numeric weight coerces to 0")
	assert.Empty(t, it.Remarks, "item remarks start empty regardless of input")
}

func TestNormalizePerItemDefaultsFromHeader(t *testing.T) {
	doc := Normalize([]entity.RawRow{
		row(map[string]any{"DcNo": "99", "PoNo": "555"}),
		row(map[string]any{}),               // both absent: inherit header
		row(map[string]any{"PoNo": ""}),     // explicitly empty: stays empty
	})

	assert.Equal(t, "555", doc.Items[1].PONo)
	assert.Equal(t, "99", doc.Items[1].DCNo)
	assert.Empty(t, doc.Items[2].PONo)
}

func TestNormalizeTotals(t *testing.T) {
	doc := Normalize([]entity.RawRow{
		row(map[string]any{"Pack": float64(2), "Qty": float64(100), "Weight": 10.5}),
		row(map[string]any{"Pack": float64(3), "Qty": float64(200), "Weight": 4.5}),
		row(map[string]any{"Pack": "n/a", "Qty": nil, "Weight": ""}),
	})

	assert.InDelta(t, 5, doc.Totals.Pack, 1e-9)
	assert.InDelta(t, 300, doc.Totals.Qty, 1e-9)
	assert.InDelta(t, 15, doc.Totals.Weight, 1e-9)
}

func TestComputeTotalsIgnoresNonFinite(t *testing.T) {
	items := []entity.LineItem{
		{Pack: 1, Qty: 2, Weight: 3},
		{Pack: 0, Qty: 0, Weight: parseNumeric("1e999")}, // overflows to +Inf
	}
	totals := ComputeTotals(items)
	assert.InDelta(t, 3, totals.Weight, 1e-9, "non-finite stored values count as zero")
}
