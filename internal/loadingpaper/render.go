package loadingpaper

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/zubbicodes/adsonsLab/internal/entity"
)

// TareOffset is the fixed per-carton tare approximation added to the net
// weight per carton to display a gross weight per carton.
const TareOffset = 0.8

// ColumnVisibility is a per-render column mask, independent of the document.
// The remarks column is always shown.
type ColumnVisibility struct {
	SR                bool `json:"sr"`
	PONo              bool `json:"poNo"`
	JobNo             bool `json:"jobNo"`
	DCNo              bool `json:"dcNo"`
	Item              bool `json:"item"`
	Pack              bool `json:"pack"`
	Qty               bool `json:"qty"`
	Unit              bool `json:"unit"`
	NetWeight         bool `json:"netWeight"`
	NetWeightPerCtn   bool `json:"netWeightPerCtn"`
	GrossWeightPerCtn bool `json:"grossWeightPerCtn"`
}

// AllColumns is the default mask: everything visible.
func AllColumns() ColumnVisibility {
	return ColumnVisibility{
		SR: true, PONo: true, JobNo: true, DCNo: true, Item: true,
		Pack: true, Qty: true, Unit: true, NetWeight: true,
		NetWeightPerCtn: true, GrossWeightPerCtn: true,
	}
}

// View is the printable projection of a document: one formatted row per item
// plus a totals row. It carries no business state.
type View struct {
	Date       string     `json:"date"`
	AccName    string     `json:"accName"`
	AccAddress string     `json:"accAddress"`
	Remarks    string     `json:"remarks"`
	HeaderNote string     `json:"headerNote"`
	Columns    []string   `json:"columns"`
	Rows       [][]string `json:"rows"`
	TotalsSpan int        `json:"totalsSpan"`
	TotalsRow  []string   `json:"totalsRow"`
}

type columnSpec struct {
	title   string
	visible func(ColumnVisibility) bool
	cell    func(entity.LineItem) string
	total   func(entity.Totals) string
}

var columnSpecs = []columnSpec{
	{"Sr", func(v ColumnVisibility) bool { return v.SR },
		func(it entity.LineItem) string { return formatInt(it.SR) }, nil},
	{"PO No", func(v ColumnVisibility) bool { return v.PONo },
		func(it entity.LineItem) string { return dash(it.PONo) }, nil},
	{"Job No", func(v ColumnVisibility) bool { return v.JobNo },
		func(it entity.LineItem) string { return it.JobNo }, nil},
	{"DC No", func(v ColumnVisibility) bool { return v.DCNo },
		func(it entity.LineItem) string { return dash(it.DCNo) }, nil},
	{"Item", func(v ColumnVisibility) bool { return v.Item },
		DisplayName, nil},
	{"Pack", func(v ColumnVisibility) bool { return v.Pack },
		func(it entity.LineItem) string { return formatQuantity(it.Pack) },
		func(t entity.Totals) string { return formatQuantity(t.Pack) }},
	{"Qty", func(v ColumnVisibility) bool { return v.Qty },
		func(it entity.LineItem) string { return formatQuantity(it.Qty) },
		func(t entity.Totals) string { return formatQuantity(t.Qty) }},
	{"Unit", func(v ColumnVisibility) bool { return v.Unit },
		func(it entity.LineItem) string { return it.Unit },
		func(entity.Totals) string { return "" }},
	{"Net. Weight", func(v ColumnVisibility) bool { return v.NetWeight },
		func(it entity.LineItem) string { return FormatWeight(it.Weight) },
		func(t entity.Totals) string { return FormatWeight(t.Weight) }},
	{"Net Wt/Ctn", func(v ColumnVisibility) bool { return v.NetWeightPerCtn },
		func(it entity.LineItem) string { return FormatWeight(NetWeightPerCtn(it)) },
		func(entity.Totals) string { return "" }},
	{"Gross Wt/Ctn", func(v ColumnVisibility) bool { return v.GrossWeightPerCtn },
		func(it entity.LineItem) string { return FormatWeight(GrossWeightPerCtn(it)) },
		func(entity.Totals) string { return "" }},
	{"Remarks", func(ColumnVisibility) bool { return true },
		func(it entity.LineItem) string { return it.Remarks },
		func(entity.Totals) string { return "" }},
}

// Render projects the document onto the fixed tabular layout under the given
// column mask. The totals label spans the visible leading non-numeric columns
// (Sr through Item).
func Render(doc *entity.Document, vis ColumnVisibility) *View {
	view := &View{
		Date:       FormatDate(doc.Header.Date),
		AccName:    doc.Header.AccName,
		AccAddress: doc.Header.AccAddress,
		Remarks:    dash(doc.Header.Remarks),
		HeaderNote: doc.Header.HeaderNote,
	}

	var visible []columnSpec
	for _, c := range columnSpecs {
		if c.visible(vis) {
			visible = append(visible, c)
			view.Columns = append(view.Columns, c.title)
			if c.total == nil {
				view.TotalsSpan++
			}
		}
	}

	for _, it := range doc.Items {
		row := make([]string, len(visible))
		for i, c := range visible {
			row[i] = c.cell(it)
		}
		view.Rows = append(view.Rows, row)
	}

	view.TotalsRow = []string{"Totals"}
	for _, c := range visible {
		if c.total != nil {
			view.TotalsRow = append(view.TotalsRow, c.total(doc.Totals))
		}
	}
	return view
}

// DisplayName returns the edited name when present, otherwise the extraction
// heuristic over the raw detail name.
func DisplayName(it entity.LineItem) string {
	if it.EditedItemName != "" {
		return it.EditedItemName
	}
	return ExtractDisplayName(it.DetailName)
}

var sizeTokenRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(MM|CM)`)

// ExtractDisplayName condenses a raw detail name to "<color> <size><unit>",
// where the color qualifier is the single word immediately before the first
// size token. Names without a size token pass through verbatim. The heuristic
// is deliberately lossy: multi-word qualifiers keep only their last word.
func ExtractDisplayName(name string) string {
	loc := sizeTokenRe.FindStringSubmatchIndex(name)
	if loc == nil {
		return name
	}
	size := name[loc[2]:loc[3]] + strings.ToUpper(name[loc[4]:loc[5]])
	words := strings.Fields(name[:loc[0]])
	if len(words) == 0 {
		return size
	}
	return words[len(words)-1] + " " + size
}

// NetWeightPerCtn is the presentation-only weight/pack derivation; zero when
// the item has no packs.
func NetWeightPerCtn(it entity.LineItem) float64 {
	if it.Pack == 0 {
		return 0
	}
	return it.Weight / it.Pack
}

// GrossWeightPerCtn approximates the per-carton gross weight by adding the
// fixed tare offset; zero when the item has no packs.
func GrossWeightPerCtn(it entity.LineItem) float64 {
	if it.Pack == 0 {
		return 0
	}
	return NetWeightPerCtn(it) + TareOffset
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"1/2/2006",
}

// FormatDate renders a date string day-first (en-GB). Unparsable input passes
// through unchanged rather than failing the render.
func FormatDate(s string) string {
	v := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return s
}

var weightPrinter = message.NewPrinter(language.English)

// FormatWeight renders a weight with thousands grouping and up to three
// fractional digits. NaN displays as 0.
func FormatWeight(v float64) string {
	if math.IsNaN(v) {
		v = 0
	}
	return weightPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

func formatQuantity(v float64) string {
	if math.IsNaN(v) {
		v = 0
	}
	return weightPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

func formatInt(v int) string {
	return strconv.Itoa(v)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
