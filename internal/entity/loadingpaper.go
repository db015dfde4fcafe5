package entity

import (
	"time"

	"github.com/google/uuid"
)

// RawRow is one element of the uploaded DC JSON's Rows array. Values are kept
// exactly as decoded; coercion happens during normalization.
type RawRow map[string]any

// DocumentHeader carries the manifest-level fields derived from the first raw
// row at ingestion time. It is immutable except for HeaderNote.
type DocumentHeader struct {
	DCNo       string `json:"dcNo"`
	PONo       string `json:"poNo"`
	Date       string `json:"date"`
	AccName    string `json:"accName"`
	AccAddress string `json:"accAddress"`
	Remarks    string `json:"remarks"`
	HeaderNote string `json:"headerNote"`
}

// LineItem is a single manifest line. SR is a dense 1-based display-order
// index, recomputed after every structural change; it is not a stable identity.
type LineItem struct {
	SR             int     `json:"sr"`
	DetailName     string  `json:"detailName"`
	Unit           string  `json:"unit"`
	JobNo          string  `json:"jobNo"`
	Pack           float64 `json:"pack"`
	Qty            float64 `json:"qty"`
	Weight         float64 `json:"weight"`
	PONo           string  `json:"poNo"`
	DCNo           string  `json:"dcNo"`
	Remarks        string  `json:"remarks"`
	EditedItemName string  `json:"editedItemName,omitempty"`
}

// Totals is derived state: the elementwise sum over the current items,
// non-finite values counting as zero. Never mutated independently.
type Totals struct {
	Pack   float64 `json:"pack"`
	Qty    float64 `json:"qty"`
	Weight float64 `json:"weight"`
}

// Document is the in-memory loading paper: header, ordered items, and totals.
type Document struct {
	Header DocumentHeader `json:"header"`
	Items  []LineItem     `json:"items"`
	Totals Totals         `json:"totals"`
}

// Paper is a persisted loading_papers row for data transfer between layers.
type Paper struct {
	ID         uuid.UUID `json:"id"`
	DCNo       string    `json:"dc_no"`
	PONo       string    `json:"po_no"`
	Date       string    `json:"date"`
	AccName    string    `json:"acc_name"`
	AccAddress string    `json:"acc_address"`
	Remarks    string    `json:"remarks"`
	HeaderNote string    `json:"header_note"`
	CreatedAt  time.Time `json:"created_at"`
}
