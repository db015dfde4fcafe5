package entity

import (
	"time"

	"github.com/google/uuid"
)

// ShrinkageReport represents a lab test certificate for data transfer between layers.
// All test parameters are free-text as entered on the control panel.
type ShrinkageReport struct {
	ID                   uuid.UUID `json:"id"`
	ProductCode          string    `json:"product_code"`
	PONumber             string    `json:"po_number"`
	DCNumber             string    `json:"dc_number"`
	Date                 string    `json:"date"`
	ItemNumber           string    `json:"item_number"`
	ProductDescription   string    `json:"product_description"`
	Color                string    `json:"color"`
	ShrinkageRequirement string    `json:"shrinkage_requirement"`
	Temp                 string    `json:"temp"`
	DimensionalChange    string    `json:"dimensional_change"`
	PH                   string    `json:"ph"`
	Result               string    `json:"result"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
