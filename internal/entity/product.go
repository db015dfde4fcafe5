package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog product for data transfer between layers.
type Product struct {
	ID          uuid.UUID `json:"id"`
	ProductCode string    `json:"product_code"`
	Description string    `json:"description"`
	Width       string    `json:"width"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
}
