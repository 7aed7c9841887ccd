package models

import "time"

// Project is the one-per-awarded-quote fulfillment record, created lazily
// when a winner is selected.
type Project struct {
	ID             string     `json:"id"`
	QuoteID        string     `json:"quoteId"`
	SupplierID     string     `json:"supplierId"`
	PONumber       string     `json:"poNumber,omitempty"`
	TargetShipDate *time.Time `json:"targetShipDate,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// ProjectUpdateRequest carries the editable fulfillment fields.
type ProjectUpdateRequest struct {
	PONumber       string `json:"poNumber"`
	TargetShipDate string `json:"targetShipDate"` // YYYY-MM-DD
	Notes          string `json:"notes"`
}
