package models

import "time"

// BidStatus is the lifecycle status of a supplier's bid.
type BidStatus string

const (
	SubmittedBid BidStatus = "submitted"
	WonBid       BidStatus = "won" // unique per quote
	LostBid      BidStatus = "lost"
	WithdrawnBid BidStatus = "withdrawn"
	AcceptedBid  BidStatus = "accepted"
	DeclinedBid  BidStatus = "declined"
	RevisedBid   BidStatus = "revised"
)

// Bid represents a supplier's priced response to a quote.
type Bid struct {
	ID           string    `json:"id"`
	QuoteID      string    `json:"quoteId"`
	SupplierID   string    `json:"supplierId"`
	SupplierName string    `json:"supplierName,omitempty"`
	Amount       float64   `json:"amount"`
	Currency     string    `json:"currency"`
	LeadTimeDays *int      `json:"leadTimeDays,omitempty"`
	RiskFlags    int       `json:"riskFlags"`
	Notes        string    `json:"notes,omitempty"`
	Status       BidStatus `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BidRequest is the request payload for creating or revising a bid.
type BidRequest struct {
	QuoteID      string  `json:"quoteId"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	LeadTimeDays *int    `json:"leadTimeDays,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}
