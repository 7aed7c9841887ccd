package models

import "time"

// QuoteStatus is the lifecycle status of an RFQ.
type QuoteStatus string

const (
	SubmittedQuote QuoteStatus = "submitted" // received, not yet reviewed
	InReviewQuote  QuoteStatus = "in_review" // under review by the ops team
	QuotedQuote    QuoteStatus = "quoted"    // supplier bids collected
	ApprovedQuote  QuoteStatus = "approved"  // approved for winner selection
	WonQuote       QuoteStatus = "won"       // a winning bid has been recorded
	LostQuote      QuoteStatus = "lost"
	CancelledQuote QuoteStatus = "cancelled"
)

// AwardableQuoteStatuses lists the statuses from which a winner may be selected.
var AwardableQuoteStatuses = []QuoteStatus{SubmittedQuote, InReviewQuote, QuotedQuote, ApprovedQuote}

// Quote represents a customer's request for manufacturing quotes.
type Quote struct {
	ID                string      `json:"id"`
	CustomerEmail     string      `json:"customerEmail"`
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	Quantity          int         `json:"quantity"`
	Material          string      `json:"material"`
	Status            QuoteStatus `json:"status"`
	AwardedBidID      *string     `json:"awardedBidId,omitempty"`
	AwardedSupplierID *string     `json:"awardedSupplierId,omitempty"`
	AwardedAt         *time.Time  `json:"awardedAt,omitempty"`
	AwardedByRole     *Role       `json:"awardedByRole,omitempty"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

// QuoteRequest is the request payload for creating a quote.
type QuoteRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Material    string `json:"material"`
}
