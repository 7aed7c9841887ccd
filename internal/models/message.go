package models

import "time"

// QuoteMessage is one entry in a quote's messaging thread.
type QuoteMessage struct {
	ID          string    `json:"id"`
	QuoteID     string    `json:"quoteId"`
	SenderEmail string    `json:"senderEmail"`
	SenderRole  Role      `json:"senderRole"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"createdAt"`
}
