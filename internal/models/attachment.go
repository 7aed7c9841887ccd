package models

import "time"

// QuoteAttachment is a file uploaded against a quote, stored in object storage.
type QuoteAttachment struct {
	ID          string    `json:"id"`
	QuoteID     string    `json:"quoteId"`
	FileName    string    `json:"fileName"`
	ObjectKey   string    `json:"-"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	UploadedBy  string    `json:"uploadedBy"`
	CreatedAt   time.Time `json:"createdAt"`
}
