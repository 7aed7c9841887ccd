package models

import "time"

// KickoffStatus is the derived overall state of a kickoff checklist.
type KickoffStatus string

const (
	KickoffNotStarted KickoffStatus = "not_started"
	KickoffInProgress KickoffStatus = "in_progress"
	KickoffComplete   KickoffStatus = "complete"
)

// KickoffTask is a per-quote, per-supplier checklist item. Tasks without a
// persisted row behave as pending.
type KickoffTask struct {
	TaskKey     string     `json:"taskKey"`
	Label       string     `json:"label"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// KickoffChecklist is the merged view of persisted rows over the default
// task template, with a derived summary.
type KickoffChecklist struct {
	QuoteID    string        `json:"quoteId"`
	SupplierID string        `json:"supplierId"`
	Tasks      []KickoffTask `json:"tasks"`
	Completed  int           `json:"completed"`
	Total      int           `json:"total"`
	Status     KickoffStatus `json:"status"`
}
