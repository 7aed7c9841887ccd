package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// TypeWinnerNotification is the asynq task type for winner emails.
const TypeWinnerNotification = "notify:winner"

// WinnerNotificationPayload carries everything the worker needs to compose
// the winner email without a DB round trip.
type WinnerNotificationPayload struct {
	QuoteID       string `json:"quoteId"`
	QuoteTitle    string `json:"quoteTitle"`
	BidID         string `json:"bidId"`
	SupplierEmail string `json:"supplierEmail"`
	CustomerEmail string `json:"customerEmail"`
}

// Notifier enqueues best-effort notifications.
type Notifier interface {
	NotifyWinner(ctx context.Context, payload WinnerNotificationPayload) error
}

// AsynqNotifier enqueues notification tasks on the Redis-backed queue.
type AsynqNotifier struct {
	client *asynq.Client
}

// NewAsynqNotifier creates a new AsynqNotifier.
func NewAsynqNotifier(client *asynq.Client) *AsynqNotifier {
	return &AsynqNotifier{client: client}
}

// NotifyWinner enqueues a winner notification task.
func (n *AsynqNotifier) NotifyWinner(ctx context.Context, payload WinnerNotificationPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeWinnerNotification, data, asynq.MaxRetry(3))
	_, err = n.client.EnqueueContext(ctx, task)
	return err
}

// NoopNotifier is used when Redis is not configured.
type NoopNotifier struct{}

// NotifyWinner does nothing.
func (NoopNotifier) NotifyWinner(ctx context.Context, payload WinnerNotificationPayload) error {
	return nil
}

// WinnerNotificationHandler delivers winner emails off the queue.
type WinnerNotificationHandler struct {
	sender Sender
	logger zerolog.Logger
}

// NewWinnerNotificationHandler creates a new WinnerNotificationHandler.
func NewWinnerNotificationHandler(sender Sender, logger zerolog.Logger) *WinnerNotificationHandler {
	return &WinnerNotificationHandler{sender: sender, logger: logger}
}

// ProcessTask sends the winner email to the supplier, copying the customer.
func (h *WinnerNotificationHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload WinnerNotificationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid winner notification payload: %w", err)
	}

	subject := fmt.Sprintf("Your bid was selected: %s", payload.QuoteTitle)
	body := fmt.Sprintf(
		"Congratulations! Your bid %s was selected as the winner for RFQ %q.\nSign in to your supplier portal to begin kickoff.",
		payload.BidID, payload.QuoteTitle)

	err := h.sender.Send(ctx, []string{payload.SupplierEmail, payload.CustomerEmail}, subject, []byte(body))
	if err != nil {
		h.logger.Warn().
			Err(err).
			Str("quote_id", payload.QuoteID).
			Str("bid_id", payload.BidID).
			Msg("failed to deliver winner notification")
		return err
	}

	h.logger.Info().
		Str("quote_id", payload.QuoteID).
		Str("bid_id", payload.BidID).
		Msg("winner notification delivered")
	return nil
}
