package services

import (
	"context"
	"strings"
	"testing"

	"github.com/senyabanana/rfq-service/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPostMessage_BodyValidation(t *testing.T) {
	svc := NewMessageService(new(mockMessageRepo), new(mockQuoteRepo), new(mockBidRepo), zerolog.Nop())

	_, res := svc.PostMessage(context.Background(), "quote-1", "   ", "buyer@acme.test", "cust-1", models.CustomerRole)
	require.False(t, res.Ok)
	assert.Equal(t, "message body is required", res.Error)

	_, res = svc.PostMessage(context.Background(), "quote-1", strings.Repeat("x", 2001), "buyer@acme.test", "cust-1", models.CustomerRole)
	require.False(t, res.Ok)
	assert.Equal(t, "message must be at most 2000 characters", res.Error)
}

func TestPostMessage_ParticipantsOnly(t *testing.T) {
	quotes := new(mockQuoteRepo)
	bids := new(mockBidRepo)
	messages := new(mockMessageRepo)
	quotes.On("GetQuote", mock.Anything, "quote-1").Return(awardableQuote("quote-1", "buyer@acme.test"), nil)
	bids.On("ListQuoteBids", mock.Anything, "quote-1").Return([]models.Bid{
		{ID: "bid-1", SupplierID: "supp-1"},
	}, nil)
	svc := NewMessageService(messages, quotes, bids, zerolog.Nop())

	_, res := svc.PostMessage(context.Background(), "quote-1", "any update?", "other@corp.test", "cust-2", models.CustomerRole)
	require.False(t, res.Ok)
	assert.Equal(t, "access denied", res.Error)

	_, res = svc.PostMessage(context.Background(), "quote-1", "any update?", "rival@supplier.test", "supp-2", models.SupplierRole)
	require.False(t, res.Ok)
	assert.Equal(t, "access denied", res.Error)

	messages.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPostMessage_BiddingSupplierMayPost(t *testing.T) {
	quotes := new(mockQuoteRepo)
	bids := new(mockBidRepo)
	messages := new(mockMessageRepo)
	quotes.On("GetQuote", mock.Anything, "quote-1").Return(awardableQuote("quote-1", "buyer@acme.test"), nil)
	bids.On("ListQuoteBids", mock.Anything, "quote-1").Return([]models.Bid{
		{ID: "bid-1", SupplierID: "supp-1"},
	}, nil)
	messages.On("CreateMessage", mock.Anything, "quote-1", "shop@supplier.test", models.SupplierRole, "drawings received").
		Return(&models.QuoteMessage{ID: "msg-1", Body: "drawings received"}, nil)
	svc := NewMessageService(messages, quotes, bids, zerolog.Nop())

	msg, res := svc.PostMessage(context.Background(), "quote-1", "  drawings received  ", "shop@supplier.test", "supp-1", models.SupplierRole)

	require.True(t, res.Ok)
	assert.Equal(t, "msg-1", msg.ID)
	messages.AssertExpectations(t)
}

func TestPostMessage_QuoteNotFound(t *testing.T) {
	quotes := new(mockQuoteRepo)
	quotes.On("GetQuote", mock.Anything, "quote-404").Return(nil, pgx.ErrNoRows)
	svc := NewMessageService(new(mockMessageRepo), quotes, new(mockBidRepo), zerolog.Nop())

	msg, res := svc.PostMessage(context.Background(), "quote-404", "hello", "ops@portal.test", "adm-1", models.AdminRole)

	assert.Nil(t, msg)
	require.False(t, res.Ok)
	assert.Equal(t, "quote not found", res.Error)
}

func TestListThread(t *testing.T) {
	quotes := new(mockQuoteRepo)
	messages := new(mockMessageRepo)
	quotes.On("GetQuote", mock.Anything, "quote-1").Return(awardableQuote("quote-1", "buyer@acme.test"), nil)
	messages.On("ListMessages", mock.Anything, "quote-1").Return([]models.QuoteMessage{
		{ID: "msg-1"}, {ID: "msg-2"},
	}, nil)
	svc := NewMessageService(messages, quotes, new(mockBidRepo), zerolog.Nop())

	thread, err := svc.ListThread(context.Background(), "quote-1", "buyer@acme.test", "cust-1", models.CustomerRole)

	require.NoError(t, err)
	assert.Len(t, thread, 2)
}

func TestListThread_AccessDenied(t *testing.T) {
	quotes := new(mockQuoteRepo)
	bids := new(mockBidRepo)
	quotes.On("GetQuote", mock.Anything, "quote-1").Return(awardableQuote("quote-1", "buyer@acme.test"), nil)
	bids.On("ListQuoteBids", mock.Anything, "quote-1").Return([]models.Bid{}, nil)
	svc := NewMessageService(new(mockMessageRepo), quotes, bids, zerolog.Nop())

	_, err := svc.ListThread(context.Background(), "quote-1", "rival@supplier.test", "supp-2", models.SupplierRole)

	var errResp *models.ErrorResponse
	require.ErrorAs(t, err, &errResp)
	assert.Equal(t, 403, errResp.StatusCode)
}
