package services

import (
	"context"
	"time"

	"github.com/senyabanana/rfq-service/internal/liststate"
	"github.com/senyabanana/rfq-service/internal/models"
	"github.com/senyabanana/rfq-service/internal/notify"
	"github.com/senyabanana/rfq-service/internal/repository"

	"github.com/stretchr/testify/mock"
)

type mockQuoteRepo struct {
	mock.Mock
}

func (m *mockQuoteRepo) CreateQuote(ctx context.Context, customerEmail string, req models.QuoteRequest) (*models.Quote, error) {
	args := m.Called(ctx, customerEmail, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quote), args.Error(1)
}

func (m *mockQuoteRepo) GetQuote(ctx context.Context, quoteID string) (*models.Quote, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quote), args.Error(1)
}

func (m *mockQuoteRepo) ListQuotes(ctx context.Context, state liststate.ListState, scope repository.QuoteScope) ([]models.Quote, error) {
	args := m.Called(ctx, state, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Quote), args.Error(1)
}

func (m *mockQuoteRepo) UpdateQuoteStatus(ctx context.Context, quoteID string, status models.QuoteStatus) (*models.Quote, error) {
	args := m.Called(ctx, quoteID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quote), args.Error(1)
}

func (m *mockQuoteRepo) QuoteExists(ctx context.Context, quoteID string) (bool, error) {
	args := m.Called(ctx, quoteID)
	return args.Bool(0), args.Error(1)
}

type mockBidRepo struct {
	mock.Mock
}

func (m *mockBidRepo) CreateBid(ctx context.Context, supplierID string, req models.BidRequest) (*models.Bid, error) {
	args := m.Called(ctx, supplierID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bid), args.Error(1)
}

func (m *mockBidRepo) GetBid(ctx context.Context, bidID string) (*models.Bid, error) {
	args := m.Called(ctx, bidID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bid), args.Error(1)
}

func (m *mockBidRepo) ListQuoteBids(ctx context.Context, quoteID string) ([]models.Bid, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Bid), args.Error(1)
}

func (m *mockBidRepo) ListSupplierBids(ctx context.Context, supplierID string, limit, offset int) ([]models.Bid, error) {
	args := m.Called(ctx, supplierID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Bid), args.Error(1)
}

func (m *mockBidRepo) UpdateBidStatus(ctx context.Context, bidID string, status models.BidStatus) (*models.Bid, error) {
	args := m.Called(ctx, bidID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bid), args.Error(1)
}

func (m *mockBidRepo) ReviseBid(ctx context.Context, bidID string, amount float64, leadTimeDays *int, notes string) (*models.Bid, error) {
	args := m.Called(ctx, bidID, amount, leadTimeDays, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bid), args.Error(1)
}

func (m *mockBidRepo) HasWonBid(ctx context.Context, quoteID string) (bool, error) {
	args := m.Called(ctx, quoteID)
	return args.Bool(0), args.Error(1)
}

func (m *mockBidRepo) AwardBid(ctx context.Context, quoteID, bidID, supplierID string, byRole models.Role) error {
	args := m.Called(ctx, quoteID, bidID, supplierID, byRole)
	return args.Error(0)
}

type mockAccountRepo struct {
	mock.Mock
}

func (m *mockAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *mockAccountRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *mockAccountRepo) SetEmailRepliesEnabled(ctx context.Context, email string, enabled bool) error {
	args := m.Called(ctx, email, enabled)
	return args.Error(0)
}

type mockProjectRepo struct {
	mock.Mock
}

func (m *mockProjectRepo) EnsureProject(ctx context.Context, quoteID, supplierID string) (*models.Project, error) {
	args := m.Called(ctx, quoteID, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *mockProjectRepo) GetProjectByQuote(ctx context.Context, quoteID string) (*models.Project, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *mockProjectRepo) UpdateProject(ctx context.Context, quoteID, poNumber string, targetShipDate *time.Time, notes string) (*models.Project, error) {
	args := m.Called(ctx, quoteID, poNumber, targetShipDate, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

type mockKickoffRepo struct {
	mock.Mock
}

func (m *mockKickoffRepo) ListTasks(ctx context.Context, quoteID, supplierID string) (map[string]models.KickoffTask, error) {
	args := m.Called(ctx, quoteID, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]models.KickoffTask), args.Error(1)
}

func (m *mockKickoffRepo) SetTask(ctx context.Context, quoteID, supplierID, taskKey string, completed bool) error {
	args := m.Called(ctx, quoteID, supplierID, taskKey, completed)
	return args.Error(0)
}

type mockMessageRepo struct {
	mock.Mock
}

func (m *mockMessageRepo) CreateMessage(ctx context.Context, quoteID, senderEmail string, senderRole models.Role, body string) (*models.QuoteMessage, error) {
	args := m.Called(ctx, quoteID, senderEmail, senderRole, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuoteMessage), args.Error(1)
}

func (m *mockMessageRepo) ListMessages(ctx context.Context, quoteID string) ([]models.QuoteMessage, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QuoteMessage), args.Error(1)
}

type mockRevalidator struct {
	mock.Mock
}

func (m *mockRevalidator) RevalidateQuote(ctx context.Context, quoteID, customerEmail string) {
	m.Called(ctx, quoteID, customerEmail)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyWinner(ctx context.Context, payload notify.WinnerNotificationPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
