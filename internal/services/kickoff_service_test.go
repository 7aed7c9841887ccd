package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/senyabanana/rfq-service/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func wonQuote(id, customerEmail, supplierID string) *models.Quote {
	return &models.Quote{
		ID:                id,
		CustomerEmail:     customerEmail,
		Status:            models.WonQuote,
		AwardedSupplierID: &supplierID,
	}
}

func TestMergeChecklist_NoRows(t *testing.T) {
	checklist := MergeChecklist("quote-1", "supp-1", nil)

	require.Len(t, checklist.Tasks, len(DefaultKickoffTemplate))
	assert.Equal(t, 0, checklist.Completed)
	assert.Equal(t, len(DefaultKickoffTemplate), checklist.Total)
	assert.Equal(t, models.KickoffNotStarted, checklist.Status)

	for i, task := range checklist.Tasks {
		assert.Equal(t, DefaultKickoffTemplate[i].TaskKey, task.TaskKey)
		assert.False(t, task.Completed)
		assert.Nil(t, task.CompletedAt)
	}
}

func TestMergeChecklist_PartialRows(t *testing.T) {
	now := time.Now()
	rows := map[string]models.KickoffTask{
		"confirm_po":      {TaskKey: "confirm_po", Completed: true, CompletedAt: &now},
		"review_drawings": {TaskKey: "review_drawings", Completed: false},
	}

	checklist := MergeChecklist("quote-1", "supp-1", rows)

	assert.Equal(t, 1, checklist.Completed)
	assert.Equal(t, models.KickoffInProgress, checklist.Status)
	assert.True(t, checklist.Tasks[0].Completed)
	assert.Equal(t, &now, checklist.Tasks[0].CompletedAt)
	assert.False(t, checklist.Tasks[1].Completed)
}

func TestMergeChecklist_AllComplete(t *testing.T) {
	rows := make(map[string]models.KickoffTask, len(DefaultKickoffTemplate))
	for _, tmpl := range DefaultKickoffTemplate {
		rows[tmpl.TaskKey] = models.KickoffTask{TaskKey: tmpl.TaskKey, Completed: true}
	}

	checklist := MergeChecklist("quote-1", "supp-1", rows)

	assert.Equal(t, checklist.Total, checklist.Completed)
	assert.Equal(t, models.KickoffComplete, checklist.Status)
}

func TestMergeChecklist_IgnoresUnknownRows(t *testing.T) {
	rows := map[string]models.KickoffTask{
		"paint_the_shed": {TaskKey: "paint_the_shed", Completed: true},
	}

	checklist := MergeChecklist("quote-1", "supp-1", rows)

	assert.Equal(t, 0, checklist.Completed)
	assert.Len(t, checklist.Tasks, len(DefaultKickoffTemplate))
}

func TestGetChecklist_AccessRules(t *testing.T) {
	quote := wonQuote("quote-1", "buyer@acme.test", "supp-1")

	cases := []struct {
		name      string
		email     string
		accountID string
		role      models.Role
		allowed   bool
	}{
		{"owning customer", "buyer@acme.test", "cust-1", models.CustomerRole, true},
		{"foreign customer", "other@corp.test", "cust-2", models.CustomerRole, false},
		{"awarded supplier", "shop@supplier.test", "supp-1", models.SupplierRole, true},
		{"other supplier", "rival@supplier.test", "supp-2", models.SupplierRole, false},
		{"admin", "ops@portal.test", "adm-1", models.AdminRole, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quotes := new(mockQuoteRepo)
			kickoffs := new(mockKickoffRepo)
			quotes.On("GetQuote", mock.Anything, "quote-1").Return(quote, nil)
			kickoffs.On("ListTasks", mock.Anything, "quote-1", "supp-1").Return(map[string]models.KickoffTask{}, nil)
			svc := NewKickoffService(kickoffs, quotes, zerolog.Nop())

			checklist, err := svc.GetChecklist(context.Background(), "quote-1", tc.email, tc.accountID, tc.role)
			if tc.allowed {
				require.NoError(t, err)
				assert.Equal(t, "supp-1", checklist.SupplierID)
			} else {
				require.Error(t, err)
				var errResp *models.ErrorResponse
				require.ErrorAs(t, err, &errResp)
				assert.Equal(t, 403, errResp.StatusCode)
			}
		})
	}
}

func TestGetChecklist_RequiresRecordedWinner(t *testing.T) {
	quotes := new(mockQuoteRepo)
	kickoffs := new(mockKickoffRepo)
	quotes.On("GetQuote", mock.Anything, "quote-1").Return(awardableQuote("quote-1", "buyer@acme.test"), nil)
	svc := NewKickoffService(kickoffs, quotes, zerolog.Nop())

	_, err := svc.GetChecklist(context.Background(), "quote-1", "buyer@acme.test", "cust-1", models.CustomerRole)

	var errResp *models.ErrorResponse
	require.ErrorAs(t, err, &errResp)
	assert.Equal(t, 400, errResp.StatusCode)
	kickoffs.AssertNotCalled(t, "ListTasks", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleTask_UnknownKey(t *testing.T) {
	svc := NewKickoffService(new(mockKickoffRepo), new(mockQuoteRepo), zerolog.Nop())

	res := svc.ToggleTask(context.Background(), "quote-1", "paint_the_shed", "buyer@acme.test", "cust-1", models.CustomerRole, true)

	require.False(t, res.Ok)
	assert.Equal(t, "unknown kickoff task", res.Error)
}

func TestToggleTask_Success(t *testing.T) {
	quotes := new(mockQuoteRepo)
	kickoffs := new(mockKickoffRepo)
	quotes.On("GetQuote", mock.Anything, "quote-1").Return(wonQuote("quote-1", "buyer@acme.test", "supp-1"), nil)
	kickoffs.On("SetTask", mock.Anything, "quote-1", "supp-1", "confirm_po", true).Return(nil)
	svc := NewKickoffService(kickoffs, quotes, zerolog.Nop())

	res := svc.ToggleTask(context.Background(), "quote-1", "confirm_po", "shop@supplier.test", "supp-1", models.SupplierRole, true)

	require.True(t, res.Ok)
	kickoffs.AssertExpectations(t)
}

func TestToggleTask_AccessDeniedMessageSurfaces(t *testing.T) {
	quotes := new(mockQuoteRepo)
	kickoffs := new(mockKickoffRepo)
	quotes.On("GetQuote", mock.Anything, "quote-1").Return(wonQuote("quote-1", "buyer@acme.test", "supp-1"), nil)
	svc := NewKickoffService(kickoffs, quotes, zerolog.Nop())

	res := svc.ToggleTask(context.Background(), "quote-1", "confirm_po", "rival@supplier.test", "supp-2", models.SupplierRole, true)

	require.False(t, res.Ok)
	assert.Equal(t, "access denied", res.Error)
	kickoffs.AssertNotCalled(t, "SetTask", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleTask_RepoFailureIsGenericMessage(t *testing.T) {
	quotes := new(mockQuoteRepo)
	kickoffs := new(mockKickoffRepo)
	quotes.On("GetQuote", mock.Anything, "quote-1").Return(wonQuote("quote-1", "buyer@acme.test", "supp-1"), nil)
	kickoffs.On("SetTask", mock.Anything, "quote-1", "supp-1", "quality_plan", false).Return(errors.New("deadlock detected"))
	svc := NewKickoffService(kickoffs, quotes, zerolog.Nop())

	res := svc.ToggleTask(context.Background(), "quote-1", "quality_plan", "ops@portal.test", "adm-1", models.AdminRole, false)

	require.False(t, res.Ok)
	assert.Equal(t, "something went wrong, please try again", res.Error)
}
