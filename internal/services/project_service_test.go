package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/senyabanana/rfq-service/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetProject_AccessRules(t *testing.T) {
	quote := wonQuote("quote-1", "buyer@acme.test", "supp-1")
	project := &models.Project{ID: "proj-1", QuoteID: "quote-1", SupplierID: "supp-1"}

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
			projects := new(mockProjectRepo)
			quotes.On("GetQuote", mock.Anything, "quote-1").Return(quote, nil)
			projects.On("GetProjectByQuote", mock.Anything, "quote-1").Return(project, nil)
			svc := NewProjectService(projects, quotes, zerolog.Nop())

			got, err := svc.GetProject(context.Background(), "quote-1", tc.email, tc.accountID, tc.role)
			if tc.allowed {
				require.NoError(t, err)
				assert.Equal(t, "proj-1", got.ID)
			} else {
				var errResp *models.ErrorResponse
				require.ErrorAs(t, err, &errResp)
				assert.Equal(t, 403, errResp.StatusCode)
			}
		})
	}
}

func TestGetProject_NoProjectRow(t *testing.T) {
	quotes := new(mockQuoteRepo)
	projects := new(mockProjectRepo)
	quotes.On("GetQuote", mock.Anything, "quote-1").Return(wonQuote("quote-1", "buyer@acme.test", "supp-1"), nil)
	projects.On("GetProjectByQuote", mock.Anything, "quote-1").Return(nil, pgx.ErrNoRows)
	svc := NewProjectService(projects, quotes, zerolog.Nop())

	_, err := svc.GetProject(context.Background(), "quote-1", "ops@portal.test", "adm-1", models.AdminRole)

	var errResp *models.ErrorResponse
	require.ErrorAs(t, err, &errResp)
	assert.Equal(t, 404, errResp.StatusCode)
}

func TestUpdateProject_SupplierDenied(t *testing.T) {
	quotes := new(mockQuoteRepo)
	projects := new(mockProjectRepo)
	svc := NewProjectService(projects, quotes, zerolog.Nop())

	res := svc.UpdateProject(context.Background(), "quote-1", "shop@supplier.test", models.SupplierRole, models.ProjectUpdateRequest{})

	require.False(t, res.Ok)
	assert.Equal(t, "access denied", res.Error)
	quotes.AssertNotCalled(t, "GetQuote", mock.Anything, mock.Anything)
}

func TestUpdateProject_FieldValidation(t *testing.T) {
	cases := []struct {
		name string
		req  models.ProjectUpdateRequest
		msg  string
	}{
		{"po number too long", models.ProjectUpdateRequest{PONumber: strings.Repeat("x", 101)}, "PO number must be at most 100 characters"},
		{"notes too long", models.ProjectUpdateRequest{Notes: strings.Repeat("x", 2001)}, "notes must be at most 2000 characters"},
		{"bad date format", models.ProjectUpdateRequest{TargetShipDate: "next tuesday"}, "target ship date must be YYYY-MM-DD"},
		{"impossible date", models.ProjectUpdateRequest{TargetShipDate: "2026-13-45"}, "target ship date must be YYYY-MM-DD"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quotes := new(mockQuoteRepo)
			projects := new(mockProjectRepo)
			quotes.On("GetQuote", mock.Anything, "quote-1").Return(wonQuote("quote-1", "buyer@acme.test", "supp-1"), nil)
			svc := NewProjectService(projects, quotes, zerolog.Nop())

			res := svc.UpdateProject(context.Background(), "quote-1", "buyer@acme.test", models.CustomerRole, tc.req)

			require.False(t, res.Ok)
			assert.Equal(t, tc.msg, res.Error)
			projects.AssertNotCalled(t, "UpdateProject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateProject_Success(t *testing.T) {
	quotes := new(mockQuoteRepo)
	projects := new(mockProjectRepo)
	quotes.On("GetQuote", mock.Anything, "quote-1").Return(wonQuote("quote-1", "buyer@acme.test", "supp-1"), nil)

	shipDate := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	projects.On("UpdateProject", mock.Anything, "quote-1", "PO-4477", &shipDate, "rush order").
		Return(&models.Project{ID: "proj-1", PONumber: "PO-4477"}, nil)
	svc := NewProjectService(projects, quotes, zerolog.Nop())

	res := svc.UpdateProject(context.Background(), "quote-1", "buyer@acme.test", models.CustomerRole, models.ProjectUpdateRequest{
		PONumber:       "  PO-4477  ",
		TargetShipDate: "2026-10-15",
		Notes:          " rush order ",
	})

	require.True(t, res.Ok)
	projects.AssertExpectations(t)
}

func TestUpdateProject_EmptyDateIsOmitted(t *testing.T) {
	quotes := new(mockQuoteRepo)
	projects := new(mockProjectRepo)
	quotes.On("GetQuote", mock.Anything, "quote-1").Return(wonQuote("quote-1", "buyer@acme.test", "supp-1"), nil)
	projects.On("UpdateProject", mock.Anything, "quote-1", "PO-1", (*time.Time)(nil), "").
		Return(&models.Project{ID: "proj-1"}, nil)
	svc := NewProjectService(projects, quotes, zerolog.Nop())

	res := svc.UpdateProject(context.Background(), "quote-1", "buyer@acme.test", models.CustomerRole, models.ProjectUpdateRequest{
		PONumber: "PO-1",
	})

	require.True(t, res.Ok)
	projects.AssertExpectations(t)
}

func TestUpdateProject_MissingProjectRow(t *testing.T) {
	quotes := new(mockQuoteRepo)
	projects := new(mockProjectRepo)
	quotes.On("GetQuote", mock.Anything, "quote-1").Return(wonQuote("quote-1", "buyer@acme.test", "supp-1"), nil)
	projects.On("UpdateProject", mock.Anything, "quote-1", "", (*time.Time)(nil), "").
		Return(nil, pgx.ErrNoRows)
	svc := NewProjectService(projects, quotes, zerolog.Nop())

	res := svc.UpdateProject(context.Background(), "quote-1", "buyer@acme.test", models.CustomerRole, models.ProjectUpdateRequest{})

	require.False(t, res.Ok)
	assert.Equal(t, "no project exists for this quote", res.Error)
}
