package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/senyabanana/rfq-service/internal/auth"
	"github.com/senyabanana/rfq-service/internal/cache"
	"github.com/senyabanana/rfq-service/internal/models"
	"github.com/senyabanana/rfq-service/internal/notify"
	"github.com/senyabanana/rfq-service/internal/services"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAwardHandler(accounts *stubAccountRepo) *AwardHandler {
	svc := services.NewAwardService(nil, nil, accounts, nil, cache.NoopRevalidator{}, notify.NoopNotifier{}, zerolog.Nop())
	return NewAwardHandler(svc, zerolog.Nop(), time.Second)
}

func awardRequest(t *testing.T, body, contentType string, account *models.Account) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/quotes/quote-1/award", strings.NewReader(body))
	req.SetPathValue("quoteId", "quote-1")
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, account))
	return req
}

func TestSelectWinnerHandler_MissingBidIDStillHTTP200(t *testing.T) {
	account := &models.Account{ID: "acc-1", Email: "buyer@acme.test", Role: models.CustomerRole}
	h := newAwardHandler(new(stubAccountRepo))
	protected := auth.Middleware(testJWTSecret)(http.HandlerFunc(h.SelectWinner))

	req := awardRequest(t, `{}`, "application/json", account)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":false,"error":"missing quote or bid id"}`, rec.Body.String())
}

func TestSelectWinnerHandler_JSONBody(t *testing.T) {
	account := &models.Account{ID: "acc-1", Email: "ghost@acme.test", Role: models.CustomerRole}
	accounts := new(stubAccountRepo)
	accounts.On("GetByEmail", mock.Anything, "ghost@acme.test").Return(nil, pgx.ErrNoRows)
	h := newAwardHandler(accounts)
	protected := auth.Middleware(testJWTSecret)(http.HandlerFunc(h.SelectWinner))

	req := awardRequest(t, `{"bidId":"bid-1"}`, "application/json", account)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":false,"error":"access denied"}`, rec.Body.String())
	accounts.AssertExpectations(t)
}

func TestSelectWinnerHandler_FormBody(t *testing.T) {
	account := &models.Account{ID: "acc-1", Email: "ghost@acme.test", Role: models.CustomerRole}
	accounts := new(stubAccountRepo)
	accounts.On("GetByEmail", mock.Anything, "ghost@acme.test").Return(nil, pgx.ErrNoRows)
	h := newAwardHandler(accounts)
	protected := auth.Middleware(testJWTSecret)(http.HandlerFunc(h.SelectWinner))

	form := url.Values{}
	form.Set("bidId", "bid-1")
	form.Set("overrideEmail", "buyer@acme.test")
	req := awardRequest(t, form.Encode(), "application/x-www-form-urlencoded", account)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":false,"error":"access denied"}`, rec.Body.String())
}

func TestSelectWinnerHandler_SupplierForbidden(t *testing.T) {
	account := &models.Account{ID: "supp-1", Email: "shop@supplier.test", Role: models.SupplierRole}
	h := newAwardHandler(new(stubAccountRepo))
	protected := auth.Middleware(testJWTSecret)(RequireAwardRoles(h.SelectWinner))

	req := awardRequest(t, `{"bidId":"bid-1"}`, "application/json", account)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSelectWinnerHandler_NoSession(t *testing.T) {
	h := newAwardHandler(new(stubAccountRepo))
	protected := auth.Middleware(testJWTSecret)(http.HandlerFunc(h.SelectWinner))

	req := httptest.NewRequest(http.MethodPost, "/api/quotes/quote-1/award", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
