package router

import (
	"net/http"

	"github.com/senyabanana/rfq-service/internal/auth"
	"github.com/senyabanana/rfq-service/internal/handlers"
	"github.com/senyabanana/rfq-service/internal/models"
)

// Handlers bundles the route handlers wired in main.
type Handlers struct {
	Account    *handlers.AccountHandler
	Quote      *handlers.QuoteHandler
	Bid        *handlers.BidHandler
	Award      *handlers.AwardHandler
	Kickoff    *handlers.KickoffHandler
	Project    *handlers.ProjectHandler
	Message    *handlers.MessageHandler
	Attachment *handlers.AttachmentHandler
}

// InitRoutes assembles the public and authenticated route trees.
func InitRoutes(h Handlers, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/ping", handlers.PingHandler)
	mux.HandleFunc("POST /api/auth/login", h.Account.Login)

	protected := http.NewServeMux()
	protected.HandleFunc("POST /api/account/email-prefs", h.Account.EmailPrefs)

	protected.HandleFunc("POST /api/quotes", auth.RequireRole(h.Quote.CreateQuote, models.CustomerRole))
	protected.HandleFunc("GET /api/quotes", h.Quote.ListQuotes)
	protected.HandleFunc("GET /api/quotes/{quoteId}", h.Quote.GetQuote)
	protected.HandleFunc("PUT /api/quotes/{quoteId}/status", h.Quote.UpdateQuoteStatus)

	protected.HandleFunc("POST /api/bids", auth.RequireRole(h.Bid.CreateBid, models.SupplierRole))
	protected.HandleFunc("GET /api/bids/my", auth.RequireRole(h.Bid.ListMyBids, models.SupplierRole))
	protected.HandleFunc("POST /api/bids/{bidId}/withdraw", auth.RequireRole(h.Bid.WithdrawBid, models.SupplierRole))
	protected.HandleFunc("PATCH /api/bids/{bidId}", auth.RequireRole(h.Bid.ReviseBid, models.SupplierRole))
	protected.HandleFunc("GET /api/quotes/{quoteId}/bids", h.Bid.ListQuoteBids)
	protected.HandleFunc("GET /api/quotes/{quoteId}/bids/compare", h.Bid.CompareQuoteBids)

	protected.HandleFunc("POST /api/quotes/{quoteId}/award", handlers.RequireAwardRoles(h.Award.SelectWinner))

	protected.HandleFunc("GET /api/quotes/{quoteId}/kickoff", h.Kickoff.GetChecklist)
	protected.HandleFunc("POST /api/quotes/{quoteId}/kickoff/{taskKey}", h.Kickoff.ToggleTask)

	protected.HandleFunc("GET /api/quotes/{quoteId}/project", h.Project.GetProject)
	protected.HandleFunc("PUT /api/quotes/{quoteId}/project", h.Project.UpdateProject)

	protected.HandleFunc("GET /api/quotes/{quoteId}/messages", h.Message.ListThread)
	protected.HandleFunc("POST /api/quotes/{quoteId}/messages", h.Message.PostMessage)

	protected.HandleFunc("POST /api/quotes/{quoteId}/attachments", h.Attachment.Upload)
	protected.HandleFunc("GET /api/quotes/{quoteId}/attachments", h.Attachment.List)

	mux.Handle("/api/", auth.Middleware(jwtSecret)(protected))

	return mux
}
