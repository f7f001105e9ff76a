package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/milistaderegalos/payouts/docs"
	contributionhandlers "github.com/milistaderegalos/payouts/internal/handlers/contributions"
	ledgerhandlers "github.com/milistaderegalos/payouts/internal/handlers/ledger"
	payouthandlers "github.com/milistaderegalos/payouts/internal/handlers/payouts"
	"github.com/milistaderegalos/payouts/internal/service"
	"github.com/milistaderegalos/payouts/pkg/auth"
)

//go:generate mockgen -source=handlers.go -destination=handlers_mock.go -package=handlers

type LedgerHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
}

type PayoutHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	GatewayCallback(w http.ResponseWriter, r *http.Request)
	ProcessPending(w http.ResponseWriter, r *http.Request)
}

type ContributionHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	LedgerHandler       LedgerHandler
	PayoutHandler       PayoutHandler
	ContributionHandler ContributionHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		LedgerHandler:       ledgerhandlers.New(s.LedgerService, s.BalanceService),
		PayoutHandler:       payouthandlers.New(s.PayoutService),
		ContributionHandler: contributionhandlers.New(s.ContributionService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Get("/balance", h.LedgerHandler.GetBalance)
			r.Get("/ledger", h.LedgerHandler.GetHistory)
			r.Route("/payouts", func(r chi.Router) {
				r.Post("/", h.PayoutHandler.Create)
				r.Get("/", h.PayoutHandler.History)
				r.Get("/{id}", h.PayoutHandler.Get)
				r.Delete("/{id}", h.PayoutHandler.Cancel)
			})
		})

		// Internal surface for the host platform: commerce settlement,
		// gateway callbacks, the scheduler trigger and operator stats.
		// Reachable only from the private network.
		r.Route("/internal", func(r chi.Router) {
			r.Post("/contributions", h.ContributionHandler.Record)
			r.Post("/gateway/callback", h.PayoutHandler.GatewayCallback)
			r.Post("/payouts/process", h.PayoutHandler.ProcessPending)
			r.Get("/payouts/stats", h.PayoutHandler.Stats)
		})
	})

	return r
}
