// Package httpapi wires the HTTP surface of the banking service.
// Handlers stay thin; business rules live in the service layer.
package httpapi

import (
	"log/slog"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/adanna/bankcore/internal/accnum"
	"github.com/adanna/bankcore/internal/bank"
	"github.com/adanna/bankcore/internal/notify"
	"github.com/adanna/bankcore/internal/service/account"
	"github.com/adanna/bankcore/internal/service/transaction"
)

// Server wires handlers and middleware using Chi.
type Server struct {
	store      Store
	accountSvc account.Service
	txSvc      transaction.Service
	log        *slog.Logger
	rt         *chi.Mux
}

// New constructs the HTTP server with routes and middleware. The account
// number generator and both services are built from the given store.
func New(store Store, notifier notify.Notifier, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)

	s := &Server{
		store:      store,
		accountSvc: account.New(store, accnum.New(store), notifier, logger),
		txSvc:      transaction.New(store),
		log:        logger,
		rt:         r,
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public endpoints and attaches per-route validation.
func (s *Server) routes() {
	// Accounts (v1)
	s.rt.With(s.validateCreateAccount(bank.ProfileBasic)).Post("/v1/accounts", s.createAccount)
	s.rt.With(s.validateCreateAccount(bank.ProfileCustomer)).Post("/v1/accounts/customer", s.createAccount)
	s.rt.With(s.validateCreateAccount(bank.ProfileMerchant)).Post("/v1/accounts/merchant", s.createAccount)
	s.rt.Get("/v1/accounts/{accountNumber}", s.getAccount)
	s.rt.With(s.validateUpdateAccount()).Put("/v1/accounts/{accountNumber}", s.updateAccount)
	s.rt.With(s.validatePatchAccount()).Patch("/v1/accounts/{accountNumber}", s.patchAccount)
	s.rt.Delete("/v1/accounts/{accountNumber}", s.deleteAccount)
	s.rt.Get("/v1/accounts/{accountNumber}/name", s.nameEnquiry)
	s.rt.Get("/v1/accounts/{accountNumber}/balance", s.balanceEnquiry)
	// Transactions (v1)
	s.rt.With(s.validateTransaction()).Post("/v1/accounts/{accountNumber}/credit", s.creditAccount)
	s.rt.With(s.validateTransaction()).Post("/v1/accounts/{accountNumber}/debit", s.debitAccount)
	// Ops (unversioned)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Method(http.MethodGet, "/metrics", metricsHandler())
}
