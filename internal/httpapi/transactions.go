package httpapi

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/adanna/bankcore/internal/bank"
)

// creditAccount applies a credit. Amount checks run inside the processor so
// an unknown account reports 004 before a bad amount reports 009.
func (s *Server) creditAccount(w http.ResponseWriter, r *http.Request) {
	req, ok := r.Context().Value(ctxKeyTransaction).(transactionRequest)
	if !ok {
		writeCode(w, http.StatusInternalServerError, bank.CodeServerError)
		return
	}
	number := chi.URLParam(r, "accountNumber")
	acc, err := s.txSvc.Credit(r.Context(), number, bank.AmountFromMinor(req.AmountMinor))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSnapshot(w, http.StatusOK, bank.CodeAccountCredited, acc)
}

func (s *Server) debitAccount(w http.ResponseWriter, r *http.Request) {
	req, ok := r.Context().Value(ctxKeyTransaction).(transactionRequest)
	if !ok {
		writeCode(w, http.StatusInternalServerError, bank.CodeServerError)
		return
	}
	number := chi.URLParam(r, "accountNumber")
	acc, err := s.txSvc.Debit(r.Context(), number, bank.AmountFromMinor(req.AmountMinor))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSnapshot(w, http.StatusOK, bank.CodeAccountDebited, acc)
}
