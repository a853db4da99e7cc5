package httpapi

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/adanna/bankcore/internal/bank"
	"github.com/adanna/bankcore/internal/service/account"
)

// createAccount opens an account from the validated input stored in context.
// An already-registered email is not an error: the existing snapshot comes
// back with code 001 and a 200.
func (s *Server) createAccount(w http.ResponseWriter, r *http.Request) {
	in, ok := r.Context().Value(ctxKeyCreateAccount).(account.CreateInput)
	if !ok {
		writeCode(w, http.StatusInternalServerError, bank.CodeServerError)
		return
	}
	acc, created, err := s.accountSvc.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !created {
		writeSnapshot(w, http.StatusOK, bank.CodeAccountExists, acc)
		return
	}
	writeSnapshot(w, http.StatusCreated, bank.CodeAccountCreated, acc)
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "accountNumber")
	acc, err := s.accountSvc.Get(r.Context(), number)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSnapshot(w, http.StatusOK, bank.CodeAccountFound, acc)
}

func (s *Server) updateAccount(w http.ResponseWriter, r *http.Request) {
	in, ok := r.Context().Value(ctxKeyUpdateAccount).(account.UpdateInput)
	if !ok {
		writeCode(w, http.StatusInternalServerError, bank.CodeServerError)
		return
	}
	number := chi.URLParam(r, "accountNumber")
	acc, err := s.accountSvc.Update(r.Context(), number, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSnapshot(w, http.StatusOK, bank.CodeAccountUpdated, acc)
}

func (s *Server) patchAccount(w http.ResponseWriter, r *http.Request) {
	in, ok := r.Context().Value(ctxKeyPatchAccount).(account.PatchInput)
	if !ok {
		writeCode(w, http.StatusInternalServerError, bank.CodeServerError)
		return
	}
	number := chi.URLParam(r, "accountNumber")
	acc, err := s.accountSvc.PartialUpdate(r.Context(), number, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSnapshot(w, http.StatusOK, bank.CodeAccountUpdated, acc)
}

func (s *Server) deleteAccount(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "accountNumber")
	if err := s.accountSvc.Delete(r.Context(), number); err != nil {
		writeServiceError(w, err)
		return
	}
	writeCode(w, http.StatusOK, bank.CodeAccountDeleted)
}

func (s *Server) nameEnquiry(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "accountNumber")
	name, err := s.accountSvc.NameEnquiry(r.Context(), number)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	toJSON(w, http.StatusOK, nameEnquiryResponse{
		ResponseCode:    bank.CodeAccountFound,
		ResponseMessage: bank.Message(bank.CodeAccountFound),
		AccountName:     name,
	})
}

func (s *Server) balanceEnquiry(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "accountNumber")
	acc, err := s.accountSvc.BalanceEnquiry(r.Context(), number)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSnapshot(w, http.StatusOK, bank.CodeAccountFound, acc)
}
