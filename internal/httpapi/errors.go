package httpapi

import (
	"errors"
	"net/http"

	"github.com/adanna/bankcore/internal/bank"
	"github.com/adanna/bankcore/internal/errs"
)

// errorResponse is the payload for malformed requests (bad JSON, failed
// field validation). Domain outcomes use bankResponse instead.
type errorResponse struct {
	Error   string            `json:"error"`
	Details []validationError `json:"details,omitempty"`
}

func badRequest(w http.ResponseWriter, msg string) {
	toJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// writeCode emits a bankResponse without an account snapshot.
func writeCode(w http.ResponseWriter, status int, code string) {
	toJSON(w, status, bankResponse{ResponseCode: code, ResponseMessage: bank.Message(code)})
}

// writeSnapshot emits a bankResponse carrying the account projection.
func writeSnapshot(w http.ResponseWriter, status int, code string, acc bank.Account) {
	units := acc.BalanceMinor()
	toJSON(w, status, bankResponse{
		ResponseCode:    code,
		ResponseMessage: bank.Message(code),
		AccountInfo: &accountInfo{
			AccountNumber: acc.AccountNumber,
			AccountName:   acc.FullName(),
			BalanceMinor:  units,
			Balance:       bank.FormatMinor(units),
		},
	})
}

// writeServiceError maps sentinel errors to HTTP status and response code.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		writeCode(w, http.StatusNotFound, bank.CodeAccountNotFound)
	case errors.Is(err, errs.ErrInvalidAmount):
		writeCode(w, http.StatusUnprocessableEntity, bank.CodeInvalidAmount)
	case errors.Is(err, errs.ErrAccountInactive):
		writeCode(w, http.StatusUnprocessableEntity, bank.CodeAccountInactive)
	case errors.Is(err, errs.ErrInsufficientBalance):
		writeCode(w, http.StatusUnprocessableEntity, bank.CodeInsufficientBalance)
	case errors.Is(err, errs.ErrConcurrentUpdate):
		writeCode(w, http.StatusServiceUnavailable, bank.CodeTransientFailure)
	case errors.Is(err, errs.ErrNumberSpaceExhausted):
		writeCode(w, http.StatusInternalServerError, bank.CodeServerError)
	case errors.Is(err, errs.ErrInvalid):
		badRequest(w, "invalid request")
	default:
		writeCode(w, http.StatusInternalServerError, bank.CodeServerError)
	}
}
