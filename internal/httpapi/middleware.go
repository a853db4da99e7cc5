// Package httpapi contains HTTP handlers and middleware.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/adanna/bankcore/internal/bank"
	"github.com/adanna/bankcore/internal/service/account"
)

type ctxKey string

const ctxKeyCreateAccount ctxKey = "validatedCreateAccount"
const ctxKeyUpdateAccount ctxKey = "validatedUpdateAccount"
const ctxKeyPatchAccount ctxKey = "validatedPatchAccount"
const ctxKeyTransaction ctxKey = "validatedTransaction"

// validateCreateAccount parses and validates the creation payload for the
// given profile kind and stores the service input in the request context.
func (s *Server) validateCreateAccount(kind bank.ProfileKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) {
				return
			}
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()

			var in account.CreateInput
			switch kind {
			case bank.ProfileCustomer:
				var req createCustomerRequest
				if err := dec.Decode(&req); err != nil {
					badRequest(w, "invalid JSON: "+err.Error())
					return
				}
				if details := checkStruct(req); details != nil {
					toJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Details: details})
					return
				}
				dob, err := time.Parse("2006-01-02", req.DateOfBirth)
				if err != nil {
					badRequest(w, "invalid date_of_birth, expected YYYY-MM-DD")
					return
				}
				in = account.CreateInput{Email: req.Email, Profile: toProfile(req.createAccountRequest, bank.ProfileCustomer)}
				in.Profile.Customer = &bank.CustomerData{ReferenceNumber: req.CustomerReferenceNumber, DateOfBirth: dob}
			case bank.ProfileMerchant:
				var req createMerchantRequest
				if err := dec.Decode(&req); err != nil {
					badRequest(w, "invalid JSON: "+err.Error())
					return
				}
				if details := checkStruct(req); details != nil {
					toJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Details: details})
					return
				}
				in = account.CreateInput{Email: req.Email, Profile: toProfile(req.createAccountRequest, bank.ProfileMerchant)}
				in.Profile.Merchant = &bank.MerchantData{BusinessName: req.BusinessName, RegistrationNumber: req.BusinessRegistrationNumber}
			default:
				var req createAccountRequest
				if err := dec.Decode(&req); err != nil {
					badRequest(w, "invalid JSON: "+err.Error())
					return
				}
				if details := checkStruct(req); details != nil {
					toJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Details: details})
					return
				}
				in = account.CreateInput{Email: req.Email, Profile: toProfile(req, bank.ProfileBasic)}
			}

			ctx := context.WithValue(r.Context(), ctxKeyCreateAccount, in)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validateUpdateAccount parses the full-update payload.
func (s *Server) validateUpdateAccount() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) {
				return
			}
			var req updateAccountRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				badRequest(w, "invalid JSON: "+err.Error())
				return
			}
			in := account.UpdateInput{
				Firstname:      req.Firstname,
				Lastname:       req.Lastname,
				Othername:      req.Othername,
				Gender:         req.Gender,
				Address:        req.Address,
				StateOfOrigin:  req.StateOfOrigin,
				PhoneNumber:    req.PhoneNumber,
				AltPhoneNumber: req.AltPhoneNumber,
			}
			if req.CustomerReferenceNumber != "" || req.DateOfBirth != "" {
				dob, err := time.Parse("2006-01-02", req.DateOfBirth)
				if err != nil {
					badRequest(w, "invalid date_of_birth, expected YYYY-MM-DD")
					return
				}
				in.Customer = &bank.CustomerData{ReferenceNumber: req.CustomerReferenceNumber, DateOfBirth: dob}
			}
			if req.BusinessName != "" || req.BusinessRegistrationNumber != "" {
				in.Merchant = &bank.MerchantData{BusinessName: req.BusinessName, RegistrationNumber: req.BusinessRegistrationNumber}
			}
			ctx := context.WithValue(r.Context(), ctxKeyUpdateAccount, in)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validatePatchAccount parses the partial-update payload; absent fields stay nil.
func (s *Server) validatePatchAccount() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) {
				return
			}
			var req patchAccountRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				badRequest(w, "invalid JSON: "+err.Error())
				return
			}
			in := account.PatchInput{
				Firstname:      req.Firstname,
				Lastname:       req.Lastname,
				Othername:      req.Othername,
				Gender:         req.Gender,
				Address:        req.Address,
				StateOfOrigin:  req.StateOfOrigin,
				PhoneNumber:    req.PhoneNumber,
				AltPhoneNumber: req.AltPhoneNumber,
			}
			if req.CustomerReferenceNumber != nil || req.DateOfBirth != nil {
				c := bank.CustomerData{}
				if req.CustomerReferenceNumber != nil {
					c.ReferenceNumber = *req.CustomerReferenceNumber
				}
				if req.DateOfBirth != nil {
					dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
					if err != nil {
						badRequest(w, "invalid date_of_birth, expected YYYY-MM-DD")
						return
					}
					c.DateOfBirth = dob
				}
				in.Customer = &c
			}
			if req.BusinessName != nil || req.BusinessRegistrationNumber != nil {
				m := bank.MerchantData{}
				if req.BusinessName != nil {
					m.BusinessName = *req.BusinessName
				}
				if req.BusinessRegistrationNumber != nil {
					m.RegistrationNumber = *req.BusinessRegistrationNumber
				}
				in.Merchant = &m
			}
			ctx := context.WithValue(r.Context(), ctxKeyPatchAccount, in)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validateTransaction parses the credit/debit payload. The amount itself is
// validated by the processor so the documented check order holds.
func (s *Server) validateTransaction() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) {
				return
			}
			var req transactionRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				badRequest(w, "invalid JSON: "+err.Error())
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyTransaction, req)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func toProfile(req createAccountRequest, kind bank.ProfileKind) bank.Profile {
	return bank.Profile{
		Kind:           kind,
		Firstname:      req.Firstname,
		Lastname:       req.Lastname,
		Othername:      req.Othername,
		Gender:         req.Gender,
		Address:        req.Address,
		StateOfOrigin:  req.StateOfOrigin,
		PhoneNumber:    req.PhoneNumber,
		AltPhoneNumber: req.AltPhoneNumber,
	}
}
