package httpapi

// Request payloads mirror the public API. Amounts cross the wire as minor
// units so balances round-trip without precision loss.

type createAccountRequest struct {
	Firstname      string `json:"firstname" validate:"required"`
	Lastname       string `json:"lastname" validate:"required"`
	Othername      string `json:"othername"`
	Gender         string `json:"gender"`
	Address        string `json:"address"`
	StateOfOrigin  string `json:"state_of_origin"`
	Email          string `json:"email" validate:"required,email"`
	PhoneNumber    string `json:"phone_number"`
	AltPhoneNumber string `json:"alt_phone_number"`
}

type createCustomerRequest struct {
	createAccountRequest
	CustomerReferenceNumber string `json:"customer_reference_number" validate:"required"`
	// DateOfBirth format: YYYY-MM-DD
	DateOfBirth string `json:"date_of_birth" validate:"required"`
}

type createMerchantRequest struct {
	createAccountRequest
	BusinessName               string `json:"business_name" validate:"required"`
	BusinessRegistrationNumber string `json:"business_registration_number" validate:"required"`
}

// updateAccountRequest fully replaces the mutable profile fields; whatever is
// supplied, blanks included, overwrites.
type updateAccountRequest struct {
	Firstname                  string `json:"firstname"`
	Lastname                   string `json:"lastname"`
	Othername                  string `json:"othername"`
	Gender                     string `json:"gender"`
	Address                    string `json:"address"`
	StateOfOrigin              string `json:"state_of_origin"`
	PhoneNumber                string `json:"phone_number"`
	AltPhoneNumber             string `json:"alt_phone_number"`
	CustomerReferenceNumber    string `json:"customer_reference_number,omitempty"`
	DateOfBirth                string `json:"date_of_birth,omitempty"`
	BusinessName               string `json:"business_name,omitempty"`
	BusinessRegistrationNumber string `json:"business_registration_number,omitempty"`
}

// patchAccountRequest applies only the fields present in the body.
type patchAccountRequest struct {
	Firstname                  *string `json:"firstname"`
	Lastname                   *string `json:"lastname"`
	Othername                  *string `json:"othername"`
	Gender                     *string `json:"gender"`
	Address                    *string `json:"address"`
	StateOfOrigin              *string `json:"state_of_origin"`
	PhoneNumber                *string `json:"phone_number"`
	AltPhoneNumber             *string `json:"alt_phone_number"`
	CustomerReferenceNumber    *string `json:"customer_reference_number"`
	DateOfBirth                *string `json:"date_of_birth"`
	BusinessName               *string `json:"business_name"`
	BusinessRegistrationNumber *string `json:"business_registration_number"`
}

type transactionRequest struct {
	AmountMinor int64 `json:"amount_minor"`
}

// accountInfo is the snapshot projection returned with successful operations.
type accountInfo struct {
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
	BalanceMinor  int64  `json:"balance_minor"`
	Balance       string `json:"balance"`
}

// nameEnquiryResponse answers the name lookup without exposing the balance.
type nameEnquiryResponse struct {
	ResponseCode    string `json:"response_code"`
	ResponseMessage string `json:"response_message"`
	AccountName     string `json:"account_name"`
}

// bankResponse is the standard envelope for domain results.
type bankResponse struct {
	ResponseCode    string       `json:"response_code"`
	ResponseMessage string       `json:"response_message"`
	AccountInfo     *accountInfo `json:"account_info,omitempty"`
}
