package bank

// Response codes surfaced to API callers. Codes are stable; messages are
// presentation defaults the transport layer may reuse verbatim.
const (
	CodeAccountExists       = "001"
	CodeAccountCreated      = "002"
	CodeAccountFound        = "003"
	CodeAccountNotFound     = "004"
	CodeAccountDeleted      = "005"
	CodeAccountUpdated      = "006"
	CodeAccountCredited     = "007"
	CodeAccountDebited      = "008"
	CodeInvalidAmount       = "009"
	CodeAccountInactive     = "010"
	CodeInsufficientBalance = "011"
	CodeTransientFailure    = "012"
	CodeServerError         = "013"
)

// Message returns the default human message for a response code.
func Message(code string) string {
	switch code {
	case CodeAccountExists:
		return "Account already exists"
	case CodeAccountCreated:
		return "Account created"
	case CodeAccountFound:
		return "Account found"
	case CodeAccountNotFound:
		return "Account not found"
	case CodeAccountDeleted:
		return "Account deleted"
	case CodeAccountUpdated:
		return "Account updated"
	case CodeAccountCredited:
		return "Account credited"
	case CodeAccountDebited:
		return "Account debited"
	case CodeInvalidAmount:
		return "Amount must be greater than zero"
	case CodeAccountInactive:
		return "Account is inactive"
	case CodeInsufficientBalance:
		return "Insufficient balance"
	case CodeTransientFailure:
		return "Temporary failure, please retry"
	default:
		return "Internal server error"
	}
}
