package constants

import "net/http"

// CodedError is an error that knows its HTTP status.
type CodedError struct {
	msg  string
	code int
}

func NewCodedError(msg string, code int) *CodedError {
	return &CodedError{msg: msg, code: code}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrDBNotFound          = NewCodedError("not found", http.StatusNotFound)
	ErrBadRequest          = NewCodedError("bad request", http.StatusBadRequest)
	ErrInvalidCaseID       = NewCodedError("invalid case id", http.StatusBadRequest)
	ErrInvalidProjectID    = NewCodedError("invalid project id", http.StatusBadRequest)
	ErrInvalidCurrency     = NewCodedError("invalid currency", http.StatusBadRequest)
	ErrInvalidExchangeRate = NewCodedError("exchange rate must be positive to convert to USD", http.StatusBadRequest)
	ErrPriceNotFound       = NewCodedError("price not found on price sheet", http.StatusUnprocessableEntity)
	ErrInvalidPriceSheet   = NewCodedError("price sheet has a non-positive exchange rate", http.StatusUnprocessableEntity)
	ErrPriceSheetFetch     = NewCodedError("price sheet unavailable", http.StatusBadGateway)
)
