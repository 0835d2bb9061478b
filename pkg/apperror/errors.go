package apperror

import (
	"fmt"
	"net/http"
)

// AppError is an error with a stable client-facing code. Err carries the
// internal cause and is never rendered.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on Code so errors.Is works against the constructors below.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Security & Authentication (SEC) ----

func ErrInvalidAccessKey() *AppError {
	return New("SEC_001", "Invalid access key", http.StatusUnauthorized)
}

func ErrInvalidSignature() *AppError {
	return New("SEC_002", "Invalid signature", http.StatusUnauthorized)
}

func ErrTimestampExpired() *AppError {
	return New("SEC_003", "Request timestamp expired", http.StatusForbidden)
}

func ErrNonceUsed() *AppError {
	return New("SEC_004", "Nonce has already been used", http.StatusForbidden)
}

// ---- Escrow & Settlement (ESC) ----

func ErrNotOwner() *AppError {
	return New("ESC_001", "Caller is not authorized for this operation", http.StatusForbidden)
}

func ErrInvalidInput(message string) *AppError {
	return New("ESC_002", message, http.StatusBadRequest)
}

func ErrInvalidProof() *AppError {
	return New("ESC_003", "Concealed input proof rejected", http.StatusUnprocessableEntity)
}

func ErrInsufficientBalance() *AppError {
	return New("ESC_004", "Insufficient escrow balance", http.StatusPaymentRequired)
}

func ErrInsufficientInventory() *AppError {
	return New("ESC_005", "Insufficient asset inventory", http.StatusConflict)
}

func ErrOrderNotActive() *AppError {
	return New("ESC_006", "Order is not pending", http.StatusConflict)
}

func ErrNoActiveOrders() *AppError {
	return New("ESC_007", "No pending orders to settle", http.StatusConflict)
}

func ErrRevealFailure(err error) *AppError {
	return Wrap("ESC_008", "Reveal request failed", http.StatusBadGateway, err)
}

func ErrPriceUnset() *AppError {
	return New("ESC_009", "Asset has no price", http.StatusConflict)
}

func ErrNotFound(entity string) *AppError {
	return New("ESC_010", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrPayoutFailed(err error) *AppError {
	return Wrap("ESC_011", "Custody payout failed", http.StatusBadGateway, err)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrChallengeExpired() *AppError {
	return New("AUTH_002", "Login challenge expired or unknown", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns an ESC_002 validation error.
func Validation(message string) *AppError {
	return ErrInvalidInput(message)
}
