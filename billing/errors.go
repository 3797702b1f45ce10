package billing

import "github.com/gofiber/fiber/v2"

// Stable machine-readable codes returned alongside HTTP errors so clients can
// branch without parsing messages.
const (
	CodeDuplicatePeriod = "DUPLICATE_PERIOD"
	CodeNoOrders        = "NO_ORDERS"
	CodeNotDraft        = "NOT_DRAFT"
	CodeAlreadyPaid     = "ALREADY_PAID"
	CodeAmountRange     = "AMOUNT_OUT_OF_RANGE"
	CodeNotFound        = "NOT_FOUND"
)

// Error is a billing state/validation error with a stable code. The central
// Fiber error handler maps it to an HTTP response.
type Error struct {
	HTTPStatus int
	Code       string
	Message    string
}

func (e *Error) Error() string { return e.Message }

func conflict(code, msg string) *Error {
	return &Error{HTTPStatus: fiber.StatusBadRequest, Code: code, Message: msg}
}

func notFound(msg string) *Error {
	return &Error{HTTPStatus: fiber.StatusNotFound, Code: CodeNotFound, Message: msg}
}
