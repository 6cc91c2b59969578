package engine

import "fmt"

// Error codes, stable across implementations of this spec.
const (
	CodeDefault = 1000

	CodeInvalidQuantity        = 1101
	CodeInvalidPrice           = 1102
	CodeInvalidPriceOrQuantity = 1103
	CodeOrderPostOnly          = 1104
	CodeOrderIOC               = 1105 // reserved; not currently raised
	CodeOrderFOK               = 1106
	CodeOrderAlreadyExists     = 1109 // reserved; not currently raised
	CodeOrderNotFound          = 1110

	CodeOrderBookEmpty      = 1200
	CodeInsufficientQuantity = 1201 // reserved; not currently raised
	CodeInvalidPriceLevel    = 1202 // reserved; not currently raised
)

var defaultMessages = map[uint32]string{
	CodeDefault: "something wrong",

	CodeInvalidQuantity:        "invalid order quantity",
	CodeInvalidPrice:           "invalid order price",
	CodeInvalidPriceOrQuantity: "invalid order price or quantity",
	CodeOrderPostOnly:          "post-only order rejected: would execute immediately against existing orders",
	CodeOrderIOC:               "IOC order rejected: no immediate liquidity available at requested price",
	CodeOrderFOK:               "FOK order rejected: unable to fill entire quantity immediately",
	CodeOrderAlreadyExists:     "order already exists",
	CodeOrderNotFound:          "order not found",

	CodeOrderBookEmpty:       "order book is empty",
	CodeInsufficientQuantity: "insufficient quantity to calculate price",
	CodeInvalidPriceLevel:    "invalid order price level",
}

// Error is the book's error value: a stable numeric code plus a message.
type Error struct {
	Code    uint32
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// NewError builds an Error from a known code using its default message.
func NewError(code uint32) *Error {
	msg, ok := defaultMessages[code]
	if !ok {
		msg = fmt.Sprintf("unknown error (%d)", code)
	}
	return &Error{Code: code, Message: msg}
}

// NewErrorf builds an Error from a code with a caller-supplied message,
// overriding the default.
func NewErrorf(code uint32, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
