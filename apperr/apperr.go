package apperr

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Domain errors. Handlers wrap these with context via fmt.Errorf("%w: ...")
// and hand the result to Respond, which picks the HTTP status.
var (
	ErrValidation                = errors.New("validation error")
	ErrNotFound                  = errors.New("not found")
	ErrUnauthorized              = errors.New("unauthorized")
	ErrForbidden                 = errors.New("forbidden")
	ErrInsufficientStock         = errors.New("not enough stock available")
	ErrEmptyCart                 = errors.New("cart is empty")
	ErrInvalidSignature          = errors.New("invalid signature")
	ErrPaymentVerificationFailed = errors.New("payment verification failed")
)

// GatewayError is a failed call to the payment gateway: network error,
// non-2xx response, or an unparsable body. The upstream status and body are
// kept for logs but never leak to clients.
type GatewayError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment gateway error: %v", e.Err)
	}
	return fmt.Sprintf("payment gateway error (%d): %s", e.StatusCode, e.Body)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Validation builds a client-visible 400 error.
func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// NotFound builds a client-visible 404 error.
func NotFound(msg string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, msg)
}

// Respond maps a domain error to the JSON envelope {status:false, message}.
// Unknown errors are logged and surfaced as a generic 500 so internals never
// reach the client.
func Respond(c *gin.Context, err error) {
	var gw *GatewayError
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrEmptyCart),
		errors.Is(err, ErrInvalidSignature),
		errors.Is(err, ErrPaymentVerificationFailed):
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": err.Error()})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": err.Error()})
	case errors.Is(err, ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": err.Error()})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"status": false, "message": err.Error()})
	case errors.As(err, &gw):
		log.Printf("❌ Payment gateway failure: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"status": false, "message": "payment gateway unavailable"})
	default:
		log.Printf("❌ Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "internal server error"})
	}
}
