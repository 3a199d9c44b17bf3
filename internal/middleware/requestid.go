package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = fiber.HeaderXRequestID
	requestIDLocal  = "requestid"
)

// RequestID middleware that assigns every request an ID, unless the client sent a valid one.
// Client IDs end up in the access log, so only UUIDs are kept.
func RequestID() fiber.Handler {
	assign := requestid.New(requestid.Config{
		Header:     RequestIDHeader,
		Generator:  uuid.NewString,
		ContextKey: requestIDLocal,
	})

	return func(c *fiber.Ctx) error {
		if _, err := uuid.Parse(c.Get(RequestIDHeader)); err != nil {
			c.Request().Header.Del(RequestIDHeader)
		}

		return assign(c)
	}
}

// GetRequestID returns the ID assigned by RequestID, or an empty string.
func GetRequestID(c *fiber.Ctx) string {
	requestID, _ := c.Locals(requestIDLocal).(string)
	return requestID
}
