// services/errors.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"darkzone-stats-server/utils"

	"github.com/gofiber/fiber/v2"
)

// queryTimeout bounds every store query. The upstream dashboard has no
// retry loop, so a hung query would otherwise pin the connection forever.
const queryTimeout = 5 * time.Second

// ValidationError marks malformed or out-of-range request input. It maps
// to a 400 and its message is safe to show to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// StoreError wraps a data-access failure. It maps to a 500 with a generic
// body; the wrapped cause is logged, never leaked.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("store: %s: %v", e.Op, e.Err) }
func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// httpError is the single boundary mapper shared by all handlers.
func httpError(c *fiber.Ctx, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Message})
	}

	utils.Logger.WithError(err).WithField("path", c.Path()).Error("request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}

func queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}
