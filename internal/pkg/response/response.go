package response

import (
	"time"

	"github.com/euRezerv/api-sub000/internal/pkg/apperror"
	"github.com/euRezerv/api-sub000/internal/pkg/pagination"

	"github.com/gofiber/fiber/v2"
)

// ErrorCauseLocal is the Locals key under which FromError leaves the cause of a server error
// for the request middleware to log and record.
const ErrorCauseLocal = "error_cause"

// Body is the standardized JSON envelope for every response.
type Body struct {
	IsSuccess  bool        `json:"isSuccess"`
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Errors     interface{} `json:"errors,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

// Page wraps a list result with its pagination metadata.
type Page struct {
	Items      interface{}     `json:"items"`
	Pagination pagination.Meta `json:"pagination"`
}

// Success sends a 200 OK response with the standard envelope.
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return send(c, fiber.StatusOK, message, data, nil)
}

// SuccessCreated sends a 201 Created response with the standard envelope.
func SuccessCreated(c *fiber.Ctx, message string, data interface{}) error {
	return send(c, fiber.StatusCreated, message, data, nil)
}

// Error sends a failure response with the standard envelope.
func Error(c *fiber.Ctx, message string, statusCode int, errs interface{}) error {
	return send(c, statusCode, message, nil, errs)
}

// Unauthorized sends 401 with the same shape as other errors.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusUnauthorized, nil)
}

// FromError renders a use case error. Infrastructure failures are reported generically and
// their cause is kept in Locals under ErrorCauseLocal.
func FromError(c *fiber.Ctx, err error) error {
	e := apperror.As(err)
	status := apperror.Status(e)
	if status >= fiber.StatusInternalServerError {
		c.Locals(ErrorCauseLocal, causeOf(e))
		return Error(c, "Internal Server Error", status, nil)
	}
	return Error(c, e.Message, status, e.Details)
}

// ErrorCause returns the cause FromError stored for this request, or nil.
func ErrorCause(c *fiber.Ctx) error {
	err, _ := c.Locals(ErrorCauseLocal).(error)
	return err
}

func causeOf(e *apperror.Error) error {
	if e.Cause != nil {
		return e.Cause
	}
	return e
}

func send(c *fiber.Ctx, status int, message string, data, errs interface{}) error {
	return c.Status(status).JSON(Body{
		IsSuccess:  status < fiber.StatusBadRequest,
		StatusCode: status,
		Message:    message,
		Data:       data,
		Errors:     errs,
		Timestamp:  time.Now().UTC(),
	})
}
