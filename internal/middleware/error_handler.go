package middleware

import (
	"errors"

	"github.com/euRezerv/api-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// ErrorHandler renders any error that escaped a handler in the standard envelope.
// Server errors are logged and pushed to the health error log when rdb is set.
func ErrorHandler(rdb *redis.Client) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := statusOf(c, err)
		if status >= fiber.StatusInternalServerError {
			reportServerError(rdb, c, status, err)
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return response.Error(c, fe.Message, fe.Code, nil)
		}
		return response.FromError(c, err)
	}
}
