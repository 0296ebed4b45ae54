package auth

import (
	"fmt"

	authsvc "github.com/euRezerv/api-sub000/internal/application/auth"
	"github.com/euRezerv/api-sub000/internal/middleware"
	"github.com/euRezerv/api-sub000/internal/pkg/apperror"
	"github.com/euRezerv/api-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	Service *authsvc.Service
	Rdb     *redis.Client
	Config  middleware.SessionConfig
}

// Login POST /v1/auth/login: verify credentials, start a fresh session, index it under the user and set the cookie.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var in authsvc.LoginInput
	if err := c.BodyParser(&in); err != nil {
		return response.FromError(c, authsvc.ErrEmailPasswordRequired)
	}
	user, err := h.Service.Login(c.UserContext(), in)
	if err != nil {
		return response.FromError(c, err)
	}

	sessionID := middleware.RegenerateSessionID(c)
	middleware.SetSessionUser(c, middleware.SessionUser{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
	if err := h.Rdb.SAdd(c.UserContext(), middleware.UserSessionsPrefix+user.ID.String(), sessionID).Err(); err != nil {
		return response.FromError(c, apperror.Internal(fmt.Errorf("track session for user %s: %w", user.ID, err)))
	}

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = middleware.SignSessionID(sessionID, h.Config.Secret)
	c.Cookie(&cookie)

	return response.Success(c, "Login successful", fiber.Map{"user": user})
}

// Me GET /v1/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	sessionUser := middleware.GetUser(c)
	if sessionUser == nil {
		log.Debug().Bool("cookie_present", c.Cookies(middleware.SessionCookieName) != "").Msg("auth/me: no session user")
		return response.FromError(c, authsvc.ErrNotAuthenticated)
	}
	user, err := h.Service.VerifyUser(c.UserContext(), sessionUser.UserID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Authenticated", fiber.Map{"user": user})
}

// Logout DELETE /v1/auth/logout
func (h *Handlers) Logout(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	ctx := c.UserContext()

	if u := middleware.GetUser(c); u != nil && sessionID != "" {
		_ = h.Rdb.SRem(ctx, middleware.UserSessionsPrefix+u.UserID.String(), sessionID).Err()
	}
	if sessionID != "" {
		_ = h.Rdb.Del(ctx, middleware.SessionRedisPrefix+sessionID).Err()
	}
	middleware.DestroySession(c)

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.Success(c, "Logged out successfully", nil)
}
