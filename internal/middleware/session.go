package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// SessionConfig for the Redis-backed session cookie.
type SessionConfig struct {
	Secret            string
	AllowCrossSiteDev bool
	IsProduction      bool
}

const (
	SessionCookieName  = "eurezerv.sid"
	SessionRedisPrefix = "session:"
	UserSessionsPrefix = "user_sessions:"
	sessionMaxAge      = 24 * time.Hour

	sessionDataLocal = "session_data"
	sessionIDLocal   = "session_id"
)

// SessionUser is the identity stored in the session and exposed to handlers through Locals("user").
type SessionUser struct {
	UserID    uuid.UUID `json:"userId"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

type sessionData struct {
	User *SessionUser `json:"user,omitempty"`
}

// Session loads the session named by the signed cookie from Redis and saves it back after the handler ran.
// Cookie value is "s:<id>.<signature>".
func Session(cfg SessionConfig, rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := unsign(c.Cookies(SessionCookieName), cfg.Secret)

		data := &sessionData{}
		if sessionID != "" {
			b, err := rdb.Get(c.UserContext(), SessionRedisPrefix+sessionID).Bytes()
			if err == nil {
				_ = json.Unmarshal(b, data)
			} else if err != redis.Nil {
				log.Warn().Err(err).Msg("session load")
			}
		}

		c.Locals(sessionDataLocal, data)
		c.Locals(sessionIDLocal, sessionID)
		if data.User != nil {
			c.Locals(userLocal, data.User)
		}

		if err := c.Next(); err != nil {
			return err
		}

		sid, _ := c.Locals(sessionIDLocal).(string)
		updated, _ := c.Locals(sessionDataLocal).(*sessionData)
		if sid != "" && updated != nil && updated.User != nil {
			b, _ := json.Marshal(updated)
			if err := rdb.Set(context.Background(), SessionRedisPrefix+sid, b, sessionMaxAge).Err(); err != nil {
				log.Warn().Err(err).Msg("session save")
			}
		}
		return nil
	}
}

// GetSessionID returns the current session ID from context (for login/logout).
func GetSessionID(c *fiber.Ctx) string {
	sid, _ := c.Locals(sessionIDLocal).(string)
	return sid
}

// SetSessionUser puts user in the session; it is persisted when the request completes.
func SetSessionUser(c *fiber.Ctx, user SessionUser) {
	data, _ := c.Locals(sessionDataLocal).(*sessionData)
	if data == nil {
		data = &sessionData{}
	}
	data.User = &user
	c.Locals(sessionDataLocal, data)
	SetUser(c, data.User)
}

// RegenerateSessionID starts a new session id. The caller sets the cookie with SignSessionID.
func RegenerateSessionID(c *fiber.Ctx) string {
	newID := uuid.New().String()
	c.Locals(sessionIDLocal, newID)
	return newID
}

// DestroySession clears the session from Locals; the caller removes the Redis key and cookie.
func DestroySession(c *fiber.Ctx) {
	c.Locals(sessionDataLocal, &sessionData{})
	c.Locals(sessionIDLocal, "")
	c.Locals(userLocal, nil)
}

// SignSessionID returns the cookie value for id.
func SignSessionID(id, secret string) string {
	return "s:" + id + "." + signature(id, secret)
}

func unsign(cookie, secret string) string {
	if !strings.HasPrefix(cookie, "s:") {
		return ""
	}
	id, sig, ok := strings.Cut(cookie[2:], ".")
	if !ok || id == "" {
		return ""
	}
	if !hmac.Equal([]byte(sig), []byte(signature(id, secret))) {
		return ""
	}
	return id
}

func signature(id, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// SessionCookieConfig returns the cookie options for SetCookie/ClearCookie.
func SessionCookieConfig(cfg SessionConfig) fiber.Cookie {
	sameSite := "Lax"
	if cfg.AllowCrossSiteDev {
		sameSite = "None"
	}
	secure := cfg.IsProduction && cfg.AllowCrossSiteDev
	return fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   int(sessionMaxAge.Seconds()),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	}
}
