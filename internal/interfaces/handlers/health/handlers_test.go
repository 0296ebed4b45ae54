package health

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/euRezerv/api-sub000/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func setupHealthApp(t *testing.T) (*fiber.App, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	h := &Handlers{Rdb: rdb, DB: okPinger{}, HealthAdminKey: "admin"}
	app := fiber.New()
	app.Get("/health/json", h.JSON)
	app.Get("/health/reset", h.Reset)
	app.Get("/health/errors", h.Errors)
	return app, rdb
}

func TestJSON(t *testing.T) {
	app, rdb := setupHealthApp(t)
	require.NoError(t, rdb.Set(context.Background(), middleware.KeyReqTotal, "4", 0).Err())
	require.NoError(t, rdb.Set(context.Background(), middleware.KeyReqErrors, "1", 0).Err())

	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out struct {
		Service string `json:"service"`
		Status  string `json:"status"`
		Traffic struct {
			TotalRequests int    `json:"totalRequests"`
			SuccessRate   string `json:"successRate"`
		} `json:"traffic"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, serviceName, out.Service)
	assert.Equal(t, "ok", out.Status)
	assert.Equal(t, 4, out.Traffic.TotalRequests)
	assert.Equal(t, "75.0", out.Traffic.SuccessRate)
}

func TestReset(t *testing.T) {
	app, rdb := setupHealthApp(t)
	ctx := context.Background()
	require.NoError(t, rdb.Set(ctx, middleware.KeyReqTotal, "9", 0).Err())

	resp, err := app.Test(httptest.NewRequest("GET", "/health/reset?key=wrong", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/health/reset?key=admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	n, err := rdb.Exists(ctx, middleware.KeyReqTotal).Result()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestErrors(t *testing.T) {
	app, rdb := setupHealthApp(t)
	require.NoError(t, rdb.LPush(context.Background(), middleware.KeyErrorLog, `{"path":"/v1/x","status":500}`).Err())

	resp, err := app.Test(httptest.NewRequest("GET", "/health/errors", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var entries []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "/v1/x", entries[0]["path"])
}
