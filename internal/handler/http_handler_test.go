package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-catalog-ms/internal/transport"
	"go-catalog-ms/internal/ws"
	"go-catalog-ms/pkg/jwt"
	"go-catalog-ms/pkg/rpcerr"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("bridge-secret")

func newTestApp(t *testing.T, secret []byte) *fiber.App {
	t.Helper()
	router := transport.NewRouter(zerolog.Nop())
	router.Handle("tag.findOne", func(_ context.Context, payload json.RawMessage) (interface{}, error) {
		var p idPayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		return map[string]string{"id": p.ID.String(), "name": "Vegan"}, nil
	})
	router.Handle("tag.update", func(_ context.Context, payload json.RawMessage) (interface{}, error) {
		var p struct {
			UpdatedBy string `json:"updatedBy"`
		}
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		return map[string]string{"updatedBy": p.UpdatedBy}, nil
	})
	router.Handle("tag.remove", func(context.Context, json.RawMessage) (interface{}, error) {
		return nil, rpcerr.NotFound("Tag with id %s not found", "x")
	})
	return NewApp(NewHTTPHandler(router), ws.NewHub(), AppConfig{Name: "test", JWTSecret: secret})
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(req, int((5 * time.Second).Milliseconds()))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]interface{}
	if len(body) > 0 {
		require.NoError(t, json.Unmarshal(body, &out))
	}
	return resp.StatusCode, out
}

func bearer(t *testing.T) string {
	t.Helper()
	token, err := jwt.GenerateToken(testSecret, "gateway", "ops", time.Minute)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, testSecret)
	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ok", body["status"])
}

func TestRPCRequiresToken(t *testing.T) {
	app := newTestApp(t, testSecret)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/rpc/tag.findOne", strings.NewReader(`{}`))
	status, body := do(t, app, req)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Missing authorization token", body["error"])

	req = httptest.NewRequest(http.MethodPost, "/api/v1/rpc/tag.findOne", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	status, _ = do(t, app, req)
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestRPCDispatches(t *testing.T) {
	app := newTestApp(t, testSecret)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/rpc/tag.findOne",
		strings.NewReader(`{"id":"7b1d8f7e-6a55-4b33-9f43-3c1f2d0b6a10"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t))

	status, body := do(t, app, req)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["isDisposed"])
	require.Nil(t, body["err"])
	require.Equal(t, "Vegan", body["response"].(map[string]interface{})["name"])
}

func TestRPCMirrorsErrorStatus(t *testing.T) {
	app := newTestApp(t, testSecret)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/rpc/tag.remove", strings.NewReader(`{}`))
	req.Header.Set("Authorization", bearer(t))
	status, body := do(t, app, req)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "Tag with id x not found", body["err"].(map[string]interface{})["message"])

	req = httptest.NewRequest(http.MethodPost, "/api/v1/rpc/tag.unknown", strings.NewReader(`{}`))
	req.Header.Set("Authorization", bearer(t))
	status, _ = do(t, app, req)
	require.Equal(t, http.StatusNotFound, status)
}

func TestPatternsWithoutSecret(t *testing.T) {
	app := newTestApp(t, nil)

	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/patterns", nil))
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, []interface{}{"tag.findOne", "tag.remove", "tag.update"}, body["patterns"])
}

func TestWSRequiresUpgrade(t *testing.T) {
	app := newTestApp(t, nil)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ws", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

func TestRPCStampsTokenActor(t *testing.T) {
	app := newTestApp(t, testSecret)

	for _, tc := range []struct {
		name string
		body string
		want string
	}{
		{"missing", `{"id":"7b1d8f7e-6a55-4b33-9f43-3c1f2d0b6a10"}`, "ops"},
		{"empty", `{"updatedBy":""}`, "ops"},
		{"explicit", `{"updatedBy":"alice"}`, "alice"},
		{"no body", ``, "ops"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/rpc/tag.update", strings.NewReader(tc.body))
			req.Header.Set("Authorization", bearer(t))
			status, body := do(t, app, req)
			require.Equal(t, http.StatusOK, status)
			require.Equal(t, tc.want, body["response"].(map[string]interface{})["updatedBy"])
		})
	}
}

func TestWithActorLeavesNonObjects(t *testing.T) {
	require.Equal(t, `[1,2]`, string(withActor([]byte(`[1,2]`), "ops")))
	require.Equal(t, `not json`, string(withActor([]byte(`not json`), "ops")))
	require.JSONEq(t, `{"createdBy":"ops","updatedBy":"ops","deletedBy":"bob"}`,
		string(withActor([]byte(`{"deletedBy":"bob"}`), "ops")))
}
