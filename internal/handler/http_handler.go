package handler

import (
	"encoding/json"

	"go-catalog-ms/internal/middleware"
	"go-catalog-ms/internal/transport"
	"go-catalog-ms/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// HTTPHandler is the ops surface: health, pattern listing and an RPC bridge
// into the same router the Kafka server uses.
type HTTPHandler struct {
	router *transport.Router
}

func NewHTTPHandler(router *transport.Router) *HTTPHandler {
	return &HTTPHandler{router: router}
}

func (h *HTTPHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *HTTPHandler) Patterns(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"patterns": h.router.Patterns()})
}

// RPC dispatches the body to :pattern; the HTTP status mirrors the reply.
// The token's actor fills any audit field the body leaves out.
func (h *HTTPHandler) RPC(c *fiber.Ctx) error {
	body := c.Body()
	if actor, _ := c.Locals("actor").(string); actor != "" {
		body = withActor(body, actor)
	}
	reply := h.router.Dispatch(c.UserContext(), c.Params("pattern"), body)
	return c.Status(reply.Status()).JSON(reply)
}

var auditFields = []string{"createdBy", "updatedBy", "deletedBy"}

// withActor sets missing or empty audit fields of a JSON object body.
// Anything that is not an object is passed through untouched.
func withActor(body []byte, actor string) []byte {
	var fields map[string]json.RawMessage
	if len(body) == 0 {
		fields = map[string]json.RawMessage{}
	} else if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return body
	}

	value, _ := json.Marshal(actor)
	for _, f := range auditFields {
		if v, ok := fields[f]; !ok || string(v) == `""` || string(v) == "null" {
			fields[f] = value
		}
	}

	out, err := json.Marshal(fields)
	if err != nil {
		return body
	}
	return out
}

type AppConfig struct {
	Name      string
	JWTSecret []byte
	// RequestLog turns on fiber's request logger.
	RequestLog bool
}

func NewApp(h *HTTPHandler, hub *ws.Hub, cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.Name,
		DisableStartupMessage: true,
	})

	// Middleware
	if cfg.RequestLog {
		app.Use(logger.New())
	}
	app.Use(recover.New())

	app.Get("/health", h.Health)

	api := app.Group("/api/v1", middleware.RequireAuth(cfg.JWTSecret))
	api.Get("/patterns", h.Patterns)
	api.Post("/rpc/:pattern", h.RPC)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		hub.Register <- c
		defer func() { hub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	return app
}
