package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/hotelops/hotel-api/internal/middleware"
	"github.com/hotelops/hotel-api/internal/model"
	"github.com/hotelops/hotel-api/pkg/logger"
	"github.com/hotelops/hotel-api/pkg/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect cross-origin from the dashboard; auth is
	// carried by the JWT, not the Origin header.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	hub    *realtime.Hub
	logger *logger.Logger
}

func NewHandler(hub *realtime.Hub, log *logger.Logger) *Handler {
	return &Handler{hub: hub, logger: log}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/ws", h.Connect)
}

// Connect upgrades to a websocket session. Staff roles additionally
// subscribe to the hotel-wide channel.
func (h *Handler) Connect(c *gin.Context) {
	userID := middleware.UserID(c)
	hotelID := middleware.HotelID(c)
	role := c.GetString(middleware.ContextRole)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error(err, "websocket upgrade failed", "user_id", userID.String())
		return
	}

	staff := role == model.RoleAdmin || role == model.RoleManager
	session := h.hub.Register(conn, userID, hotelID, staff)

	// Reader loop: the client sends nothing meaningful; we read to
	// surface closes and enforce the connection lifecycle.
	go func() {
		defer h.hub.Unregister(session)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
