package realtime

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/hotelops/hotel-api/pkg/logger"
	"github.com/hotelops/hotel-api/pkg/metrics"
)

const writeTimeout = 2 * time.Second

// Session wraps a websocket connection with its subscriptions.
type Session struct {
	conn    *websocket.Conn
	userID  uuid.UUID
	hotelID uuid.UUID
	// staffChannel marks sessions that also receive hotel-wide pushes.
	staffChannel bool
	mu           sync.Mutex
}

func (s *Session) writeJSON(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return s.conn.WriteJSON(v)
}

// Hub tracks open websocket sessions and fans messages out to them.
// All delivery is best effort: a failed write drops the session.
type Hub struct {
	mu      sync.RWMutex
	byUser  map[uuid.UUID]map[*Session]struct{}
	byHotel map[uuid.UUID]map[*Session]struct{}
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewHub(log *logger.Logger, m *metrics.Metrics) *Hub {
	return &Hub{
		byUser:  make(map[uuid.UUID]map[*Session]struct{}),
		byHotel: make(map[uuid.UUID]map[*Session]struct{}),
		logger:  log,
		metrics: m,
	}
}

// push payload sent over the wire
type push struct {
	Topic   string      `json:"topic"`
	Payload interface{} `json:"payload"`
}

// Register adds a new session. Staff sessions additionally subscribe to
// the hotel-wide channel.
func (h *Hub) Register(conn *websocket.Conn, userID, hotelID uuid.UUID, staff bool) *Session {
	s := &Session{conn: conn, userID: userID, hotelID: hotelID, staffChannel: staff}

	h.mu.Lock()
	if _, ok := h.byUser[userID]; !ok {
		h.byUser[userID] = make(map[*Session]struct{})
	}
	h.byUser[userID][s] = struct{}{}
	if staff {
		if _, ok := h.byHotel[hotelID]; !ok {
			h.byHotel[hotelID] = make(map[*Session]struct{})
		}
		h.byHotel[hotelID][s] = struct{}{}
	}
	h.mu.Unlock()

	h.metrics.ConnectedClients.Inc()
	h.logger.Debug("websocket session registered", "user_id", userID.String(), "staff", staff)
	return s
}

// Unregister removes a session and closes its connection.
func (h *Hub) Unregister(s *Session) {
	h.mu.Lock()
	if conns, ok := h.byUser[s.userID]; ok {
		if _, present := conns[s]; present {
			delete(conns, s)
			h.metrics.ConnectedClients.Dec()
		}
		if len(conns) == 0 {
			delete(h.byUser, s.userID)
		}
	}
	if s.staffChannel {
		if conns, ok := h.byHotel[s.hotelID]; ok {
			delete(conns, s)
			if len(conns) == 0 {
				delete(h.byHotel, s.hotelID)
			}
		}
	}
	h.mu.Unlock()
	_ = s.conn.Close()
}

// SendToUser writes to every open session of the user. Absent sessions
// are not an error.
func (h *Hub) SendToUser(userID uuid.UUID, topic string, payload interface{}) {
	h.mu.RLock()
	sessions := make([]*Session, 0, 2)
	for s := range h.byUser[userID] {
		sessions = append(sessions, s)
	}
	h.mu.RUnlock()

	for _, s := range sessions {
		if err := s.writeJSON(push{Topic: topic, Payload: payload}); err != nil {
			h.logger.Warn("websocket write failed, dropping session",
				"user_id", userID.String(), "error", err.Error())
			h.Unregister(s)
		}
	}
}

// SendToHotel writes to every staff session subscribed to the hotel.
func (h *Hub) SendToHotel(hotelID uuid.UUID, topic string, payload interface{}) {
	h.mu.RLock()
	sessions := make([]*Session, 0, 4)
	for s := range h.byHotel[hotelID] {
		sessions = append(sessions, s)
	}
	h.mu.RUnlock()

	for _, s := range sessions {
		if err := s.writeJSON(push{Topic: topic, Payload: payload}); err != nil {
			h.logger.Warn("websocket write failed, dropping session",
				"hotel_id", hotelID.String(), "error", err.Error())
			h.Unregister(s)
		}
	}
}

// Heartbeat pings all sessions at the given interval until ping writes
// fail, at which point the session is dropped. Run in its own goroutine.
func (h *Hub) Heartbeat(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		h.mu.RLock()
		sessions := make([]*Session, 0, 16)
		for _, conns := range h.byUser {
			for s := range conns {
				sessions = append(sessions, s)
			}
		}
		h.mu.RUnlock()

		for _, s := range sessions {
			s.mu.Lock()
			err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(time.Second))
			s.mu.Unlock()
			if err != nil {
				h.Unregister(s)
			}
		}
	}
}
