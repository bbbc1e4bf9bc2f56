package notifier

import (
	"context"

	"github.com/google/uuid"

	"github.com/hotelops/hotel-api/internal/model"
)

// Transport is the real-time push channel: best-effort delivery to
// currently connected sessions. Implementations must bound their own
// per-call latency; a returned error is recorded as a push-channel
// failure and never fails the dispatch.
type Transport interface {
	// SendToUser delivers to all open sessions of the user; it is a
	// silent no-op when none are connected.
	SendToUser(ctx context.Context, userID uuid.UUID, topic string, envelope model.Envelope) error
	// SendToHotel delivers to all sessions subscribed to the hotel's
	// admin channel.
	SendToHotel(ctx context.Context, hotelID uuid.UUID, topic string, envelope model.Envelope) error
}
