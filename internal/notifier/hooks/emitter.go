// Package hooks translates committed entity writes into notification
// event intents. Each adapter inspects the before/after state of one
// entity type and forwards matched transitions to the dispatcher.
// Emission is best effort: a failed dispatch is logged and never rolls
// back the business write that triggered it.
package hooks

import (
	"context"

	"github.com/google/uuid"

	"github.com/hotelops/hotel-api/internal/model"
	"github.com/hotelops/hotel-api/internal/notifier"
	"github.com/hotelops/hotel-api/internal/repository"
	"github.com/hotelops/hotel-api/pkg/logger"
)

// Emitter is the hook façade services call after a committed write.
type Emitter struct {
	dispatcher *notifier.Dispatcher
	directory  *notifier.Directory
	hotels     repository.HotelRepository
	logger     *logger.Logger
}

func NewEmitter(dispatcher *notifier.Dispatcher, directory *notifier.Directory, hotels repository.HotelRepository, log *logger.Logger) *Emitter {
	return &Emitter{
		dispatcher: dispatcher,
		directory:  directory,
		hotels:     hotels,
		logger:     log,
	}
}

func (e *Emitter) emit(ctx context.Context, intents ...*model.Intent) {
	for _, intent := range intents {
		if _, err := e.dispatcher.Dispatch(ctx, intent); err != nil {
			e.logger.Error(err, "event dispatch failed",
				"kind", string(intent.Kind), "hotel_id", intent.HotelID.String())
		}
	}
}

// settings loads per-tenant thresholds, falling back to defaults when
// the hotel row cannot be read.
func (e *Emitter) settings(ctx context.Context, hotelID uuid.UUID) model.HotelSettings {
	hotel, err := e.hotels.Get(ctx, hotelID)
	if err != nil {
		return model.HotelSettings{}.WithDefaults()
	}
	return hotel.Settings.WithDefaults()
}

func assignedChanged(before, after *uuid.UUID) bool {
	if after == nil {
		return false
	}
	return before == nil || *before != *after
}

func statusChanged(before, after, to string) bool {
	return after == to && before != to
}
