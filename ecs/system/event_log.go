package system

import (
	"log/slog"

	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/logger"
)

// EventLogSystem drains the tick's events to the debug log. Sink, when set,
// also receives every event; the debug overlay uses it for its history.
type EventLogSystem struct {
	log  *slog.Logger
	Sink func(ecs.Event)
}

func NewEventLogSystem() *EventLogSystem {
	return &EventLogSystem{log: logger.L().With("system", "events")}
}

func (s *EventLogSystem) Update(w *ecs.World) {
	for _, evt := range w.Events().Drain() {
		s.log.Debug(string(evt.Kind),
			"tick", evt.Tick,
			"time", evt.Time,
			"entity", evt.Entity.String(),
			"data", evt.Data,
		)
		if s.Sink != nil {
			s.Sink(evt)
		}
	}
}
