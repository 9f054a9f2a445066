package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	ActorBusiness = "business"
	ActorClient   = "client"
	ActorSystem   = "system"
)

type Event struct {
	BusinessID uint      `json:"business_id"`
	Actor      string    `json:"actor"`
	Action     string    `json:"action"`
	Entity     string    `json:"entity"`
	EntityID   *uint     `json:"entity_id,omitempty"`
	Metadata   any       `json:"metadata,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Sink persists or forwards an event.
type Sink interface {
	Write(ctx context.Context, ev Event) error
}

const queueSize = 100

// Dispatcher entrega eventos em segundo plano. Nunca bloqueia a request:
// com a fila cheia o evento é descartado.
type Dispatcher struct {
	sinks  []Sink
	queue  chan Event
	logger *slog.Logger

	once sync.Once
	done chan struct{}
}

func NewDispatcher(logger *slog.Logger, sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		sinks:  sinks,
		queue:  make(chan Event, queueSize),
		logger: logger,
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		for _, s := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := s.Write(ctx, ev); err != nil {
				d.logger.Error("audit sink failed",
					slog.String("action", ev.Action),
					slog.Uint64("business_id", uint64(ev.BusinessID)),
					slog.Any("error", err),
				)
			}
			cancel()
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	select {
	case d.queue <- ev:
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		d.logger.Warn("audit queue full, dropping event", slog.String("action", ev.Action))
	}
}

// Close stops accepting events and waits for the queue to drain or ctx
// to end. Dispatch must not be called after Close.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.once.Do(func() { close(d.queue) })

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
