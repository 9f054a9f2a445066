package audit

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
}

func (s *memorySink) Write(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

type captureWriter struct {
	msgs []kafka.Message
}

func (w *captureWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatcherDeliversToEverySink(t *testing.T) {
	a, b := &memorySink{}, &memorySink{}
	d := NewDispatcher(discard(), a, b)

	id := uint(42)
	d.Dispatch(Event{BusinessID: 1, Action: "appointment_confirmed", Entity: "appointment", EntityID: &id})
	d.Dispatch(Event{BusinessID: 1, Action: "appointment_rejected"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	require.Len(t, a.events, 2)
	require.Len(t, b.events, 2)
	assert.Equal(t, "appointment_confirmed", a.events[0].Action)
	assert.False(t, a.events[0].OccurredAt.IsZero())
}

func TestKafkaSinkKeysByBusiness(t *testing.T) {
	w := &captureWriter{}
	sink := NewKafkaSink(w)

	require.NoError(t, sink.Write(context.Background(), Event{BusinessID: 9, Action: "appointment_created"}))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "9", string(msg.Key))

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "appointment_created", body["action"])
	assert.NotEmpty(t, body["id"])
}

func TestToAuditLogEncodesMetadata(t *testing.T) {
	log := toAuditLog(Event{BusinessID: 2, Action: "x", Metadata: map[string]string{"reason": "conflict"}})
	assert.JSONEq(t, `{"reason":"conflict"}`, log.Metadata)

	assert.Empty(t, toAuditLog(Event{}).Metadata)
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, SplitBrokers(" a:9092, ,b:9092 "))
	assert.Nil(t, SplitBrokers(""))
}

func TestFilterNormalize(t *testing.T) {
	f := Filter{Page: 0, Limit: 1000}.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 50, f.Limit)

	f = Filter{Page: 3, Limit: 10}.Normalize()
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 10, f.Limit)
}
