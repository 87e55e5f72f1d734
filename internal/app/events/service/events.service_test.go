package events_service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/init-pkg/sheet-loader/domain/app"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	key  string
	body []byte
}

type fakeBroker struct {
	sent []published
	err  error
}

func (f *fakeBroker) Publish(_ context.Context, key string, body []byte) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{key, body})
	return nil
}

func newPublisher(b broker) *EventPublisher {
	return &EventPublisher{broker: b, log: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestPublishRoutesByStatus(t *testing.T) {
	b := &fakeBroker{}
	p := newPublisher(b)

	require.NoError(t, p.Publish(context.Background(), &app.ImportResult{
		ID: "a", Status: app.ImportSucceeded, Table: "orders", Total: 3, Inserted: 2,
		Failures: []app.RowFailure{{Row: 3, Error: "bad"}},
	}))
	require.NoError(t, p.Publish(context.Background(), &app.ImportResult{
		ID: "b", Status: app.ImportFailed, Error: "schema_error",
	}))

	require.Len(t, b.sent, 2)
	assert.Equal(t, KeyCompleted, b.sent[0].key)
	assert.Equal(t, KeyFailed, b.sent[1].key)

	var ev Event
	require.NoError(t, json.Unmarshal(b.sent[0].body, &ev))
	assert.Equal(t, "orders", ev.Table)
	assert.Equal(t, 1, ev.Failed)
	assert.Equal(t, 2, ev.Inserted)
}

func TestPublishPropagatesBrokerError(t *testing.T) {
	p := newPublisher(&fakeBroker{err: errors.New("channel closed")})
	err := p.Publish(context.Background(), &app.ImportResult{ID: "a"})
	assert.EqualError(t, err, "channel closed")
}

func TestPublishWithoutBroker(t *testing.T) {
	p := New(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.NoError(t, p.Publish(context.Background(), &app.ImportResult{ID: "a"}))
}
