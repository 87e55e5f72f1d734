package events_service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/init-pkg/sheet-loader/domain/app"
	rabbitmq_client "github.com/init-pkg/sheet-loader/internal/clients/rabbitmq"
	"github.com/init-pkg/sheet-loader/internal/errs"
)

const (
	KeyCompleted = "import.completed"
	KeyFailed    = "import.failed"
)

type broker interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

type Event struct {
	ID         string           `json:"id"`
	Status     app.ImportStatus `json:"status"`
	FileName   string           `json:"file_name"`
	Database   string           `json:"database"`
	Table      string           `json:"table"`
	Total      int              `json:"total"`
	Inserted   int              `json:"inserted"`
	Failed     int              `json:"failed"`
	Error      string           `json:"error,omitempty"`
	FinishedAt time.Time        `json:"finished_at"`
}

type EventPublisher struct {
	broker broker
	log    *slog.Logger
}

var _ app.EventPublisher = &EventPublisher{}

func New(client *rabbitmq_client.Client, log *slog.Logger) *EventPublisher {
	if client == nil {
		return &EventPublisher{log: log}
	}
	return &EventPublisher{client, log}
}

func RoutingKey(res *app.ImportResult) string {
	if res.Status == app.ImportSucceeded {
		return KeyCompleted
	}
	return KeyFailed
}

func (this *EventPublisher) Publish(ctx context.Context, res *app.ImportResult) error {
	if this.broker == nil {
		return nil
	}

	body, err := json.Marshal(Event{
		ID:         res.ID,
		Status:     res.Status,
		FileName:   res.FileName,
		Database:   res.Database,
		Table:      res.Table,
		Total:      res.Total,
		Inserted:   res.Inserted,
		Failed:     len(res.Failures),
		Error:      res.Error,
		FinishedAt: res.FinishedAt,
	})
	if err != nil {
		return errs.Wrap(errs.KindUnknown, "events.publish", err)
	}

	key := RoutingKey(res)
	if err := this.broker.Publish(ctx, key, body); err != nil {
		return err
	}
	this.log.Debug("import event published", "id", res.ID, "key", key)
	return nil
}
