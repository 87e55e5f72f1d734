package rabbitmq_client

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/init-pkg/sheet-loader/internal/config"
	"github.com/init-pkg/sheet-loader/internal/errs"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/fx"
)

// Client publishes to one topic exchange. The connection is opened on first
// publish and reopened after the broker drops it.
type Client struct {
	url      string
	exchange string
	log      *slog.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// New returns nil when no broker URL is configured.
func New(cfg *config.Config, lc fx.Lifecycle, log *slog.Logger) *Client {
	rcfg := cfg.Clients.RabbitMQ
	if rcfg.URL == "" {
		log.Info("rabbitmq not configured, import events will not be published")
		return nil
	}

	client := &Client{url: rcfg.URL, exchange: rcfg.Exchange, log: log}
	lc.Append(fx.StopHook(client.Close))
	return client
}

func (this *Client) Exchange() string {
	return this.exchange
}

func (this *Client) channel() (*amqp.Channel, error) {
	if this.ch != nil && !this.ch.IsClosed() {
		return this.ch, nil
	}
	if this.conn == nil || this.conn.IsClosed() {
		props := amqp.NewConnectionProperties()
		props.SetClientConnectionName("sheet-loader")

		conn, err := amqp.DialConfig(this.url, amqp.Config{
			Heartbeat:  10 * time.Second,
			Locale:     "en_US",
			Properties: props,
		})
		if err != nil {
			return nil, err
		}
		this.conn = conn
	}

	ch, err := this.conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := ch.ExchangeDeclare(this.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, err
	}
	this.ch = ch
	this.log.Info("rabbitmq channel opened", "exchange", this.exchange)
	return ch, nil
}

// Publish sends a persistent JSON message with the given routing key.
func (this *Client) Publish(ctx context.Context, routingKey string, body []byte) error {
	const op = "rabbitmq.publish"

	this.mu.Lock()
	defer this.mu.Unlock()

	ch, err := this.channel()
	if err != nil {
		return errs.Wrap(errs.KindConnection, op, err, "cannot open channel")
	}

	err = ch.PublishWithContext(ctx, this.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		AppId:        "sheet-loader",
		Body:         body,
	})
	if err != nil {
		_ = ch.Close()
		this.ch = nil
		return errs.Wrap(errs.KindConnection, op, err, "publish failed")
	}
	return nil
}

func (this *Client) Close() error {
	this.mu.Lock()
	defer this.mu.Unlock()

	if this.ch != nil {
		_ = this.ch.Close()
		this.ch = nil
	}
	if this.conn != nil && !this.conn.IsClosed() {
		err := this.conn.Close()
		this.conn = nil
		return err
	}
	return nil
}
