package outcome_service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/init-pkg/sheet-loader/domain/app"
	"github.com/init-pkg/sheet-loader/internal/config"
	"github.com/init-pkg/sheet-loader/internal/errs"

	"github.com/redis/go-redis/v9"
)

// OutcomeStore keeps finished imports in redis as JSON documents. With a nil
// client it stores nothing and finds nothing.
type OutcomeStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	log    *slog.Logger
}

var _ app.OutcomeStore = &OutcomeStore{}

func New(client *redis.Client, cfg *config.Config, log *slog.Logger) *OutcomeStore {
	return &OutcomeStore{
		client: client,
		prefix: cfg.Clients.Redis.KeyPrefix,
		ttl:    cfg.Clients.Redis.TTL,
		log:    log,
	}
}

func (this *OutcomeStore) key(id string) string {
	return this.prefix + id
}

func (this *OutcomeStore) Save(ctx context.Context, res *app.ImportResult) error {
	const op = "outcome.save"

	if this.client == nil {
		return nil
	}

	body, err := json.Marshal(res)
	if err != nil {
		return errs.Wrap(errs.KindUnknown, op, err)
	}
	if err := this.client.Set(ctx, this.key(res.ID), body, this.ttl).Err(); err != nil {
		return errs.Wrap(errs.KindConnection, op, err, "redis set failed")
	}

	this.log.Debug("import outcome stored", "id", res.ID, "ttl", this.ttl)
	return nil
}

func (this *OutcomeStore) Get(ctx context.Context, id string) (*app.ImportResult, error) {
	const op = "outcome.get"

	if this.client == nil {
		return nil, errs.New(errs.KindNotFound, op, "import "+id+" not found")
	}

	body, err := this.client.Get(ctx, this.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errs.New(errs.KindNotFound, op, "import "+id+" not found")
	}
	if err != nil {
		return nil, errs.Wrap(errs.KindConnection, op, err, "redis get failed")
	}

	var res app.ImportResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, errs.Wrap(errs.KindUnknown, op, err, "corrupt outcome for import "+id)
	}
	return &res, nil
}
