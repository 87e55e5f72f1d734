package outcome_service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/init-pkg/sheet-loader/domain/app"
	"github.com/init-pkg/sheet-loader/internal/config"
	"github.com/init-pkg/sheet-loader/internal/errs"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{Clients: config.ClientsConfig{Redis: config.RedisConfig{
		KeyPrefix: "test:import:",
		TTL:       time.Hour,
	}}}
}

func TestOutcomeStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := New(client, testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	res := &app.ImportResult{
		ID:       "0b7c5a3e-6f43-4f6c-9a55-2f4d8c1e9a10",
		Status:   app.ImportSucceeded,
		FileName: "stock.xlsx",
		Table:    "stock_levels",
		Total:    3,
		Inserted: 2,
		Failures: []app.RowFailure{{Row: 2, Error: "constraint failed"}},
	}
	require.NoError(t, store.Save(ctx, res))

	assert.True(t, mr.Exists("test:import:"+res.ID))
	assert.Equal(t, time.Hour, mr.TTL("test:import:"+res.ID))

	got, err := store.Get(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Table, got.Table)
	assert.Equal(t, res.Inserted, got.Inserted)
	assert.Equal(t, res.Failures, got.Failures)

	mr.FastForward(2 * time.Hour)
	_, err = store.Get(ctx, res.ID)
	assert.True(t, errs.Is(err, errs.KindNotFound))
}

func TestOutcomeStoreWithoutRedis(t *testing.T) {
	store := New(nil, testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, store.Save(context.Background(), &app.ImportResult{ID: "x"}))

	_, err := store.Get(context.Background(), "x")
	assert.True(t, errs.Is(err, errs.KindNotFound))
}

func TestOutcomeStoreRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	store := New(client, testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := store.Save(context.Background(), &app.ImportResult{ID: "x"})
	assert.True(t, errs.Is(err, errs.KindConnection))
}
