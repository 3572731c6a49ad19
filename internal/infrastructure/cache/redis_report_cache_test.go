package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/infrastructure/cache"
)

func newTestCache(t *testing.T) *cache.RedisReportCache {
	t.Helper()
	addr := os.Getenv("POS_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("POS_TEST_REDIS_ADDR no definido")
	}
	c := cache.NewRedisReportCache(addr, "", 0)
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.Ping(context.Background()))
	return c
}

func TestRedisReportCache_MissDevuelveFalse(t *testing.T) {
	c := newTestCache(t)
	got, ok, err := c.GetSalesSummary(context.Background(), "report:test:"+uuid.NewString())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestRedisReportCache_GuardaYLee(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	key := "report:test:" + uuid.NewString()
	in := &dto.SalesSummaryDTO{
		StartDate:         "2026-01-01",
		EndDate:           "2026-01-31",
		TotalRevenue:      decimal.RequireFromString("1520.75"),
		TotalTransactions: 42,
	}
	require.NoError(t, c.SetSalesSummary(ctx, key, in, time.Minute))

	got, ok, err := c.GetSalesSummary(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in.StartDate, got.StartDate)
	assert.Equal(t, 42, got.TotalTransactions)
	assert.True(t, in.TotalRevenue.Equal(got.TotalRevenue))
}
