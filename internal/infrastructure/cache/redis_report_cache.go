// Package cache guarda en Redis los resúmenes de ventas de rangos cerrados.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/ports"
)

var _ ports.ReportCache = (*RedisReportCache)(nil)

// RedisReportCache implementa ports.ReportCache con valores JSON y TTL.
type RedisReportCache struct {
	client *redis.Client
}

// NewRedisReportCache crea el cliente. No conecta hasta el primer comando; usar Ping al arrancar.
func NewRedisReportCache(addr, password string, db int) *RedisReportCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisReportCache{client: client}
}

func (c *RedisReportCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisReportCache) Close() error {
	return c.client.Close()
}

// GetSalesSummary devuelve (nil, false, nil) si la clave no existe.
func (c *RedisReportCache) GetSalesSummary(ctx context.Context, key string) (*dto.SalesSummaryDTO, bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var out dto.SalesSummaryDTO
	if err := json.Unmarshal(val, &out); err != nil {
		return nil, false, err
	}
	return &out, true, nil
}

// SetSalesSummary guarda el resumen; ttl <= 0 lo deja sin expiración.
func (c *RedisReportCache) SetSalesSummary(ctx context.Context, key string, value *dto.SalesSummaryDTO, ttl time.Duration) error {
	if value == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl < 0 {
		ttl = 0
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}
