package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	InvoiceStatsKey = "invoices:stats"
	invoiceStatsTTL = 5 * time.Minute
)

// Cache is a thin Redis wrapper. A nil *Cache, or one whose server was
// unreachable at startup, turns every call into a miss or a no-op so the API
// keeps working without Redis.
type Cache struct {
	client *redis.Client
}

// Connect dials Redis and pings it. On failure the returned Cache is still
// usable (disabled) and the error says why.
func Connect(ctx context.Context, addr, password string, db int) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return &Cache{}, err
	}
	return &Cache{client: client}, nil
}

// NewWithClient wraps an existing client
func NewWithClient(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Ping reports Redis health. A disabled cache is not an error.
func (c *Cache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

// GetInvoiceStats returns the cached receivables stats payload
func (c *Cache) GetInvoiceStats(ctx context.Context) ([]byte, bool) {
	if !c.Enabled() {
		return nil, false
	}
	data, err := c.client.Get(ctx, InvoiceStatsKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *Cache) SetInvoiceStats(ctx context.Context, data []byte) {
	if !c.Enabled() {
		return
	}
	c.client.Set(ctx, InvoiceStatsKey, data, invoiceStatsTTL)
}

// InvalidateInvoiceStats drops the stats after any invoice write
func (c *Cache) InvalidateInvoiceStats(ctx context.Context) {
	if !c.Enabled() {
		return
	}
	c.client.Del(ctx, InvoiceStatsKey)
}
