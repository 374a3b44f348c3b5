package cache

import (
	"context"

	"github.com/shopspring/decimal"
)

// Balance is the cached view of a wallet balance.
type Balance struct {
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

// BalanceCache is the read-through cache used by the query side. The
// transaction engine writes the committed balance after each commit;
// readers only fill an empty key, so a read that overlaps a commit cannot
// replace the committed value with an older one.
type BalanceCache interface {
	GetBalance(ctx context.Context, userID string) (*Balance, bool, error)
	// SetBalance overwrites the cached value.
	SetBalance(ctx context.Context, userID string, b Balance) error
	// FillBalance stores b only if nothing is cached for userID.
	FillBalance(ctx context.Context, userID string, b Balance) error
	InvalidateBalance(ctx context.Context, userID string) error
}

type redisBalanceCache struct {
	svc *CacheService
}

func NewBalanceCache(svc *CacheService) BalanceCache {
	return &redisBalanceCache{svc: svc}
}

func (c *redisBalanceCache) key(userID string) string {
	return c.svc.GenerateKey("wallet", "balance", userID)
}

func (c *redisBalanceCache) GetBalance(ctx context.Context, userID string) (*Balance, bool, error) {
	var b Balance
	found, err := c.svc.Get(ctx, c.key(userID), &b)
	if err != nil || !found {
		return nil, false, err
	}
	return &b, true, nil
}

func (c *redisBalanceCache) SetBalance(ctx context.Context, userID string, b Balance) error {
	return c.svc.Set(ctx, c.key(userID), b)
}

func (c *redisBalanceCache) FillBalance(ctx context.Context, userID string, b Balance) error {
	_, err := c.svc.SetIfAbsent(ctx, c.key(userID), b)
	return err
}

func (c *redisBalanceCache) InvalidateBalance(ctx context.Context, userID string) error {
	return c.svc.Delete(ctx, c.key(userID))
}

// NoopBalanceCache never stores anything. Used when Redis is not configured.
type NoopBalanceCache struct{}

func (NoopBalanceCache) GetBalance(context.Context, string) (*Balance, bool, error) {
	return nil, false, nil
}
func (NoopBalanceCache) SetBalance(context.Context, string, Balance) error  { return nil }
func (NoopBalanceCache) FillBalance(context.Context, string, Balance) error { return nil }
func (NoopBalanceCache) InvalidateBalance(context.Context, string) error    { return nil }
