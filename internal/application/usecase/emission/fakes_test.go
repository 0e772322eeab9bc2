package emission

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Chanakan5591/carbonyx/internal/domain/entity"
)

// fakeDataStore is an in-memory EmissionDataStore.
type fakeDataStore struct {
	records []*entity.ActivityRecord
	offsets []*entity.OffsetPurchase
	factors []*entity.EmissionFactor
	err     error
	calls   atomic.Int32
}

func (f *fakeDataStore) QueryActivityRecords(ctx context.Context, organizationID string, startSeconds, endSeconds int64) ([]*entity.ActivityRecord, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []*entity.ActivityRecord
	for _, r := range f.records {
		ts := r.Timestamp.Unix()
		if r.OrganizationID == organizationID && ts >= startSeconds && ts <= endSeconds {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeDataStore) QueryOffsetPurchases(ctx context.Context, organizationID string, startSeconds, endSeconds int64) ([]*entity.OffsetPurchase, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []*entity.OffsetPurchase
	for _, o := range f.offsets {
		ts := o.Timestamp.Unix()
		if o.OrganizationID == organizationID && ts >= startSeconds && ts <= endSeconds {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeDataStore) QueryEmissionFactors(ctx context.Context) ([]*entity.EmissionFactor, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.factors, nil
}

// fakeCache is an in-memory RollupCache.
type fakeCache struct {
	mu          sync.Mutex
	entries     map[string][]byte
	generations map[string]int64
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		entries:     make(map[string][]byte),
		generations: make(map[string]int64),
	}
}

func (c *fakeCache) Generation(ctx context.Context, organizationID string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[organizationID], nil
}

func (c *fakeCache) Get(ctx context.Context, organizationID, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[organizationID+"|"+key], nil
}

func (c *fakeCache) Set(ctx context.Context, organizationID, key string, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[organizationID+"|"+key] = payload
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context, organizationID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[organizationID]++
	for key := range c.entries {
		if len(key) > len(organizationID) && key[:len(organizationID)+1] == organizationID+"|" {
			delete(c.entries, key)
		}
	}
	return nil
}

func record(org string, category entity.CategoryType, value, factor string, ts time.Time) *entity.ActivityRecord {
	return &entity.ActivityRecord{
		ID:             uuid.New(),
		OrganizationID: org,
		CategoryType:   category,
		Value:          decimal.RequireFromString(value),
		RecordedFactor: decimal.RequireFromString(factor),
		Timestamp:      ts,
	}
}

func offset(org, tco2e, price string, ts time.Time) *entity.OffsetPurchase {
	return &entity.OffsetPurchase{
		ID:             uuid.New(),
		OrganizationID: org,
		Tco2e:          decimal.RequireFromString(tco2e),
		PricePerTco2e:  decimal.RequireFromString(price),
		Timestamp:      ts,
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
