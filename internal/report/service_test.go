package report

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestService(t *testing.T, strict bool) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(NewCache(client, time.Minute), strict), mr
}

const sampleConfig = `{
	"currency": "USD",
	"tax": {"profit_tax_rate": 0.2},
	"jewelry": {
		"channels": [{"name": "online", "units": 100, "avg_price": 50, "unit_cost": 20}],
		"overheads": {"rent": 1000}
	},
	"yoga": {
		"capacity": 10,
		"classes": {"slots_per_day": 4, "days_per_week": 5, "fill_rate": 0.6},
		"pricing": {"single_class_price": 20},
		"corporate": {"days_per_month": 0},
		"overheads": {}
	},
	"retail": {"categories": [], "overheads": {"rent": 250}}
}`

func TestServiceBuildFromJSON(t *testing.T) {
	svc, _ := newTestService(t, false)

	summary, err := svc.BuildFromJSON(context.Background(), []byte(sampleConfig))
	if err != nil {
		t.Fatalf("BuildFromJSON() error = %v", err)
	}
	if summary.Currency != "USD" {
		t.Fatalf("expected currency USD got %q", summary.Currency)
	}
	if !almostEqual(summary.Yoga.PnL.Revenue, 86*6*20) {
		t.Fatalf("unexpected yoga revenue %v", summary.Yoga.PnL.Revenue)
	}
	if summary.Retail.PnL.ProfitBeforeTax != -250 {
		t.Fatalf("expected empty retail to lose its fixed costs, got %v", summary.Retail.PnL.ProfitBeforeTax)
	}
}

func TestServiceBuildFromJSONRejectsMalformedInput(t *testing.T) {
	svc, _ := newTestService(t, false)

	if _, err := svc.BuildFromJSON(context.Background(), []byte("{not json")); err == nil {
		t.Fatalf("expected parse error for malformed input")
	}
}

func TestServiceBuildCachesByCanonicalSnapshot(t *testing.T) {
	svc, mr := newTestService(t, false)
	ctx := context.Background()

	if _, err := svc.BuildFromJSON(ctx, []byte(sampleConfig)); err != nil {
		t.Fatalf("first build: %v", err)
	}
	keysAfterFirst := len(mr.Keys())
	if keysAfterFirst == 0 {
		t.Fatalf("expected summary to be cached")
	}

	// Same snapshot with different whitespace shares the cache entry.
	compact := `{"currency":"USD","tax":{"profit_tax_rate":0.2},"jewelry":{"channels":[{"name":"online","units":100,"avg_price":50,"unit_cost":20}],"overheads":{"rent":1000}},"yoga":{"capacity":10,"classes":{"slots_per_day":4,"days_per_week":5,"fill_rate":0.6},"pricing":{"single_class_price":20},"corporate":{"days_per_month":0},"overheads":{}},"retail":{"categories":[],"overheads":{"rent":250}}}`
	if _, err := svc.BuildFromJSON(ctx, []byte(compact)); err != nil {
		t.Fatalf("second build: %v", err)
	}
	if got := len(mr.Keys()); got != keysAfterFirst {
		t.Fatalf("expected no new cache entries, had %d now %d", keysAfterFirst, got)
	}
}

func TestServiceBuildCachedResultMatchesFresh(t *testing.T) {
	svc, _ := newTestService(t, false)
	ctx := context.Background()

	first, err := svc.BuildFromJSON(ctx, []byte(sampleConfig))
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	second, err := svc.BuildFromJSON(ctx, []byte(sampleConfig))
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if !almostEqual(first.Aggregate.ProfitAfterTax, second.Aggregate.ProfitAfterTax) {
		t.Fatalf("cached summary diverged: %v vs %v", first.Aggregate.ProfitAfterTax, second.Aggregate.ProfitAfterTax)
	}
	if (first.Jewelry.PnL.BreakEvenUnits == nil) != (second.Jewelry.PnL.BreakEvenUnits == nil) {
		t.Fatalf("nullable break-even lost through the cache round trip")
	}
}

func TestServiceInvalidateBumpsVersion(t *testing.T) {
	svc, _ := newTestService(t, false)
	ctx := context.Background()

	before, err := svc.cache.Version(ctx)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if err := svc.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	after, err := svc.cache.Version(ctx)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if after <= before {
		t.Fatalf("expected version bump, before %d after %d", before, after)
	}
}

func TestServiceStrictModeRejectsOutOfRangeRates(t *testing.T) {
	svc, _ := newTestService(t, true)

	bad := `{"jewelry": {"channels": [{"units": 10, "avg_price": 50, "discount_rate": 1.4}]}}`
	if _, err := svc.BuildFromJSON(context.Background(), []byte(bad)); err == nil {
		t.Fatalf("expected strict mode to reject discount_rate > 1")
	}

	// Permissive mode lets the same snapshot compute.
	lenient, _ := newTestService(t, false)
	if _, err := lenient.BuildFromJSON(context.Background(), []byte(bad)); err != nil {
		t.Fatalf("permissive mode should compute: %v", err)
	}
}

func TestServiceWithoutCacheStillBuilds(t *testing.T) {
	svc := NewService(NewCache(nil, 0), false)
	summary, err := svc.BuildFromJSON(context.Background(), []byte(sampleConfig))
	if err != nil {
		t.Fatalf("BuildFromJSON() error = %v", err)
	}
	if summary.Currency != "USD" {
		t.Fatalf("expected currency USD got %q", summary.Currency)
	}
}
