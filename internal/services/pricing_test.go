package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Rainerrr/Mizrahi-Automations/internal/cache"
)

func TestPricingService_ClosingPrice_CachesHits(t *testing.T) {
	fake := &fakeOracle{prices: map[string]float64{"1234567": 95.5}}
	svc := NewPricingService(cache.NewMemoryCache(time.Hour), fake)
	d := time.Date(2025, time.September, 3, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 2; i++ {
		price, found, err := svc.ClosingPrice(context.Background(), "1234567", d)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !found || price != 95.5 {
			t.Fatalf("expected 95.5, got %v (found=%v)", price, found)
		}
	}
	if fake.calls != 1 {
		t.Errorf("expected the repeat lookup served from cache, got %d upstream calls", fake.calls)
	}

	// A different trading day is a different cache entry.
	if _, _, err := svc.ClosingPrice(context.Background(), "1234567", d.AddDate(0, 0, 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.calls != 2 {
		t.Errorf("expected a fresh lookup for a new date, got %d upstream calls", fake.calls)
	}
}

func TestPricingService_ClosingPrice_CachesMisses(t *testing.T) {
	fake := &fakeOracle{prices: map[string]float64{}}
	svc := NewPricingService(cache.NewMemoryCache(time.Hour), fake)
	d := time.Date(2025, time.September, 3, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 2; i++ {
		_, found, err := svc.ClosingPrice(context.Background(), "9999999", d)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found {
			t.Fatal("expected no price for an unknown security")
		}
	}
	if fake.calls != 1 {
		t.Errorf("expected the no-data answer cached, got %d upstream calls", fake.calls)
	}
}

func TestPricingService_ClosingPrice_ErrorsNotCached(t *testing.T) {
	fake := &fakeOracle{prices: map[string]float64{"1234567": 10}, err: errors.New("exchange down")}
	svc := NewPricingService(cache.NewMemoryCache(time.Hour), fake)
	d := time.Date(2025, time.September, 3, 0, 0, 0, 0, time.UTC)

	if _, _, err := svc.ClosingPrice(context.Background(), "1234567", d); err == nil {
		t.Fatal("expected the upstream error surfaced")
	}

	fake.err = nil
	price, found, err := svc.ClosingPrice(context.Background(), "1234567", d)
	if err != nil {
		t.Fatalf("unexpected error after recovery: %v", err)
	}
	if !found || price != 10 {
		t.Errorf("expected 10 after recovery, got %v (found=%v)", price, found)
	}
	if fake.calls != 2 {
		t.Errorf("expected the failed lookup retried upstream, got %d calls", fake.calls)
	}
}
