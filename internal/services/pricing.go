package services

import (
	"context"
	"time"

	"github.com/Rainerrr/Mizrahi-Automations/internal/cache"
	"github.com/Rainerrr/Mizrahi-Automations/internal/checks"
	log "github.com/sirupsen/logrus"
)

// PricingService serves official closing prices through the in-memory
// cache, falling back to the exchange API. Closing prices never change
// once published, so cache entries have no expiry; "no data for that day"
// answers are cached too, sparing repeat lookups for untraded securities.
type PricingService struct {
	cache  *cache.MemoryCache
	client checks.PriceOracle
}

// NewPricingService creates a new PricingService over the given upstream
// oracle, normally the exchange data client.
func NewPricingService(c *cache.MemoryCache, client checks.PriceOracle) *PricingService {
	return &PricingService{cache: c, client: client}
}

// ClosingPrice implements checks.PriceOracle with a read-through cache.
func (s *PricingService) ClosingPrice(ctx context.Context, securityID string, date time.Time) (float64, bool, error) {
	if price, found, cached := s.cache.GetClosingPrice(securityID, date); cached {
		return price, found, nil
	}

	price, found, err := s.client.ClosingPrice(ctx, securityID, date)
	if err != nil {
		return 0, false, err
	}
	s.cache.SetClosingPrice(securityID, date, price, found)
	if !found {
		log.Debugf("no closing price for security %s on %s", securityID, date.Format("2006-01-02"))
	}
	return price, found, nil
}
