package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/Rainerrr/Mizrahi-Automations/internal/cache"
	"github.com/Rainerrr/Mizrahi-Automations/internal/checks"
	"github.com/Rainerrr/Mizrahi-Automations/internal/models"
	"github.com/Rainerrr/Mizrahi-Automations/internal/taskrunner"
	log "github.com/sirupsen/logrus"
)

// DenylistTTL is how long a fetched snapshot of the flagged-securities
// lists stays fresh. The exchange updates the pages daily.
const DenylistTTL = 24 * time.Hour

// denylistActor scrapes one exchange listing page and emits the table
// rows as dataset items.
const denylistActor = "rrWqYdSbKT0fazn8L"

// denylistSources are the exchange pages listing flagged securities. Keys
// name the lists in the mirror file; Name is the display name carried into
// exception reasons.
var denylistSources = []struct {
	Key  string
	Name string
	URL  string
}{
	{
		Key:  "low_liquidity",
		Name: "דלי סחירות",
		URL:  "https://market.tase.co.il/he/market_data/securities/data/all?dType=1&cl1=0&cl2=2",
	},
	{
		Key:  "maintenance",
		Name: "רשימת שימור",
		URL:  "https://market.tase.co.il/he/market_data/securities/data/all?dType=1&cl1=0&cl2=3",
	},
	{
		Key:  "suspended",
		Name: "מושעים",
		URL:  "https://market.tase.co.il/he/market_data/securities/data/all?dType=1&cl1=0&cl2=4",
	},
}

// securityNoRe matches the 7-digit exchange security numbers in scraped
// table cells.
var securityNoRe = regexp.MustCompile(`^\d{7}$`)

// DenylistService serves the flagged-securities lists, trying the memory
// cache, then a JSON mirror file, then a live scrape through the task
// runner. A failed scrape falls back to whatever stale snapshot exists.
type DenylistService struct {
	runner     *taskrunner.Client
	cache      *cache.MemoryCache
	mirrorPath string
}

// NewDenylistService creates a new DenylistService. mirrorPath names the
// JSON file the lists are mirrored to between processes; empty disables
// the mirror.
func NewDenylistService(runner *taskrunner.Client, c *cache.MemoryCache, mirrorPath string) *DenylistService {
	return &DenylistService{runner: runner, cache: c, mirrorPath: mirrorPath}
}

// Lists returns the flagged-securities lists in source order. When only a
// stale snapshot is available it is returned with a warning on ctx; with
// no snapshot at all the error is returned for the caller to skip the
// membership check.
func (s *DenylistService) Lists(ctx context.Context) ([]checks.Denylist, error) {
	if lists, ok := s.cache.GetDenylists(); ok {
		return lists, nil
	}

	if lists, fetchedAt, ok := s.readMirror(); ok && time.Since(fetchedAt) <= DenylistTTL {
		s.cache.SetDenylists(lists, fetchedAt)
		return lists, nil
	}

	lists, err := s.fetch(ctx)
	if err == nil {
		now := time.Now()
		s.cache.SetDenylists(lists, now)
		s.writeMirror(lists, now)
		return lists, nil
	}
	log.Errorf("denylist fetch failed: %v", err)

	if lists, fetchedAt, ok := s.cache.GetDenylistsStale(); ok {
		Warnf(ctx, models.WarnDenylistsStale, "denylist fetch failed, serving snapshot from %s", fetchedAt.Format(time.RFC3339))
		return lists, nil
	}
	if lists, fetchedAt, ok := s.readMirror(); ok {
		Warnf(ctx, models.WarnDenylistsStale, "denylist fetch failed, serving snapshot from %s", fetchedAt.Format(time.RFC3339))
		s.cache.SetDenylists(lists, fetchedAt)
		return lists, nil
	}
	return nil, fmt.Errorf("denylists unavailable: %w", err)
}

// fetch scrapes every source page. A single failed list is served empty;
// only all sources failing is an error.
func (s *DenylistService) fetch(ctx context.Context) ([]checks.Denylist, error) {
	defer TrackTime("FetchDenylists", time.Now())

	lists := make([]checks.Denylist, 0, len(denylistSources))
	fetched := 0
	for _, src := range denylistSources {
		members, err := s.fetchList(ctx, src.URL)
		if err != nil {
			log.Errorf("failed to fetch denylist %s: %v", src.Key, err)
			lists = append(lists, checks.Denylist{Name: src.Name, Members: map[string]bool{}})
			continue
		}
		log.Infof("fetched denylist %s: %d securities", src.Key, len(members))
		lists = append(lists, checks.Denylist{Name: src.Name, Members: members})
		fetched++
	}
	if fetched == 0 {
		return nil, fmt.Errorf("all %d denylist sources failed", len(denylistSources))
	}
	return lists, nil
}

// fetchList runs the scraper actor on one page and collects the security
// numbers from the emitted rows.
func (s *DenylistService) fetchList(ctx context.Context, pageURL string) (map[string]bool, error) {
	run, err := s.runner.RunAndWait(ctx, denylistActor, map[string]any{"url": pageURL})
	if err != nil {
		return nil, err
	}
	items, err := s.runner.DatasetItems(ctx, run.DefaultDatasetID)
	if err != nil {
		return nil, err
	}

	members := make(map[string]bool)
	for _, item := range items {
		for _, v := range item {
			text, ok := v.(string)
			if !ok {
				continue
			}
			text = strings.TrimSpace(text)
			if securityNoRe.MatchString(text) {
				members[text] = true
			}
		}
	}
	return members, nil
}

// denylistMirror is the JSON layout of the mirror file: the fetch time
// plus the member ids keyed by source key.
type denylistMirror struct {
	FetchedAt time.Time           `json:"fetched_at"`
	Lists     map[string][]string `json:"lists"`
}

func (s *DenylistService) readMirror() ([]checks.Denylist, time.Time, bool) {
	if s.mirrorPath == "" {
		return nil, time.Time{}, false
	}
	data, err := os.ReadFile(s.mirrorPath)
	if err != nil {
		return nil, time.Time{}, false
	}
	var mirror denylistMirror
	if err := json.Unmarshal(data, &mirror); err != nil {
		log.Warnf("ignoring unreadable denylist mirror %s: %v", s.mirrorPath, err)
		return nil, time.Time{}, false
	}

	lists := make([]checks.Denylist, 0, len(denylistSources))
	for _, src := range denylistSources {
		members := make(map[string]bool, len(mirror.Lists[src.Key]))
		for _, id := range mirror.Lists[src.Key] {
			members[id] = true
		}
		lists = append(lists, checks.Denylist{Name: src.Name, Members: members})
	}
	return lists, mirror.FetchedAt, true
}

func (s *DenylistService) writeMirror(lists []checks.Denylist, fetchedAt time.Time) {
	if s.mirrorPath == "" {
		return
	}
	mirror := denylistMirror{FetchedAt: fetchedAt, Lists: make(map[string][]string, len(lists))}
	for i, src := range denylistSources {
		if i >= len(lists) {
			break
		}
		ids := make([]string, 0, len(lists[i].Members))
		for id := range lists[i].Members {
			ids = append(ids, id)
		}
		mirror.Lists[src.Key] = ids
	}

	data, err := json.MarshalIndent(mirror, "", "  ")
	if err != nil {
		log.Warnf("failed to encode denylist mirror: %v", err)
		return
	}
	if err := os.WriteFile(s.mirrorPath, data, 0o644); err != nil {
		log.Warnf("failed to write denylist mirror %s: %v", s.mirrorPath, err)
	}
}
