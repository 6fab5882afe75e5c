package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Rainerrr/Mizrahi-Automations/internal/loader"
	"github.com/Rainerrr/Mizrahi-Automations/internal/models"
	"github.com/Rainerrr/Mizrahi-Automations/internal/taskrunner"
	"github.com/Rainerrr/Mizrahi-Automations/internal/util"
)

// Actors on the task-runner platform.
const (
	actorFundsList   = "K9WppTziYC3n2vxTu"
	actorK303Reports = "iTpNz9ixbdQCmH43C"
)

// k303WaitTimeout extends the run wait for the report downloader, which
// is slower than the default actor budget.
const k303WaitTimeout = 300 * time.Second

// Key-value store records written by the report downloader.
const (
	recordLatestReport   = "report_latest_month.csv"
	recordPreviousReport = "report_previous_month.csv"
)

// managerCodes maps fund manager names to their regulator filing codes.
// The downloader actor prefers the numeric code; unlisted managers are
// passed by name.
var managerCodes = map[string]string{
	"מגדל":        "10040",
	"קסם":         "10047",
	"סיגמא":       "10048",
	"פורסט":       "10082",
	"הראל":        "10031",
	"אנליסט":      "10019",
	"מיטב":        "10083",
	"איביאי":      "10068",
	"אלטשולר-שחם": "10017",
}

// AutomationInput names the manager whose monthly disclosure reports the
// automation should fetch and validate.
type AutomationInput struct {
	Manager  string
	Operator string
	// Period overrides the period derived from the report title.
	Period models.Period
}

// AutomationService runs the disclosure validation end to end: it fetches
// the fund registry and the latest two monthly reports through the task
// runner, derives the report period from the artifact title, and hands
// everything to the disclosure battery.
type AutomationService struct {
	runner     *taskrunner.Client
	disclosure *DisclosureService
	trustee    string
}

// NewAutomationService creates a new AutomationService scoped to the
// given trustee.
func NewAutomationService(runner *taskrunner.Client, disclosure *DisclosureService, trustee string) *AutomationService {
	return &AutomationService{runner: runner, disclosure: disclosure, trustee: trustee}
}

// reportArtifacts are the downloader's outputs: the raw monthly report
// CSVs plus the Hebrew report title the period is derived from. previous
// is nil when last month's report could not be fetched.
type reportArtifacts struct {
	current  []byte
	previous []byte
	title    string
}

// RunK303 executes the monthly automation for one manager and returns the
// resulting validation run report.
func (s *AutomationService) RunK303(ctx context.Context, in AutomationInput) (*models.RunReport, error) {
	defer TrackTime("RunK303Automation", time.Now())

	if s.runner == nil {
		return nil, errors.New("task runner not configured")
	}
	if in.Manager == "" {
		return nil, errors.New("manager name is required")
	}
	log.Infof("starting disclosure automation for manager %q", in.Manager)

	var (
		registry  map[int64]models.Fund
		artifacts *reportArtifacts
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		registry, err = s.fetchRegistry(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		artifacts, err = s.fetchReports(gctx, in.Manager)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	period := in.Period
	if period.IsZero() && artifacts.title != "" {
		if year, month, ok := util.PeriodFromReportTitle(artifacts.title); ok {
			period = models.Period{Year: year, Month: month}
			log.Infof("report period %s derived from title %q", period, artifacts.title)
		}
	}
	if period.IsZero() {
		return nil, fmt.Errorf("could not determine report period from title %q", artifacts.title)
	}

	current, err := loader.ParseDisclosureCSV(bytes.NewReader(artifacts.current))
	if err != nil {
		return nil, fmt.Errorf("failed to parse current report: %w", err)
	}

	var previous []models.DisclosureRecord
	hasPrevious := false
	if len(artifacts.previous) > 0 {
		previous, err = loader.ParseDisclosureCSV(bytes.NewReader(artifacts.previous))
		if err != nil {
			log.Warnf("failed to parse previous report, continuing without it: %v", err)
		} else {
			hasPrevious = true
		}
	}

	return s.disclosure.Run(ctx, DisclosureInput{
		Current:     current,
		Previous:    previous,
		HasPrevious: hasPrevious,
		Registry:    registry,
		Period:      period,
		Trustee:     s.trustee,
		Manager:     in.Manager,
		Operator:    in.Operator,
	})
}

// fetchRegistry downloads the mutual-funds list snapshot. The actor emits
// one dataset item carrying the CSV export base64-encoded.
func (s *AutomationService) fetchRegistry(ctx context.Context) (map[int64]models.Fund, error) {
	run, err := s.runner.RunAndWait(ctx, actorFundsList, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch funds list: %w", err)
	}
	items, err := s.runner.DatasetItems(ctx, run.DefaultDatasetID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch funds list items: %w", err)
	}
	if len(items) == 0 {
		return nil, errors.New("funds list dataset is empty")
	}
	encoded, _ := items[0]["fileBase64"].(string)
	if encoded == "" {
		return nil, errors.New("funds list item carries no file")
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode funds list: %w", err)
	}

	registry, err := loader.ParseRegistryCSV(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse funds list: %w", err)
	}
	log.Infof("fetched funds list: %d funds", len(registry))
	return registry, nil
}

// fetchReports runs the report downloader for one manager and pulls the
// current and previous monthly CSVs from its key-value store. A missing
// previous report is tolerated; the validation then skips the
// cross-period comparison.
func (s *AutomationService) fetchReports(ctx context.Context, manager string) (*reportArtifacts, error) {
	input := map[string]any{"fundManagerName": manager}
	if code, ok := managerCodes[manager]; ok {
		input = map[string]any{"fundManagerCode": code}
	}
	run, err := s.runner.RunAndWaitFor(ctx, actorK303Reports, input, k303WaitTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reports for %s: %w", manager, err)
	}

	items, err := s.runner.DatasetItems(ctx, run.DefaultDatasetID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch report metadata: %w", err)
	}
	var title string
	if len(items) > 0 {
		if status, _ := items[0]["status"].(string); status == "failed" {
			msg, _ := items[0]["error"].(string)
			return nil, fmt.Errorf("report downloader failed: %s", msg)
		}
		if files, _ := items[0]["downloadedFiles"].([]any); len(files) > 0 {
			if first, ok := files[0].(map[string]any); ok {
				title, _ = first["reportName"].(string)
			}
		}
	}

	current, err := s.runner.KeyValueRecord(ctx, run.DefaultKeyValueStoreID, recordLatestReport)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current month report: %w", err)
	}
	previous, err := s.runner.KeyValueRecord(ctx, run.DefaultKeyValueStoreID, recordPreviousReport)
	if err != nil {
		log.Warnf("previous month report unavailable: %v", err)
		previous = nil
	}

	log.Infof("fetched reports for %s: current %d bytes, previous %d bytes, title %q",
		manager, len(current), len(previous), title)
	return &reportArtifacts{current: current, previous: previous, title: title}, nil
}
