package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Rainerrr/Mizrahi-Automations/internal/checks"
	"github.com/Rainerrr/Mizrahi-Automations/internal/models"
	"github.com/Rainerrr/Mizrahi-Automations/internal/repository"
	"github.com/Rainerrr/Mizrahi-Automations/internal/sampling"
	"github.com/Rainerrr/Mizrahi-Automations/internal/taxonomy"
)

// DisclosureInput carries one monthly disclosure report plus the registry
// snapshot and scope filters for a validation run.
type DisclosureInput struct {
	Current  []models.DisclosureRecord
	Previous []models.DisclosureRecord
	// HasPrevious distinguishes an absent previous report from an empty
	// one; absent skips the cross-period comparison with a warning.
	HasPrevious bool
	Registry    map[int64]models.Fund
	Period      models.Period
	Trustee     string
	Manager     string
	Operator    string
}

// DisclosureService runs the monthly disclosure rule battery and persists
// the resulting run report.
type DisclosureService struct {
	resolver *taxonomy.Resolver
	// runs may be nil, which skips persistence.
	runs          *repository.RunRepository
	maxExceptions int
	seed          int64
}

// NewDisclosureService creates a new DisclosureService. maxExceptions and
// seed parameterize the stratified sampler applied to each check's output.
func NewDisclosureService(resolver *taxonomy.Resolver, runs *repository.RunRepository, maxExceptions int, seed int64) *DisclosureService {
	return &DisclosureService{resolver: resolver, runs: runs, maxExceptions: maxExceptions, seed: seed}
}

// Run executes every disclosure check against the input and returns the
// assembled run report. The pure checkers run concurrently; rule findings
// come back inside the report, never as errors.
func (s *DisclosureService) Run(ctx context.Context, in DisclosureInput) (*models.RunReport, error) {
	defer TrackTime("RunDisclosureValidation", time.Now())

	if in.Period.IsZero() {
		return nil, errors.New("expected report period is unknown")
	}
	ctx, wc := ensureWarnings(ctx)

	inScope := models.InScopeIDs(in.Registry, in.Trustee, in.Manager)
	if len(inScope) == 0 {
		Warnf(ctx, models.WarnEmptyScope, "no registry funds match trustee %q", in.Trustee)
	}
	if !in.HasPrevious {
		Warnf(ctx, models.WarnPreviousReportUnavailable, "previous month report unavailable, cross-period comparison skipped")
	}

	var (
		completeness []models.Exception
		dates        []models.Exception
		delta        []models.Exception
		exposure     []models.Exception
		implications []checks.ImplicationGroup
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		completeness = checks.Completeness(in.Current, inScope, in.Registry)
		return nil
	})
	g.Go(func() error {
		dates = checks.ReportDates(in.Current, in.Period, inScope)
		return nil
	})
	if in.HasPrevious {
		g.Go(func() error {
			delta = checks.CrossPeriodDelta(in.Current, in.Previous, inScope, in.Registry)
			return nil
		})
	}
	g.Go(func() error {
		exposure = checks.ExposureLimits(in.Current, inScope, in.Registry)
		return nil
	})
	g.Go(func() error {
		implications = checks.Implications(in.Current, inScope, s.resolver)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := []models.CheckResult{
		s.result(checks.RuleCompleteness, "Completeness", completeness),
		s.result(checks.RuleReportDate, "Report dates", dates),
	}
	deltaResult := s.result(checks.RuleDelta, "Cross-period delta", delta)
	deltaResult.Skipped = !in.HasPrevious
	results = append(results, deltaResult)
	results = append(results, s.result(checks.RuleExposure, "Exposure limits", exposure))
	for _, group := range implications {
		results = append(results, s.result(group.Rule.ID, group.Rule.Name, group.Exceptions))
	}

	report := &models.RunReport{
		ID:        uuid.New(),
		Kind:      models.RunKindDisclosure,
		Period:    in.Period.String(),
		Trustee:   in.Trustee,
		Manager:   in.Manager,
		Operator:  in.Operator,
		Checks:    results,
		CreatedAt: time.Now(),
	}
	report.Summary = s.summary(in, inScope, report)
	report.Warnings = wc.GetWarnings()

	if s.runs != nil {
		if err := s.runs.CreateRun(ctx, report); err != nil {
			return nil, fmt.Errorf("failed to persist run: %w", err)
		}
	}
	log.Infof("disclosure run %s: %d funds in scope, %d exceptions, %d warnings",
		report.ID, len(inScope), report.Summary.TotalExceptions, len(report.Warnings))
	return report, nil
}

// result samples one check's exceptions down to the configured cap.
func (s *DisclosureService) result(ruleID, name string, exceptions []models.Exception) models.CheckResult {
	sampled, total := sampling.Stratified(exceptions, s.maxExceptions, s.seed)
	return models.CheckResult{
		RuleID:     ruleID,
		Name:       name,
		Total:      total,
		Exceptions: sampled,
		Sampled:    len(sampled) < total,
	}
}

func (s *DisclosureService) summary(in DisclosureInput, inScope map[int64]bool, report *models.RunReport) models.RunSummary {
	inScopeRows := 0
	for _, rec := range in.Current {
		if rec.FundID != nil && inScope[*rec.FundID] {
			inScopeRows++
		}
	}

	counts := make(map[string]string, len(report.Checks))
	for _, c := range report.Checks {
		counts[c.RuleID] = c.CountLabel()
	}

	return models.RunSummary{
		Period:          in.Period.String(),
		TrusteeFilter:   in.Trustee,
		ManagerFilter:   in.Manager,
		TotalFunds:      len(in.Registry),
		InScopeFunds:    len(inScope),
		OutOfScopeFunds: len(in.Registry) - len(inScope),
		TotalRows:       len(in.Current),
		InScopeRows:     inScopeRows,
		TotalExceptions: report.TotalExceptions(),
		ExceptionCounts: counts,
	}
}
