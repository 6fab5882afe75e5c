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
)

// TransactionsInput carries one manager's special-transactions report plus
// the registry snapshot and scope filters for a validation run.
type TransactionsInput struct {
	Rows     []models.TransactionRecord
	Registry map[int64]models.Fund
	Period   models.Period
	Trustee  string
	Manager  string
	Operator string
}

// TransactionsService runs the special-transactions rule battery. The
// local checks always run; the two collaborator-backed checks, closing
// prices and denylists, run best-effort and degrade to warnings.
type TransactionsService struct {
	// oracle may be nil when the exchange API is not configured; the
	// price variance check is then skipped with a warning.
	oracle checks.PriceOracle
	// denylists may be nil when the task runner is not configured; the
	// membership check is then skipped with a warning.
	denylists *DenylistService
	// runs may be nil, which skips persistence.
	runs          *repository.RunRepository
	thresholdPct  float64
	maxExceptions int
	seed          int64
}

// NewTransactionsService creates a new TransactionsService. thresholdPct
// is the allowed variance above the closing price; maxExceptions and seed
// parameterize the stratified sampler.
func NewTransactionsService(oracle checks.PriceOracle, denylists *DenylistService, runs *repository.RunRepository, thresholdPct float64, maxExceptions int, seed int64) *TransactionsService {
	return &TransactionsService{
		oracle:        oracle,
		denylists:     denylists,
		runs:          runs,
		thresholdPct:  thresholdPct,
		maxExceptions: maxExceptions,
		seed:          seed,
	}
}

// Run executes the transaction checks and returns the assembled run
// report. Duplicate detection runs over every row of the report; the
// remaining checks see only rows of funds under the configured trustee.
func (s *TransactionsService) Run(ctx context.Context, in TransactionsInput) (*models.RunReport, error) {
	defer TrackTime("RunTransactionsValidation", time.Now())

	if in.Period.IsZero() {
		return nil, errors.New("expected report period is unknown")
	}
	ctx, wc := ensureWarnings(ctx)

	inScope := models.InScopeIDs(in.Registry, in.Trustee, in.Manager)
	if len(inScope) == 0 {
		Warnf(ctx, models.WarnEmptyScope, "no registry funds match trustee %q", in.Trustee)
	}

	duplicates := checks.DuplicateRows(in.Rows)
	transfers := checks.InterFundTransfers(in.Rows)

	var inScopeRows []models.TransactionRecord
	allFunds := make(map[int64]bool)
	scopedFunds := make(map[int64]bool)
	outFunds := make(map[int64]bool)
	for _, r := range in.Rows {
		if r.FundID == nil {
			continue
		}
		allFunds[*r.FundID] = true
		if inScope[*r.FundID] {
			scopedFunds[*r.FundID] = true
			inScopeRows = append(inScopeRows, r)
		} else {
			outFunds[*r.FundID] = true
		}
	}

	dates := checks.TransactionDates(inScopeRows, in.Period)
	decisions := checks.DecisionMethods(inScopeRows)
	consistency := checks.PriceTypeConsistency(inScopeRows)

	// Rows no local check flagged are the pool for spot samples.
	flagged := make(map[int]bool)
	for _, list := range [][]models.Exception{duplicates, transfers, dates, decisions, consistency} {
		for _, ex := range list {
			flagged[ex.RowNum] = true
		}
	}
	var validRows []models.TransactionRecord
	for _, r := range inScopeRows {
		if !flagged[r.RowNum] {
			validRows = append(validRows, r)
		}
	}
	samples := sampling.SpotSamples(validRows, s.seed)

	var (
		priceResults  []checks.PriceCheckResult
		varianceExs   []models.Exception
		priceWarnings []models.Warning
		limitExs      []models.Exception
		denyExs       []models.Exception
		denyErr       error
	)
	if s.oracle == nil {
		Warnf(ctx, models.WarnPriceOracleDown, "price oracle not configured, closing-price comparison skipped")
	}

	g, gctx := errgroup.WithContext(ctx)
	if s.oracle != nil {
		g.Go(func() error {
			priceResults, varianceExs, priceWarnings = checks.PriceVariance(gctx, inScopeRows, s.oracle, checks.PriceVarianceConfig{
				ThresholdPct:   s.thresholdPct,
				SamplesPerType: checks.SamplesPerType,
				Types:          checks.PriceVarianceTypes,
				Seed:           s.seed,
			})
			return nil
		})
	}
	g.Go(func() error {
		limitExs = checks.PriceLimits(inScopeRows)
		return nil
	})
	g.Go(func() error {
		if s.denylists == nil {
			denyErr = errors.New("task runner not configured")
			return nil
		}
		lists, err := s.denylists.Lists(gctx)
		if err != nil {
			denyErr = err
			return nil
		}
		denyExs = checks.DenylistMembership(inScopeRows, lists)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, w := range priceWarnings {
		AddWarning(ctx, w)
	}
	if denyErr != nil {
		Warnf(ctx, models.WarnDenylistsDown, "denylist check skipped: %v", denyErr)
	}

	results := []models.CheckResult{
		s.result(checks.RuleDuplicates, "Duplicates and inter-fund transfers", renumber(append(duplicates, transfers...))),
		s.result(checks.RuleDates, "Transaction dates", dates),
		s.result(checks.RuleDecisionMethod, "Decision methods", decisions),
		s.result(checks.RuleConsistency, "Price and type consistency", consistency),
		s.result(checks.RulePrice, "Price reasonableness", renumber(append(varianceExs, limitExs...))),
	}
	denyResult := s.result(checks.RuleDenylist, "Flagged securities", denyExs)
	denyResult.Skipped = denyErr != nil
	results = append(results, denyResult)

	report := &models.RunReport{
		ID:        uuid.New(),
		Kind:      models.RunKindTransactions,
		Period:    in.Period.String(),
		Trustee:   in.Trustee,
		Manager:   in.Manager,
		Operator:  in.Operator,
		Checks:    results,
		Samples:   appendPriceSamples(samples, priceResults),
		CreatedAt: time.Now(),
	}

	counts := make(map[string]string, len(results))
	for _, c := range results {
		counts[c.RuleID] = c.CountLabel()
	}
	report.Summary = models.RunSummary{
		Period:          in.Period.String(),
		TrusteeFilter:   in.Trustee,
		ManagerFilter:   in.Manager,
		TotalFunds:      len(allFunds),
		InScopeFunds:    len(scopedFunds),
		OutOfScopeFunds: len(outFunds),
		TotalRows:       len(in.Rows),
		InScopeRows:     len(inScopeRows),
		ValidRows:       len(validRows),
		TotalExceptions: report.TotalExceptions(),
		ExceptionCounts: counts,
	}
	report.Warnings = wc.GetWarnings()

	if s.runs != nil {
		if err := s.runs.CreateRun(ctx, report); err != nil {
			return nil, fmt.Errorf("failed to persist run: %w", err)
		}
	}
	log.Infof("transactions run %s: %d rows in scope, %d exceptions, %d warnings",
		report.ID, len(inScopeRows), report.Summary.TotalExceptions, len(report.Warnings))
	return report, nil
}

// result samples one check's exceptions down to the configured cap.
func (s *TransactionsService) result(ruleID, name string, exceptions []models.Exception) models.CheckResult {
	sampled, total := sampling.Stratified(exceptions, s.maxExceptions, s.seed)
	return models.CheckResult{
		RuleID:     ruleID,
		Name:       name,
		Total:      total,
		Exceptions: sampled,
		Sampled:    len(sampled) < total,
	}
}

// renumber reassigns emission order after two checkers' lists are merged
// under one rule id.
func renumber(exceptions []models.Exception) []models.Exception {
	for i := range exceptions {
		exceptions[i].Seq = i
	}
	return exceptions
}

// appendPriceSamples adds every closing-price comparison to the sample
// list, passed and flagged alike, so reviewers see what was drawn.
func appendPriceSamples(samples []models.Sample, results []checks.PriceCheckResult) []models.Sample {
	for _, pr := range results {
		fields := pr.Row.FieldMap()
		fields["closing_price"] = pr.ClosingPrice
		fields["variance_pct"] = pr.VariancePct
		fields["flagged"] = pr.Flagged
		samples = append(samples, models.Sample{
			Stratum: fmt.Sprintf("price_check|type=%d", *pr.Row.Type),
			RowNum:  pr.Row.RowNum,
			Fields:  fields,
		})
	}
	return samples
}
