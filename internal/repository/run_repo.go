package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Rainerrr/Mizrahi-Automations/internal/models"
)

var ErrRunNotFound = errors.New("validation run not found")

// RunRepository handles database operations for validation runs. Each run
// stores its full report as JSON next to a flattened exception table for
// per-rule queries.
type RunRepository struct {
	pool *pgxpool.Pool
}

// NewRunRepository creates a new RunRepository
func NewRunRepository(pool *pgxpool.Pool) *RunRepository {
	return &RunRepository{pool: pool}
}

// CreateRun persists a run report and its exception rows in one
// transaction. The run id is assigned here when the report carries none;
// CreatedAt is stamped by the database and written back.
func (r *RunRepository) CreateRun(ctx context.Context, report *models.RunReport) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal run report: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO validation_run (id, kind, period, trustee, operator, total_exceptions, warning_count, report, created)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING created
	`
	err = tx.QueryRow(ctx, query,
		report.ID, report.Kind, report.Period, report.Trustee, report.Operator,
		report.TotalExceptions(), len(report.Warnings), payload,
	).Scan(&report.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	if err := insertExceptions(ctx, tx, report); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

func insertExceptions(ctx context.Context, tx pgx.Tx, report *models.RunReport) error {
	query := `
		INSERT INTO run_exception (run_id, rule_id, reason, fund_id, fund_name, group_key, row_num, seq, extra)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	batch := &pgx.Batch{}
	count := 0
	for _, check := range report.Checks {
		for _, ex := range check.Exceptions {
			extra, err := json.Marshal(ex.Extra)
			if err != nil {
				return fmt.Errorf("failed to marshal exception extra: %w", err)
			}
			batch.Queue(query, report.ID, ex.RuleID, ex.Reason, ex.FundID, ex.FundName, ex.GroupKey, ex.RowNum, ex.Seq, extra)
			count++
		}
	}
	if count == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < count; i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert exception: %w", err)
		}
	}
	return nil
}

// GetRun retrieves a run's full report by id.
func (r *RunRepository) GetRun(ctx context.Context, id uuid.UUID) (*models.RunReport, error) {
	query := `SELECT report FROM validation_run WHERE id = $1`

	var payload []byte
	err := r.pool.QueryRow(ctx, query, id).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	report := &models.RunReport{}
	if err := json.Unmarshal(payload, report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run report: %w", err)
	}
	return report, nil
}

// ListRuns retrieves run headers, newest first. An empty kind matches
// every run.
func (r *RunRepository) ListRuns(ctx context.Context, kind string, limit int) ([]models.ValidationRun, error) {
	query := `
		SELECT id, kind, period, trustee, operator, total_exceptions, warning_count, created
		FROM validation_run
		WHERE $1 = '' OR kind = $1
		ORDER BY created DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []models.ValidationRun
	for rows.Next() {
		var run models.ValidationRun
		err := rows.Scan(&run.ID, &run.Kind, &run.Period, &run.Trustee, &run.Operator,
			&run.TotalExceptions, &run.WarningCount, &run.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

// ExceptionsByRule retrieves one rule's flattened exception rows for a run,
// in emission order.
func (r *RunRepository) ExceptionsByRule(ctx context.Context, runID uuid.UUID, ruleID string) ([]models.Exception, error) {
	query := `
		SELECT rule_id, reason, fund_id, fund_name, group_key, row_num, seq, extra
		FROM run_exception
		WHERE run_id = $1 AND rule_id = $2
		ORDER BY seq
	`
	rows, err := r.pool.Query(ctx, query, runID, ruleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query exceptions: %w", err)
	}
	defer rows.Close()

	var exceptions []models.Exception
	for rows.Next() {
		var ex models.Exception
		var extra []byte
		err := rows.Scan(&ex.RuleID, &ex.Reason, &ex.FundID, &ex.FundName, &ex.GroupKey, &ex.RowNum, &ex.Seq, &extra)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exception: %w", err)
		}
		if len(extra) > 0 {
			if err := json.Unmarshal(extra, &ex.Extra); err != nil {
				return nil, fmt.Errorf("failed to unmarshal exception extra: %w", err)
			}
		}
		exceptions = append(exceptions, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exceptions: %w", err)
	}
	return exceptions, nil
}
