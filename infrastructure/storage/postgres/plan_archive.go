package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ruvnet/arcadia-goap/domain/plan"
)

// PlanArchive is a PostgreSQL-backed implementation of plan.Archive. The
// full record is stored as JSONB; filterable fields are mirrored into
// indexed columns.
type PlanArchive struct {
	pool   *pgxpool.Pool
	schema string
}

// NewPlanArchive creates a new PostgreSQL plan archive.
func NewPlanArchive(pool *pgxpool.Pool, schema string) *PlanArchive {
	if schema == "" {
		schema = "public"
	}
	return &PlanArchive{
		pool:   pool,
		schema: schema,
	}
}

// tableName returns the fully qualified table name.
func (s *PlanArchive) tableName() string {
	return fmt.Sprintf("%s.plan_records", s.schema)
}

// Migrate creates the plan_records table if it doesn't exist. Deployments
// with externally managed schemas can skip this.
func (s *PlanArchive) Migrate(ctx context.Context) error {
	schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			agent_id TEXT NOT NULL,
			goal_id TEXT NOT NULL,
			outcome TEXT NOT NULL,
			total_cost DOUBLE PRECISION NOT NULL,
			nodes_expanded BIGINT NOT NULL,
			data JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_plan_records_agent_id ON %s(agent_id);
		CREATE INDEX IF NOT EXISTS idx_plan_records_goal_id ON %s(goal_id);
		CREATE INDEX IF NOT EXISTS idx_plan_records_outcome ON %s(outcome);
		CREATE INDEX IF NOT EXISTS idx_plan_records_created_at ON %s(created_at);
	`, s.tableName(), s.tableName(), s.tableName(), s.tableName(), s.tableName())

	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return s.wrapError(err)
	}

	return nil
}

// Save persists a new record.
func (s *PlanArchive) Save(ctx context.Context, r plan.Record) error {
	if r.ID == "" {
		return plan.ErrInvalidRecordID
	}

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	var totalCost float64
	if r.Plan != nil {
		totalCost = r.Plan.TotalCost
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, agent_id, goal_id, outcome, total_cost, nodes_expanded, data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, s.tableName())

	_, err = s.pool.Exec(ctx, query,
		r.ID,
		r.AgentID,
		r.GoalID,
		string(r.Diagnostics.Outcome),
		totalCost,
		r.Diagnostics.NodesExpanded,
		data,
		r.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return plan.ErrRecordExists
		}
		return s.wrapError(err)
	}

	return nil
}

// Get retrieves a record by ID.
func (s *PlanArchive) Get(ctx context.Context, id string) (plan.Record, error) {
	if id == "" {
		return plan.Record{}, plan.ErrInvalidRecordID
	}

	query := fmt.Sprintf("SELECT data FROM %s WHERE id = $1", s.tableName())

	var data []byte
	err := s.pool.QueryRow(ctx, query, id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return plan.Record{}, plan.ErrRecordNotFound
		}
		return plan.Record{}, s.wrapError(err)
	}

	var r plan.Record
	if err := json.Unmarshal(data, &r); err != nil {
		return plan.Record{}, fmt.Errorf("unmarshal record: %w", err)
	}

	return r, nil
}

// List returns records matching the filter.
func (s *PlanArchive) List(ctx context.Context, filter plan.ListFilter) ([]plan.Record, error) {
	query, args := s.buildListQuery(filter)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, s.wrapError(err)
	}
	defer rows.Close()

	var records []plan.Record
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}

		var r plan.Record
		if err := json.Unmarshal(data, &r); err != nil {
			continue // skip malformed entries
		}

		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, s.wrapError(err)
	}

	return records, nil
}

// Count returns the number of records matching the filter.
func (s *PlanArchive) Count(ctx context.Context, filter plan.ListFilter) (int64, error) {
	where, args := s.buildWhereClause(filter)

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s %s", s.tableName(), where)

	var count int64
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, s.wrapError(err)
	}

	return count, nil
}

// Summary returns aggregate statistics over matching records.
func (s *PlanArchive) Summary(ctx context.Context, filter plan.ListFilter) (plan.Summary, error) {
	where, args := s.buildWhereClause(filter)

	query := fmt.Sprintf(`
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE outcome = 'plan_found') AS plans_found,
			COUNT(*) FILTER (WHERE outcome = 'no_plan') AS no_plan,
			COUNT(*) FILTER (WHERE outcome = 'budget_exceeded') AS budget_exceeded,
			COALESCE(AVG(total_cost) FILTER (WHERE outcome = 'plan_found'), 0) AS avg_cost,
			COALESCE(AVG(nodes_expanded::DOUBLE PRECISION), 0) AS avg_expanded
		FROM %s
		%s
	`, s.tableName(), where)

	var summary plan.Summary
	err := s.pool.QueryRow(ctx, query, args...).Scan(
		&summary.TotalRecords,
		&summary.PlansFound,
		&summary.NoPlan,
		&summary.BudgetExceeded,
		&summary.AverageCost,
		&summary.AverageNodesExpanded,
	)
	if err != nil {
		return plan.Summary{}, s.wrapError(err)
	}

	return summary, nil
}

// buildListQuery constructs the SELECT query for listing records.
func (s *PlanArchive) buildListQuery(filter plan.ListFilter) (string, []any) {
	where, args := s.buildWhereClause(filter)

	query := fmt.Sprintf("SELECT data FROM %s %s", s.tableName(), where)

	orderBy := "created_at"
	switch filter.OrderBy {
	case plan.OrderByCost:
		orderBy = "total_cost"
	case plan.OrderByGoalID:
		orderBy = "goal_id"
	}

	direction := "ASC"
	if filter.Descending {
		direction = "DESC"
	}

	query += fmt.Sprintf(" ORDER BY %s %s NULLS LAST", orderBy, direction)

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	return query, args
}

// buildWhereClause constructs the WHERE clause from the filter.
func (s *PlanArchive) buildWhereClause(filter plan.ListFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.AgentID != "" {
		args = append(args, filter.AgentID)
		conditions = append(conditions, fmt.Sprintf("agent_id = $%d", len(args)))
	}

	if filter.GoalID != "" {
		args = append(args, filter.GoalID)
		conditions = append(conditions, fmt.Sprintf("goal_id = $%d", len(args)))
	}

	if len(filter.Outcomes) > 0 {
		outcomes := make([]string, len(filter.Outcomes))
		for i, outcome := range filter.Outcomes {
			outcomes[i] = string(outcome)
		}
		args = append(args, outcomes)
		conditions = append(conditions, fmt.Sprintf("outcome = ANY($%d)", len(args)))
	}

	if !filter.FromTime.IsZero() {
		args = append(args, filter.FromTime)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}

	if !filter.ToTime.IsZero() {
		args = append(args, filter.ToTime)
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

// Close closes the connection pool.
func (s *PlanArchive) Close() error {
	s.pool.Close()
	return nil
}

// Pool returns the underlying connection pool.
func (s *PlanArchive) Pool() *pgxpool.Pool {
	return s.pool
}

// wrapError wraps database errors with package errors.
func (s *PlanArchive) wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Join(ErrOperationTimeout, err)
	}

	return errors.Join(ErrConnectionFailed, err)
}

var _ plan.Archive = (*PlanArchive)(nil)
