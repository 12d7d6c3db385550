package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/ruvnet/arcadia-goap/domain/plan"
)

// PlanArchive is a SQLite-backed implementation of plan.Archive. The full
// record is stored as JSON; filterable fields are mirrored into indexed
// columns.
type PlanArchive struct {
	db *sql.DB
}

// NewPlanArchive creates a new SQLite plan archive with the given configuration.
func NewPlanArchive(cfg Config, opts ...Option) (*PlanArchive, error) {
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	s := &PlanArchive{db: db}

	if cfg.AutoMigrate {
		if err := s.migrate(); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return s, nil
}

// NewPlanArchiveFromDB creates a plan archive from an existing database
// connection.
func NewPlanArchiveFromDB(db *sql.DB) (*PlanArchive, error) {
	s := &PlanArchive{db: db}

	if err := s.migrate(); err != nil {
		return nil, err
	}

	return s, nil
}

// migrate creates the plan_records table if it doesn't exist.
func (s *PlanArchive) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS plan_records (
			id TEXT PRIMARY KEY,
			agent_id TEXT NOT NULL,
			goal_id TEXT NOT NULL,
			outcome TEXT NOT NULL,
			total_cost REAL NOT NULL,
			nodes_expanded INTEGER NOT NULL,
			data BLOB NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_plan_records_agent_id ON plan_records(agent_id);
		CREATE INDEX IF NOT EXISTS idx_plan_records_goal_id ON plan_records(goal_id);
		CREATE INDEX IF NOT EXISTS idx_plan_records_outcome ON plan_records(outcome);
		CREATE INDEX IF NOT EXISTS idx_plan_records_created_at ON plan_records(created_at);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}

	return nil
}

// Save persists a new record.
func (s *PlanArchive) Save(ctx context.Context, r plan.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if r.ID == "" {
		return plan.ErrInvalidRecordID
	}

	data, err := json.Marshal(r)
	if err != nil {
		return err
	}

	var totalCost float64
	if r.Plan != nil {
		totalCost = r.Plan.TotalCost
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO plan_records (id, agent_id, goal_id, outcome, total_cost, nodes_expanded, data, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.AgentID, r.GoalID, string(r.Diagnostics.Outcome), totalCost,
		r.Diagnostics.NodesExpanded, data, r.CreatedAt.Unix(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return plan.ErrRecordExists
		}
		return err
	}

	return nil
}

// Get retrieves a record by ID.
func (s *PlanArchive) Get(ctx context.Context, id string) (plan.Record, error) {
	if err := ctx.Err(); err != nil {
		return plan.Record{}, err
	}

	if id == "" {
		return plan.Record{}, plan.ErrInvalidRecordID
	}

	var data []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM plan_records WHERE id = ?",
		id,
	).Scan(&data)

	if errors.Is(err, sql.ErrNoRows) {
		return plan.Record{}, plan.ErrRecordNotFound
	}
	if err != nil {
		return plan.Record{}, err
	}

	var r plan.Record
	if err := json.Unmarshal(data, &r); err != nil {
		return plan.Record{}, err
	}

	return r, nil
}

// List returns records matching the filter.
func (s *PlanArchive) List(ctx context.Context, filter plan.ListFilter) ([]plan.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query, args := s.buildListQuery(filter, false)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

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

	return records, rows.Err()
}

// Count returns the number of records matching the filter.
func (s *PlanArchive) Count(ctx context.Context, filter plan.ListFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	query, args := s.buildListQuery(filter, true)

	var count int64
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// Summary returns aggregate statistics over matching records.
func (s *PlanArchive) Summary(ctx context.Context, filter plan.ListFilter) (plan.Summary, error) {
	if err := ctx.Err(); err != nil {
		return plan.Summary{}, err
	}

	where, args := s.buildWhereClause(filter)

	query := `
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN outcome = 'plan_found' THEN 1 ELSE 0 END), 0) AS plans_found,
			COALESCE(SUM(CASE WHEN outcome = 'no_plan' THEN 1 ELSE 0 END), 0) AS no_plan,
			COALESCE(SUM(CASE WHEN outcome = 'budget_exceeded' THEN 1 ELSE 0 END), 0) AS budget_exceeded,
			COALESCE(AVG(CASE WHEN outcome = 'plan_found' THEN total_cost ELSE NULL END), 0) AS avg_cost,
			COALESCE(AVG(CAST(nodes_expanded AS REAL)), 0) AS avg_expanded
		FROM plan_records
	`

	if where != "" {
		query += " WHERE " + where
	}

	var summary plan.Summary
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&summary.TotalRecords,
		&summary.PlansFound,
		&summary.NoPlan,
		&summary.BudgetExceeded,
		&summary.AverageCost,
		&summary.AverageNodesExpanded,
	)
	if err != nil {
		return plan.Summary{}, err
	}

	return summary, nil
}

// buildListQuery builds the SQL query for listing records.
func (s *PlanArchive) buildListQuery(filter plan.ListFilter, countOnly bool) (string, []interface{}) {
	var query string
	if countOnly {
		query = "SELECT COUNT(*) FROM plan_records"
	} else {
		query = "SELECT data FROM plan_records"
	}

	where, args := s.buildWhereClause(filter)

	if where != "" {
		query += " WHERE " + where
	}

	if !countOnly {
		orderBy := "created_at"
		switch filter.OrderBy {
		case plan.OrderByCost:
			orderBy = "total_cost"
		case plan.OrderByGoalID:
			orderBy = "goal_id"
		}

		query += " ORDER BY " + orderBy
		if filter.Descending {
			query += " DESC"
		}

		if filter.Limit > 0 {
			query += " LIMIT ?"
			args = append(args, filter.Limit)
		} else if filter.Offset > 0 {
			// SQLite requires LIMIT before OFFSET; -1 means unbounded
			query += " LIMIT -1"
		}
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	return query, args
}

// buildWhereClause builds the WHERE clause for filtering.
func (s *PlanArchive) buildWhereClause(filter plan.ListFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.AgentID != "" {
		conditions = append(conditions, "agent_id = ?")
		args = append(args, filter.AgentID)
	}

	if filter.GoalID != "" {
		conditions = append(conditions, "goal_id = ?")
		args = append(args, filter.GoalID)
	}

	if len(filter.Outcomes) > 0 {
		placeholders := make([]string, len(filter.Outcomes))
		for i, outcome := range filter.Outcomes {
			placeholders[i] = "?"
			args = append(args, string(outcome))
		}
		conditions = append(conditions, "outcome IN ("+strings.Join(placeholders, ", ")+")")
	}

	if !filter.FromTime.IsZero() {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, filter.FromTime.Unix())
	}

	if !filter.ToTime.IsZero() {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, filter.ToTime.Unix())
	}

	return strings.Join(conditions, " AND "), args
}

// Close closes the database connection.
func (s *PlanArchive) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection.
func (s *PlanArchive) DB() *sql.DB {
	return s.db
}

// isUniqueViolation checks if the error is a unique constraint violation.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

var _ plan.Archive = (*PlanArchive)(nil)
