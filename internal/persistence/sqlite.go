package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tathienbao/tastream/internal/types"
	"github.com/tathienbao/tastream/pkg/num"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite repository.
func NewSQLiteRepository(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	repo := &SQLiteRepository{db: db}

	// Run migrations
	if err := repo.Migrate(context.Background()); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return repo, nil
}

// Migrate runs database migrations.
func (r *SQLiteRepository) Migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			started_at DATETIME NOT NULL,
			finished_at DATETIME,
			status INTEGER NOT NULL DEFAULT 0,
			bars INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,

		`CREATE TABLE IF NOT EXISTS points (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			timestamp DATETIME NOT NULL,
			open REAL NOT NULL,
			high REAL NOT NULL,
			low REAL NOT NULL,
			close REAL NOT NULL,
			volume INTEGER NOT NULL DEFAULT 0,
			sma REAL,
			ema REAL,
			rsi REAL,
			atr REAL,
			stddev REAL,
			boll_upper REAL,
			boll_middle REAL,
			boll_lower REAL,
			donchian_upper REAL,
			donchian_lower REAL,
			FOREIGN KEY (run_id) REFERENCES runs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_points_run_id ON points(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_points_timestamp ON points(timestamp)`,

		`CREATE TABLE IF NOT EXISTS triggers (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			timestamp DATETIME NOT NULL,
			rule TEXT NOT NULL,
			message TEXT NOT NULL,
			value REAL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (run_id) REFERENCES runs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_triggers_run_id ON triggers(run_id)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.ExecContext(ctx, migration); err != nil {
			return fmt.Errorf("execute migration: %w", err)
		}
	}

	return nil
}

// SaveRun saves a new run.
func (r *SQLiteRepository) SaveRun(ctx context.Context, run types.Run) error {
	query := `INSERT INTO runs (id, source, started_at, finished_at, status, bars)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.Source,
		run.StartedAt,
		nullTime(run.FinishedAt),
		run.Status,
		run.Bars,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	return nil
}

// UpdateRun updates the status, finish time, and bar count of a run.
func (r *SQLiteRepository) UpdateRun(ctx context.Context, run types.Run) error {
	query := `UPDATE runs SET status = ?, finished_at = ?, bars = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, run.Status, nullTime(run.FinishedAt), run.Bars, run.ID)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run %s: %w", run.ID, types.ErrRunNotFound)
	}

	return nil
}

// GetRun returns a run by ID.
func (r *SQLiteRepository) GetRun(ctx context.Context, id string) (*types.Run, error) {
	query := `SELECT id, source, started_at, finished_at, status, bars FROM runs WHERE id = ?`

	var run types.Run
	var finishedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&run.ID,
		&run.Source,
		&run.StartedAt,
		&finishedAt,
		&run.Status,
		&run.Bars,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s: %w", id, types.ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}

	if finishedAt.Valid {
		run.FinishedAt = finishedAt.Time
	}

	return &run, nil
}

// ListRuns returns the most recent runs.
func (r *SQLiteRepository) ListRuns(ctx context.Context, limit int) ([]types.Run, error) {
	query := `SELECT id, source, started_at, finished_at, status, bars
		FROM runs ORDER BY started_at DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []types.Run
	for rows.Next() {
		var run types.Run
		var finishedAt sql.NullTime

		if err := rows.Scan(&run.ID, &run.Source, &run.StartedAt, &finishedAt, &run.Status, &run.Bars); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if finishedAt.Valid {
			run.FinishedAt = finishedAt.Time
		}

		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// SavePoints saves a batch of enriched points in a single transaction.
func (r *SQLiteRepository) SavePoints(ctx context.Context, runID string, points []types.Point) error {
	if len(points) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `INSERT INTO points
		(run_id, timestamp, open, high, low, close, volume, sma, ema, rsi, atr, stddev, boll_upper, boll_middle, boll_lower, donchian_upper, donchian_lower)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, p := range points {
		_, err := stmt.ExecContext(ctx,
			runID,
			p.Timestamp,
			float64(p.Open),
			float64(p.High),
			float64(p.Low),
			float64(p.Close),
			p.Volume,
			nullScalar(p.SMA),
			nullScalar(p.EMA),
			nullScalar(p.RSI),
			nullScalar(p.ATR),
			nullScalar(p.StdDev),
			nullScalar(p.BollUpper),
			nullScalar(p.BollMiddle),
			nullScalar(p.BollLower),
			nullScalar(p.DonchianUpper),
			nullScalar(p.DonchianLower),
		)
		if err != nil {
			return fmt.Errorf("insert point: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetPoints returns points of a run in a time range.
func (r *SQLiteRepository) GetPoints(ctx context.Context, runID string, from, to time.Time) ([]types.Point, error) {
	query := `SELECT timestamp, open, high, low, close, volume, sma, ema, rsi, atr, stddev, boll_upper, boll_middle, boll_lower, donchian_upper, donchian_lower
		FROM points WHERE run_id = ? AND timestamp BETWEEN ? AND ? ORDER BY timestamp`

	rows, err := r.db.QueryContext(ctx, query, runID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query points: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var points []types.Point
	for rows.Next() {
		var p types.Point
		var open, high, low, closePrice float64
		var sma, ema, rsi, atr, stddev sql.NullFloat64
		var bollUpper, bollMiddle, bollLower sql.NullFloat64
		var donchianUpper, donchianLower sql.NullFloat64

		if err := rows.Scan(&p.Timestamp, &open, &high, &low, &closePrice, &p.Volume,
			&sma, &ema, &rsi, &atr, &stddev,
			&bollUpper, &bollMiddle, &bollLower,
			&donchianUpper, &donchianLower); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		p.Open = num.Scalar(open)
		p.High = num.Scalar(high)
		p.Low = num.Scalar(low)
		p.Close = num.Scalar(closePrice)
		p.SMA = scanScalar(sma)
		p.EMA = scanScalar(ema)
		p.RSI = scanScalar(rsi)
		p.ATR = scanScalar(atr)
		p.StdDev = scanScalar(stddev)
		p.BollUpper = scanScalar(bollUpper)
		p.BollMiddle = scanScalar(bollMiddle)
		p.BollLower = scanScalar(bollLower)
		p.DonchianUpper = scanScalar(donchianUpper)
		p.DonchianLower = scanScalar(donchianLower)

		points = append(points, p)
	}

	return points, rows.Err()
}

// SaveTrigger saves a rule trigger.
func (r *SQLiteRepository) SaveTrigger(ctx context.Context, runID string, trigger types.Trigger) error {
	query := `INSERT INTO triggers (id, run_id, timestamp, rule, message, value)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		trigger.ID,
		runID,
		trigger.Timestamp,
		trigger.Rule,
		trigger.Message,
		nullScalar(trigger.Value),
	)
	if err != nil {
		return fmt.Errorf("insert trigger: %w", err)
	}

	return nil
}

// GetTriggers returns all triggers of a run.
func (r *SQLiteRepository) GetTriggers(ctx context.Context, runID string) ([]types.Trigger, error) {
	query := `SELECT id, timestamp, rule, message, value
		FROM triggers WHERE run_id = ? ORDER BY timestamp`

	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query triggers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var triggers []types.Trigger
	for rows.Next() {
		var t types.Trigger
		var value sql.NullFloat64

		if err := rows.Scan(&t.ID, &t.Timestamp, &t.Rule, &t.Message, &value); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		t.Value = scanScalar(value)

		triggers = append(triggers, t)
	}

	return triggers, rows.Err()
}

// Close closes the database connection.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// NaN outputs are stored as NULL. SQLite has no NaN representation and
// the driver would otherwise bind them as NULL silently on read back.
func nullScalar(v num.Scalar) sql.NullFloat64 {
	if num.IsNaN(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: float64(v), Valid: true}
}

func scanScalar(v sql.NullFloat64) num.Scalar {
	if !v.Valid {
		return num.NaN[num.Scalar]()
	}
	return num.Scalar(v.Float64)
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
