package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"EchoSentinel/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists simulation outcomes to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read
	// while the sentinel writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS echo_results (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			source_id    TEXT,
			source_name  TEXT,
			echo_value   REAL,
			perturbation REAL,
			steps        INTEGER,
			butterfly    REAL,
			stability    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_echo_ts ON echo_results(timestamp)`,

		`CREATE TABLE IF NOT EXISTS monte_carlo_runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      TEXT NOT NULL,
			timestamp   INTEGER NOT NULL,
			trials      INTEGER,
			mean_echo   REAL,
			std_echo    REAL,
			min_echo    REAL,
			max_echo    REAL,
			p95_echo    REAL,
			p99_echo    REAL,
			chaos_index REAL,
			stable      REAL,
			unstable    REAL,
			chaotic     REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_mc_ts ON monte_carlo_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS critical_locations (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      TEXT NOT NULL,
			rank        INTEGER,
			location_id TEXT,
			name        TEXT,
			mean_echo   REAL,
			trials      INTEGER,
			criticality TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_crit_run ON critical_locations(run_id)`,

		`CREATE TABLE IF NOT EXISTS trading_signals (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id         TEXT,
			timestamp      INTEGER NOT NULL,
			brand          TEXT,
			signal         TEXT,
			confidence     REAL,
			risk_score     REAL,
			chaos_index    REAL,
			mean_echo      REAL,
			std_echo       REAL,
			risk_level     TEXT,
			recommendation TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signal_ts ON trading_signals(timestamp)`,

		`CREATE TABLE IF NOT EXISTS health_checks (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			status           TEXT,
			risk_score       REAL,
			mean_echo        REAL,
			chaotic_fraction REAL,
			trials           INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_health_ts ON health_checks(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordEcho(res *model.EchoResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO echo_results
		(timestamp, source_id, source_name, echo_value, perturbation, steps, butterfly, stability)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), res.SourceID, res.SourceName, res.EchoValue,
		res.Perturbation, res.Steps, res.Butterfly, string(res.Stability),
	)
	return err
}

func (r *SQLiteRecorder) RecordMonteCarlo(res *model.MonteCarloResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO monte_carlo_runs
		(run_id, timestamp, trials, mean_echo, std_echo, min_echo, max_echo,
		 p95_echo, p99_echo, chaos_index, stable, unstable, chaotic)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		res.RunID, time.Now().Unix(), res.Trials, res.MeanEcho, res.StdEcho,
		res.MinEcho, res.MaxEcho, res.P95Echo, res.P99Echo, res.ChaosIndex,
		res.Distribution.Stable, res.Distribution.Unstable, res.Distribution.Chaotic,
	)
	if err != nil {
		return err
	}

	for rank, n := range res.CriticalNodes {
		if _, err := r.db.Exec(`INSERT INTO critical_locations
			(run_id, rank, location_id, name, mean_echo, trials, criticality)
			VALUES (?,?,?,?,?,?,?)`,
			res.RunID, rank+1, n.ID, n.Name, n.MeanEcho, n.Trials, string(n.Criticality),
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSignal(sig *model.TradingSignal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO trading_signals
		(run_id, timestamp, brand, signal, confidence, risk_score, chaos_index,
		 mean_echo, std_echo, risk_level, recommendation)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		sig.RunID, time.Now().Unix(), sig.Brand, string(sig.Signal), sig.Confidence,
		sig.RiskScore, sig.ChaosIndex, sig.MeanEcho, sig.StdEcho,
		string(sig.RiskLevel), sig.Recommendation,
	)
	return err
}

func (r *SQLiteRecorder) RecordHealth(h *model.SystemHealth) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO health_checks
		(timestamp, status, risk_score, mean_echo, chaotic_fraction, trials)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), string(h.Status), h.RiskScore, h.MeanEcho,
		h.ChaoticFraction, h.Trials,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
