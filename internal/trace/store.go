// Package trace keeps a SQLite log of arbitration decisions for inspection
// and replay. It is diagnostic only: the controller never reads it back.
package trace

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielpatrickdp/subsumption/go-controller/internal/arbiter"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/config"
)

// #region schema

// timeLayout keeps every stored timestamp the same width so that text
// ordering matches time ordering. time.RFC3339Nano parses it back.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id   TEXT PRIMARY KEY,
	started_at   TEXT NOT NULL,
	preset       TEXT NOT NULL,
	config_json  TEXT
);

CREATE TABLE IF NOT EXISTS decisions (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id     TEXT NOT NULL,
	tick           INTEGER NOT NULL,
	at             TEXT NOT NULL,
	outcome        TEXT NOT NULL,
	behavior       TEXT,
	kind           TEXT,
	left_speed     REAL NOT NULL,
	right_speed    REAL NOT NULL,
	duration_ms    INTEGER NOT NULL,
	snapshot_json  TEXT NOT NULL,
	hierarchy_json TEXT,
	FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);

CREATE INDEX IF NOT EXISTS decisions_session ON decisions(session_id, tick);
`
// #endregion schema

// ErrSessionNotFound is returned when a session ID has no row.
var ErrSessionNotFound = errors.New("session not found")

// #region store

// Store writes sessions and decisions to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB.
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion store

// #region write

// StartSession opens a new session. cfg is stored as JSON for later replay.
func (s *Store) StartSession(preset string, cfg any) (Session, error) {
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return Session{}, fmt.Errorf("marshal config: %w", err)
	}
	sess := Session{
		ID:         uuid.New().String(),
		StartedAt:  time.Now().UTC(),
		Preset:     preset,
		ConfigJSON: string(cfgJSON),
	}
	_, err = s.db.Exec(
		`INSERT INTO sessions (session_id, started_at, preset, config_json) VALUES (?, ?, ?, ?)`,
		sess.ID, sess.StartedAt.Format(timeLayout), sess.Preset, sess.ConfigJSON,
	)
	if err != nil {
		return Session{}, fmt.Errorf("insert session: %w", err)
	}
	return sess, nil
}

// Record stores d if it issued a motion command and reports whether a row
// was written. hierarchy is stored when non-nil.
func (s *Store) Record(sessionID string, d arbiter.Decision, hierarchy []config.Entry) (bool, error) {
	if !d.Outcome.Issued() {
		return false, nil
	}
	snapJSON, err := json.Marshal(d.Snapshot)
	if err != nil {
		return false, fmt.Errorf("marshal snapshot: %w", err)
	}
	var hierJSON any
	if hierarchy != nil {
		b, err := json.Marshal(hierarchy)
		if err != nil {
			return false, fmt.Errorf("marshal hierarchy: %w", err)
		}
		hierJSON = string(b)
	}
	var label, kind any
	if d.Behavior != nil {
		label, kind = d.Behavior.Label, d.Behavior.Kind.String()
	}
	_, err = s.db.Exec(
		`INSERT INTO decisions (session_id, tick, at, outcome, behavior, kind, left_speed, right_speed, duration_ms, snapshot_json, hierarchy_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID,
		int64(d.Tick),
		d.At.UTC().Format(timeLayout),
		string(d.Outcome),
		label,
		kind,
		d.Command.Left,
		d.Command.Right,
		d.Command.Duration.Milliseconds(),
		string(snapJSON),
		hierJSON,
	)
	if err != nil {
		return false, fmt.Errorf("record decision: %w", err)
	}
	return true, nil
}

// #endregion write

// #region read

// GetSession returns one session with its decision count.
func (s *Store) GetSession(id string) (Session, error) {
	row := s.db.QueryRow(
		`SELECT s.session_id, s.started_at, s.preset, s.config_json, COUNT(d.id)
		 FROM sessions s LEFT JOIN decisions d ON d.session_id = s.session_id
		 WHERE s.session_id = ?
		 GROUP BY s.session_id`, id,
	)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("get session %s: %w", id, ErrSessionNotFound)
	}
	if err != nil {
		return Session{}, fmt.Errorf("get session %s: %w", id, err)
	}
	return sess, nil
}

// ListSessions returns up to limit sessions, newest first. limit <= 0 lists all.
func (s *Store) ListSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(
		`SELECT s.session_id, s.started_at, s.preset, s.config_json, COUNT(d.id)
		 FROM sessions s LEFT JOIN decisions d ON d.session_id = s.session_id
		 GROUP BY s.session_id
		 ORDER BY s.started_at DESC, s.rowid DESC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

// ListDecisions returns the last n decisions of a session in tick order.
// n <= 0 returns all of them.
func (s *Store) ListDecisions(sessionID string, n int) ([]Entry, error) {
	if n <= 0 {
		n = -1
	}
	rows, err := s.db.Query(
		`SELECT tick, at, outcome, behavior, kind, left_speed, right_speed, duration_ms, snapshot_json, hierarchy_json
		 FROM (
			SELECT * FROM decisions WHERE session_id = ? ORDER BY tick DESC LIMIT ?
		 ) sub ORDER BY tick ASC`, sessionID, n,
	)
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e          Entry
			tick       int64
			at         string
			label      sql.NullString
			kind       sql.NullString
			durationMS int64
			snapJSON   string
			hierJSON   sql.NullString
		)
		if err := rows.Scan(&tick, &at, &e.Outcome, &label, &kind, &e.Left, &e.Right, &durationMS, &snapJSON, &hierJSON); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		e.Tick = uint64(tick)
		e.Behavior = label.String
		e.Kind = kind.String
		e.Duration = time.Duration(durationMS) * time.Millisecond
		if e.At, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, fmt.Errorf("parse decision time: %w", err)
		}
		if err := json.Unmarshal([]byte(snapJSON), &e.Snapshot); err != nil {
			return nil, fmt.Errorf("unmarshal snapshot: %w", err)
		}
		if hierJSON.Valid {
			if err := json.Unmarshal([]byte(hierJSON.String), &e.Hierarchy); err != nil {
				return nil, fmt.Errorf("unmarshal hierarchy: %w", err)
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(sc scanner) (Session, error) {
	var (
		sess    Session
		started string
		cfgJSON sql.NullString
	)
	if err := sc.Scan(&sess.ID, &started, &sess.Preset, &cfgJSON, &sess.Decisions); err != nil {
		return Session{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, started)
	if err != nil {
		return Session{}, fmt.Errorf("parse started_at: %w", err)
	}
	sess.StartedAt = t
	sess.ConfigJSON = cfgJSON.String
	return sess, nil
}

// #endregion read
