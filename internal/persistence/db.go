// Package persistence provides SQLite-based storage for finished sessions:
// the structured offer sequence, events, and outcome. Free-text transcripts
// are never stored here.
package persistence

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/haggle/internal/agents"
	"github.com/talgya/haggle/internal/engine"
)

// DB wraps a SQLite connection for session storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		product TEXT NOT NULL,
		category TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		grade TEXT NOT NULL,
		origin TEXT NOT NULL,
		market_price REAL NOT NULL,
		buyer_budget REAL NOT NULL,
		status TEXT NOT NULL,
		final_price REAL NOT NULL,
		final_demand TEXT NOT NULL,
		rounds INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS offers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		round INTEGER NOT NULL,
		agent TEXT NOT NULL,
		price REAL NOT NULL,
		demand TEXT NOT NULL,
		framing TEXT NOT NULL,
		final INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		round INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_offers_session ON offers(session_id, round);
	CREATE INDEX IF NOT EXISTS idx_events_session ON events(session_id, round);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SessionRow is the sessions table shape.
type SessionRow struct {
	ID          string    `db:"id"`
	Product     string    `db:"product"`
	Category    string    `db:"category"`
	Quantity    int       `db:"quantity"`
	Grade       string    `db:"grade"`
	Origin      string    `db:"origin"`
	MarketPrice float64   `db:"market_price"`
	BuyerBudget float64   `db:"buyer_budget"`
	Status      string    `db:"status"`
	FinalPrice  float64   `db:"final_price"`
	FinalDemand string    `db:"final_demand"`
	Rounds      int       `db:"rounds"`
	CreatedAt   time.Time `db:"created_at"`
}

// OfferRow is the offers table shape.
type OfferRow struct {
	SessionID string  `db:"session_id"`
	Round     int     `db:"round"`
	Agent     string  `db:"agent"`
	Price     float64 `db:"price"`
	Demand    string  `db:"demand"`
	Framing   string  `db:"framing"`
	Final     bool    `db:"final"`
}

// SaveSession writes a session with its full offer sequence and events in
// one transaction. Safe to call on an already-saved session (full replace).
func (db *DB) SaveSession(s *engine.Session) error {
	outcome := s.Outcome()
	offers := s.OfferHistory()

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	id := s.ID.String()
	if _, err := tx.Exec("DELETE FROM sessions WHERE id = ?", id); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM offers WHERE session_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM events WHERE session_id = ?", id); err != nil {
		return err
	}

	_, err = tx.Exec(`INSERT INTO sessions
		(id, product, category, quantity, grade, origin, market_price,
		 buyer_budget, status, final_price, final_demand, rounds, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, s.Product.Name, s.Product.Category, s.Product.Quantity,
		string(s.Product.Grade), s.Product.Origin, s.Market.Price,
		s.Buyer.Budget, s.Status.String(), outcome.Price,
		outcome.Demand.String(), outcome.Rounds, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert session %s: %w", id, err)
	}

	stmt, err := tx.Preparex(`INSERT INTO offers
		(session_id, round, agent, price, demand, framing, final)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, o := range offers {
		final := 0
		if o.Final {
			final = 1
		}
		if _, err := stmt.Exec(id, o.Round, o.Agent.String(), o.Price,
			o.Demand.String(), o.Framing.String(), final); err != nil {
			return fmt.Errorf("insert offer round %d: %w", o.Round, err)
		}
	}

	for _, e := range s.Events {
		if _, err := tx.Exec(
			"INSERT INTO events (session_id, round, description, category) VALUES (?, ?, ?, ?)",
			id, e.Round, e.Description, e.Category,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	slog.Info("session saved", "session", id, "offers", len(offers), "status", s.Status.String())
	return nil
}

// SessionOffers loads a session's offer sequence in play order. Replaying
// the rows through a fresh ledger reproduces the original concession totals.
func (db *DB) SessionOffers(sessionID string) ([]agents.Offer, error) {
	var rows []OfferRow
	err := db.conn.Select(&rows,
		`SELECT session_id, round, agent, price, demand, framing, final
		 FROM offers WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, err
	}

	offers := make([]agents.Offer, 0, len(rows))
	for _, r := range rows {
		offers = append(offers, agents.Offer{
			Agent:   parseRole(r.Agent),
			Round:   r.Round,
			Price:   r.Price,
			Demand:  parseDemand(r.Demand),
			Framing: parseFraming(r.Framing),
			Final:   r.Final,
		})
	}
	return offers, nil
}

// RecentSessions returns the most recently saved sessions.
func (db *DB) RecentSessions(limit int) ([]SessionRow, error) {
	var rows []SessionRow
	err := db.conn.Select(&rows,
		"SELECT * FROM sessions ORDER BY created_at DESC LIMIT ?", limit)
	return rows, err
}

// SessionEvents loads a session's event log in record order.
func (db *DB) SessionEvents(sessionID string) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		"SELECT round, description, category FROM events WHERE session_id = ? ORDER BY id",
		sessionID)
	return events, err
}

func parseRole(name string) agents.Role {
	if name == "seller" {
		return agents.RoleSeller
	}
	return agents.RoleBuyer
}

func parseFraming(name string) agents.Framing {
	if name == "appeal" {
		return agents.FramingAppeal
	}
	return agents.FramingData
}

func parseDemand(name string) agents.Demand {
	for d := agents.DemandNone; d <= agents.DemandMultiOrderContract; d++ {
		if d.String() == name {
			return d
		}
	}
	return agents.DemandNone
}
