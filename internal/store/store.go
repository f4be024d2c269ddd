// Package store provides SQLite-based campaign state storage.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/warmarch/internal/campaign"
)

// DB wraps a SQLite connection for campaign state persistence. Each
// open connection carries a run id so saves from distinct sessions can
// be told apart in the save log.
type DB struct {
	conn  *sqlx.DB
	runID string
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn, runID: uuid.NewString()}
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

// RunID returns the session identifier stamped on every save.
func (db *DB) RunID() string {
	return db.runID
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS campaigns (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		current_day INTEGER NOT NULL,
		status TEXT NOT NULL,
		state_json TEXT NOT NULL,
		saved_at TEXT NOT NULL,
		run_id TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS orders (
		campaign_id INTEGER NOT NULL,
		order_id INTEGER NOT NULL,
		commander_id INTEGER NOT NULL,
		army_id INTEGER,
		kind TEXT NOT NULL,
		status TEXT NOT NULL,
		issued_seq INTEGER NOT NULL,
		detail TEXT,
		PRIMARY KEY (campaign_id, order_id)
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		campaign_id INTEGER NOT NULL,
		event_id INTEGER NOT NULL,
		game_day INTEGER NOT NULL,
		part TEXT NOT NULL,
		type TEXT NOT NULL,
		description TEXT NOT NULL,
		details_json TEXT
	);

	CREATE TABLE IF NOT EXISTS save_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_day ON events(campaign_id, game_day);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_events_ids ON events(campaign_id, event_id);
	CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(campaign_id, status);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveCampaign performs a full save of the campaign: the aggregate
// snapshot plus the order and event logs, all in one transaction.
func (db *DB) SaveCampaign(c *campaign.Campaign) error {
	state, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal campaign %d: %w", c.ID, err)
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT OR REPLACE INTO campaigns
		(id, name, current_day, status, state_json, saved_at, run_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.CurrentDay, c.Status,
		string(state), time.Now().UTC().Format(time.RFC3339), db.runID,
	)
	if err != nil {
		return fmt.Errorf("save campaign %d: %w", c.ID, err)
	}

	if err := saveOrders(tx, c); err != nil {
		return err
	}
	if err := saveEvents(tx, c); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	slog.Info("campaign saved",
		"campaign", c.ID,
		"day", c.CurrentDay,
		"snapshot_size", humanize.Bytes(uint64(len(state))),
		"orders", len(c.Orders),
		"events", len(c.Events),
	)
	return nil
}

func saveOrders(tx *sqlx.Tx, c *campaign.Campaign) error {
	if _, err := tx.Exec("DELETE FROM orders WHERE campaign_id = ?", c.ID); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO orders
		(campaign_id, order_id, commander_id, army_id, kind, status, issued_seq, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, o := range c.Orders {
		var detail *string
		if o.Result != nil {
			detail = &o.Result.Detail
		}
		_, err := stmt.Exec(
			c.ID, o.ID, o.CommanderID, o.ArmyID,
			o.Kind.String(), o.Status.String(), o.IssuedSeq, detail,
		)
		if err != nil {
			return fmt.Errorf("insert order %d: %w", o.ID, err)
		}
	}
	return nil
}

func saveEvents(tx *sqlx.Tx, c *campaign.Campaign) error {
	stmt, err := tx.Preparex(`INSERT OR IGNORE INTO events
		(campaign_id, event_id, game_day, part, type, description, details_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range c.Events {
		var details *string
		if len(e.Details) > 0 {
			raw, err := json.Marshal(e.Details)
			if err != nil {
				return fmt.Errorf("marshal event %d details: %w", e.ID, err)
			}
			s := string(raw)
			details = &s
		}
		_, err := stmt.Exec(
			c.ID, e.ID, e.GameDay, e.Part.String(),
			e.Type, e.Description, details,
		)
		if err != nil {
			return fmt.Errorf("insert event %d: %w", e.ID, err)
		}
	}
	return nil
}

// LoadCampaign restores a campaign aggregate from its snapshot.
func (db *DB) LoadCampaign(id campaign.CampaignID) (*campaign.Campaign, error) {
	var state string
	err := db.conn.Get(&state,
		"SELECT state_json FROM campaigns WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("load campaign %d: %w", id, err)
	}

	var c campaign.Campaign
	if err := json.Unmarshal([]byte(state), &c); err != nil {
		return nil, fmt.Errorf("unmarshal campaign %d: %w", id, err)
	}
	return &c, nil
}

// ListCampaigns returns summaries of all stored campaigns.
func (db *DB) ListCampaigns() ([]CampaignSummary, error) {
	var rows []CampaignSummary
	err := db.conn.Select(&rows,
		"SELECT id, name, current_day, status, saved_at FROM campaigns ORDER BY id")
	return rows, err
}

// CampaignSummary is a row of campaign metadata without the snapshot.
type CampaignSummary struct {
	ID         campaign.CampaignID `db:"id"`
	Name       string              `db:"name"`
	CurrentDay int                 `db:"current_day"`
	Status     string              `db:"status"`
	SavedAt    string              `db:"saved_at"`
}

// EventRow is one persisted event log entry.
type EventRow struct {
	GameDay     int    `db:"game_day"`
	Part        string `db:"part"`
	Type        string `db:"type"`
	Description string `db:"description"`
}

// RecentEvents returns the most recent N events for a campaign.
func (db *DB) RecentEvents(id campaign.CampaignID, limit int) ([]EventRow, error) {
	var events []EventRow
	err := db.conn.Select(&events,
		`SELECT game_day, part, type, description FROM events
		 WHERE campaign_id = ? ORDER BY event_id DESC LIMIT ?`,
		id, limit,
	)
	return events, err
}

// SaveMeta stores a key-value pair in save metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO save_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM save_meta WHERE key = ?", key)
	return value, err
}
