// Package catalog is the SQLite-backed slot repository. Every generated arm
// configuration is written to the slot_catalog table so it can be replayed by
// index; the default DSN keeps the database in memory for the process lifetime.
package catalog

import (
	"database/sql"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/danielpatrickdp/slot-bandit/internal/reward"
	"github.com/danielpatrickdp/slot-bandit/internal/slot"
	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS slot_catalog (
	idx          INTEGER PRIMARY KEY,
	probability  REAL NOT NULL,
	seed         INTEGER NOT NULL,
	created_at   TEXT NOT NULL
);
`
// #endregion schema

// #region catalog-struct
// Catalog stores reward configurations in SQLite. It implements slot.Repository.
type Catalog struct {
	db  *sql.DB
	mu  sync.Mutex
	rng *rand.Rand
	n   int
}

var _ slot.Repository = (*Catalog)(nil)
// #endregion catalog-struct

// #region constructor
// Open connects to dsn, runs migrations and seeds the draw stream. Existing
// rows are kept, so reopening a file-backed catalogue continues its numbering.
func Open(dsn string, seed uint64) (*Catalog, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// A second connection to :memory: would see a different database.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM slot_catalog`).Scan(&n); err != nil {
		db.Close()
		return nil, fmt.Errorf("count catalog: %w", err)
	}
	return &Catalog{
		db:  db,
		rng: rand.New(rand.NewPCG(seed, seed>>1)),
		n:   n,
	}, nil
}
// #endregion constructor

// Close closes the underlying database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// #region generate
// Generate draws a configuration, appends it and returns a copy.
func (c *Catalog) Generate() (reward.Config, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cfg := reward.Draw(c.rng)
	if err := c.insertLocked(cfg); err != nil {
		return reward.Config{}, err
	}
	return cfg, nil
}

// Insert appends an explicit configuration and returns its index.
func (c *Catalog) Insert(cfg reward.Config) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.insertLocked(cfg); err != nil {
		return 0, err
	}
	return c.n - 1, nil
}

func (c *Catalog) insertLocked(cfg reward.Config) error {
	_, err := c.db.Exec(
		`INSERT INTO slot_catalog (idx, probability, seed, created_at) VALUES (?, ?, ?, ?)`,
		c.n, cfg.Probability, encodeSeed(cfg.Seed), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert catalog entry %d: %w", c.n, err)
	}
	c.n++
	return nil
}
// #endregion generate

// #region lookup
// Lookup returns the configuration stored at index.
func (c *Catalog) Lookup(index int) (reward.Config, error) {
	c.mu.Lock()
	n := c.n
	c.mu.Unlock()
	if index < 0 || index >= n {
		return reward.Config{}, fmt.Errorf("lookup %d of %d: %w", index, n, slot.ErrIndexOutOfRange)
	}

	var cfg reward.Config
	var seed int64
	err := c.db.QueryRow(
		`SELECT probability, seed FROM slot_catalog WHERE idx = ?`, index,
	).Scan(&cfg.Probability, &seed)
	if err != nil {
		return reward.Config{}, fmt.Errorf("lookup %d: %w", index, err)
	}
	cfg.Seed = decodeSeed(seed)
	return cfg, nil
}
// #endregion lookup

// Len returns the number of catalogued configurations.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

// #region list
// Entry is one catalogue row.
type Entry struct {
	Index     int
	Config    reward.Config
	CreatedAt time.Time
}

// List returns up to limit entries in index order, starting at offset.
func (c *Catalog) List(offset, limit int) ([]Entry, error) {
	rows, err := c.db.Query(
		`SELECT idx, probability, seed, created_at FROM slot_catalog
		 ORDER BY idx ASC LIMIT ? OFFSET ?`, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var seed int64
		var createdStr string
		if err := rows.Scan(&e.Index, &e.Config.Probability, &seed, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		e.Config.Seed = decodeSeed(seed)
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
// #endregion list

// #region seed-encoding
// SQLite integers are signed; seeds are stored bit-for-bit.
func encodeSeed(s uint64) int64 {
	return int64(s)
}

func decodeSeed(s int64) uint64 {
	return uint64(s)
}
// #endregion seed-encoding
