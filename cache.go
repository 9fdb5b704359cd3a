package ngres

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Cache is a sqlite-backed store of encoded audio keyed by the source
// file's CRC and the encoder parameters. ADPCM encoding is the slow
// part of a run; unchanged sources are reused across runs.
type Cache struct {
	db *sql.DB
}

// OpenCache opens or creates a cache database at file.
func OpenCache(file string) (*Cache, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS audio (crc TEXT NOT NULL, kind TEXT NOT NULL, rate INTEGER NOT NULL, data BLOB NOT NULL, PRIMARY KEY (crc, kind, rate))"); err != nil {
		return nil, err
	}

	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached encoding for the given source CRC and
// encoder parameters, or nil on a miss.
func (c *Cache) Get(crc, kind string, rate int) ([]byte, error) {
	var data []byte
	switch err := c.db.QueryRow("SELECT data FROM audio WHERE crc = ? AND kind = ? AND rate = ?", crc, kind, rate).Scan(&data); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return data, nil
	default:
		return nil, err
	}
}

// Put stores an encoding, replacing any previous entry for the same
// key.
func (c *Cache) Put(crc, kind string, rate int, data []byte) error {
	_, err := c.db.Exec("INSERT OR REPLACE INTO audio (crc, kind, rate, data) VALUES (?, ?, ?, ?)", crc, kind, rate, data)
	return err
}
