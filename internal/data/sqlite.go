package data

import (
	"database/sql"
	"strconv"
	"time"

	// register sqlite3 for database/sql
	_ "github.com/mattn/go-sqlite3"
)

// MemoryPath opens a database that lives only as long as the process.
const MemoryPath = "file::memory:?mode=memory&cache=shared"

type Database struct {
	db  *sql.DB
	now func() time.Time
}

func Open(path string) (*Database, error) {
	sqlite, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	db := &Database{
		db:  sqlite,
		now: time.Now,
	}

	return db, db.migrate()
}

func (d *Database) migrate() error {
	_, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS session (
			ID        TEXT PRIMARY KEY,
			Data      TEXT,
			CreatedAt DATETIME
		);
`)
	if err != nil {
		return err
	}

	version, err := d.schemaVersion()
	if err != nil {
		return err
	}

	stmts := []string{
		`ALTER TABLE session ADD COLUMN ExpiresAt DATETIME;`,
	}

	for _, stmt := range stmts[version:] {
		_, err := d.db.Exec(stmt)
		if err != nil {
			return err
		}
	}

	return d.setSchemaVersion(len(stmts))
}

func (d *Database) schemaVersion() (int, error) {
	row := d.db.QueryRow("PRAGMA user_version")

	var version int
	err := row.Scan(&version)
	return version, err
}

func (d *Database) setSchemaVersion(version int) error {
	_, err := d.db.Exec("PRAGMA user_version = " + strconv.Itoa(version))
	return err
}

func (d *Database) Close() error {
	return d.db.Close()
}
