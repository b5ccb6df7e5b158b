package main

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// auditLog is the demo's operational audit trail: one row per certify or
// remove_all call made through the demo's routes, for operators to inspect — the Go
// analogue of receipt_sink/main.go's sqliteStore, repurposed to record
// operations on the library rather than ingested receipts.
type auditLog struct {
	db *sql.DB
}

func openAuditLog(path string) (*auditLog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	ddl := `CREATE TABLE IF NOT EXISTS operations(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		request_id TEXT,
		ts INTEGER,
		op TEXT,
		url TEXT,
		root_hash TEXT
	);`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, err
	}
	return &auditLog{db: db}, nil
}

func (a *auditLog) record(requestID, op, url, rootHashHex string) error {
	_, err := a.db.Exec(
		`INSERT INTO operations (request_id, ts, op, url, root_hash) VALUES (?, ?, ?, ?, ?)`,
		requestID, time.Now().Unix(), op, url, rootHashHex,
	)
	return err
}

func (a *auditLog) close() error {
	return a.db.Close()
}
