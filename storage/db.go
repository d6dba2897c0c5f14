package storage

import (
	"database/sql"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"sniper-control/api"
)

var ErrNotFound = errors.New("not found")

type DB struct {
	*sql.DB
}

// OperationRecord is one completed bulk operation as logged locally.
type OperationRecord struct {
	ID           int64   `json:"id"`
	Kind         string  `json:"kind"`
	GroupID      int64   `json:"group_id"`
	TotalWallets int     `json:"total_wallets"`
	Successful   int     `json:"successful"`
	Failed       int     `json:"failed"`
	TotalSOL     float64 `json:"total_sol"`
	CreatedAt    int64   `json:"created_at"`
}

func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	dbInstance := &DB{db}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	if err := dbInstance.initSchema(); err != nil {
		return nil, err
	}

	return dbInstance, nil
}

func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS operations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		group_id INTEGER,
		total_wallets INTEGER,
		successful INTEGER,
		failed INTEGER,
		total_sol REAL,
		created_at INTEGER
	);

	CREATE TABLE IF NOT EXISTS operation_members (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		operation_id INTEGER NOT NULL,
		wallet_id INTEGER,
		address TEXT,
		amount REAL,
		signature TEXT,
		error TEXT,
		success INTEGER,
		FOREIGN KEY(operation_id) REFERENCES operations(id)
	);
	`

	_, err := db.Exec(schema)
	return err
}

// SetValue upserts one settings key.
func (db *DB) SetValue(key, value string) error {
	_, err := db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	return err
}

func (db *DB) GetValue(key string) (string, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (db *DB) DeleteValue(key string) error {
	_, err := db.Exec(`DELETE FROM settings WHERE key = ?`, key)
	return err
}

// RecordOperation logs a completed bulk operation and its per-member
// outcomes. Best-effort history; callers may ignore the error.
func (db *DB) RecordOperation(kind string, groupID int64, res *api.BulkResult) (int64, error) {
	totalSOL := res.TotalSOLSent
	if totalSOL == 0 {
		totalSOL = res.TotalCollected
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO operations (kind, group_id, total_wallets, successful, failed, total_sol, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		kind, groupID, res.TotalWallets, res.Successful, res.Failed, totalSOL, time.Now().Unix())
	if err != nil {
		return 0, err
	}

	opID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO operation_members (operation_id, wallet_id, address, amount, signature, error, success)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, m := range res.Results {
		if _, err := stmt.Exec(opID, m.WalletID, m.Address, m.Amount, m.Signature, m.Error, m.Success); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return opID, nil
}

func (db *DB) RecentOperations(limit int) ([]OperationRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(
		`SELECT id, kind, group_id, total_wallets, successful, failed, total_sol, created_at
		 FROM operations ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []OperationRecord
	for rows.Next() {
		var r OperationRecord
		if err := rows.Scan(&r.ID, &r.Kind, &r.GroupID, &r.TotalWallets, &r.Successful, &r.Failed, &r.TotalSOL, &r.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// OperationMembers returns the per-wallet breakdown for one logged
// operation.
func (db *DB) OperationMembers(operationID int64) ([]api.MemberResult, error) {
	rows, err := db.Query(
		`SELECT wallet_id, address, amount, signature, error, success
		 FROM operation_members WHERE operation_id = ? ORDER BY id`, operationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []api.MemberResult
	for rows.Next() {
		var m api.MemberResult
		if err := rows.Scan(&m.WalletID, &m.Address, &m.Amount, &m.Signature, &m.Error, &m.Success); err != nil {
			return nil, err
		}
		members = append(members, m)
	}

	return members, rows.Err()
}
