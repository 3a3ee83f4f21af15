package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"pinklegion-contracts/domain"
)

const installmentSchema = `
CREATE TABLE IF NOT EXISTS installments (
	id              TEXT PRIMARY KEY,
	contract_id     TEXT NOT NULL,
	sequence_number INTEGER NOT NULL,
	due_date        TEXT NOT NULL,
	amount          REAL NOT NULL,
	paid            INTEGER NOT NULL DEFAULT 0,
	UNIQUE (contract_id, sequence_number)
);
CREATE INDEX IF NOT EXISTS idx_installments_contract ON installments (contract_id);
`

// InstallmentRepositorySQLite implements InstallmentRepository on a local
// SQLite file.
type InstallmentRepositorySQLite struct {
	db *sql.DB
}

// NewInstallmentRepositorySQLite opens (and if necessary creates) the
// database at dbPath and ensures the schema exists.
func NewInstallmentRepositorySQLite(dbPath string) (*InstallmentRepositorySQLite, error) {
	if dbPath == "" {
		return nil, errors.New("dbPath must not be empty")
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite does not benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(installmentSchema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &InstallmentRepositorySQLite{db: db}, nil
}

// Close closes the underlying database.
func (r *InstallmentRepositorySQLite) Close() error {
	return r.db.Close()
}

func (r *InstallmentRepositorySQLite) ReplaceSchedule(contractID string, entries []domain.Installment) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM installments WHERE contract_id = ?`, contractID); err != nil {
		return fmt.Errorf("failed to clear previous schedule: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO installments (id, contract_id, sequence_number, due_date, amount, paid)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, inst := range entries {
		paid := 0
		if inst.Paid {
			paid = 1
		}
		_, err := stmt.Exec(
			inst.ID,
			contractID,
			inst.SequenceNumber,
			inst.DueDate.Format(time.RFC3339),
			inst.Amount,
			paid,
		)
		if err != nil {
			return fmt.Errorf("failed to insert installment %d: %w", inst.SequenceNumber, err)
		}
	}

	return tx.Commit()
}

func (r *InstallmentRepositorySQLite) ListByContract(contractID string) ([]domain.Installment, error) {
	rows, err := r.db.Query(`
		SELECT id, contract_id, sequence_number, due_date, amount, paid
		FROM installments
		WHERE contract_id = ?
		ORDER BY sequence_number`, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []domain.Installment{}
	for rows.Next() {
		var inst domain.Installment
		var dueDate string
		var paid int
		if err := rows.Scan(&inst.ID, &inst.ContractID, &inst.SequenceNumber, &dueDate, &inst.Amount, &paid); err != nil {
			return nil, fmt.Errorf("failed to scan installment: %w", err)
		}
		inst.DueDate, err = time.Parse(time.RFC3339, dueDate)
		if err != nil {
			return nil, fmt.Errorf("invalid due date %q: %w", dueDate, err)
		}
		inst.Paid = paid != 0
		out = append(out, inst)
	}
	return out, rows.Err()
}

func (r *InstallmentRepositorySQLite) SetPaid(contractID string, sequenceNumber int, paid bool) error {
	value := 0
	if paid {
		value = 1
	}
	res, err := r.db.Exec(`
		UPDATE installments SET paid = ?
		WHERE contract_id = ? AND sequence_number = ?`, value, contractID, sequenceNumber)
	if err != nil {
		return fmt.Errorf("failed to update installment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return ErrInstallmentNotFound
	}
	return nil
}
