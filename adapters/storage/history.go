// Package storage persists analysis history.
// Only analysis outputs are stored; stack persistence stays with the caller.
package storage

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"stacksafe/core/engine"
	"stacksafe/core/types"
	"stacksafe/internal/errors"
)

// HistoryStore records analysis reports in a local sqlite database
type HistoryStore struct {
	db *sql.DB
}

// Entry is one recorded analysis
type Entry struct {
	ID           string          `json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	StackHash    string          `json:"stack_hash"`
	StackSize    int             `json:"stack_size"`
	OverallRisk  types.Severity  `json:"overall_risk"`
	Score        int             `json:"score"`
	Interactions int             `json:"interactions"`
	Warnings     int             `json:"warnings"`
	Report       json.RawMessage `json:"report"`
}

// NewHistoryStore opens (or creates) the history database
func NewHistoryStore(dbPath string) (*HistoryStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Storage("failed to open history database", err)
	}

	store := &HistoryStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the database
func (s *HistoryStore) Close() error {
	return s.db.Close()
}

func (s *HistoryStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS analyses (
        id TEXT PRIMARY KEY,
        created_at DATETIME NOT NULL,
        stack_hash TEXT NOT NULL,
        stack_size INTEGER NOT NULL,
        overall_risk TEXT NOT NULL,
        score INTEGER NOT NULL,
        interactions INTEGER NOT NULL,
        warnings INTEGER NOT NULL,
        report TEXT NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);
    CREATE INDEX IF NOT EXISTS idx_analyses_stack_hash ON analyses(stack_hash);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return errors.Storage("failed to create schema", err)
	}

	return nil
}

// Save records an analysis report and returns the stored entry
func (s *HistoryStore) Save(report *engine.Report, stackHash string) (*Entry, error) {
	raw, err := json.Marshal(report)
	if err != nil {
		return nil, errors.Storage("failed to encode report", err)
	}

	entry := &Entry{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		StackHash:    stackHash,
		StackSize:    report.StackSize,
		OverallRisk:  report.Result.OverallRiskLevel,
		Score:        report.Score,
		Interactions: len(report.Result.Interactions),
		Warnings:     len(report.Result.NutrientWarnings),
		Report:       raw,
	}

	query := `
        INSERT INTO analyses (id, created_at, stack_hash, stack_size, overall_risk, score, interactions, warnings, report)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err = s.db.Exec(query,
		entry.ID, entry.CreatedAt, entry.StackHash, entry.StackSize,
		entry.OverallRisk.String(), entry.Score, entry.Interactions, entry.Warnings,
		string(entry.Report))
	if err != nil {
		return nil, errors.Storage("failed to insert analysis", err)
	}

	return entry, nil
}

// List returns the most recent entries, newest first
func (s *HistoryStore) List(limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
        SELECT id, created_at, stack_hash, stack_size, overall_risk, score, interactions, warnings, report
        FROM analyses
        ORDER BY created_at DESC, id DESC
        LIMIT ?
    `
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, errors.Storage("failed to query analyses", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Get returns one entry by ID
func (s *HistoryStore) Get(id string) (*Entry, error) {
	query := `
        SELECT id, created_at, stack_hash, stack_size, overall_risk, score, interactions, warnings, report
        FROM analyses
        WHERE id = ?
    `
	row := s.db.QueryRow(query, id)
	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("analysis", id)
	}
	return entry, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	entry := &Entry{}
	var overallRisk string
	var report string

	err := row.Scan(&entry.ID, &entry.CreatedAt, &entry.StackHash, &entry.StackSize,
		&overallRisk, &entry.Score, &entry.Interactions, &entry.Warnings, &report)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, errors.Storage("failed to scan analysis", err)
	}

	severity, err := types.ParseSeverity(overallRisk)
	if err != nil {
		return nil, errors.Storage("corrupt severity in history", err)
	}
	entry.OverallRisk = severity
	entry.Report = json.RawMessage(report)
	return entry, nil
}
