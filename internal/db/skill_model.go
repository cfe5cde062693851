package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// SkillModel is the raw content of the model tables.
type SkillModel struct {
	Skills         []string
	Frequencies    map[string]float64
	Classification map[string]string
}

// LoadSkillModel reads the vocabulary, frequencies and classifications in a
// single read-only transaction so the three tables are seen consistently.
func (db *DB) LoadSkillModel(ctx context.Context) (*SkillModel, error) {
	tx, err := db.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	skills, err := querySkills(ctx, tx)
	if err != nil {
		return nil, err
	}
	frequencies, err := queryFrequencies(ctx, tx)
	if err != nil {
		return nil, err
	}
	classification, err := queryClassifications(ctx, tx)
	if err != nil {
		return nil, err
	}

	return &SkillModel{
		Skills:         skills,
		Frequencies:    frequencies,
		Classification: classification,
	}, nil
}

func querySkills(ctx context.Context, tx pgx.Tx) ([]string, error) {
	rows, err := tx.Query(ctx, `SELECT name FROM skills ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query skills: %w", err)
	}
	skills, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan skills: %w", err)
	}
	return skills, nil
}

func queryFrequencies(ctx context.Context, tx pgx.Tx) (map[string]float64, error) {
	rows, err := tx.Query(ctx, `SELECT skill, frequency FROM skill_frequencies`)
	if err != nil {
		return nil, fmt.Errorf("failed to query skill frequencies: %w", err)
	}
	defer rows.Close()

	frequencies := make(map[string]float64)
	for rows.Next() {
		var skill string
		var frequency float64
		if err := rows.Scan(&skill, &frequency); err != nil {
			return nil, fmt.Errorf("failed to scan skill frequency: %w", err)
		}
		frequencies[skill] = frequency
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating skill frequencies: %w", err)
	}
	return frequencies, nil
}

func queryClassifications(ctx context.Context, tx pgx.Tx) (map[string]string, error) {
	rows, err := tx.Query(ctx, `SELECT skill, category FROM skill_classifications`)
	if err != nil {
		return nil, fmt.Errorf("failed to query skill classifications: %w", err)
	}
	defer rows.Close()

	classification := make(map[string]string)
	for rows.Next() {
		var skill, category string
		if err := rows.Scan(&skill, &category); err != nil {
			return nil, fmt.Errorf("failed to scan skill classification: %w", err)
		}
		classification[skill] = category
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating skill classifications: %w", err)
	}
	return classification, nil
}
