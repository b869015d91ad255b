package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/castor/internal/scenario"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanScenario reads a scenario row and decodes its document.
// Expected column order: id, name, document, created_at, updated_at, deleted_at
func scanScenario(s scanner) (*scenario.Scenario, error) {
	var sc scenario.Scenario

	var document []byte

	if err := s.Scan(&sc.ID, &sc.Name, &document, &sc.CreatedAt, &sc.UpdatedAt, &sc.DeletedAt); err != nil {
		return nil, err
	}

	doc, err := scenario.Decode(document)
	if err != nil {
		return nil, fmt.Errorf("decoding scenario %s: %w", sc.ID, err)
	}

	sc.Project = doc.Project

	return &sc, nil
}

const selectScenarioColumns = `id, name, document, created_at, updated_at, deleted_at`

func (s *Store) CreateScenario(ctx context.Context, sc *scenario.Scenario) error {
	document, err := scenario.Encode(scenario.Document{Project: sc.Project})
	if err != nil {
		return err
	}

	query := `
		INSERT INTO scenarios (name, document, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = s.db.QueryRowContext(ctx, query, sc.Name, document).Scan(&sc.ID, &sc.CreatedAt, &sc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating scenario: %w", err)
	}

	return nil
}

func (s *Store) GetScenario(ctx context.Context, id uuid.UUID) (*scenario.Scenario, error) {
	query := `SELECT ` + selectScenarioColumns + `
		FROM scenarios
		WHERE id = $1 AND deleted_at IS NULL`

	sc, err := scanScenario(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, scenario.ErrNotFound
		}

		return nil, fmt.Errorf("getting scenario: %w", err)
	}

	return sc, nil
}

func (s *Store) ListScenarios(ctx context.Context) ([]*scenario.Scenario, error) {
	query := `SELECT ` + selectScenarioColumns + `
		FROM scenarios
		WHERE deleted_at IS NULL
		ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []*scenario.Scenario

	for rows.Next() {
		sc, err := scanScenario(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning scenario: %w", err)
		}

		scenarios = append(scenarios, sc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scenario rows: %w", err)
	}

	return scenarios, nil
}

func (s *Store) UpdateScenario(ctx context.Context, sc *scenario.Scenario) error {
	document, err := scenario.Encode(scenario.Document{Project: sc.Project})
	if err != nil {
		return err
	}

	query := `
		UPDATE scenarios
		SET name = $1, document = $2, updated_at = NOW()
		WHERE id = $3 AND deleted_at IS NULL
		RETURNING updated_at
	`

	err = s.db.QueryRowContext(ctx, query, sc.Name, document, sc.ID).Scan(&sc.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return scenario.ErrNotFound
		}

		return fmt.Errorf("updating scenario: %w", err)
	}

	return nil
}

func (s *Store) DeleteScenario(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE scenarios SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting scenario: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting scenario: %w", err)
	}

	if n == 0 {
		return scenario.ErrNotFound
	}

	return nil
}
