// Package sqlite stores tours as JSON documents in a SQLite table.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zhouzirui/natours/backend/internal/model/tour"
)

// Store implements tour.Store. Rows keep insertion order and, like the JSON
// file, may share an id.
type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) List(ctx context.Context) ([]tour.Tour, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT body FROM tour_records ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []tour.Tour{}
	for rows.Next() {
		t, err := scanTour(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (s *Store) FindByID(ctx context.Context, id int) (tour.Tour, bool, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT body FROM tour_records WHERE id = ? ORDER BY seq LIMIT 1`, id)
	t, err := scanTour(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tour.Tour{}, false, nil
		}
		return tour.Tour{}, false, err
	}
	return t, true, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM tour_records`).Scan(&n)
	return n, err
}

func (s *Store) Create(ctx context.Context, fields *tour.Fields) (tour.Tour, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return tour.Tour{}, err
	}
	defer tx.Rollback()

	created, err := tour.Merge(fields, func() (int, error) {
		var highest sql.NullInt64
		if err := tx.QueryRowContext(ctx, `SELECT MAX(id) FROM tour_records`).Scan(&highest); err != nil {
			return 0, err
		}
		if !highest.Valid {
			return 0, nil
		}
		return tour.NextAfter(int(highest.Int64))
	})
	if err != nil {
		return tour.Tour{}, err
	}
	if err := insert(ctx, tx, created); err != nil {
		return tour.Tour{}, err
	}
	if err := tx.Commit(); err != nil {
		return tour.Tour{}, err
	}
	return created, nil
}

// Import replaces the stored collection with items in one transaction and
// returns how many were written.
func (s *Store) Import(ctx context.Context, items []tour.Tour) (int, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tour_records`); err != nil {
		return 0, err
	}

	for _, t := range items {
		if err := insert(ctx, tx, t); err != nil {
			return 0, fmt.Errorf("import tour %d: %w", t.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(items), nil
}

func insert(ctx context.Context, tx *sql.Tx, t tour.Tour) error {
	body, err := json.Marshal(t)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO tour_records (id, body) VALUES (?, ?)`,
		t.ID, string(body),
	)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTour(row scanner) (tour.Tour, error) {
	var body string
	if err := row.Scan(&body); err != nil {
		return tour.Tour{}, err
	}
	var t tour.Tour
	if err := json.Unmarshal([]byte(body), &t); err != nil {
		return tour.Tour{}, fmt.Errorf("decode tour row: %w", err)
	}
	return t, nil
}
