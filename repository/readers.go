package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/tobenna/librarium/data"
)

type readers interface {
	CreateReader(reader *data.Reader) error
	GetReader(readerID int64) (*data.Reader, error)
	GetReaderByName(name string) (*data.Reader, error)
	GetAllReaders(filters data.Filters) ([]*data.Reader, data.Metadata, error)
	UpdateReader(reader *data.Reader) error
	DeleteReader(readerID int64) error
}

// CreateReader creates a new reader record.
func (r *repository) CreateReader(reader *data.Reader) error {
	query := `
		INSERT INTO readers (name)
		VALUES ($1)
		RETURNING id, created_at`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, reader.Name).Scan(&reader.ID, &reader.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// GetReader retrieves a reader record by its ID.
func (r *repository) GetReader(readerID int64) (*data.Reader, error) {
	if readerID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, created_at, name
		FROM readers
		WHERE id = $1`
	var reader data.Reader
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, readerID).Scan(&reader.ID, &reader.CreatedAt, &reader.Name)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &reader, nil
}

// GetReaderByName retrieves the first reader record with a given name.
// Used by the startup seeding routine's existence check.
func (r *repository) GetReaderByName(name string) (*data.Reader, error) {
	query := `
		SELECT id, created_at, name
		FROM readers
		WHERE name = $1
		ORDER BY id ASC
		LIMIT 1`
	var reader data.Reader
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, name).Scan(&reader.ID, &reader.CreatedAt, &reader.Name)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &reader, nil
}

// GetAllReaders retrieves a paginated list of all reader records.
func (r *repository) GetAllReaders(filters data.Filters) ([]*data.Reader, data.Metadata, error) {
	query := `
		SELECT count(*) OVER(), id, created_at, name
		FROM readers
		ORDER BY id ASC
		LIMIT $1 OFFSET $2`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, filters.Limit, filters.Offset)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer rows.Close()
	totalRecords := 0
	readers := []*data.Reader{}
	for rows.Next() {
		var reader data.Reader
		err := rows.Scan(&totalRecords, &reader.ID, &reader.CreatedAt, &reader.Name)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		readers = append(readers, &reader)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Limit, filters.Offset)
	return readers, metadata, nil
}

// UpdateReader updates a reader record.
func (r *repository) UpdateReader(reader *data.Reader) error {
	query := `
		UPDATE readers
		SET name = $1
		WHERE id = $2`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, reader.Name, reader.ID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// DeleteReader deletes a reader record.
func (r *repository) DeleteReader(readerID int64) error {
	if readerID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM readers
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, readerID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
