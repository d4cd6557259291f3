package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/tobenna/librarium/data"
)

type books interface {
	CreateBook(book *data.Book) error
	GetBook(isbn string) (*data.Book, error)
	GetAllBooks(filters data.Filters) ([]*data.Book, data.Metadata, error)
	UpdateBook(book *data.Book) error
	DeleteBook(bookID int64) error
}

// CreateBook creates a new book record. The ISBN carries a unique constraint,
// so inserting a duplicate returns ErrDuplicateRecord.
func (r *repository) CreateBook(book *data.Book) error {
	query := `
		INSERT INTO books (name, isbn)
		VALUES ($1, $2)
		RETURNING id, created_at, loaned, reader_id`
	args := []interface{}{book.Name, book.ISBN}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&book.ID, &book.CreatedAt, &book.Loaned, &book.ReaderID)
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

// GetBook retrieves a book record by its ISBN.
func (r *repository) GetBook(isbn string) (*data.Book, error) {
	query := `
		SELECT id, created_at, name, isbn, loaned, reader_id
		FROM books
		WHERE isbn = $1`
	var book data.Book
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, isbn).Scan(
		&book.ID,
		&book.CreatedAt,
		&book.Name,
		&book.ISBN,
		&book.Loaned,
		&book.ReaderID,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &book, nil
}

// GetAllBooks retrieves a paginated list of all book records.
func (r *repository) GetAllBooks(filters data.Filters) ([]*data.Book, data.Metadata, error) {
	query := `
		SELECT count(*) OVER(), id, created_at, name, isbn, loaned, reader_id
		FROM books
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
	books := []*data.Book{}
	for rows.Next() {
		var book data.Book
		err := rows.Scan(
			&totalRecords,
			&book.ID,
			&book.CreatedAt,
			&book.Name,
			&book.ISBN,
			&book.Loaned,
			&book.ReaderID,
		)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		books = append(books, &book)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Limit, filters.Offset)
	return books, metadata, nil
}

// UpdateBook updates a book record's name and ISBN, keyed by its ID so that
// the ISBN itself can be changed.
func (r *repository) UpdateBook(book *data.Book) error {
	query := `
		UPDATE books
		SET name = $1, isbn = $2
		WHERE id = $3`
	args := []interface{}{book.Name, book.ISBN, book.ID}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return ErrDuplicateRecord
		default:
			return err
		}
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

// DeleteBook deletes a book record.
func (r *repository) DeleteBook(bookID int64) error {
	if bookID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM books
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, bookID)
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
