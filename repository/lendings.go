package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/tobenna/librarium/data"
)

type lendings interface {
	CreateLending(lending *data.Lending) (*data.Book, error)
	GetLending(lendingID int64) (*data.Lending, error)
	GetLendingForReader(readerID int64) (*data.Lending, error)
	GetAllLendings(filters data.Filters) ([]*data.Lending, data.Metadata, error)
	ReturnLending(lending *data.Lending) error
}

// CreateLending inserts a lending row and flips the book to loaned in a single
// transaction. The book update is guarded with loaned = FALSE and the lendings
// table enforces one open lending per ISBN, so a concurrent lending of the
// same book aborts here no matter what the caller observed beforehand:
// a failed guard returns ErrEditConflict and a unique violation on the insert
// returns ErrDuplicateRecord.
func (r *repository) CreateLending(lending *data.Lending) (*data.Book, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO lendings (date, book_isbn, reader_id)
		VALUES (now(), $1, $2)
		RETURNING id, date`
	err = tx.QueryRowContext(ctx, insert, lending.BookISBN, lending.ReaderID).Scan(&lending.ID, &lending.Date)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return nil, ErrDuplicateRecord
		default:
			return nil, err
		}
	}

	update := `
		UPDATE books
		SET loaned = TRUE, reader_id = $1
		WHERE isbn = $2 AND loaned = FALSE
		RETURNING id, created_at, name, isbn, loaned, reader_id`
	var book data.Book
	err = tx.QueryRowContext(ctx, update, lending.ReaderID, lending.BookISBN).Scan(
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
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return &book, nil
}

// GetLending retrieves a lending record by its ID, joined with its book.
func (r *repository) GetLending(lendingID int64) (*data.Lending, error) {
	if lendingID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT l.id, l.date, l.book_isbn, l.reader_id,
			b.id, b.created_at, b.name, b.isbn, b.loaned, b.reader_id
		FROM lendings l
		INNER JOIN books b ON b.isbn = l.book_isbn
		WHERE l.id = $1`
	var lending data.Lending
	var book data.Book
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, lendingID).Scan(
		&lending.ID,
		&lending.Date,
		&lending.BookISBN,
		&lending.ReaderID,
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
	lending.Book = &book
	return &lending, nil
}

// GetLendingForReader retrieves any open lending for a reader. Used by the
// reader deletion check.
func (r *repository) GetLendingForReader(readerID int64) (*data.Lending, error) {
	if readerID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, date, book_isbn, reader_id
		FROM lendings
		WHERE reader_id = $1
		ORDER BY id ASC
		LIMIT 1`
	var lending data.Lending
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, readerID).Scan(
		&lending.ID,
		&lending.Date,
		&lending.BookISBN,
		&lending.ReaderID,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &lending, nil
}

// GetAllLendings retrieves a paginated list of lending records, each joined
// with its book and reader for display.
func (r *repository) GetAllLendings(filters data.Filters) ([]*data.Lending, data.Metadata, error) {
	query := `
		SELECT count(*) OVER(), l.id, l.date, l.book_isbn, l.reader_id,
			b.id, b.created_at, b.name, b.isbn, b.loaned, b.reader_id,
			rd.id, rd.created_at, rd.name
		FROM lendings l
		INNER JOIN books b ON b.isbn = l.book_isbn
		INNER JOIN readers rd ON rd.id = l.reader_id
		ORDER BY l.id ASC
		LIMIT $1 OFFSET $2`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, filters.Limit, filters.Offset)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer rows.Close()
	totalRecords := 0
	lendings := []*data.Lending{}
	for rows.Next() {
		var lending data.Lending
		var book data.Book
		var reader data.Reader
		err := rows.Scan(
			&totalRecords,
			&lending.ID,
			&lending.Date,
			&lending.BookISBN,
			&lending.ReaderID,
			&book.ID,
			&book.CreatedAt,
			&book.Name,
			&book.ISBN,
			&book.Loaned,
			&book.ReaderID,
			&reader.ID,
			&reader.CreatedAt,
			&reader.Name,
		)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		lending.Book = &book
		lending.Reader = &reader
		lendings = append(lendings, &lending)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Limit, filters.Offset)
	return lendings, metadata, nil
}

// ReturnLending flips the book back to available and deletes the lending row
// in a single transaction. Either both rows change or neither does.
func (r *repository) ReturnLending(lending *data.Lending) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	update := `
		UPDATE books
		SET loaned = FALSE, reader_id = NULL
		WHERE isbn = $1`
	result, err := tx.ExecContext(ctx, update, lending.BookISBN)
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

	del := `
		DELETE FROM lendings
		WHERE id = $1`
	result, err = tx.ExecContext(ctx, del, lending.ID)
	if err != nil {
		return err
	}
	rowsAffected, err = result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return tx.Commit()
}
