package service

import (
	"errors"

	"github.com/tobenna/librarium/data"
	"github.com/tobenna/librarium/internal/validator"
	"github.com/tobenna/librarium/repository"
)

type lendings interface {
	RealizeLending(bookISBN string, readerID int64) (*data.Lending, *data.Book, error)
	ListLendings(filters data.Filters) ([]*data.Lending, data.Metadata, error)
	ReturnBook(lendingID int64) error
}

// RealizeLending service checks a book out to a reader. The book and reader
// lookups run concurrently and both complete before anything is mutated; when
// both are missing the book error wins. The availability check here produces
// the client-facing error, but the transaction re-asserts it: a concurrent
// lending of the same book aborts at the gateway and is reported as
// unavailable, so the check-then-write window cannot double-lend.
func (s *service) RealizeLending(bookISBN string, readerID int64) (*data.Lending, *data.Book, error) {
	var reader *data.Reader
	var readerErr error
	done := make(chan struct{})
	go func() {
		reader, readerErr = s.repo.GetReader(readerID)
		close(done)
	}()
	book, bookErr := s.repo.GetBook(bookISBN)
	<-done

	if bookErr != nil {
		switch {
		case errors.Is(bookErr, repository.ErrRecordNotFound):
			s.logger.PrintError(errors.New("book not found in database"), map[string]string{"isbn": bookISBN})
			return nil, nil, notFoundError("Book not found in database")
		default:
			return nil, nil, bookErr
		}
	}
	if readerErr != nil {
		switch {
		case errors.Is(readerErr, repository.ErrRecordNotFound):
			s.logger.PrintError(errors.New("reader not found in database"), map[string]string{"reader_id": itoa(readerID)})
			return nil, nil, notFoundError("Reader not found in database")
		default:
			return nil, nil, readerErr
		}
	}
	if book.Loaned {
		s.logger.PrintError(errors.New("book not available"), map[string]string{"isbn": book.ISBN})
		return nil, nil, conflictError("Book not available")
	}

	lending := &data.Lending{
		BookISBN: book.ISBN,
		ReaderID: reader.ID,
	}
	updatedBook, err := s.repo.CreateLending(lending)
	if err != nil {
		switch {
		// A concurrent request won the race between our availability check
		// and the transaction commit
		case errors.Is(err, repository.ErrEditConflict), errors.Is(err, repository.ErrDuplicateRecord):
			s.logger.PrintError(err, map[string]string{"isbn": book.ISBN})
			return nil, nil, conflictError("Book not available")
		default:
			s.logger.PrintError(err, map[string]string{"isbn": book.ISBN})
			return nil, nil, internalError("Failed to execute transaction.")
		}
	}
	return lending, updatedBook, nil
}

// ListLendings service retrieves a paginated list of lendings, each joined
// with its book and reader.
func (s *service) ListLendings(filters data.Filters) ([]*data.Lending, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		return nil, data.Metadata{}, failedValidation(v.Errors)
	}
	lendings, metadata, err := s.repo.GetAllLendings(filters)
	if err != nil {
		s.logger.PrintError(err, nil)
		return nil, data.Metadata{}, internalError("Failed to fetch lendings.")
	}
	return lendings, metadata, nil
}

// ReturnBook service closes a lending, restoring the book to available and
// removing the lending row in a single transaction.
func (s *service) ReturnBook(lendingID int64) error {
	lending, err := s.repo.GetLending(lendingID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return notFoundError("Lending with ID %d not found.", lendingID)
		default:
			return err
		}
	}
	// A lending row with an unloaned book means the two tables have
	// diverged; refuse the return rather than delete the lending.
	if !lending.Book.Loaned {
		s.logger.PrintError(errors.New("book is not currently loaned out"), map[string]string{"isbn": lending.BookISBN})
		return conflictError("The book is not currently loaned out.")
	}
	err = s.repo.ReturnLending(lending)
	if err != nil {
		s.logger.PrintError(err, map[string]string{"isbn": lending.BookISBN})
		return internalError("Failed to execute transaction.")
	}
	return nil
}
