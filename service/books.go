package service

import (
	"errors"

	"github.com/tobenna/librarium/data"
	"github.com/tobenna/librarium/data/dto"
	"github.com/tobenna/librarium/internal/validator"
	"github.com/tobenna/librarium/repository"
)

type books interface {
	CreateBook(name, isbn string) (*data.Book, error)
	GetBook(isbn string) (*data.Book, error)
	ListBooks(filters data.Filters) ([]*data.Book, data.Metadata, error)
	UpdateBook(isbn string, requestBody dto.UpdateBookRequestBody) (*data.Book, error)
	DeleteBook(isbn string) error
}

// CreateBook service creates a new book.
func (s *service) CreateBook(name, isbn string) (*data.Book, error) {
	if validator.Matches(name, validator.MetaCharacterRX) {
		return nil, syntaxError()
	}
	book := &data.Book{
		Name: name,
		ISBN: isbn,
	}
	v := validator.New()
	if data.ValidateBook(v, book); !v.Valid() {
		return nil, failedValidation(v.Errors)
	}
	err := s.repo.CreateBook(book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, conflictError("Duplicate ISBN, the element already exists in database")
		default:
			return nil, err
		}
	}
	return book, nil
}

// GetBook service retrieves the details of a book by its ISBN.
func (s *service) GetBook(isbn string) (*data.Book, error) {
	book, err := s.repo.GetBook(isbn)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, notFoundError("The book with id %s not exists in database", isbn)
		default:
			return nil, err
		}
	}
	return book, nil
}

// ListBooks service retrieves a paginated list of books.
func (s *service) ListBooks(filters data.Filters) ([]*data.Book, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		return nil, data.Metadata{}, failedValidation(v.Errors)
	}
	books, metadata, err := s.repo.GetAllBooks(filters)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	return books, metadata, nil
}

// UpdateBook service updates the name and/or ISBN of a specific book.
// Being on loan does not block an update, only a deletion.
func (s *service) UpdateBook(isbn string, requestBody dto.UpdateBookRequestBody) (*data.Book, error) {
	book, err := s.GetBook(isbn)
	if err != nil {
		return nil, err
	}
	if requestBody.Name != nil {
		if validator.Matches(*requestBody.Name, validator.MetaCharacterRX) {
			return nil, syntaxError()
		}
		book.Name = *requestBody.Name
	}
	if requestBody.ISBN != nil {
		book.ISBN = *requestBody.ISBN
	}
	v := validator.New()
	if data.ValidateBook(v, book); !v.Valid() {
		return nil, failedValidation(v.Errors)
	}
	err = s.repo.UpdateBook(book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, conflictError("Duplicate ISBN, the element already exists in database")
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, notFoundError("The book with id %s not exists in database", isbn)
		default:
			return nil, err
		}
	}
	return book, nil
}

// DeleteBook service deletes a book, unless it is currently on loan.
func (s *service) DeleteBook(isbn string) error {
	book, err := s.GetBook(isbn)
	if err != nil {
		return err
	}
	if book.Loaned || book.ReaderID != nil {
		return conflictError("The book %s cannot be deleted because it is currently on loan.", book.Name)
	}
	err = s.repo.DeleteBook(book.ID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return notFoundError("The book with id %s not exists in database", isbn)
		default:
			return err
		}
	}
	return nil
}
