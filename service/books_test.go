package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tobenna/librarium/data"
	"github.com/tobenna/librarium/data/dto"
)

func TestCreateBook(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	book, err := s.CreateBook("Dune", duneISBN)
	require.NoError(t, err)
	assert.NotZero(t, book.ID)
	assert.Equal(t, "Dune", book.Name)
	assert.Equal(t, duneISBN, book.ISBN)
	assert.False(t, book.Loaned)
	assert.Nil(t, book.ReaderID)
}

func TestCreateBookRejectsMetaCharacters(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	for _, name := range []string{"Dune[", "Dune/Messiah", "Dune$", "(Dune)"} {
		_, err := s.CreateBook(name, duneISBN)
		require.Error(t, err, "name %q", name)
		assert.True(t, errors.Is(err, ErrSyntax))
		assert.Equal(t, "Syntax Error: not allowed characters", err.Error())
	}
}

func TestCreateBookRejectsShortName(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	_, err := s.CreateBook("Du", duneISBN)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFailedValidation))
}

func TestCreateBookRejectsInvalidISBN(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	_, err := s.CreateBook("Dune", "9780441013594")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFailedValidation))
}

func TestCreateBookDuplicateISBN(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	_, err := s.CreateBook("Dune", duneISBN)
	require.NoError(t, err)

	_, err = s.CreateBook("Other Dune", duneISBN)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "Duplicate ISBN, the element already exists in database", err.Error())
}

func TestGetBookNotFound(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	_, err := s.GetBook(duneISBN)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "The book with id 9780441013593 not exists in database", err.Error())
}

func TestListBooks(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	_, err := s.CreateBook("Dune", duneISBN)
	require.NoError(t, err)
	_, err = s.CreateBook("Neuromancer", "1234567890")
	require.Error(t, err)

	books, metadata, err := s.ListBooks(data.Filters{Limit: 10, Offset: 0})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, 1, metadata.Total)
	assert.Equal(t, 1, metadata.CurrentPage)
	assert.Equal(t, 1, metadata.TotalPages)
}

func TestUpdateBook(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	_, err := s.CreateBook("Dune", duneISBN)
	require.NoError(t, err)

	name := "Dune Messiah"
	book, err := s.UpdateBook(duneISBN, dto.UpdateBookRequestBody{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", book.Name)
	assert.Equal(t, duneISBN, book.ISBN)
}

func TestUpdateBookWhileLoanedIsAllowed(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)
	book, reader := seedBookAndReader(t, repo)
	_, _, err := s.RealizeLending(book.ISBN, reader.ID)
	require.NoError(t, err)

	name := "Dune Messiah"
	updated, err := s.UpdateBook(book.ISBN, dto.UpdateBookRequestBody{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", updated.Name)
	assert.True(t, updated.Loaned)
}

func TestUpdateBookRejectsMetaCharacters(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	_, err := s.CreateBook("Dune", duneISBN)
	require.NoError(t, err)

	name := "Dune["
	_, err = s.UpdateBook(duneISBN, dto.UpdateBookRequestBody{Name: &name})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSyntax))
	assert.Equal(t, "Syntax Error: not allowed characters", err.Error())
}

func TestUpdateBookNotFound(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	name := "Dune"
	_, err := s.UpdateBook(duneISBN, dto.UpdateBookRequestBody{Name: &name})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDeleteBookWhileOnLoan(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)
	book, reader := seedBookAndReader(t, repo)

	lending, _, err := s.RealizeLending(book.ISBN, reader.ID)
	require.NoError(t, err)

	err = s.DeleteBook(book.ISBN)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "The book Dune cannot be deleted because it is currently on loan.", err.Error())

	// After the book comes back, deletion succeeds
	require.NoError(t, s.ReturnBook(lending.ID))
	require.NoError(t, s.DeleteBook(book.ISBN))

	_, err = s.GetBook(book.ISBN)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDeleteBookNotFound(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	err := s.DeleteBook(duneISBN)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}
