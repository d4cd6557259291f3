package service

import (
	"io"
	"sort"
	"sync"
	"time"

	"github.com/tobenna/librarium/config"
	"github.com/tobenna/librarium/data"
	"github.com/tobenna/librarium/internal/jsonlog"
	"github.com/tobenna/librarium/repository"
)

// fakeRepo is an in-memory stand-in for the persistence gateway. It mirrors
// the real repository's contract, including the transactional guards: a
// lending cannot be created for a book that is already loaned, and returning
// flips the book and deletes the lending together.
type fakeRepo struct {
	mu            sync.Mutex
	books         map[string]*data.Book
	readers       map[int64]*data.Reader
	lendings      map[int64]*data.Lending
	nextBookID    int64
	nextReaderID  int64
	nextLendingID int64

	// forcedErr, when set for a method name, is returned by that method
	// before it touches any state.
	forcedErr map[string]error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		books:     make(map[string]*data.Book),
		readers:   make(map[int64]*data.Reader),
		lendings:  make(map[int64]*data.Lending),
		forcedErr: make(map[string]error),
	}
}

func newTestService(repo repository.Repository) *service {
	logger := jsonlog.New(io.Discard, jsonlog.LevelInfo)
	return New(config.Config{}, logger, repo)
}

func (f *fakeRepo) fail(method string) error {
	if err, ok := f.forcedErr[method]; ok {
		return err
	}
	return nil
}

func copyBook(b *data.Book) *data.Book {
	c := *b
	if b.ReaderID != nil {
		id := *b.ReaderID
		c.ReaderID = &id
	}
	return &c
}

func (f *fakeRepo) CreateBook(book *data.Book) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("CreateBook"); err != nil {
		return err
	}
	if _, exists := f.books[book.ISBN]; exists {
		return repository.ErrDuplicateRecord
	}
	f.nextBookID++
	book.ID = f.nextBookID
	book.CreatedAt = time.Now()
	f.books[book.ISBN] = copyBook(book)
	return nil
}

func (f *fakeRepo) GetBook(isbn string) (*data.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("GetBook"); err != nil {
		return nil, err
	}
	book, ok := f.books[isbn]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return copyBook(book), nil
}

func (f *fakeRepo) GetAllBooks(filters data.Filters) ([]*data.Book, data.Metadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("GetAllBooks"); err != nil {
		return nil, data.Metadata{}, err
	}
	all := make([]*data.Book, 0, len(f.books))
	for _, b := range f.books {
		all = append(all, copyBook(b))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	page := paginate(len(all), filters)
	return all[page[0]:page[1]], data.CalculateMetadata(len(all), filters.Limit, filters.Offset), nil
}

func (f *fakeRepo) UpdateBook(book *data.Book) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("UpdateBook"); err != nil {
		return err
	}
	var oldISBN string
	for isbn, b := range f.books {
		if b.ID == book.ID {
			oldISBN = isbn
		} else if isbn == book.ISBN {
			return repository.ErrDuplicateRecord
		}
	}
	if oldISBN == "" {
		return repository.ErrRecordNotFound
	}
	stored := f.books[oldISBN]
	delete(f.books, oldISBN)
	stored.Name = book.Name
	stored.ISBN = book.ISBN
	f.books[book.ISBN] = stored
	return nil
}

func (f *fakeRepo) DeleteBook(bookID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("DeleteBook"); err != nil {
		return err
	}
	for isbn, b := range f.books {
		if b.ID == bookID {
			delete(f.books, isbn)
			return nil
		}
	}
	return repository.ErrRecordNotFound
}

func (f *fakeRepo) CreateReader(reader *data.Reader) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("CreateReader"); err != nil {
		return err
	}
	f.nextReaderID++
	reader.ID = f.nextReaderID
	reader.CreatedAt = time.Now()
	stored := *reader
	f.readers[reader.ID] = &stored
	return nil
}

func (f *fakeRepo) GetReader(readerID int64) (*data.Reader, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("GetReader"); err != nil {
		return nil, err
	}
	reader, ok := f.readers[readerID]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	c := *reader
	return &c, nil
}

func (f *fakeRepo) GetReaderByName(name string) (*data.Reader, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("GetReaderByName"); err != nil {
		return nil, err
	}
	var found *data.Reader
	for _, r := range f.readers {
		if r.Name == name && (found == nil || r.ID < found.ID) {
			found = r
		}
	}
	if found == nil {
		return nil, repository.ErrRecordNotFound
	}
	c := *found
	return &c, nil
}

func (f *fakeRepo) GetAllReaders(filters data.Filters) ([]*data.Reader, data.Metadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("GetAllReaders"); err != nil {
		return nil, data.Metadata{}, err
	}
	all := make([]*data.Reader, 0, len(f.readers))
	for _, r := range f.readers {
		c := *r
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	page := paginate(len(all), filters)
	return all[page[0]:page[1]], data.CalculateMetadata(len(all), filters.Limit, filters.Offset), nil
}

func (f *fakeRepo) UpdateReader(reader *data.Reader) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("UpdateReader"); err != nil {
		return err
	}
	stored, ok := f.readers[reader.ID]
	if !ok {
		return repository.ErrRecordNotFound
	}
	stored.Name = reader.Name
	return nil
}

func (f *fakeRepo) DeleteReader(readerID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("DeleteReader"); err != nil {
		return err
	}
	if _, ok := f.readers[readerID]; !ok {
		return repository.ErrRecordNotFound
	}
	delete(f.readers, readerID)
	return nil
}

func (f *fakeRepo) CreateLending(lending *data.Lending) (*data.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("CreateLending"); err != nil {
		return nil, err
	}
	for _, l := range f.lendings {
		if l.BookISBN == lending.BookISBN {
			return nil, repository.ErrDuplicateRecord
		}
	}
	book, ok := f.books[lending.BookISBN]
	if !ok || book.Loaned {
		return nil, repository.ErrEditConflict
	}
	f.nextLendingID++
	lending.ID = f.nextLendingID
	lending.Date = time.Now()
	stored := *lending
	f.lendings[lending.ID] = &stored
	readerID := lending.ReaderID
	book.Loaned = true
	book.ReaderID = &readerID
	return copyBook(book), nil
}

func (f *fakeRepo) GetLending(lendingID int64) (*data.Lending, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("GetLending"); err != nil {
		return nil, err
	}
	lending, ok := f.lendings[lendingID]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	c := *lending
	if book, ok := f.books[lending.BookISBN]; ok {
		c.Book = copyBook(book)
	}
	return &c, nil
}

func (f *fakeRepo) GetLendingForReader(readerID int64) (*data.Lending, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("GetLendingForReader"); err != nil {
		return nil, err
	}
	var found *data.Lending
	for _, l := range f.lendings {
		if l.ReaderID == readerID && (found == nil || l.ID < found.ID) {
			found = l
		}
	}
	if found == nil {
		return nil, repository.ErrRecordNotFound
	}
	c := *found
	return &c, nil
}

func (f *fakeRepo) GetAllLendings(filters data.Filters) ([]*data.Lending, data.Metadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("GetAllLendings"); err != nil {
		return nil, data.Metadata{}, err
	}
	all := make([]*data.Lending, 0, len(f.lendings))
	for _, l := range f.lendings {
		c := *l
		if book, ok := f.books[l.BookISBN]; ok {
			c.Book = copyBook(book)
		}
		if reader, ok := f.readers[l.ReaderID]; ok {
			rc := *reader
			c.Reader = &rc
		}
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	page := paginate(len(all), filters)
	return all[page[0]:page[1]], data.CalculateMetadata(len(all), filters.Limit, filters.Offset), nil
}

func (f *fakeRepo) ReturnLending(lending *data.Lending) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("ReturnLending"); err != nil {
		return err
	}
	if _, ok := f.lendings[lending.ID]; !ok {
		return repository.ErrRecordNotFound
	}
	book, ok := f.books[lending.BookISBN]
	if !ok {
		return repository.ErrRecordNotFound
	}
	book.Loaned = false
	book.ReaderID = nil
	delete(f.lendings, lending.ID)
	return nil
}

func paginate(total int, filters data.Filters) [2]int {
	start := filters.Offset
	if start > total {
		start = total
	}
	end := start + filters.Limit
	if end > total {
		end = total
	}
	return [2]int{start, end}
}
