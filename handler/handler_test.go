package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/stretchr/testify/require"
	"github.com/tobenna/librarium/config"
	"github.com/tobenna/librarium/data"
	"github.com/tobenna/librarium/data/dto"
	"github.com/tobenna/librarium/internal/jsonlog"
	"golang.org/x/time/rate"
)

// stubService implements service.Service with per-test function fields.
// Unset operations return zero values.
type stubService struct {
	createBook     func(name, isbn string) (*data.Book, error)
	getBook        func(isbn string) (*data.Book, error)
	listBooks      func(filters data.Filters) ([]*data.Book, data.Metadata, error)
	updateBook     func(isbn string, body dto.UpdateBookRequestBody) (*data.Book, error)
	deleteBook     func(isbn string) error
	createReader   func(name string) (*data.Reader, error)
	getReader      func(id int64) (*data.Reader, error)
	listReaders    func(filters data.Filters) ([]*data.Reader, data.Metadata, error)
	updateReader   func(id int64, body dto.UpdateReaderRequestBody) (*data.Reader, error)
	deleteReader   func(id int64) error
	realizeLending func(isbn string, readerID int64) (*data.Lending, *data.Book, error)
	listLendings   func(filters data.Filters) ([]*data.Lending, data.Metadata, error)
	returnBook     func(id int64) error
}

func (s *stubService) CreateBook(name, isbn string) (*data.Book, error) {
	if s.createBook == nil {
		return nil, nil
	}
	return s.createBook(name, isbn)
}

func (s *stubService) GetBook(isbn string) (*data.Book, error) {
	if s.getBook == nil {
		return nil, nil
	}
	return s.getBook(isbn)
}

func (s *stubService) ListBooks(filters data.Filters) ([]*data.Book, data.Metadata, error) {
	if s.listBooks == nil {
		return nil, data.Metadata{}, nil
	}
	return s.listBooks(filters)
}

func (s *stubService) UpdateBook(isbn string, body dto.UpdateBookRequestBody) (*data.Book, error) {
	if s.updateBook == nil {
		return nil, nil
	}
	return s.updateBook(isbn, body)
}

func (s *stubService) DeleteBook(isbn string) error {
	if s.deleteBook == nil {
		return nil
	}
	return s.deleteBook(isbn)
}

func (s *stubService) CreateReader(name string) (*data.Reader, error) {
	if s.createReader == nil {
		return nil, nil
	}
	return s.createReader(name)
}

func (s *stubService) GetReader(id int64) (*data.Reader, error) {
	if s.getReader == nil {
		return nil, nil
	}
	return s.getReader(id)
}

func (s *stubService) ListReaders(filters data.Filters) ([]*data.Reader, data.Metadata, error) {
	if s.listReaders == nil {
		return nil, data.Metadata{}, nil
	}
	return s.listReaders(filters)
}

func (s *stubService) UpdateReader(id int64, body dto.UpdateReaderRequestBody) (*data.Reader, error) {
	if s.updateReader == nil {
		return nil, nil
	}
	return s.updateReader(id, body)
}

func (s *stubService) DeleteReader(id int64) error {
	if s.deleteReader == nil {
		return nil
	}
	return s.deleteReader(id)
}

func (s *stubService) SeedDefaultReaders() error { return nil }

func (s *stubService) RealizeLending(isbn string, readerID int64) (*data.Lending, *data.Book, error) {
	if s.realizeLending == nil {
		return nil, nil, nil
	}
	return s.realizeLending(isbn, readerID)
}

func (s *stubService) ListLendings(filters data.Filters) ([]*data.Lending, data.Metadata, error) {
	if s.listLendings == nil {
		return nil, data.Metadata{}, nil
	}
	return s.listLendings(filters)
}

func (s *stubService) ReturnBook(id int64) error {
	if s.returnBook == nil {
		return nil
	}
	return s.returnBook(id)
}

func newTestHandler(cfg config.Config, svc *stubService) *Handler {
	logger := jsonlog.New(io.Discard, jsonlog.LevelInfo)
	clients := ttlcache.New(ttlcache.WithTTL[string, *rate.Limiter](time.Minute))
	return New(cfg, logger, clients, svc)
}

func doRequest(t *testing.T, h *Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.RemoteAddr = "10.0.0.1:52718"
	rr := httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, req)
	return rr
}

func TestHealthcheck(t *testing.T) {
	h := newTestHandler(config.Config{}, &stubService{})
	rr := doRequest(t, h, http.MethodGet, "/healthcheck", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "available")
}

func TestRequestIDHeader(t *testing.T) {
	h := newTestHandler(config.Config{}, &stubService{})
	rr := doRequest(t, h, http.MethodGet, "/healthcheck", "")
	require.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestRateLimit(t *testing.T) {
	var cfg config.Config
	cfg.Limiter.Enabled = true
	cfg.Limiter.RPS = 1
	cfg.Limiter.Burst = 1
	h := newTestHandler(cfg, &stubService{})

	rr := doRequest(t, h, http.MethodGet, "/healthcheck", "")
	require.Equal(t, http.StatusOK, rr.Code)
	rr = doRequest(t, h, http.MethodGet, "/healthcheck", "")
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
}
