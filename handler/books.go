package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tobenna/librarium/data/dto"
	"github.com/tobenna/librarium/internal/validator"
	"github.com/tobenna/librarium/service"
)

// CreateBook godoc
// @Summary Insert a new book
// @Description This endpoint registers a new book in the catalogue
// @Tags book
// @Accept  json
// @Produce json
// @Param body body dto.CreateBookRequestBody true "JSON payload required to create a book"
// @Success 201 {object} data.Book
// @Failure 400
// @Failure 500
// @Router /book [post]
func (h *Handler) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateBookRequestBody
	if err := h.decodeJSON(w, r, &requestBody); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	book, err := h.service.CreateBook(requestBody.Name, requestBody.ISBN)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSyntax),
			errors.Is(err, service.ErrFailedValidation),
			errors.Is(err, service.ErrConflict):
			h.badRequestResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/book/%s", book.ISBN))
	if err := h.encodeJSON(w, http.StatusCreated, envelope{"book": book}, headers); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ShowBook godoc
// @Summary Find a book by ISBN
// @Tags book
// @Produce json
// @Param isbn path string true "ISBN of the book"
// @Success 200 {object} data.Book
// @Failure 400
// @Failure 404
// @Failure 500
// @Router /book/{isbn} [get]
func (h *Handler) showBookHandler(w http.ResponseWriter, r *http.Request) {
	isbn, err := h.readISBNParam(r)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	book, err := h.service.GetBook(isbn)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			h.notFoundMessageResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	if err := h.encodeJSON(w, http.StatusOK, envelope{"book": book}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ListBooks godoc
// @Summary Retrieve a list of books with optional pagination
// @Tags book
// @Produce json
// @Param limit query int false "Maximum number of records per page (default 10)"
// @Param offset query int false "Number of records to skip (default 0)"
// @Success 200 {object} data.Metadata
// @Failure 400
// @Router /book [get]
func (h *Handler) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	var qsInput dto.QsListBooks
	v := validator.New()
	qs := r.URL.Query()
	qsInput.Filters.Limit = h.readInt(qs, "limit", 10, v)
	qsInput.Filters.Offset = h.readInt(qs, "offset", 0, v)
	books, metadata, err := h.service.ListBooks(qsInput.Filters)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.badRequestResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	env := paginated(books, metadata.Total, metadata.CurrentPage, metadata.TotalPages)
	if err := h.encodeJSON(w, http.StatusOK, env, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// UpdateBook godoc
// @Summary Update a book
// @Tags book
// @Accept  json
// @Produce json
// @Param isbn path string true "ISBN of the book"
// @Param body body dto.UpdateBookRequestBody true "JSON payload with the fields to update"
// @Success 200 {object} data.Book
// @Failure 400
// @Failure 404
// @Failure 500
// @Router /book/{isbn} [patch]
func (h *Handler) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	isbn, err := h.readISBNParam(r)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	var requestBody dto.UpdateBookRequestBody
	if err := h.decodeJSON(w, r, &requestBody); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	book, err := h.service.UpdateBook(isbn, requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			h.notFoundMessageResponse(w, r, err)
		case errors.Is(err, service.ErrSyntax),
			errors.Is(err, service.ErrFailedValidation),
			errors.Is(err, service.ErrConflict):
			h.badRequestResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	if err := h.encodeJSON(w, http.StatusOK, envelope{"book": book}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// DeleteBook godoc
// @Summary Delete a book
// @Description Deletion is refused while the book is on loan
// @Tags book
// @Produce json
// @Param isbn path string true "ISBN of the book"
// @Success 200
// @Failure 400
// @Failure 404
// @Failure 500
// @Router /book/{isbn} [delete]
func (h *Handler) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	isbn, err := h.readISBNParam(r)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	err = h.service.DeleteBook(isbn)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			h.notFoundMessageResponse(w, r, err)
		case errors.Is(err, service.ErrConflict):
			h.badRequestResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	if err := h.encodeJSON(w, http.StatusOK, envelope{"message": "book successfully deleted"}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
