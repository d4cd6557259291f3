package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tobenna/librarium/data"
	"github.com/tobenna/librarium/data/dto"
	"github.com/tobenna/librarium/internal/validator"
	"github.com/tobenna/librarium/service"
)

// RealizeLending godoc
// @Summary Realize a lending process
// @Description Checks a book out to a reader and returns the lending together with the updated book
// @Tags lending
// @Accept  json
// @Produce json
// @Param body body dto.CreateLendingRequestBody true "JSON payload required to create a lending"
// @Success 201 {object} data.Lending
// @Failure 400
// @Failure 404
// @Failure 500
// @Router /lending [post]
func (h *Handler) realizeLendingHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateLendingRequestBody
	if err := h.decodeJSON(w, r, &requestBody); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	if !validator.IsISBN(requestBody.BookISBN) {
		h.badRequestResponse(w, r, errors.New("Invalid ISBN"))
		return
	}
	lending, updatedBook, err := h.service.RealizeLending(requestBody.BookISBN, requestBody.ReaderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			h.notFoundMessageResponse(w, r, err)
		case errors.Is(err, service.ErrConflict):
			h.badRequestResponse(w, r, err)
		case errors.Is(err, service.ErrInternal):
			h.internalErrorResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/lending/%d", lending.ID))
	env := envelope{"lending": lending, "updatedBook": updatedBook}
	if err := h.encodeJSON(w, http.StatusCreated, env, headers); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ListLendings godoc
// @Summary Retrieve a list of lendings with optional pagination
// @Description Each lending is joined with its book and reader
// @Tags lending
// @Produce json
// @Param limit query int false "Maximum number of records per page (default 10)"
// @Param offset query int false "Number of records to skip (default 0)"
// @Success 200 {object} data.Metadata
// @Failure 400
// @Failure 500
// @Router /lending [get]
func (h *Handler) listLendingsHandler(w http.ResponseWriter, r *http.Request) {
	var filters data.Filters
	v := validator.New()
	qs := r.URL.Query()
	filters.Limit = h.readInt(qs, "limit", 10, v)
	filters.Offset = h.readInt(qs, "offset", 0, v)
	lendings, metadata, err := h.service.ListLendings(filters)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.badRequestResponse(w, r, err)
		case errors.Is(err, service.ErrInternal):
			h.internalErrorResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	env := paginated(lendings, metadata.Total, metadata.CurrentPage, metadata.TotalPages)
	if err := h.encodeJSON(w, http.StatusOK, env, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ReturnBook godoc
// @Summary Realize a devolution of the book
// @Description Closes the lending and restores the book to available
// @Tags lending
// @Produce json
// @Param id path int true "ID of the lending"
// @Success 200
// @Failure 400
// @Failure 404
// @Failure 500
// @Router /lending/{id} [patch]
func (h *Handler) returnBookHandler(w http.ResponseWriter, r *http.Request) {
	lendingID, err := h.readIDParam(r, "id")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	err = h.service.ReturnBook(lendingID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			h.notFoundMessageResponse(w, r, err)
		case errors.Is(err, service.ErrConflict):
			h.badRequestResponse(w, r, err)
		case errors.Is(err, service.ErrInternal):
			h.internalErrorResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	if err := h.encodeJSON(w, http.StatusOK, envelope{"message": "Book returned successfully."}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
