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

// CreateReader godoc
// @Summary Register a new reader
// @Tags reader
// @Accept  json
// @Produce json
// @Param body body dto.CreateReaderRequestBody true "JSON payload required to create a reader"
// @Success 201 {object} data.Reader
// @Failure 400
// @Failure 500
// @Router /reader [post]
func (h *Handler) createReaderHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateReaderRequestBody
	if err := h.decodeJSON(w, r, &requestBody); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	reader, err := h.service.CreateReader(requestBody.Name)
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
	headers.Set("Location", fmt.Sprintf("/reader/%d", reader.ID))
	if err := h.encodeJSON(w, http.StatusCreated, envelope{"reader": reader}, headers); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ShowReader godoc
// @Summary Find a reader by ID
// @Tags reader
// @Produce json
// @Param id path int true "ID of the reader"
// @Success 200 {object} data.Reader
// @Failure 404
// @Failure 500
// @Router /reader/{id} [get]
func (h *Handler) showReaderHandler(w http.ResponseWriter, r *http.Request) {
	readerID, err := h.readIDParam(r, "id")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	reader, err := h.service.GetReader(readerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			h.notFoundMessageResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	if err := h.encodeJSON(w, http.StatusOK, envelope{"reader": reader}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ListReaders godoc
// @Summary Retrieve a list of readers with optional pagination
// @Tags reader
// @Produce json
// @Param limit query int false "Maximum number of records per page (default 10)"
// @Param offset query int false "Number of records to skip (default 0)"
// @Success 200 {object} data.Metadata
// @Failure 400
// @Router /reader [get]
func (h *Handler) listReadersHandler(w http.ResponseWriter, r *http.Request) {
	var filters data.Filters
	v := validator.New()
	qs := r.URL.Query()
	filters.Limit = h.readInt(qs, "limit", 10, v)
	filters.Offset = h.readInt(qs, "offset", 0, v)
	readers, metadata, err := h.service.ListReaders(filters)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.badRequestResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	env := paginated(readers, metadata.Total, metadata.CurrentPage, metadata.TotalPages)
	if err := h.encodeJSON(w, http.StatusOK, env, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// UpdateReader godoc
// @Summary Update a reader
// @Tags reader
// @Accept  json
// @Produce json
// @Param id path int true "ID of the reader"
// @Param body body dto.UpdateReaderRequestBody true "JSON payload with the fields to update"
// @Success 200 {object} data.Reader
// @Failure 400
// @Failure 404
// @Failure 500
// @Router /reader/{id} [patch]
func (h *Handler) updateReaderHandler(w http.ResponseWriter, r *http.Request) {
	readerID, err := h.readIDParam(r, "id")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	var requestBody dto.UpdateReaderRequestBody
	if err := h.decodeJSON(w, r, &requestBody); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	reader, err := h.service.UpdateReader(readerID, requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			h.notFoundMessageResponse(w, r, err)
		case errors.Is(err, service.ErrSyntax),
			errors.Is(err, service.ErrFailedValidation):
			h.badRequestResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	if err := h.encodeJSON(w, http.StatusOK, envelope{"reader": reader}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// DeleteReader godoc
// @Summary Delete a reader
// @Description Deletion is refused while the reader has books checked out
// @Tags reader
// @Produce json
// @Param id path int true "ID of the reader"
// @Success 200
// @Failure 400
// @Failure 404
// @Failure 500
// @Router /reader/{id} [delete]
func (h *Handler) deleteReaderHandler(w http.ResponseWriter, r *http.Request) {
	readerID, err := h.readIDParam(r, "id")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	err = h.service.DeleteReader(readerID)
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
	if err := h.encodeJSON(w, http.StatusOK, envelope{"message": "reader successfully deleted"}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
