package handler

import (
	"expvar"
	"net/http"

	"github.com/julienschmidt/httprouter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func (h *Handler) Routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(h.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(h.methodNotAllowed)

	router.HandlerFunc(http.MethodPost, "/book", h.createBookHandler)
	router.HandlerFunc(http.MethodGet, "/book", h.listBooksHandler)
	router.HandlerFunc(http.MethodGet, "/book/:isbn", h.showBookHandler)
	router.HandlerFunc(http.MethodPatch, "/book/:isbn", h.updateBookHandler)
	router.HandlerFunc(http.MethodDelete, "/book/:isbn", h.deleteBookHandler)

	router.HandlerFunc(http.MethodPost, "/reader", h.createReaderHandler)
	router.HandlerFunc(http.MethodGet, "/reader", h.listReadersHandler)
	router.HandlerFunc(http.MethodGet, "/reader/:id", h.showReaderHandler)
	router.HandlerFunc(http.MethodPatch, "/reader/:id", h.updateReaderHandler)
	router.HandlerFunc(http.MethodDelete, "/reader/:id", h.deleteReaderHandler)

	router.HandlerFunc(http.MethodPost, "/lending", h.realizeLendingHandler)
	router.HandlerFunc(http.MethodGet, "/lending", h.listLendingsHandler)
	router.HandlerFunc(http.MethodPatch, "/lending/:id", h.returnBookHandler)

	router.HandlerFunc(http.MethodGet, "/healthcheck", h.healthcheckHandler)
	router.HandlerFunc(http.MethodGet, "/debug/vars", h.basicAuth(expvar.Handler().ServeHTTP))

	// Swagger routes
	router.HandlerFunc(http.MethodGet, "/spec", h.handleSwaggerFile())
	router.HandlerFunc(http.MethodGet, "/docs/*any", httpSwagger.Handler(httpSwagger.URL("/spec")))

	return h.recoverPanic(h.enableCORS(h.rateLimit(h.requestID(h.metrics(router)))))
}
