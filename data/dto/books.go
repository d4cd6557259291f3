// Package dto defines the request body and query string shapes accepted by
// the HTTP layer.
package dto

import "github.com/tobenna/librarium/data"

type CreateBookRequestBody struct {
	Name string `json:"name"`
	ISBN string `json:"ISBN"`
}

type UpdateBookRequestBody struct {
	Name *string `json:"name"`
	ISBN *string `json:"ISBN"`
}

type QsListBooks struct {
	Filters data.Filters
}
