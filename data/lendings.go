package data

import "time"

// Lending defines an open loan. A lending row exists for exactly as long as
// the book is checked out; returning the book deletes the row. The row's
// existence is the source of truth for the book's loaned state.
type Lending struct {
	ID       int64     `json:"id"`
	Date     time.Time `json:"date"`
	BookISBN string    `json:"bookISBN"`
	ReaderID int64     `json:"readerId"`
	Book     *Book     `json:"book,omitempty"`
	Reader   *Reader   `json:"reader,omitempty"`
}
