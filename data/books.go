package data

import (
	"time"

	"github.com/tobenna/librarium/internal/validator"
)

// Book defines a book model. The loaned flag and ReaderID are a projection of
// the open lending for this book's ISBN and are only ever mutated inside the
// same transaction as the lending row itself.
type Book struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
	ISBN      string    `json:"ISBN"`
	Loaned    bool      `json:"loaned"`
	ReaderID  *int64    `json:"readerId"`
}

func ValidateBook(v *validator.Validator, book *Book) {
	ValidateName(v, book.Name)
	v.Check(book.ISBN != "", "ISBN", "must be provided")
	v.Check(validator.IsISBN(book.ISBN), "ISBN", "must be a valid ISBN-10 or ISBN-13")
}

// ValidateName applies the name rules shared by books and readers.
func ValidateName(v *validator.Validator, name string) {
	v.Check(name != "", "name", "must be provided")
	v.Check(len(name) >= 3, "name", "must be at least 3 characters long")
	v.Check(len(name) <= 500, "name", "must not be more than 500 bytes long")
	v.Check(!validator.Matches(name, validator.MetaCharacterRX), "name", "must not contain metacharacters")
}
