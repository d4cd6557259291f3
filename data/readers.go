package data

import (
	"time"

	"github.com/tobenna/librarium/internal/validator"
)

// DefaultReaderNames are created at process start if absent.
var DefaultReaderNames = []string{"reader 1", "reader 2"}

// Reader defines a reader model.
type Reader struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
}

func ValidateReader(v *validator.Validator, reader *Reader) {
	ValidateName(v, reader.Name)
}
