package service

import (
	"errors"

	"github.com/tobenna/librarium/data"
	"github.com/tobenna/librarium/data/dto"
	"github.com/tobenna/librarium/internal/validator"
	"github.com/tobenna/librarium/repository"
)

type readers interface {
	CreateReader(name string) (*data.Reader, error)
	GetReader(readerID int64) (*data.Reader, error)
	ListReaders(filters data.Filters) ([]*data.Reader, data.Metadata, error)
	UpdateReader(readerID int64, requestBody dto.UpdateReaderRequestBody) (*data.Reader, error)
	DeleteReader(readerID int64) error
	SeedDefaultReaders() error
}

// CreateReader service creates a new reader.
func (s *service) CreateReader(name string) (*data.Reader, error) {
	if validator.Matches(name, validator.MetaCharacterRX) {
		return nil, syntaxError()
	}
	reader := &data.Reader{Name: name}
	v := validator.New()
	if data.ValidateReader(v, reader); !v.Valid() {
		return nil, failedValidation(v.Errors)
	}
	err := s.repo.CreateReader(reader)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, conflictError("Reader already exists in database")
		default:
			return nil, err
		}
	}
	return reader, nil
}

// GetReader service retrieves the details of a reader.
func (s *service) GetReader(readerID int64) (*data.Reader, error) {
	reader, err := s.repo.GetReader(readerID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, notFoundError("Reader not found in database.")
		default:
			return nil, err
		}
	}
	return reader, nil
}

// ListReaders service retrieves a paginated list of readers.
func (s *service) ListReaders(filters data.Filters) ([]*data.Reader, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		return nil, data.Metadata{}, failedValidation(v.Errors)
	}
	readers, metadata, err := s.repo.GetAllReaders(filters)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	return readers, metadata, nil
}

// UpdateReader service updates the name of a specific reader.
func (s *service) UpdateReader(readerID int64, requestBody dto.UpdateReaderRequestBody) (*data.Reader, error) {
	reader, err := s.GetReader(readerID)
	if err != nil {
		return nil, err
	}
	if requestBody.Name != nil {
		if validator.Matches(*requestBody.Name, validator.MetaCharacterRX) {
			return nil, syntaxError()
		}
		reader.Name = *requestBody.Name
	}
	v := validator.New()
	if data.ValidateReader(v, reader); !v.Valid() {
		return nil, failedValidation(v.Errors)
	}
	err = s.repo.UpdateReader(reader)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, notFoundError("Reader not found in database.")
		default:
			return nil, err
		}
	}
	return reader, nil
}

// DeleteReader service deletes a reader, unless the reader still has books
// checked out.
func (s *service) DeleteReader(readerID int64) error {
	reader, err := s.GetReader(readerID)
	if err != nil {
		return err
	}
	_, err = s.repo.GetLendingForReader(reader.ID)
	switch {
	case err == nil:
		return conflictError("The reader cannot be deleted as they have books checked out. They must return them first.")
	case errors.Is(err, repository.ErrRecordNotFound):
		// No open lending, deletion may proceed
	default:
		return err
	}
	err = s.repo.DeleteReader(reader.ID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return notFoundError("Reader not found in database.")
		default:
			return err
		}
	}
	return nil
}

// SeedDefaultReaders creates the default readers if they are absent.
// It is idempotent and runs on every process start.
func (s *service) SeedDefaultReaders() error {
	for _, name := range data.DefaultReaderNames {
		_, err := s.repo.GetReaderByName(name)
		switch {
		case err == nil:
			continue
		case errors.Is(err, repository.ErrRecordNotFound):
			reader := &data.Reader{Name: name}
			if err := s.repo.CreateReader(reader); err != nil {
				return err
			}
			s.logger.PrintInfo("seeded default reader", map[string]string{
				"name": name,
			})
		default:
			return err
		}
	}
	return nil
}
