package service

import (
	"github.com/tobenna/librarium/config"
	"github.com/tobenna/librarium/internal/jsonlog"
	"github.com/tobenna/librarium/repository"
)

type Service interface {
	books
	readers
	lendings
}

// Service defines a service layer.
type service struct {
	config config.Config
	logger *jsonlog.Logger
	repo   repository.Repository
}

// New creates a new instance of Service.
func New(cfg config.Config, logger *jsonlog.Logger, repo repository.Repository) *service {
	return &service{
		config: cfg,
		logger: logger,
		repo:   repo,
	}
}
