package handler

import (
	"github.com/jellydator/ttlcache/v3"
	"github.com/tobenna/librarium/config"
	"github.com/tobenna/librarium/internal/jsonlog"
	"github.com/tobenna/librarium/service"
	"golang.org/x/time/rate"
)

// Handler defines the handler layer.
type Handler struct {
	config  config.Config
	logger  *jsonlog.Logger
	clients *ttlcache.Cache[string, *rate.Limiter]
	service service.Service
}

// New creates a new instance of Handler. The clients cache holds one rate
// limiter per client IP and evicts idle entries by TTL.
func New(cfg config.Config, logger *jsonlog.Logger, clients *ttlcache.Cache[string, *rate.Limiter], service service.Service) *Handler {
	return &Handler{
		config:  cfg,
		logger:  logger,
		clients: clients,
		service: service,
	}
}
