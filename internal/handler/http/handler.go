package http

import (
	"github.com/keycapdesign/gradgo-app-sub000/internal/logger"
	"github.com/keycapdesign/gradgo-app-sub000/internal/service"
)

type Handler struct {
	services *service.Services

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("control api handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}
