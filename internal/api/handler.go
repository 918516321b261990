package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"equipment-tracker-backend/internal/mw"
	"equipment-tracker-backend/internal/service"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	svc    *service.Service
	logger *zap.Logger
}

// NewHandler creates a new API handler.
func NewHandler(svc *service.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		svc:    svc,
		logger: logger,
	}
}

// respondError maps service errors onto the JSON error contract. Anything
// that is not a client error is logged and answered with internalMsg only.
func (h *Handler) respondError(c *gin.Context, err error, internalMsg string) {
	var validationErr *service.ValidationError
	var notFoundErr *service.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": validationErr.Errors})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": service.NotFoundMessage})
	default:
		h.logger.Error(internalMsg,
			zap.String("request_id", mw.GetRequestID(c)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalMsg})
	}
}
