package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"equipment-tracker-backend/internal/model"
	"equipment-tracker-backend/internal/service"
)

const maxBodyBytes = 1 << 20

const (
	msgReadFailed   = "Failed to read data"
	msgAddFailed    = "Failed to add equipment"
	msgUpdateFailed = "Failed to update equipment"
	msgDeleteFailed = "Failed to delete equipment"
	msgInvalidJSON  = "Request body must be valid JSON"
)

// ListEquipment handles GET /api/equipment.
func (h *Handler) ListEquipment(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, msgReadFailed)
		return
	}
	c.JSON(http.StatusOK, records)
}

// CreateEquipment handles POST /api/equipment.
func (h *Handler) CreateEquipment(c *gin.Context) {
	in, ok := bindInput(c)
	if !ok {
		return
	}

	item, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err, msgAddFailed)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateEquipment handles PUT /api/equipment/:id.
func (h *Handler) UpdateEquipment(c *gin.Context) {
	id, ok := equipmentID(c)
	if !ok {
		return
	}
	in, ok := bindInput(c)
	if !ok {
		return
	}

	item, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		h.respondError(c, err, msgUpdateFailed)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteEquipment handles DELETE /api/equipment/:id.
func (h *Handler) DeleteEquipment(c *gin.Context) {
	id, ok := equipmentID(c)
	if !ok {
		return
	}

	removed, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, msgDeleteFailed)
		return
	}
	c.JSON(http.StatusOK, removed)
}

// equipmentID parses the :id path parameter. An id that is not a number can
// never match a record, so it is answered as not found.
func equipmentID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": service.NotFoundMessage})
		return 0, false
	}
	return id, true
}

// bindInput decodes the request body. An empty body is an empty input so
// that validation reports every missing field.
func bindInput(c *gin.Context) (model.EquipmentInput, bool) {
	var in model.EquipmentInput
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return in, true
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	raw, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{msgInvalidJSON}})
		}
		return in, false
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return in, true
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{msgInvalidJSON}})
		return in, false
	}
	return in, true
}
