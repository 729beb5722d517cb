package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backoffice/internal/domain/inventory"
	"backoffice/internal/infrastructure/http/v1/dto"
)

// InventoryHandler serves the financial views of group inventory.
type InventoryHandler struct {
	*BaseHandler
	service *inventory.Service
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(base *BaseHandler, service *inventory.Service) *InventoryHandler {
	return &InventoryHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GroupFinancials handles GET /groups/:groupId/inventories/financials
func (h *InventoryHandler) GroupFinancials(c *gin.Context) {
	groupID, ok := h.ParamInt64(c, "groupId")
	if !ok {
		return
	}

	var req dto.GroupFinancialsQuery
	if !h.BindQuery(c, &req) {
		return
	}

	report, err := h.service.GroupFinancials(c.Request.Context(), inventory.ListFilter{
		GroupID:     groupID,
		DepartureID: req.DepartureID,
		Currency:    req.Currency,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromFinancialReport(report))
}

// ItemFinancials handles GET /inventories/:id/financials
func (h *InventoryHandler) ItemFinancials(c *gin.Context) {
	id, ok := h.ParamInt64(c, "id")
	if !ok {
		return
	}

	item, err := h.service.ItemFinancials(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromItemReport(item))
}

// ComposeNote handles POST /inventories/notes/compose
func (h *InventoryHandler) ComposeNote(c *gin.Context) {
	var req dto.ComposeNoteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	note, err := h.service.ComposeNote(c.Request.Context(), req.Note, req.Financial.ToMetadata())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromComposedNote(note))
}

// InspectNote handles POST /inventories/notes/inspect
func (h *InventoryHandler) InspectNote(c *gin.Context) {
	var req dto.InspectNoteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	c.JSON(http.StatusOK, dto.FromDecodedNote(h.service.InspectNote(req.Note)))
}

// RegisterRoutes registers inventory routes.
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/groups/:groupId/inventories/financials", h.GroupFinancials)

	inv := rg.Group("/inventories")
	inv.GET("/:id/financials", h.ItemFinancials)
	inv.POST("/notes/compose", h.ComposeNote)
	inv.POST("/notes/inspect", h.InspectNote)
}
