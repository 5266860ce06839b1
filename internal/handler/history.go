package handler

import (
	"net/http"

	"github.com/unstopDD/sklad-sub000/internal/apierror"
	"github.com/unstopDD/sklad-sub000/internal/dto"
	"github.com/unstopDD/sklad-sub000/internal/middleware"
	"github.com/unstopDD/sklad-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct{ svc service.HistoryService }

func NewHistoryHandler(svc service.HistoryService) *HistoryHandler {
	return &HistoryHandler{svc: svc}
}

func (h *HistoryHandler) List(c *gin.Context) {
	var filter dto.HistoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), middleware.OwnerID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Clear irreversibly wipes the owner's audit trail.
func (h *HistoryHandler) Clear(c *gin.Context) {
	if err := h.svc.Clear(c.Request.Context(), middleware.OwnerID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
