package handler

import (
	"net/http"

	"github.com/unstopDD/sklad-sub000/internal/dto"
	"github.com/unstopDD/sklad-sub000/internal/middleware"
	"github.com/unstopDD/sklad-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// StockHandler exposes the two ledger transactions: production and write-off.
type StockHandler struct{ svc service.StockService }

func NewStockHandler(svc service.StockService) *StockHandler {
	return &StockHandler{svc: svc}
}

func (h *StockHandler) Produce(c *gin.Context) {
	var req dto.ProduceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Produce(c.Request.Context(), middleware.OwnerID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StockHandler) WriteOff(c *gin.Context) {
	var req dto.WriteOffRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.WriteOff(c.Request.Context(), middleware.OwnerID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
