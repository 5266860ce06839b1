package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/unstopDD/sklad-sub000/internal/apierror"
	"github.com/unstopDD/sklad-sub000/internal/middleware"
	"github.com/unstopDD/sklad-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// ImportIngredients accepts a multipart upload under the "file" field, in
// .xlsx or .csv format, with an optional "mode" field (replace|accumulate).
func (h *ReportsHandler) ImportIngredients(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Missing file upload"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Unreadable file upload"))
		return
	}
	defer func() { _ = file.Close() }()

	mode := c.PostForm("mode")
	resp, err := h.svc.ImportIngredients(c.Request.Context(), middleware.OwnerID(c), fileHeader.Filename, file, mode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) ExportInventoryXLSX(c *gin.Context) {
	data, err := h.svc.ExportInventoryXLSX(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	setDownloadHeader(c, "inventory", "xlsx")
	c.Data(http.StatusOK, contentTypeXLSX, data)
}

func (h *ReportsHandler) ExportInventoryPDF(c *gin.Context) {
	data, err := h.svc.ExportInventoryPDF(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	setDownloadHeader(c, "inventory", "pdf")
	c.Data(http.StatusOK, contentTypePDF, data)
}

func setDownloadHeader(c *gin.Context, name, ext string) {
	filename := fmt.Sprintf("%s-%s.%s", name, time.Now().Format("2006-01-02"), ext)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}
