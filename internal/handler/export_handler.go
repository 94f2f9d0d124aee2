package handler

import (
	"net/http"

	"github.com/Krestdev/Creapp-sub005/internal/repository"
	"github.com/Krestdev/Creapp-sub005/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler xlsx 导出处理器
type ExportHandler struct {
	svc *service.ExportService
}

func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// ExportBesoins 导出需求台账
func (h *ExportHandler) ExportBesoins(c *gin.Context) {
	f, filename, err := h.svc.ExportBesoins(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	writeXLSX(c, f, filename)
}

// ExportPayments 导出付款流水
func (h *ExportHandler) ExportPayments(c *gin.Context) {
	params := repository.PaymentListParams{
		Status: c.Query("status"),
		BankID: c.Query("bank_id"),
	}
	f, filename, err := h.svc.ExportPayments(c.Request.Context(), params)
	if err != nil {
		fail(c, err)
		return
	}
	writeXLSX(c, f, filename)
}

func writeXLSX(c *gin.Context, f *excelize.File, filename string) {
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 50001, "message": "write excel: " + err.Error()})
	}
}
