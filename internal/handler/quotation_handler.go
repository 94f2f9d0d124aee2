package handler

import (
	"github.com/Krestdev/Creapp-sub005/internal/service"
	"github.com/gin-gonic/gin"
)

// QuotationHandler 询价与报价处理器
type QuotationHandler struct {
	svc *service.QuotationService
}

func NewQuotationHandler(svc *service.QuotationService) *QuotationHandler {
	return &QuotationHandler{svc: svc}
}

// --- Command requests ---

func (h *QuotationHandler) CreateCommandRequest(c *gin.Context) {
	var req service.CreateCommandRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cr, err := h.svc.CreateCommandRequest(c.Request.Context(), userID(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, cr)
}

func (h *QuotationHandler) GetCommandRequest(c *gin.Context) {
	cr, err := h.svc.GetCommandRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, cr)
}

func (h *QuotationHandler) ListCommandRequests(c *gin.Context) {
	crs, err := h.svc.ListCommandRequests(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"command_requests": crs})
}

// --- Quotations ---

func (h *QuotationHandler) CreateQuotation(c *gin.Context) {
	var req service.CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	q, err := h.svc.CreateQuotation(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, q)
}

// Groups 分组视图, 含已恢复的预选
func (h *QuotationHandler) Groups(c *gin.Context) {
	groups, err := h.svc.Groups(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"groups": groups})
}

// SubmitSelection 提交供应商选择
func (h *QuotationHandler) SubmitSelection(c *gin.Context) {
	var req service.SubmitSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	items, err := h.svc.SubmitSelection(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"items": items})
}

// --- Providers ---

func (h *QuotationHandler) CreateProvider(c *gin.Context) {
	var req service.CreateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.svc.CreateProvider(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, p)
}

func (h *QuotationHandler) ListProviders(c *gin.Context) {
	providers, err := h.svc.ListProviders(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"providers": providers})
}
