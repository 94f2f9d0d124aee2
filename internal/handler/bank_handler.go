package handler

import (
	"github.com/Krestdev/Creapp-sub005/internal/service"
	"github.com/gin-gonic/gin"
)

// BankHandler 账户/支付方式/签字人处理器
type BankHandler struct {
	svc *service.BankService
}

func NewBankHandler(svc *service.BankService) *BankHandler {
	return &BankHandler{svc: svc}
}

func (h *BankHandler) CreateBank(c *gin.Context) {
	var req service.CreateBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.svc.CreateBank(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, b)
}

func (h *BankHandler) ListBanks(c *gin.Context) {
	banks, err := h.svc.ListBanks(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"banks": banks})
}

func (h *BankHandler) CreatePayMethod(c *gin.Context) {
	var req service.CreatePayMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	m, err := h.svc.CreatePayMethod(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, m)
}

func (h *BankHandler) ListPayMethods(c *gin.Context) {
	methods, err := h.svc.ListPayMethods(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"pay_methods": methods})
}

func (h *BankHandler) CreateSignatair(c *gin.Context) {
	var req service.CreateSignatairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s, err := h.svc.CreateSignatair(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, s)
}

func (h *BankHandler) ListSignatairs(c *gin.Context) {
	signatairs, err := h.svc.ListSignatairs(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"signatairs": signatairs})
}

func (h *BankHandler) AddSignatairUser(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	su, err := h.svc.AddSignatairUser(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, su)
}

func (h *BankHandler) RemoveSignatairUser(c *gin.Context) {
	if err := h.svc.RemoveSignatairUser(c.Request.Context(), c.Param("user_id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}
