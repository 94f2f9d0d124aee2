package handler

import (
	"strconv"

	"github.com/Krestdev/Creapp-sub005/internal/repository"
	"github.com/Krestdev/Creapp-sub005/internal/service"
	"github.com/gin-gonic/gin"
)

// PaymentHandler 付款处理器
type PaymentHandler struct {
	svc *service.PaymentService
}

func NewPaymentHandler(svc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

func (h *PaymentHandler) Create(c *gin.Context) {
	var req service.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.svc.Create(c.Request.Context(), userID(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, p)
}

func (h *PaymentHandler) Get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, p)
}

func (h *PaymentHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	params := repository.PaymentListParams{
		Status: c.Query("status"),
		BankID: c.Query("bank_id"),
		Page:   page,
		Size:   size,
	}
	result, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, result)
}

// Assign 绑定账户与支付方式
func (h *PaymentHandler) Assign(c *gin.Context) {
	var req service.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.svc.Assign(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, p)
}

// CanSign 当前用户对该付款的签字资格
func (h *PaymentHandler) CanSign(c *gin.Context) {
	can, err := h.svc.CanSign(c.Request.Context(), c.Param("id"), userID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"can_sign": can})
}

// Sign 签字
func (h *PaymentHandler) Sign(c *gin.Context) {
	p, err := h.svc.Sign(c.Request.Context(), c.Param("id"), userID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, p)
}

// Actionable 当前用户的待签字列表
func (h *PaymentHandler) Actionable(c *gin.Context) {
	payments, err := h.svc.Actionable(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"payments": payments})
}

func (h *PaymentHandler) MarkPaid(c *gin.Context) {
	p, err := h.svc.MarkPaid(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, p)
}

func (h *PaymentHandler) Reject(c *gin.Context) {
	p, err := h.svc.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, p)
}
