package handler

import (
	"strconv"

	"github.com/Krestdev/Creapp-sub005/internal/repository"
	"github.com/Krestdev/Creapp-sub005/internal/service"
	"github.com/gin-gonic/gin"
)

// BesoinHandler 采购需求处理器
type BesoinHandler struct {
	svc *service.BesoinService
}

func NewBesoinHandler(svc *service.BesoinService) *BesoinHandler {
	return &BesoinHandler{svc: svc}
}

func (h *BesoinHandler) Create(c *gin.Context) {
	var req service.CreateBesoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.svc.Create(c.Request.Context(), userID(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, b)
}

func (h *BesoinHandler) Update(c *gin.Context) {
	var req service.UpdateBesoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, b)
}

func (h *BesoinHandler) Get(c *gin.Context) {
	b, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, b)
}

func (h *BesoinHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	params := repository.BesoinListParams{
		State:      c.Query("state"),
		CategoryID: c.Query("category_id"),
		UserID:     c.Query("user_id"),
		Page:       page,
		Size:       size,
	}
	result, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, result)
}

// Pending 当前用户的待处理队列
func (h *BesoinHandler) Pending(c *gin.Context) {
	besoins, err := h.svc.PendingFor(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"besoins": besoins})
}

// Processed 当前用户已处理的需求
func (h *BesoinHandler) Processed(c *gin.Context) {
	besoins, err := h.svc.ProcessedBy(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"besoins": besoins})
}

// Decide 审批
func (h *BesoinHandler) Decide(c *gin.Context) {
	var req service.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.svc.SubmitDecision(c.Request.Context(), c.Param("id"), userID(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, b)
}

// --- Categories ---

func (h *BesoinHandler) CreateCategory(c *gin.Context) {
	var req service.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cat, err := h.svc.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, cat)
}

func (h *BesoinHandler) ListCategories(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"categories": categories})
}

func (h *BesoinHandler) AddChainValidator(c *gin.Context) {
	var req service.AddChainValidatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	v, err := h.svc.AddChainValidator(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, v)
}

func (h *BesoinHandler) RemoveChainValidator(c *gin.Context) {
	if err := h.svc.RemoveChainValidator(c.Request.Context(), c.Param("validator_id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}
