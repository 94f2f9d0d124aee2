package handler

import (
	"errors"
	"net/http"

	"github.com/Krestdev/Creapp-sub005/internal/config"
	"github.com/Krestdev/Creapp-sub005/internal/repository"
	"github.com/Krestdev/Creapp-sub005/internal/service"
	"github.com/Krestdev/Creapp-sub005/internal/workflow"
	"github.com/gin-gonic/gin"
)

// Handlers HTTP处理器集合
type Handlers struct {
	Auth      *AuthHandler
	User      *UserHandler
	Besoin    *BesoinHandler
	Quotation *QuotationHandler
	Payment   *PaymentHandler
	Bank      *BankHandler
	Export    *ExportHandler
}

func NewHandlers(services *service.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:      NewAuthHandler(services.Auth),
		User:      NewUserHandler(services.User),
		Besoin:    NewBesoinHandler(services.Besoin),
		Quotation: NewQuotationHandler(services.Quotation),
		Payment:   NewPaymentHandler(services.Payment),
		Bank:      NewBankHandler(services.Bank),
		Export:    NewExportHandler(services.Export),
	}
}

// ok 成功响应
func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": data})
}

// fail maps domain errors onto the response envelope: failed preconditions
// are the caller's problem, missing records are 404, the rest is 500.
func fail(c *gin.Context, err error) {
	switch {
	case workflow.IsPrecondition(err):
		c.JSON(http.StatusBadRequest, gin.H{"code": 10004, "message": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"code": 50001, "message": err.Error()})
	}
}

// badRequest 请求参数错误
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
}

// userID 从上下文获取当前用户ID
func userID(c *gin.Context) string {
	id, _ := c.Get("user_id")
	if s, ok := id.(string); ok {
		return s
	}
	return ""
}
