package handler

import (
	"github.com/Krestdev/Creapp-sub005/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API under /api/v1. Auth endpoints are open,
// everything else sits behind JWT.
func RegisterRoutes(router *gin.Engine, h *Handlers, jwtSecret string) {
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.POST("/logout", h.Auth.Logout)
	}

	v1 := router.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtSecret))
	{
		v1.GET("/auth/me", h.Auth.Me)

		// 用户与部门
		users := v1.Group("/users")
		{
			users.GET("", h.User.List)
			users.GET("/:id", h.User.Get)
		}
		departments := v1.Group("/departments")
		{
			departments.GET("", h.User.ListDepartments)
			departments.POST("", h.User.CreateDepartment)
			departments.GET("/:id", h.User.GetDepartment)
			departments.POST("/:id/members", h.User.AddMember)
			departments.PUT("/:id/members/:member_id", h.User.UpdateMember)
			departments.DELETE("/:id/members/:member_id", h.User.RemoveMember)
		}

		// 需求类目与验证链
		categories := v1.Group("/categories")
		{
			categories.GET("", h.Besoin.ListCategories)
			categories.POST("", h.Besoin.CreateCategory)
			categories.POST("/:id/validators", h.Besoin.AddChainValidator)
			categories.DELETE("/:id/validators/:validator_id", h.Besoin.RemoveChainValidator)
		}

		// 采购需求
		besoins := v1.Group("/besoins")
		{
			besoins.GET("", h.Besoin.List)
			besoins.POST("", h.Besoin.Create)
			besoins.GET("/pending", h.Besoin.Pending)
			besoins.GET("/processed", h.Besoin.Processed)
			besoins.GET("/:id", h.Besoin.Get)
			besoins.PUT("/:id", h.Besoin.Update)
			besoins.POST("/:id/decision", h.Besoin.Decide)
		}

		// 询价单与报价
		commandRequests := v1.Group("/command-requests")
		{
			commandRequests.GET("", h.Quotation.ListCommandRequests)
			commandRequests.POST("", h.Quotation.CreateCommandRequest)
			commandRequests.GET("/:id", h.Quotation.GetCommandRequest)
			commandRequests.POST("/:id/selection", h.Quotation.SubmitSelection)
		}
		quotations := v1.Group("/quotations")
		{
			quotations.POST("", h.Quotation.CreateQuotation)
			quotations.GET("/groups", h.Quotation.Groups)
		}
		providers := v1.Group("/providers")
		{
			providers.GET("", h.Quotation.ListProviders)
			providers.POST("", h.Quotation.CreateProvider)
		}

		// 账户与签字人登记
		banks := v1.Group("/banks")
		{
			banks.GET("", h.Bank.ListBanks)
			banks.POST("", h.Bank.CreateBank)
		}
		payMethods := v1.Group("/pay-methods")
		{
			payMethods.GET("", h.Bank.ListPayMethods)
			payMethods.POST("", h.Bank.CreatePayMethod)
		}
		signatairs := v1.Group("/signatairs")
		{
			signatairs.GET("", h.Bank.ListSignatairs)
			signatairs.POST("", h.Bank.CreateSignatair)
			signatairs.POST("/:id/users", h.Bank.AddSignatairUser)
			signatairs.DELETE("/:id/users/:user_id", h.Bank.RemoveSignatairUser)
		}

		// 付款
		payments := v1.Group("/payments")
		{
			payments.GET("", h.Payment.List)
			payments.POST("", h.Payment.Create)
			payments.GET("/actionable", h.Payment.Actionable)
			payments.GET("/:id", h.Payment.Get)
			payments.PUT("/:id/assign", h.Payment.Assign)
			payments.GET("/:id/can-sign", h.Payment.CanSign)
			payments.POST("/:id/sign", h.Payment.Sign)
			payments.POST("/:id/paid", h.Payment.MarkPaid)
			payments.POST("/:id/reject", h.Payment.Reject)
		}

		// 导出
		exports := v1.Group("/exports")
		{
			exports.GET("/besoins", h.Export.ExportBesoins)
			exports.GET("/payments", h.Export.ExportPayments)
		}
	}
}
