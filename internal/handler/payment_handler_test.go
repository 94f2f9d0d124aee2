package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/Krestdev/Creapp-sub005/internal/entity"
	"github.com/Krestdev/Creapp-sub005/internal/middleware"
	"github.com/Krestdev/Creapp-sub005/internal/repository"
	"github.com/Krestdev/Creapp-sub005/internal/service"
	"github.com/Krestdev/Creapp-sub005/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupPaymentTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svc := service.NewPaymentService(repos.Payment, repos.Bank, zap.NewNop())
	h := NewPaymentHandler(svc)

	router := testutil.SetupRouter()
	api := router.Group("/api/v1", middleware.JWTAuth(testutil.JWTSecret))
	api.POST("/payments", h.Create)
	api.GET("/payments/actionable", h.Actionable)
	api.GET("/payments/:id", h.Get)
	api.PUT("/payments/:id/assign", h.Assign)
	api.GET("/payments/:id/can-sign", h.CanSign)
	api.POST("/payments/:id/sign", h.Sign)
	api.POST("/payments/:id/paid", h.MarkPaid)

	return db, router
}

// seedSigningOrg registers a bank, a pay method, and a two-user roster.
func seedSigningOrg(t *testing.T, db *gorm.DB, mode string) {
	t.Helper()
	testutil.SeedTestUser(t, db, "user-s1", "Fatou Signataire", "fatou@creapp.test")
	testutil.SeedTestUser(t, db, "user-s2", "George Signataire", "george@creapp.test")
	testutil.SeedTestUser(t, db, "user-none", "Hugo Commis", "hugo@creapp.test")

	now := time.Now()
	bank := &entity.Bank{ID: "bank-1", Label: "BICEC Principal", Type: entity.BankTypeBank,
		AccountNumber: "00123456789", CreatedAt: now, UpdatedAt: now}
	if err := db.Create(bank).Error; err != nil {
		t.Fatalf("Failed to seed bank: %v", err)
	}
	method := &entity.PayMethod{ID: "pm-virement", Label: "Virement", CreatedAt: now, UpdatedAt: now}
	if err := db.Create(method).Error; err != nil {
		t.Fatalf("Failed to seed pay method: %v", err)
	}

	sig := &entity.Signatair{
		ID: "sig-1", BankID: "bank-1", PayTypeID: "pm-virement", Mode: mode,
		CreatedAt: now, UpdatedAt: now,
		Users: []entity.SignatairUser{
			{ID: "su-1", SignatairID: "sig-1", UserID: "user-s1", CreatedAt: now},
			{ID: "su-2", SignatairID: "sig-1", UserID: "user-s2", CreatedAt: now},
		},
	}
	if err := db.Create(sig).Error; err != nil {
		t.Fatalf("Failed to seed signatair: %v", err)
	}
}

func createPayment(t *testing.T, router *gin.Engine, token string, assign bool) string {
	t.Helper()
	body := map[string]interface{}{
		"label":       "Facture fournisseur 2026-117",
		"beneficiary": "Papeterie Centrale",
		"amount":      "450000",
	}
	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/payments", body, token)
	if w.Code != http.StatusOK {
		t.Fatalf("create payment: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	id := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	if assign {
		w2 := testutil.DoRequest(router, http.MethodPut, "/api/v1/payments/"+id+"/assign",
			map[string]interface{}{"bank_id": "bank-1", "method_id": "pm-virement"}, token)
		if w2.Code != http.StatusOK {
			t.Fatalf("assign payment: expected 200, got %d: %s", w2.Code, w2.Body.String())
		}
	}
	return id
}

func TestPaymentSignOneMode(t *testing.T) {
	db, router := setupPaymentTest(t)
	seedSigningOrg(t, db, entity.SignModeOne)

	s1Token := testutil.GenerateTestToken("user-s1", "Fatou Signataire", "fatou@creapp.test")
	noneToken := testutil.GenerateTestToken("user-none", "Hugo Commis", "hugo@creapp.test")

	id := createPayment(t, router, s1Token, true)

	// Roster member may sign, outsider may not
	w := testutil.DoRequest(router, http.MethodGet, "/api/v1/payments/"+id+"/can-sign", nil, s1Token)
	if can := testutil.ParseResponse(w)["data"].(map[string]interface{})["can_sign"].(bool); !can {
		t.Fatal("expected user-s1 to be allowed to sign")
	}
	w2 := testutil.DoRequest(router, http.MethodGet, "/api/v1/payments/"+id+"/can-sign", nil, noneToken)
	if can := testutil.ParseResponse(w2)["data"].(map[string]interface{})["can_sign"].(bool); can {
		t.Fatal("expected user-none to be refused")
	}

	// Outsider signing attempt is a failed precondition
	w3 := testutil.DoRequest(router, http.MethodPost, "/api/v1/payments/"+id+"/sign", nil, noneToken)
	if w3.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unauthorized signer, got %d: %s", w3.Code, w3.Body.String())
	}

	// One authorized signature completes in ONE mode
	w4 := testutil.DoRequest(router, http.MethodPost, "/api/v1/payments/"+id+"/sign", nil, s1Token)
	if w4.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w4.Code, w4.Body.String())
	}
	data := testutil.ParseResponse(w4)["data"].(map[string]interface{})
	if data["status"] != entity.PaymentStatusSigned {
		t.Fatalf("expected signed, got %v", data["status"])
	}

	// Then the payment can move to paid
	w5 := testutil.DoRequest(router, http.MethodPost, "/api/v1/payments/"+id+"/paid", nil, s1Token)
	if w5.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w5.Code, w5.Body.String())
	}
}

func TestPaymentSignBothMode(t *testing.T) {
	db, router := setupPaymentTest(t)
	seedSigningOrg(t, db, entity.SignModeBoth)

	s1Token := testutil.GenerateTestToken("user-s1", "Fatou Signataire", "fatou@creapp.test")
	s2Token := testutil.GenerateTestToken("user-s2", "George Signataire", "george@creapp.test")

	id := createPayment(t, router, s1Token, true)

	// First signature leaves the payment partially signed
	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/payments/"+id+"/sign", nil, s1Token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["status"] != entity.PaymentStatusPartiallySigned {
		t.Fatalf("expected partially_signed, got %v", data["status"])
	}

	// Same signer cannot sign twice
	w2 := testutil.DoRequest(router, http.MethodPost, "/api/v1/payments/"+id+"/sign", nil, s1Token)
	if w2.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on double signature, got %d: %s", w2.Code, w2.Body.String())
	}

	// Remaining roster member still sees it actionable
	w3 := testutil.DoRequest(router, http.MethodGet, "/api/v1/payments/actionable", nil, s2Token)
	payments := testutil.ParseResponse(w3)["data"].(map[string]interface{})["payments"].([]interface{})
	if len(payments) != 1 {
		t.Fatalf("expected 1 actionable payment for user-s2, got %d", len(payments))
	}

	// Second signature completes
	w4 := testutil.DoRequest(router, http.MethodPost, "/api/v1/payments/"+id+"/sign", nil, s2Token)
	if w4.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w4.Code, w4.Body.String())
	}
	data4 := testutil.ParseResponse(w4)["data"].(map[string]interface{})
	if data4["status"] != entity.PaymentStatusSigned {
		t.Fatalf("expected signed, got %v", data4["status"])
	}
}

func TestPaymentUnresolvedBankCannotBeSigned(t *testing.T) {
	db, router := setupPaymentTest(t)
	seedSigningOrg(t, db, entity.SignModeOne)

	s1Token := testutil.GenerateTestToken("user-s1", "Fatou Signataire", "fatou@creapp.test")

	// No bank/method assigned: fail closed
	id := createPayment(t, router, s1Token, false)

	w := testutil.DoRequest(router, http.MethodGet, "/api/v1/payments/"+id+"/can-sign", nil, s1Token)
	if can := testutil.ParseResponse(w)["data"].(map[string]interface{})["can_sign"].(bool); can {
		t.Fatal("expected unresolved payment to refuse signing")
	}
	w2 := testutil.DoRequest(router, http.MethodPost, "/api/v1/payments/"+id+"/sign", nil, s1Token)
	if w2.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unresolved payment, got %d: %s", w2.Code, w2.Body.String())
	}
}

func TestPaymentAmountMustBePositive(t *testing.T) {
	db, router := setupPaymentTest(t)
	seedSigningOrg(t, db, entity.SignModeOne)
	token := testutil.GenerateTestToken("user-s1", "Fatou Signataire", "fatou@creapp.test")

	body := map[string]interface{}{
		"label":  "Montant nul",
		"amount": decimal.Zero,
	}
	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/payments", body, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero amount, got %d: %s", w.Code, w.Body.String())
	}
}
