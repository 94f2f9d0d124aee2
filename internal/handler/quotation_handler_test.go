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

func setupQuotationTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svc := service.NewQuotationService(repos.Quotation, repos.Besoin, zap.NewNop())
	h := NewQuotationHandler(svc)

	router := testutil.SetupRouter()
	api := router.Group("/api/v1", middleware.JWTAuth(testutil.JWTSecret))
	api.POST("/command-requests", h.CreateCommandRequest)
	api.GET("/command-requests/:id", h.GetCommandRequest)
	api.POST("/command-requests/:id/selection", h.SubmitSelection)
	api.POST("/quotations", h.CreateQuotation)
	api.GET("/quotations/groups", h.Groups)

	return db, router
}

// seedQuotationData builds one command request with two besoins quoted by two
// competing providers.
func seedQuotationData(t *testing.T, db *gorm.DB) {
	t.Helper()
	testutil.SeedTestUser(t, db, "user-op", "Olga Opératrice", "olga@creapp.test")
	testutil.SeedTestCategory(t, db, "cat-q", "Consommables")

	now := time.Now()
	cr := &entity.CommandRequest{
		ID: "cr-1", Code: "DC-2026-001", Label: "Consommables Q3",
		Status: entity.CommandRequestStatusOpen, CreatedBy: "user-op",
		CreatedAt: now, UpdatedAt: now,
	}
	if err := db.Create(cr).Error; err != nil {
		t.Fatalf("Failed to seed command request: %v", err)
	}

	crID := "cr-1"
	besoins := []entity.Besoin{
		{ID: "b-1", Label: "Papier A4", Quantity: 50, Unit: "ramettes", UserID: "user-op",
			CategoryID: "cat-q", State: entity.BesoinStateValidated, CommandRequestID: &crID},
		{ID: "b-2", Label: "Encre imprimante", Quantity: 12, Unit: "pcs", UserID: "user-op",
			CategoryID: "cat-q", State: entity.BesoinStateValidated, CommandRequestID: &crID},
	}
	for i := range besoins {
		if err := db.Create(&besoins[i]).Error; err != nil {
			t.Fatalf("Failed to seed besoin: %v", err)
		}
	}

	providers := []entity.Provider{
		{ID: "p-1", Name: "Papeterie Centrale", Status: "active"},
		{ID: "p-2", Name: "Bureau Express", Status: "active"},
	}
	for i := range providers {
		if err := db.Create(&providers[i]).Error; err != nil {
			t.Fatalf("Failed to seed provider: %v", err)
		}
	}

	quotations := []entity.Quotation{
		{ID: "q-1", CommandRequestID: "cr-1", ProviderID: "p-1", Currency: "XOF",
			Elements: []entity.QuotationElement{
				{ID: "e-1", QuotationID: "q-1", BesoinID: "b-1", UnitPrice: decimal.NewFromInt(2500), Status: entity.ElementStatusDefault},
				{ID: "e-3", QuotationID: "q-1", BesoinID: "b-2", UnitPrice: decimal.NewFromInt(15000), Status: entity.ElementStatusDefault},
			}},
		{ID: "q-2", CommandRequestID: "cr-1", ProviderID: "p-2", Currency: "XOF",
			Elements: []entity.QuotationElement{
				{ID: "e-2", QuotationID: "q-2", BesoinID: "b-1", UnitPrice: decimal.NewFromInt(2300), Status: entity.ElementStatusDefault},
				{ID: "e-4", QuotationID: "q-2", BesoinID: "b-2", UnitPrice: decimal.NewFromInt(14000), Status: entity.ElementStatusDefault},
			}},
	}
	for i := range quotations {
		if err := db.Create(&quotations[i]).Error; err != nil {
			t.Fatalf("Failed to seed quotation: %v", err)
		}
	}
}

func TestQuotationGroupsView(t *testing.T) {
	db, router := setupQuotationTest(t)
	seedQuotationData(t, db)
	token := testutil.GenerateTestToken("user-op", "Olga Opératrice", "olga@creapp.test")

	w := testutil.DoRequest(router, http.MethodGet, "/api/v1/quotations/groups", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	groups := resp["data"].(map[string]interface{})["groups"].([]interface{})
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	group := groups[0].(map[string]interface{})
	quotations := group["quotations"].([]interface{})
	if len(quotations) != 2 {
		t.Fatalf("expected 2 quotations in group, got %d", len(quotations))
	}
	providers := group["providers"].([]interface{})
	if len(providers) != 2 {
		t.Fatalf("expected 2 providers in group, got %d", len(providers))
	}
}

func TestSubmitSelectionMarksElements(t *testing.T) {
	db, router := setupQuotationTest(t)
	seedQuotationData(t, db)
	token := testutil.GenerateTestToken("user-op", "Olga Opératrice", "olga@creapp.test")

	// Pick provider p-2 for besoin b-1 only; b-2 stays open
	body := map[string]interface{}{
		"selection": map[string]string{"b-1": "p-2"},
	}
	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/command-requests/cr-1/selection", body, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	items := resp["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 submission item, got %d", len(items))
	}
	item := items[0].(map[string]interface{})
	if item["quotation_id"] != "q-2" {
		t.Fatalf("expected quotation q-2, got %v", item["quotation_id"])
	}
	elements := item["elements"].([]interface{})
	if len(elements) != 1 {
		t.Fatalf("expected 1 element block, got %d", len(elements))
	}
	block := elements[0].(map[string]interface{})
	if block["besoin_label"] != "Papier A4" {
		t.Fatalf("expected label Papier A4, got %v", block["besoin_label"])
	}

	// Winning element flagged, the competitor untouched
	var e2, e1 entity.QuotationElement
	db.Where("id = ?", "e-2").First(&e2)
	db.Where("id = ?", "e-1").First(&e1)
	if e2.Status != entity.ElementStatusSelected {
		t.Fatalf("expected e-2 SELECTED, got %s", e2.Status)
	}
	if e1.Status != entity.ElementStatusDefault {
		t.Fatalf("expected e-1 default, got %s", e1.Status)
	}
}

func TestSubmitSelectionSwitchProviderClearsOldPick(t *testing.T) {
	db, router := setupQuotationTest(t)
	seedQuotationData(t, db)
	token := testutil.GenerateTestToken("user-op", "Olga Opératrice", "olga@creapp.test")

	first := map[string]interface{}{"selection": map[string]string{"b-1": "p-1"}}
	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/command-requests/cr-1/selection", first, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	second := map[string]interface{}{"selection": map[string]string{"b-1": "p-2"}}
	w2 := testutil.DoRequest(router, http.MethodPost, "/api/v1/command-requests/cr-1/selection", second, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w2.Code, w2.Body.String())
	}

	// Only the latest pick stays selected for b-1
	var e1, e2 entity.QuotationElement
	db.Where("id = ?", "e-1").First(&e1)
	db.Where("id = ?", "e-2").First(&e2)
	if e1.Status != entity.ElementStatusDefault {
		t.Fatalf("expected old pick e-1 reset, got %s", e1.Status)
	}
	if e2.Status != entity.ElementStatusSelected {
		t.Fatalf("expected e-2 SELECTED, got %s", e2.Status)
	}
}

func TestSubmitSelectionSkippedPickKeepsPriorState(t *testing.T) {
	db, router := setupQuotationTest(t)
	seedQuotationData(t, db)
	token := testutil.GenerateTestToken("user-op", "Olga Opératrice", "olga@creapp.test")

	first := map[string]interface{}{"selection": map[string]string{"b-1": "p-1"}}
	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/command-requests/cr-1/selection", first, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// b-1 points at a provider with no quotation in the group: the pick is
	// skipped and must not disturb the recorded choice; b-2 resolves normally
	second := map[string]interface{}{"selection": map[string]string{"b-1": "p-9", "b-2": "p-2"}}
	w2 := testutil.DoRequest(router, http.MethodPost, "/api/v1/command-requests/cr-1/selection", second, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w2.Code, w2.Body.String())
	}

	var e1, e4 entity.QuotationElement
	db.Where("id = ?", "e-1").First(&e1)
	db.Where("id = ?", "e-4").First(&e4)
	if e1.Status != entity.ElementStatusSelected {
		t.Fatalf("expected prior pick e-1 untouched, got %s", e1.Status)
	}
	if e4.Status != entity.ElementStatusSelected {
		t.Fatalf("expected e-4 SELECTED, got %s", e4.Status)
	}
}

func TestSubmitEmptySelectionRefused(t *testing.T) {
	db, router := setupQuotationTest(t)
	seedQuotationData(t, db)
	token := testutil.GenerateTestToken("user-op", "Olga Opératrice", "olga@creapp.test")

	body := map[string]interface{}{"selection": map[string]string{}}
	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/command-requests/cr-1/selection", body, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on empty selection, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["code"].(float64) != 10004 {
		t.Fatalf("expected code 10004, got %v", resp["code"])
	}
}

func TestCreateQuotationValidatesBesoinMembership(t *testing.T) {
	db, router := setupQuotationTest(t)
	seedQuotationData(t, db)
	token := testutil.GenerateTestToken("user-op", "Olga Opératrice", "olga@creapp.test")

	body := map[string]interface{}{
		"command_request_id": "cr-1",
		"provider_id":        "p-1",
		"elements": []map[string]interface{}{
			{"besoin_id": "b-unknown", "unit_price": "1000"},
		},
	}
	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/quotations", body, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for foreign besoin, got %d: %s", w.Code, w.Body.String())
	}
}
