package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/advokatia/go-finance-backend/internal/config"
	"github.com/advokatia/go-finance-backend/internal/domain"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:router_%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&domain.Account{}, &domain.Category{}, &domain.LegalCase{}, &domain.Transaction{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := config.Config{
		APIBasePath: "/api/v1",
		DefaultUser: "demo-user",
		RateRPS:     1000,
		RateBurst:   1000,
		OTEL:        config.OTELConfig{ServiceName: "test"},
	}

	r := gin.New()
	RegisterRoutes(r, db, cfg, nil)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "router-user")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_HealthAndFallbacks(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("no-route status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPatch, "/health", nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("no-method status = %d", w.Code)
	}
}

func TestRouter_TransactionLifecycle(t *testing.T) {
	r := newTestRouter(t)

	create := doJSON(t, r, http.MethodPost, "/api/v1/transactions", map[string]any{
		"kind":        "income",
		"description": "retainer",
		"amount":      "1200.50",
		"due_date":    "2024-03-10",
	})
	if create.Code != http.StatusCreated {
		t.Fatalf("create status = %d body=%s", create.Code, create.Body.String())
	}
	var created domain.Transaction
	if err := json.Unmarshal(create.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}

	get := doJSON(t, r, http.MethodGet, "/api/v1/transactions/"+created.ID, nil)
	if get.Code != http.StatusOK {
		t.Fatalf("get status = %d", get.Code)
	}

	pay := doJSON(t, r, http.MethodPost, "/api/v1/transactions/"+created.ID+"/pay", nil)
	if pay.Code != http.StatusNoContent {
		t.Fatalf("pay status = %d body=%s", pay.Code, pay.Body.String())
	}

	payAgain := doJSON(t, r, http.MethodPost, "/api/v1/transactions/"+created.ID+"/pay", nil)
	if payAgain.Code != http.StatusConflict {
		t.Fatalf("second pay status = %d, want 409", payAgain.Code)
	}

	del := doJSON(t, r, http.MethodDelete, "/api/v1/transactions/"+created.ID, nil)
	if del.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", del.Code)
	}
	gone := doJSON(t, r, http.MethodGet, "/api/v1/transactions/"+created.ID, nil)
	if gone.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", gone.Code)
	}
}

func TestRouter_UserScoping(t *testing.T) {
	r := newTestRouter(t)

	create := doJSON(t, r, http.MethodPost, "/api/v1/transactions", map[string]any{
		"kind":        "expense",
		"description": "court fee",
		"amount":      "80",
		"due_date":    "2024-05-01",
	})
	var created domain.Transaction
	if err := json.Unmarshal(create.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/"+created.ID, nil)
	req.Header.Set("X-User-ID", "someone-else")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("cross-user get status = %d, want 404", w.Code)
	}
}

func TestRouter_RecurrenceProcessEndpoint(t *testing.T) {
	r := newTestRouter(t)

	create := doJSON(t, r, http.MethodPost, "/api/v1/transactions", map[string]any{
		"kind":                 "income",
		"description":          "monthly retainer",
		"amount":               "1000",
		"due_date":             "2024-01-15",
		"is_recurring":         true,
		"recurrence_frequency": "monthly",
	})
	if create.Code != http.StatusCreated {
		t.Fatalf("create status = %d body=%s", create.Code, create.Body.String())
	}

	proc := doJSON(t, r, http.MethodPost, "/api/v1/recurrence/process", map[string]any{
		"as_of": "2024-01-15",
	})
	if proc.Code != http.StatusOK {
		t.Fatalf("process status = %d body=%s", proc.Code, proc.Body.String())
	}
	var report struct {
		Processed int `json:"processed"`
		Generated int `json:"generated"`
	}
	if err := json.Unmarshal(proc.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Processed != 1 || report.Generated != 1 {
		t.Fatalf("report = %+v, want one generated occurrence", report)
	}

	// Replays must not duplicate the period.
	again := doJSON(t, r, http.MethodPost, "/api/v1/recurrence/process", map[string]any{
		"as_of": "2024-01-15",
	})
	if again.Code != http.StatusOK {
		t.Fatalf("replay status = %d", again.Code)
	}

	list := doJSON(t, r, http.MethodGet, "/api/v1/transactions?page_size=50", nil)
	var page struct {
		Total int64 `json:"total"`
	}
	if err := json.Unmarshal(list.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("total transactions = %d, want original plus one occurrence", page.Total)
	}
}

func TestRouter_SummaryReport(t *testing.T) {
	r := newTestRouter(t)

	for _, body := range []map[string]any{
		{"kind": "income", "description": "fee", "amount": "300", "due_date": "2024-02-01"},
		{"kind": "expense", "description": "rent", "amount": "100", "due_date": "2024-02-02"},
	} {
		if w := doJSON(t, r, http.MethodPost, "/api/v1/transactions", body); w.Code != http.StatusCreated {
			t.Fatalf("seed status = %d", w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/summary", nil)
	req.Header.Set("X-User-ID", "router-user")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("summary status = %d body=%s", w.Code, w.Body.String())
	}
}

func TestRouter_ReferenceDataCRUD(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/cases", map[string]any{
		"title":       "Doe v. Acme",
		"client_name": "Jane Doe",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create case status = %d body=%s", w.Code, w.Body.String())
	}
	var lc domain.LegalCase
	if err := json.Unmarshal(w.Body.Bytes(), &lc); err != nil {
		t.Fatalf("decode case: %v", err)
	}

	list := doJSON(t, r, http.MethodGet, "/api/v1/cases", nil)
	if list.Code != http.StatusOK {
		t.Fatalf("list cases status = %d", list.Code)
	}

	del := doJSON(t, r, http.MethodDelete, "/api/v1/cases/"+lc.ID, nil)
	if del.Code != http.StatusNoContent {
		t.Fatalf("delete case status = %d", del.Code)
	}
}
