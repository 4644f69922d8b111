package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tirematch/backend/internal/installers"
)

func webhookEngine(client *installers.Client) *gin.Engine {
	h := &Handler{Installers: client, Logger: zerolog.Nop()}
	r := gin.New()
	r.POST("/api/webhooks/order-created", h.OrderCreated)
	return r
}

func postWebhook(t *testing.T, r *gin.Engine, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req, _ := http.NewRequest(http.MethodPost, "/api/webhooks/order-created", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOrderCreatedNoInstallationFlagIsNoOp(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := &installers.Client{BaseURL: srv.URL, BaseID: "appTEST", JobsTable: "Installation Jobs", HTTP: srv.Client()}
	r := webhookEngine(client)

	w := postWebhook(t, r, `{"id":1001,"note_attributes":[{"name":"_source","value":"ai_tire_finder"}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if called {
		t.Fatalf("no job lookup should happen without the installation flag")
	}
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["status"] != "ignored" {
		t.Fatalf("expected ignored status, got %v", body["status"])
	}
}

func TestOrderCreatedConfirmsPendingJob(t *testing.T) {
	var patchedFields map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Query().Get("filterByFormula") != "":
			if !strings.Contains(r.URL.Query().Get("filterByFormula"), "PENDING-tok123") {
				t.Errorf("unexpected job ref filter: %s", r.URL.Query().Get("filterByFormula"))
			}
			_, _ = w.Write([]byte(`{"records":[{"id":"recJob1","fields":{"Job Ref":"PENDING-tok123","Status":"Pending"}}]}`))
		case r.Method == http.MethodGet:
			_, _ = w.Write([]byte(`{"id":"recJob1","fields":{"Job Ref":"PENDING-tok123","Status":"Pending"}}`))
		case r.Method == http.MethodPatch:
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			patchedFields = body["fields"].(map[string]any)
			_, _ = w.Write([]byte(`{"id":"recJob1","fields":{"Job Ref":"PENDING-tok123","Status":"Confirmed"}}`))
		}
	}))
	defer srv.Close()

	client := &installers.Client{BaseURL: srv.URL, BaseID: "appTEST", JobsTable: "Installation Jobs", HTTP: srv.Client()}
	r := webhookEngine(client)

	payload := `{
		"id": 987654,
		"order_number": 1042,
		"cart_token": "tok123",
		"email": "fallback@example.com",
		"customer": {"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","phone":"+1555000"},
		"note_attributes": [{"name":"_installation","value":"true"}]
	}`
	w := postWebhook(t, r, payload)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["status"] != "confirmed" {
		t.Fatalf("expected confirmed, got %v", body["status"])
	}
	if patchedFields["Status"] != "Confirmed" {
		t.Fatalf("expected status patch, got %+v", patchedFields)
	}
	if patchedFields["Customer Name"] != "Ada Lovelace" || patchedFields["Customer Email"] != "ada@example.com" {
		t.Fatalf("expected customer contact copied from order, got %+v", patchedFields)
	}
	if patchedFields["Order ID"] != "987654" {
		t.Fatalf("expected order id attached, got %+v", patchedFields)
	}
}

func TestOrderCreatedReplayDoesNotRegressStatus(t *testing.T) {
	patched := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Query().Get("filterByFormula") != "":
			_, _ = w.Write([]byte(`{"records":[{"id":"recJob1","fields":{"Job Ref":"PENDING-tok123","Status":"Completed"}}]}`))
		case r.Method == http.MethodGet:
			_, _ = w.Write([]byte(`{"id":"recJob1","fields":{"Job Ref":"PENDING-tok123","Status":"Completed"}}`))
		case r.Method == http.MethodPatch:
			patched = true
		}
	}))
	defer srv.Close()

	client := &installers.Client{BaseURL: srv.URL, BaseID: "appTEST", JobsTable: "Installation Jobs", HTTP: srv.Client()}
	r := webhookEngine(client)

	payload := `{"id":987654,"cart_token":"tok123","note_attributes":[{"name":"_installation","value":"true"}]}`
	w := postWebhook(t, r, payload)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for replay, got %d", w.Code)
	}
	if patched {
		t.Fatalf("replay must not patch a job already past Pending")
	}
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["status"] != "already_processed" {
		t.Fatalf("expected already_processed, got %v", body["status"])
	}
}

func TestOrderCreatedLookupFailureYields500(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := &installers.Client{BaseURL: srv.URL, BaseID: "appTEST", JobsTable: "Installation Jobs", HTTP: srv.Client()}
	r := webhookEngine(client)

	payload := `{"id":987654,"cart_token":"tok123","note_attributes":[{"name":"_installation","value":"true"}]}`
	w := postWebhook(t, r, payload)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
