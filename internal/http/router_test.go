package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tirematch/backend/internal/checkout"
	"github.com/tirematch/backend/internal/config"
	"github.com/tirematch/backend/internal/installers"
	"github.com/tirematch/backend/internal/service"
)

func testRouter() http.Handler {
	cfg := config.Config{
		CORSAllowed:     "https://store.example.com",
		DefaultRadiusKm: 50,
	}
	return Router(cfg, &service.Recommender{Logger: zerolog.Nop()}, &installers.Client{}, &checkout.Builder{}, nil, zerolog.Nop())
}

func TestWrongMethodIs405(t *testing.T) {
	r := testRouter()

	for path, method := range map[string]string{
		"/api/webhooks/order-created": http.MethodGet,
		"/api/tires":                  http.MethodGet,
		"/api/installers":             http.MethodPost,
	} {
		req, _ := http.NewRequest(method, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s %s: expected 405, got %d", method, path, w.Code)
		}
	}
}

func TestPreflightReturns200(t *testing.T) {
	r := testRouter()

	req, _ := http.NewRequest(http.MethodOptions, "/api/tires", nil)
	req.Header.Set("Origin", "https://store.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://store.example.com" {
		t.Fatalf("expected allowed origin echoed, got %q", got)
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	r := testRouter()

	req, _ := http.NewRequest(http.MethodGet, "/api/nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
