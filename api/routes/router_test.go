package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	cartsvc "github.com/greenbasket/farmmarket-backend/internal/cart"
	"github.com/greenbasket/farmmarket-backend/pkg/config"
	"github.com/greenbasket/farmmarket-backend/pkg/kvstore"
	"github.com/greenbasket/farmmarket-backend/pkg/logger"
	"github.com/greenbasket/farmmarket-backend/pkg/metrics"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

func testDeps(t *testing.T) Deps {
	t.Helper()

	manager, err := cartsvc.NewManager(kvstore.NewMemory(), nil)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	registry := prometheus.NewRegistry()
	return Deps{
		Config:   &config.Config{App: config.AppConfig{Env: "test", Port: "0"}},
		Logger:   logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		DB:       stubPinger{},
		Gatherer: registry,
		HTTP:     metrics.NewHTTPMetrics(registry),
		Carts:    manager,
	}
}

func TestRouterHealthEndpoints(t *testing.T) {
	router := NewRouter(testDeps(t))

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, resp.Code)
		}
		if got := resp.Header().Get("X-FarmMarket-Env"); got != "test" {
			t.Fatalf("%s: expected env header got %q", path, got)
		}
	}
}

func TestRouterReadyFailsWhenDatabaseDown(t *testing.T) {
	deps := testDeps(t)
	deps.DB = stubPinger{err: context.DeadlineExceeded}
	router := NewRouter(deps)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}

func TestRouterServesMetrics(t *testing.T) {
	router := NewRouter(testDeps(t))

	// drive one request through the middleware chain so a series exists
	warm := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	router.ServeHTTP(httptest.NewRecorder(), warm)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "http_requests_total") {
		t.Fatalf("expected request counter in metrics output")
	}
}

func TestRouterServesCartRoutes(t *testing.T) {
	router := NewRouter(testDeps(t))

	req := httptest.NewRequest(http.MethodGet, "/api/cart/some-user", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
