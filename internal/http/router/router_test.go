package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apphttp "ecoleta/internal/http"
	"ecoleta/platform/logger"
)

type testRouterConfig struct {
	secret string
}

func (testRouterConfig) GetHTTPAddr() string          { return ":0" }
func (testRouterConfig) GetCORSAllowAll() bool        { return false }
func (testRouterConfig) GetCORSOrigins() []string     { return []string{"http://localhost:3000"} }
func (testRouterConfig) GetCORSAllowCreds() bool      { return false }
func (c testRouterConfig) GetJWTAccessSecret() string { return c.secret }

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type stubModule struct {
	sawAdmin bool
}

func (m *stubModule) Name() string { return "stub" }

func (m *stubModule) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.sawAdmin = ctx.Admin != nil
	ctx.V1.GET("/stub", func(c *gin.Context) { c.Status(http.StatusNoContent) })
}

func newTestApp(secret string, health apphttp.HealthChecker, modules ...apphttp.Module) *apphttp.App {
	gin.SetMode(gin.TestMode)
	return &apphttp.App{
		Config:  testRouterConfig{secret: secret},
		Logger:  logger.New("test"),
		Health:  health,
		Modules: modules,
	}
}

func get(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthz(t *testing.T) {
	ok := New(newTestApp("", pingFunc(func(context.Context) error { return nil })))
	if w := get(ok, "/healthz"); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	down := New(newTestApp("", pingFunc(func(context.Context) error { return errors.New("db down") })))
	if w := get(down, "/healthz"); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestModulesAreMountedUnderV1(t *testing.T) {
	mod := &stubModule{}
	engine := New(newTestApp("", nil, mod))

	w := get(engine, "/api/v1/stub")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("expected security headers")
	}
	if mod.sawAdmin {
		t.Fatal("expected admin group disabled without secret")
	}
}

func TestAdminGroupRequiresSecret(t *testing.T) {
	mod := &stubModule{}
	New(newTestApp("secret", nil, mod))
	if !mod.sawAdmin {
		t.Fatal("expected admin group when secret is set")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	engine := New(newTestApp("", nil))
	if w := get(engine, "/metrics"); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
