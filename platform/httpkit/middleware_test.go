package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"ecoleta/platform/logger"
)

type testJWTConfig struct{ secret string }

func (c testJWTConfig) GetJWTAccessSecret() string { return c.secret }

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func adminEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", AuthRequired(testJWTConfig{secret: testSecret}), RequireRole("admin"), func(c *gin.Context) {
		c.String(http.StatusOK, GetIdentity(c).Subject())
	})
	return r
}

func doAdmin(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	r := adminEngine()
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, "other", jwt.MapClaims{"sub": "u1", "type": "access", "roles": []string{"admin"}, "exp": exp}), http.StatusUnauthorized},
		{"refresh token", "Bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": "u1", "type": "refresh", "roles": []string{"admin"}, "exp": exp}), http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": "u1", "type": "access", "roles": []string{"admin"}, "exp": time.Now().Add(-time.Minute).Unix()}), http.StatusUnauthorized},
		{"missing role", "Bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": "u1", "type": "access", "roles": []string{"viewer"}, "exp": exp}), http.StatusForbidden},
		{"admin", "Bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": "u1", "type": "access", "roles": "viewer, admin", "exp": exp}), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doAdmin(r, tt.header)
			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d (%s)", tt.want, w.Code, w.Body.String())
			}
			if tt.want == http.StatusOK && w.Body.String() != "u1" {
				t.Fatalf("expected subject u1, got %q", w.Body.String())
			}
		})
	}
}

func TestAuthRequiredWithoutSecretRejects(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", AuthRequired(testJWTConfig{}), func(c *gin.Context) { c.Status(http.StatusOK) })

	token := signToken(t, testSecret, jwt.MapClaims{"sub": "u1", "type": "access"})
	w := doAdmin(r, "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRateLimitPerIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewPerMinuteRateLimiter(2, logger.New("test"))
	r := gin.New()
	r.POST("/points", limiter.RateLimit(), func(c *gin.Context) { c.Status(http.StatusCreated) })

	post := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/points", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := post("10.0.0.1"); code != http.StatusCreated {
		t.Fatalf("first request: expected 201, got %d", code)
	}
	if code := post("10.0.0.1"); code != http.StatusCreated {
		t.Fatalf("second request: expected 201, got %d", code)
	}
	if code := post("10.0.0.1"); code != http.StatusTooManyRequests {
		t.Fatalf("third request: expected 429, got %d", code)
	}
	if code := post("10.0.0.2"); code != http.StatusCreated {
		t.Fatalf("other ip: expected 201, got %d", code)
	}
}

func TestRequestIDReusesSaneHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(HeaderRequestID); got != "abc-123" {
		t.Fatalf("expected reused id, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(HeaderRequestID); len(got) != 36 {
		t.Fatalf("expected generated uuid, got %q", got)
	}
}
