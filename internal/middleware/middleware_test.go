package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/booking"
	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/config"
	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/model"
	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/utils"
)

const secret = "test-secret"

func protected(mw ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.GET("/who", func(c echo.Context) error {
		p, ok := PrincipalFrom(c)
		if !ok {
			return c.NoContent(http.StatusTeapot)
		}
		return c.JSON(http.StatusOK, echo.Map{"id": p.ID, "name": p.Name, "role": p.Role})
	}, mw...)
	return e
}

func do(e *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth(t *testing.T) {
	e := protected(JWTAuth(secret))

	if rec := do(e, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: status %d", rec.Code)
	}
	if rec := do(e, "garbage"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: status %d", rec.Code)
	}

	tok, _ := utils.NewAccessToken(secret, 5, "Alice", "USER", 5)
	rec := do(e, tok.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token: status %d", rec.Code)
	}
	if body := rec.Body.String(); body != "{\"id\":\"5\",\"name\":\"Alice\",\"role\":\"USER\"}\n" {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestRequireRole(t *testing.T) {
	e := protected(JWTAuth(secret), RequireRole(model.RoleAdmin, model.RoleLecturer))

	user, _ := utils.NewAccessToken(secret, 1, "Alice", "USER", 5)
	if rec := do(e, user.Token); rec.Code != http.StatusForbidden {
		t.Fatalf("user: status %d", rec.Code)
	}
	lect, _ := utils.NewAccessToken(secret, 2, "Dr. Lee", "LECTURER", 5)
	if rec := do(e, lect.Token); rec.Code != http.StatusOK {
		t.Fatalf("lecturer: status %d", rec.Code)
	}
}

func TestPrincipalFrom_Unauthenticated(t *testing.T) {
	e := protected()
	if rec := do(e, ""); rec.Code != http.StatusTeapot {
		t.Fatalf("expected no principal, status %d", rec.Code)
	}
}

func TestDisabledMiddlewarePassesThrough(t *testing.T) {
	e := protected(
		NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil),
		NewRedisCache(config.CacheConfig{Enabled: true}, nil),
	)
	if rec := do(e, ""); rec.Code != http.StatusTeapot {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestCachePayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"ok":true}`))
	if err != nil {
		t.Fatal(err)
	}
	status, got, body, ok := decodePayload(bs)
	if !ok || status != http.StatusOK || got.Get("Content-Type") != "application/json" || string(body) != `{"ok":true}` {
		t.Fatalf("decode mismatch: %d %v %q %v", status, got, body, ok)
	}
	if _, _, _, ok := decodePayload([]byte{0, 0}); ok {
		t.Fatalf("short payload decoded")
	}
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
	req.Header.Set("X-Real-IP", "10.0.0.1")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/rooms")

	if got := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip"}, c); got != "rl:ip:10.0.0.1" {
		t.Fatalf("ip key = %q", got)
	}
	if got := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_route"}, c); got != "rl:ip:10.0.0.1:route:GET /v1/rooms" {
		t.Fatalf("ip_route key = %q", got)
	}
	if got := buildRateKey(config.RateLimitConfig{Prefix: "rl"}, c); got != "rl:ip:10.0.0.1:user:anon:route:GET /v1/rooms" {
		t.Fatalf("default key = %q", got)
	}
}

func TestIsWrite(t *testing.T) {
	for method, want := range map[string]bool{http.MethodGet: false, http.MethodHead: false, http.MethodPost: true, http.MethodDelete: true, http.MethodPut: true} {
		if got := isWrite(method); got != want {
			t.Errorf("isWrite(%s) = %t", method, got)
		}
	}
}

func TestWithPrincipal(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	WithPrincipal(c, booking.Principal{ID: "7", Name: "Dr. Lee", Role: model.RoleLecturer})
	p, ok := PrincipalFrom(c)
	if !ok || p.ID != "7" || p.Name != "Dr. Lee" || p.Role != model.RoleLecturer {
		t.Fatalf("principal = %+v, %t", p, ok)
	}
	if currentUserID(c) != "7" {
		t.Fatalf("rate key user = %q", currentUserID(c))
	}
}
