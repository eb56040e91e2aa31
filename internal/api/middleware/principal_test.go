package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/critiq/review-platform/internal/core/domain"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestPrincipal_ValidToken(t *testing.T) {
	e := echo.New()
	signed := signToken(t, "secret", jwt.MapClaims{
		"username":  "alice",
		"email":     "alice@x.com",
		"role":      "moderator",
		"superuser": false,
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Principal("secret")(func(c echo.Context) error {
		called = true
		p, ok := c.Get(PrincipalKey).(domain.Principal)
		if !ok {
			t.Fatal("principal not set")
		}
		if !p.Authenticated || p.Username != "alice" || !p.IsModerator() {
			t.Fatalf("unexpected principal: %+v", p)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next not called")
	}
}

func TestPrincipal_SuperuserClaim(t *testing.T) {
	e := echo.New()
	signed := signToken(t, "secret", jwt.MapClaims{
		"username":  "boot",
		"role":      "user",
		"superuser": true,
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Principal("secret")(func(c echo.Context) error {
		p := c.Get(PrincipalKey).(domain.Principal)
		if !p.IsAdmin() {
			t.Fatalf("superuser should satisfy admin checks: %+v", p)
		}
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestPrincipal_NoHeaderIsAnonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Principal("secret")(func(c echo.Context) error {
		p := c.Get(PrincipalKey).(domain.Principal)
		if p.Authenticated {
			t.Fatalf("expected anonymous principal, got %+v", p)
		}
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestPrincipal_InvalidTokenRejected(t *testing.T) {
	e := echo.New()

	for _, header := range []string{"Bearer garbage", "Token abc"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		c := e.NewContext(req, httptest.NewRecorder())

		handler := Principal("secret")(func(c echo.Context) error {
			t.Fatalf("should not reach next for header %q", header)
			return nil
		})

		err := handler(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401 HTTPError, got %v", header, err)
		}
	}
}

func TestPrincipal_WrongSigningKey(t *testing.T) {
	e := echo.New()
	signed := signToken(t, "other-secret", jwt.MapClaims{"username": "mallory", "role": "admin"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	c := e.NewContext(req, httptest.NewRecorder())

	err := Principal("secret")(func(c echo.Context) error { return nil })(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
