package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/critiq/review-platform/internal/core/domain"
)

// PrincipalKey is the echo context key the resolved principal is stored under.
const PrincipalKey = "principal"

// Principal resolves the requesting identity from the Authorization header
// and stores it in the context. Requests without the header pass through as
// the anonymous principal; safe-method access control happens downstream in
// the policy checks, not here. A present-but-invalid token is rejected with
// 401 outright.
func Principal(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				c.Set(PrincipalKey, domain.Anonymous)
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(PrincipalKey, principalFromClaims(claims))
			return next(c)
		}
	}
}

func principalFromClaims(claims jwt.MapClaims) domain.Principal {
	username, _ := claims["username"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	superuser, _ := claims["superuser"].(bool)

	return domain.Principal{
		Username:      username,
		Email:         email,
		Role:          domain.Role(role),
		Superuser:     superuser,
		Authenticated: true,
	}
}
