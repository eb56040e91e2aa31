package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/critiq/review-platform/internal/api/middleware"
	"github.com/critiq/review-platform/internal/core/domain"
	"github.com/critiq/review-platform/internal/core/ports"
)

// ctxPrincipal extracts the principal resolved by the middleware. A missing
// value means the middleware did not run on this route; treat the caller as
// anonymous rather than failing.
func ctxPrincipal(c echo.Context) domain.Principal {
	p, ok := c.Get(middleware.PrincipalKey).(domain.Principal)
	if !ok {
		return domain.Anonymous
	}
	return p
}

// pathID parses a numeric path parameter. Non-numeric ids are a not-found
// condition: the resource addressed by such a path cannot exist.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return id, nil
}

// pageRequest reads the page/limit query parameters; zero values are
// normalized by the service layer.
func pageRequest(c echo.Context) ports.PageRequest {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return ports.PageRequest{Page: page, Limit: limit}
}

// pagedResponse is the envelope returned by every list endpoint.
type pagedResponse struct {
	Count   int64 `json:"count"`
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Results any   `json:"results"`
}

// errorResponse mirrors the envelope produced by the API error handler; it
// exists here so the generated documentation can reference the schema.
type errorResponse struct {
	Error string `json:"error"`
}
