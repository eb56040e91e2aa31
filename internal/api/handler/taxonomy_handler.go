package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/critiq/review-platform/internal/core/ports"
)

type taxonomyRequest struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

// CategoryHandler serves the restricted list/create/delete verb set.
type CategoryHandler struct {
	categories ports.CategoryService
}

func NewCategoryHandler(categories ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List handles GET /categories.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Param        search  query     string  false  "Name substring"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  pagedResponse
// @Router       /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	page, err := h.categories.List(c.Request().Context(), ctxPrincipal(c), ports.ListTaxonomyFilter{
		Search: c.QueryParam("search"),
		Page:   pageRequest(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagedResponse{
		Count:   page.Total,
		Page:    page.Page,
		Limit:   page.Limit,
		Results: page.Items,
	})
}

// Create handles POST /categories.
//
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      taxonomyRequest  true  "Category"
// @Success      201   {object}  domain.Category
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req taxonomyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.categories.Create(c.Request().Context(), ctxPrincipal(c), req.Name, req.Slug)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, category)
}

// Delete handles DELETE /categories/:slug.
//
// @Summary      Delete a category
// @Tags         categories
// @Security     BearerAuth
// @Param        slug  path  string  true  "Category slug"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /categories/{slug} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	if err := h.categories.Delete(c.Request().Context(), ctxPrincipal(c), c.Param("slug")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GenreHandler mirrors CategoryHandler for genres.
type GenreHandler struct {
	genres ports.GenreService
}

func NewGenreHandler(genres ports.GenreService) *GenreHandler {
	return &GenreHandler{genres: genres}
}

// List handles GET /genres.
//
// @Summary      List genres
// @Tags         genres
// @Produce      json
// @Param        search  query     string  false  "Name substring"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  pagedResponse
// @Router       /genres [get]
func (h *GenreHandler) List(c echo.Context) error {
	page, err := h.genres.List(c.Request().Context(), ctxPrincipal(c), ports.ListTaxonomyFilter{
		Search: c.QueryParam("search"),
		Page:   pageRequest(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagedResponse{
		Count:   page.Total,
		Page:    page.Page,
		Limit:   page.Limit,
		Results: page.Items,
	})
}

// Create handles POST /genres.
//
// @Summary      Create a genre
// @Tags         genres
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      taxonomyRequest  true  "Genre"
// @Success      201   {object}  domain.Genre
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /genres [post]
func (h *GenreHandler) Create(c echo.Context) error {
	var req taxonomyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	genre, err := h.genres.Create(c.Request().Context(), ctxPrincipal(c), req.Name, req.Slug)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, genre)
}

// Delete handles DELETE /genres/:slug.
//
// @Summary      Delete a genre
// @Tags         genres
// @Security     BearerAuth
// @Param        slug  path  string  true  "Genre slug"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /genres/{slug} [delete]
func (h *GenreHandler) Delete(c echo.Context) error {
	if err := h.genres.Delete(c.Request().Context(), ctxPrincipal(c), c.Param("slug")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
