package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/critiq/review-platform/internal/core/ports"
)

// TitleHandler serves the title collection under the admin-or-read-only
// policy; read responses carry the live rating annotation.
type TitleHandler struct {
	titles ports.TitleService
}

func NewTitleHandler(titles ports.TitleService) *TitleHandler {
	return &TitleHandler{titles: titles}
}

type createTitleRequest struct {
	Name        string   `json:"name"        validate:"required,max=256"`
	Year        int      `json:"year"        validate:"required,gte=0"`
	Description string   `json:"description"`
	Category    string   `json:"category"    validate:"required,slug"`
	Genres      []string `json:"genre"       validate:"omitempty,dive,slug"`
}

type updateTitleRequest struct {
	Name        *string   `json:"name"        validate:"omitempty,max=256"`
	Year        *int      `json:"year"        validate:"omitempty,gte=0"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"    validate:"omitempty,slug"`
	Genres      *[]string `json:"genre"       validate:"omitempty,dive,slug"`
}

// List handles GET /titles with filtering on category, genre, name and year.
//
// @Summary      List titles
// @Tags         titles
// @Produce      json
// @Param        category  query     string  false  "Category slug"
// @Param        genre     query     string  false  "Genre slug"
// @Param        name      query     string  false  "Name substring"
// @Param        year      query     int     false  "Exact year"
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size"
// @Success      200       {object}  pagedResponse
// @Router       /titles [get]
func (h *TitleHandler) List(c echo.Context) error {
	year, _ := strconv.Atoi(c.QueryParam("year"))
	page, err := h.titles.List(c.Request().Context(), ctxPrincipal(c), ports.ListTitlesFilter{
		CategorySlug: c.QueryParam("category"),
		GenreSlug:    c.QueryParam("genre"),
		Name:         c.QueryParam("name"),
		Year:         year,
		Page:         pageRequest(c),
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

// Get handles GET /titles/:title_id.
//
// @Summary      Get a title
// @Tags         titles
// @Produce      json
// @Param        title_id  path      int  true  "Title id"
// @Success      200       {object}  domain.Title
// @Failure      404       {object}  errorResponse
// @Router       /titles/{title_id} [get]
func (h *TitleHandler) Get(c echo.Context) error {
	id, err := pathID(c, "title_id")
	if err != nil {
		return err
	}
	title, err := h.titles.Get(c.Request().Context(), ctxPrincipal(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, title)
}

// Create handles POST /titles.
//
// @Summary      Create a title
// @Tags         titles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTitleRequest  true  "Title details"
// @Success      201   {object}  domain.Title
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /titles [post]
func (h *TitleHandler) Create(c echo.Context) error {
	var req createTitleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	title, err := h.titles.Create(c.Request().Context(), ctxPrincipal(c), ports.CreateTitleInput{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		Category:    req.Category,
		Genres:      req.Genres,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, title)
}

// Update handles PATCH /titles/:title_id.
//
// @Summary      Partially update a title
// @Tags         titles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        title_id  path      int                 true  "Title id"
// @Param        body      body      updateTitleRequest  true  "Fields to update"
// @Success      200       {object}  domain.Title
// @Failure      400       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /titles/{title_id} [patch]
func (h *TitleHandler) Update(c echo.Context) error {
	id, err := pathID(c, "title_id")
	if err != nil {
		return err
	}

	var req updateTitleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	title, err := h.titles.Update(c.Request().Context(), ctxPrincipal(c), id, ports.UpdateTitleInput{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		Category:    req.Category,
		Genres:      req.Genres,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, title)
}

// Delete handles DELETE /titles/:title_id.
//
// @Summary      Delete a title
// @Tags         titles
// @Security     BearerAuth
// @Param        title_id  path  int  true  "Title id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /titles/{title_id} [delete]
func (h *TitleHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "title_id")
	if err != nil {
		return err
	}
	if err := h.titles.Delete(c.Request().Context(), ctxPrincipal(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
