package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/critiq/review-platform/internal/api/metrics"
	"github.com/critiq/review-platform/internal/core/ports"
)

// ReviewHandler serves reviews nested under /titles/:title_id.
type ReviewHandler struct {
	reviews ports.ReviewService
}

func NewReviewHandler(reviews ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type createReviewRequest struct {
	Text  string `json:"text"  validate:"required"`
	Score int    `json:"score" validate:"required,gte=1,lte=10"`
}

type updateReviewRequest struct {
	Text  *string `json:"text"  validate:"omitempty,min=1"`
	Score *int    `json:"score" validate:"omitempty,gte=1,lte=10"`
}

// List handles GET /titles/:title_id/reviews.
//
// @Summary      List reviews of a title
// @Tags         reviews
// @Produce      json
// @Param        title_id  path      int  true   "Title id"
// @Param        page      query     int  false  "Page number"
// @Param        limit     query     int  false  "Page size"
// @Success      200       {object}  pagedResponse
// @Failure      404       {object}  errorResponse
// @Router       /titles/{title_id}/reviews [get]
func (h *ReviewHandler) List(c echo.Context) error {
	titleID, err := pathID(c, "title_id")
	if err != nil {
		return err
	}
	page, err := h.reviews.List(c.Request().Context(), ctxPrincipal(c), titleID, pageRequest(c))
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

// Create handles POST /titles/:title_id/reviews. Author and title are taken
// from the principal and the path, never from the body.
//
// @Summary      Create a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        title_id  path      int                  true  "Title id"
// @Param        body      body      createReviewRequest  true  "Review"
// @Success      201       {object}  domain.Review
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /titles/{title_id}/reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	titleID, err := pathID(c, "title_id")
	if err != nil {
		return err
	}

	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.reviews.Create(c.Request().Context(), ctxPrincipal(c), titleID, ports.CreateReviewInput{
		Text:  req.Text,
		Score: req.Score,
	})
	if err != nil {
		return err
	}

	metrics.ReviewsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, review)
}

// Get handles GET /titles/:title_id/reviews/:review_id.
//
// @Summary      Get a review
// @Tags         reviews
// @Produce      json
// @Param        title_id   path      int  true  "Title id"
// @Param        review_id  path      int  true  "Review id"
// @Success      200        {object}  domain.Review
// @Failure      404        {object}  errorResponse
// @Router       /titles/{title_id}/reviews/{review_id} [get]
func (h *ReviewHandler) Get(c echo.Context) error {
	titleID, err := pathID(c, "title_id")
	if err != nil {
		return err
	}
	reviewID, err := pathID(c, "review_id")
	if err != nil {
		return err
	}
	review, err := h.reviews.Get(c.Request().Context(), ctxPrincipal(c), titleID, reviewID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, review)
}

// Update handles PATCH /titles/:title_id/reviews/:review_id.
//
// @Summary      Partially update a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        title_id   path      int                  true  "Title id"
// @Param        review_id  path      int                  true  "Review id"
// @Param        body       body      updateReviewRequest  true  "Fields to update"
// @Success      200        {object}  domain.Review
// @Failure      400        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /titles/{title_id}/reviews/{review_id} [patch]
func (h *ReviewHandler) Update(c echo.Context) error {
	titleID, err := pathID(c, "title_id")
	if err != nil {
		return err
	}
	reviewID, err := pathID(c, "review_id")
	if err != nil {
		return err
	}

	var req updateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.reviews.Update(c.Request().Context(), ctxPrincipal(c), titleID, reviewID, ports.UpdateReviewInput{
		Text:  req.Text,
		Score: req.Score,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, review)
}

// Delete handles DELETE /titles/:title_id/reviews/:review_id.
//
// @Summary      Delete a review
// @Tags         reviews
// @Security     BearerAuth
// @Param        title_id   path  int  true  "Title id"
// @Param        review_id  path  int  true  "Review id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /titles/{title_id}/reviews/{review_id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	titleID, err := pathID(c, "title_id")
	if err != nil {
		return err
	}
	reviewID, err := pathID(c, "review_id")
	if err != nil {
		return err
	}
	if err := h.reviews.Delete(c.Request().Context(), ctxPrincipal(c), titleID, reviewID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
