package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/critiq/review-platform/internal/core/ports"
)

// CommentHandler serves comments nested two levels deep under
// /titles/:title_id/reviews/:review_id.
type CommentHandler struct {
	comments ports.CommentService
}

func NewCommentHandler(comments ports.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

type commentRequest struct {
	Text string `json:"text" validate:"required"`
}

// commentPath pulls the full parent chain out of the route parameters.
func commentPath(c echo.Context) (titleID, reviewID int64, err error) {
	titleID, err = pathID(c, "title_id")
	if err != nil {
		return 0, 0, err
	}
	reviewID, err = pathID(c, "review_id")
	if err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}

// List handles GET .../comments.
//
// @Summary      List comments of a review
// @Tags         comments
// @Produce      json
// @Param        title_id   path      int  true   "Title id"
// @Param        review_id  path      int  true   "Review id"
// @Param        page       query     int  false  "Page number"
// @Param        limit      query     int  false  "Page size"
// @Success      200        {object}  pagedResponse
// @Failure      404        {object}  errorResponse
// @Router       /titles/{title_id}/reviews/{review_id}/comments [get]
func (h *CommentHandler) List(c echo.Context) error {
	titleID, reviewID, err := commentPath(c)
	if err != nil {
		return err
	}
	page, err := h.comments.List(c.Request().Context(), ctxPrincipal(c), titleID, reviewID, pageRequest(c))
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

// Create handles POST .../comments.
//
// @Summary      Create a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        title_id   path      int             true  "Title id"
// @Param        review_id  path      int             true  "Review id"
// @Param        body       body      commentRequest  true  "Comment"
// @Success      201        {object}  domain.Comment
// @Failure      400        {object}  errorResponse
// @Failure      401        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /titles/{title_id}/reviews/{review_id}/comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	titleID, reviewID, err := commentPath(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.comments.Create(c.Request().Context(), ctxPrincipal(c), titleID, reviewID, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

// Get handles GET .../comments/:comment_id.
//
// @Summary      Get a comment
// @Tags         comments
// @Produce      json
// @Param        title_id    path      int  true  "Title id"
// @Param        review_id   path      int  true  "Review id"
// @Param        comment_id  path      int  true  "Comment id"
// @Success      200         {object}  domain.Comment
// @Failure      404         {object}  errorResponse
// @Router       /titles/{title_id}/reviews/{review_id}/comments/{comment_id} [get]
func (h *CommentHandler) Get(c echo.Context) error {
	titleID, reviewID, err := commentPath(c)
	if err != nil {
		return err
	}
	commentID, err := pathID(c, "comment_id")
	if err != nil {
		return err
	}
	comment, err := h.comments.Get(c.Request().Context(), ctxPrincipal(c), titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}

// Update handles PATCH .../comments/:comment_id.
//
// @Summary      Update a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        title_id    path      int             true  "Title id"
// @Param        review_id   path      int             true  "Review id"
// @Param        comment_id  path      int             true  "Comment id"
// @Param        body        body      commentRequest  true  "New text"
// @Success      200         {object}  domain.Comment
// @Failure      400         {object}  errorResponse
// @Failure      403         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /titles/{title_id}/reviews/{review_id}/comments/{comment_id} [patch]
func (h *CommentHandler) Update(c echo.Context) error {
	titleID, reviewID, err := commentPath(c)
	if err != nil {
		return err
	}
	commentID, err := pathID(c, "comment_id")
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.comments.Update(c.Request().Context(), ctxPrincipal(c), titleID, reviewID, commentID, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}

// Delete handles DELETE .../comments/:comment_id.
//
// @Summary      Delete a comment
// @Tags         comments
// @Security     BearerAuth
// @Param        title_id    path  int  true  "Title id"
// @Param        review_id   path  int  true  "Review id"
// @Param        comment_id  path  int  true  "Comment id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /titles/{title_id}/reviews/{review_id}/comments/{comment_id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	titleID, reviewID, err := commentPath(c)
	if err != nil {
		return err
	}
	commentID, err := pathID(c, "comment_id")
	if err != nil {
		return err
	}
	if err := h.comments.Delete(c.Request().Context(), ctxPrincipal(c), titleID, reviewID, commentID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
