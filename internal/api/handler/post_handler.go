package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/blog-system/blog-api/internal/api/metrics"
	"github.com/blog-system/blog-api/internal/core/ports"
)

// PostHandler handles HTTP requests for post operations.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// GetAll handles GET /api/posts.
//
// @Summary      List posts, newest first
// @Tags         posts
// @Produce      json
// @Success      200  {array}   postResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/posts [get]
func (h *PostHandler) GetAll(c echo.Context) error {
	posts, err := h.service.GetAllPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostListResponse(posts))
}

// Get handles GET /api/posts/:id.
//
// @Summary      Get a post by id
// @Tags         posts
// @Produce      json
// @Param        id   path      int  true  "Post id"
// @Success      200  {object}  postResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return err
	}

	post, err := h.service.GetPostByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// Create handles POST /api/posts.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string       false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      postRequest  true   "Post fields"
// @Success      201              {object}  postResponse
// @Failure      400              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /api/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.CreatePost(c.Request().Context(), ports.CreatePostInput{
		PostInput:      toPostInput(req),
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	if result.Replayed {
		metrics.IdempotentReplaysTotal.Inc()
	} else {
		metrics.PostsCreatedTotal.Inc()
	}
	return c.JSON(http.StatusCreated, toPostResponse(result.Post))
}

// Update handles PUT /api/posts/:id.
//
// @Summary      Replace title, content and author of a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id    path      int          true  "Post id"
// @Param        body  body      postRequest  true  "Post fields"
// @Success      200   {object}  postResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return err
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.service.UpdatePost(c.Request().Context(), id, toPostInput(req))
	if err != nil {
		return err
	}

	metrics.PostsUpdatedTotal.Inc()
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// Delete handles DELETE /api/posts/:id.
//
// @Summary      Delete a post
// @Tags         posts
// @Param        id   path  int  true  "Post id"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeletePost(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.PostsDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// Search handles GET /api/posts/search?keyword=.
//
// @Summary      Search posts by title substring
// @Tags         posts
// @Produce      json
// @Param        keyword  query     string  true  "Case-sensitive title substring"
// @Success      200      {array}   postResponse
// @Failure      400      {object}  errorResponse
// @Router       /api/posts/search [get]
func (h *PostHandler) Search(c echo.Context) error {
	if !c.QueryParams().Has("keyword") {
		return echo.NewHTTPError(http.StatusBadRequest, "keyword is required")
	}

	posts, err := h.service.SearchByTitle(c.Request().Context(), c.QueryParam("keyword"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostListResponse(posts))
}

// ByAuthor handles GET /api/posts/author/:author.
//
// @Summary      List posts by author
// @Tags         posts
// @Produce      json
// @Param        author  path      string  true  "Exact author name"
// @Success      200     {array}   postResponse
// @Router       /api/posts/author/{author} [get]
func (h *PostHandler) ByAuthor(c echo.Context) error {
	posts, err := h.service.GetPostsByAuthor(c.Request().Context(), c.Param("author"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostListResponse(posts))
}

func postID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid post id")
	}
	return id, nil
}
