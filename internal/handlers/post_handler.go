package handlers

import (
	"net/http"
	"strconv"

	"github.com/0xSujith18/Talkit/internal/apperrors"
	"github.com/0xSujith18/Talkit/internal/middleware"
	"github.com/0xSujith18/Talkit/internal/models"
	"github.com/0xSujith18/Talkit/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to feed posts, likes, and comments
type PostHandler struct {
	feedService *services.FeedService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(feedService *services.FeedService) *PostHandler {
	return &PostHandler{feedService: feedService}
}

// RegisterPostRoutes registers post-related routes. createLimiter throttles
// post creation per identity.
func (h *PostHandler) RegisterPostRoutes(g *echo.Group, createLimiter echo.MiddlewareFunc) {
	g.POST("/posts", h.CreatePost, createLimiter)
	g.GET("/posts/feed", h.GetFeed)
	g.GET("/posts/trending", h.GetTrending)
	g.GET("/posts/hashtag/:tag", h.GetByHashtag)
	g.GET("/posts/user/:user_id", h.GetByUser)
	g.GET("/posts/:id", h.GetPost)
	g.PATCH("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:id/like", h.ToggleLike)
	g.POST("/posts/:id/comment", h.CreateComment)
	g.GET("/posts/:id/comments", h.GetComments)
	g.PATCH("/posts/:id/status", h.UpdateStatus)
}

// CreatePost composes a new feed post
func (h *PostHandler) CreatePost(c echo.Context) error {
	identity := middleware.GetIdentity(c)

	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.feedService.CreatePost(c.Request().Context(), identity, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a single post
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.feedService.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// GetFeed returns the recency-ordered public feed
func (h *PostHandler) GetFeed(c echo.Context) error {
	page, limit := pagination(c, 20)

	posts, total, pages, err := h.feedService.Feed(c.Request().Context(), int64(page), int64(limit))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"posts": posts,
		"total": total,
		"pages": pages,
	})
}

// GetTrending returns posts ordered by visibility score
func (h *PostHandler) GetTrending(c echo.Context) error {
	posts, err := h.feedService.Trending(c.Request().Context(), 20)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// GetByHashtag returns posts carrying a hashtag
func (h *PostHandler) GetByHashtag(c echo.Context) error {
	posts, err := h.feedService.ByHashtag(c.Request().Context(), c.Param("tag"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// GetByUser returns posts authored by a user
func (h *PostHandler) GetByUser(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		return apperrors.Validation("invalid user id")
	}
	posts, err := h.feedService.ByUser(c.Request().Context(), uint(userID))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// UpdatePost edits the caption and hashtags (owner only)
func (h *PostHandler) UpdatePost(c echo.Context) error {
	identity := middleware.GetIdentity(c)

	var req models.UpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.feedService.EditCaption(c.Request().Context(), identity, c.Param("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost removes a post and its comments (owner only)
func (h *PostHandler) DeletePost(c echo.Context) error {
	identity := middleware.GetIdentity(c)

	if err := h.feedService.DeletePost(c.Request().Context(), identity, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post deleted"})
}

// ToggleLike flips the caller's like on a post
func (h *PostHandler) ToggleLike(c echo.Context) error {
	identity := middleware.GetIdentity(c)

	post, err := h.feedService.ToggleLike(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// CreateComment adds a comment to a post
func (h *PostHandler) CreateComment(c echo.Context) error {
	identity := middleware.GetIdentity(c)

	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.feedService.Comment(c.Request().Context(), identity, c.Param("id"), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

// GetComments lists a post's comments
func (h *PostHandler) GetComments(c echo.Context) error {
	comments, err := h.feedService.Comments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

// UpdateStatus sets the post's own status (authority only)
func (h *PostHandler) UpdateStatus(c echo.Context) error {
	identity := middleware.GetIdentity(c)

	var req models.UpdatePostStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.feedService.UpdateStatus(c.Request().Context(), identity, c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}
