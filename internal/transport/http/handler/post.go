package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/blog-api/internal/domain"
	"github.com/ErlanBelekov/blog-api/internal/transport/http/middleware"
	"github.com/ErlanBelekov/blog-api/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// postUsecaser is the subset of PostUsecase the handler needs.
type postUsecaser interface {
	Create(ctx context.Context, input usecase.CreatePostInput) (*domain.Post, error)
	ListPublished(ctx context.Context, input usecase.ListPublishedInput) (*domain.PostList, error)
	Get(ctx context.Context, id, viewerID string) (*domain.Post, error)
	Update(ctx context.Context, id, callerID string, patch domain.PostPatch) (*domain.Post, error)
	Delete(ctx context.Context, id, callerID string) error
	ListOwn(ctx context.Context, callerID string, state *domain.State, page domain.Page) (*domain.PostList, error)
}

type PostHandler struct {
	postUsecase postUsecaser
	logger      *slog.Logger
}

func NewPostHandler(postUsecase postUsecaser, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		postUsecase: postUsecase,
		logger:      logger.With("component", "post_handler"),
	}
}

type createPostRequest struct {
	Title       string   `json:"title"       binding:"required"`
	Description string   `json:"description"`
	Body        string   `json:"body"        binding:"required"`
	Tags        []string `json:"tags"`
	State       string   `json:"state"       binding:"omitempty,oneof=draft published"`
}

// Absent fields stay nil and leave the stored value untouched.
type updatePostRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Body        *string   `json:"body"`
	Tags        *[]string `json:"tags"`
	State       *string   `json:"state"`
}

func (r updatePostRequest) patch() domain.PostPatch {
	p := domain.PostPatch{
		Title:       r.Title,
		Description: r.Description,
		Body:        r.Body,
		Tags:        r.Tags,
	}
	if r.State != nil {
		s := domain.State(*r.State)
		p.State = &s
	}
	return p
}

// POST /api/blogs
func (h *PostHandler) Create(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req createPostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.postUsecase.Create(c.Request.Context(), usecase.CreatePostInput{
		AuthorID:    user.ID,
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
		Tags:        req.Tags,
		State:       domain.State(req.State),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.logger.InfoContext(c.Request.Context(), "post created", "post_id", post.ID, "state", post.State)
	c.JSON(http.StatusCreated, envelope{Status: statusSuccess, Data: toPostResponse(post, false)})
}

// GET /api/blogs?search=&author=&tag=&orderBy=&page=&limit=
func (h *PostHandler) List(c *gin.Context) {
	author := c.Query("author")
	if author != "" {
		if err := uuid.Validate(author); err != nil {
			_ = c.Error(domain.InvalidID("author", author))
			return
		}
	}

	list, err := h.postUsecase.ListPublished(c.Request.Context(), usecase.ListPublishedInput{
		Search:   c.Query("search"),
		AuthorID: author,
		Tag:      c.Query("tag"),
		Order:    domain.ParseOrder(c.Query("orderBy")),
		Page:     domain.ParsePage(c.Query("page"), c.Query("limit")),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, toListEnvelope(list, true))
}

// GET /api/blogs/me?state=&page=&limit=
func (h *PostHandler) ListOwn(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	list, err := h.postUsecase.ListOwn(c.Request.Context(), user.ID,
		domain.ParseStateFilter(c.Query("state")),
		domain.ParsePage(c.Query("page"), c.Query("limit")),
	)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, toListEnvelope(list, false))
}

// GET /api/blogs/:id
// Counts a read. Drafts answer 404 for everyone.
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	var viewerID string
	if user, ok := middleware.CurrentUser(c); ok {
		viewerID = user.ID
	}

	post, err := h.postUsecase.Get(c.Request.Context(), id, viewerID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     statusSuccess,
		"data":       toPostResponse(post, true),
		"read_count": post.ReadCount,
	})
}

// PATCH /api/blogs/:id
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	user, _ := middleware.CurrentUser(c)

	var req updatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.postUsecase.Update(c.Request.Context(), id, user.ID, req.patch())
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.logger.InfoContext(c.Request.Context(), "post updated", "post_id", post.ID)
	c.JSON(http.StatusOK, envelope{Status: statusSuccess, Data: toPostResponse(post, false)})
}

// DELETE /api/blogs/:id
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	user, _ := middleware.CurrentUser(c)

	if err := h.postUsecase.Delete(c.Request.Context(), id, user.ID); err != nil {
		_ = c.Error(err)
		return
	}

	h.logger.InfoContext(c.Request.Context(), "post deleted", "post_id", id)
	c.JSON(http.StatusOK, envelope{Status: statusSuccess, Data: nil})
}

func postID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if err := uuid.Validate(id); err != nil {
		_ = c.Error(domain.InvalidID("id", id))
		return "", false
	}
	return id, true
}
